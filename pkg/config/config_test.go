package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/clinic-stock-api/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secreto")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Analytics.LeadTimeDays)
	assert.Equal(t, 0.5, cfg.Analytics.SafetyFactor)
	assert.Equal(t, 30, cfg.Analytics.SupplyDays)
	assert.Equal(t, 8, cfg.Analytics.Workers)
	assert.Equal(t, 3, cfg.Alerts.ExpiryWindowMonths)
	assert.Equal(t, 24*time.Hour, cfg.Alerts.Cooldown)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.False(t, cfg.SMTP.Enabled())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "secreto")
	t.Setenv("ANALYTICS_LEAD_TIME_DAYS", "14")
	t.Setenv("ANALYTICS_SAFETY_FACTOR", "0.25")
	t.Setenv("OWNER_EMAIL", "  Duena@Clinica.org ")
	t.Setenv("SMTP_HOST", "smtp.clinica.org")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 14, cfg.Analytics.LeadTimeDays)
	assert.Equal(t, 0.25, cfg.Analytics.SafetyFactor)
	assert.Equal(t, "duena@clinica.org", cfg.App.OwnerEmail)
	assert.True(t, cfg.SMTP.Enabled())
}

func TestLoad_SinJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_ParametrosNegativos(t *testing.T) {
	t.Setenv("JWT_SECRET", "secreto")
	t.Setenv("ANALYTICS_SUPPLY_DAYS", "-1")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestDSN_EscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "clinic", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/clinic?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
