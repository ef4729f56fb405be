// seed carga datos iniciales en la base.
//
//	go run ./cmd/seed catalog   categorías de medicamentos y dispensarios
//	go run ./cmd/seed demo      ítems de ejemplo con historial de dispensación
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/urfave/cli/v2"

	"github.com/jhoicas/clinic-stock-api/internal/infrastructure/postgres"
	"github.com/jhoicas/clinic-stock-api/pkg/config"
	"github.com/jhoicas/clinic-stock-api/pkg/logger"
)

type poolKey struct{}

var log = logger.New(logger.Config{Env: "development", Service: "seed"})

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "connection string de PostgreSQL",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func initDB(c *cli.Context) error {
	pool, err := postgres.NewPool(c.Context, config.DBConfig{
		DatabaseURL: c.String("db-url"),
		MaxConns:    4,
		ForceIPv4:   c.Bool("ipv4"),
	}, log.Component("postgres"))
	if err != nil {
		return fmt.Errorf("conectar a la base: %w", err)
	}
	c.Context = context.WithValue(c.Context, poolKey{}, pool)
	return nil
}

func closeDB(c *cli.Context) error {
	if pool, ok := c.Context.Value(poolKey{}).(*pgxpool.Pool); ok && pool != nil {
		pool.Close()
	}
	return nil
}

func poolFrom(c *cli.Context) *pgxpool.Pool {
	pool, _ := c.Context.Value(poolKey{}).(*pgxpool.Pool)
	return pool
}

func main() {
	ipv4 := &cli.BoolFlag{Name: "ipv4", Usage: "forzar conexión IPv4", EnvVars: []string{"DB_FORCE_IPV4"}}
	app := &cli.App{
		Name:  "seed",
		Usage: "carga datos iniciales del inventario clínico",
		Commands: []*cli.Command{
			{
				Name:   "catalog",
				Usage:  "crea las 15 categorías de medicamentos y los dispensarios base",
				Flags:  []cli.Flag{newDBURLFlag(), ipv4},
				Before: initDB,
				After:  closeDB,
				Action: seedCatalog,
			},
			{
				Name:  "demo",
				Usage: "crea ítems de ejemplo con historial de dispensación para la analítica",
				Flags: []cli.Flag{
					newDBURLFlag(),
					ipv4,
					&cli.IntFlag{
						Name:  "days",
						Usage: "días de historial a generar",
						Value: 30,
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: seedDemo,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("seed")
	}
}
