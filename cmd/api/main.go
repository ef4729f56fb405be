package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/clinic-stock-api/internal/application/alerts"
	"github.com/jhoicas/clinic-stock-api/internal/application/analytics"
	"github.com/jhoicas/clinic-stock-api/internal/application/auth"
	"github.com/jhoicas/clinic-stock-api/internal/application/catalog"
	"github.com/jhoicas/clinic-stock-api/internal/application/export"
	"github.com/jhoicas/clinic-stock-api/internal/application/inventory"
	"github.com/jhoicas/clinic-stock-api/internal/application/ports"
	"github.com/jhoicas/clinic-stock-api/internal/application/usecase"
	domaininv "github.com/jhoicas/clinic-stock-api/internal/domain/inventory"
	infraai "github.com/jhoicas/clinic-stock-api/internal/infrastructure/ai"
	"github.com/jhoicas/clinic-stock-api/internal/infrastructure/notify"
	infrapdf "github.com/jhoicas/clinic-stock-api/internal/infrastructure/pdf"
	"github.com/jhoicas/clinic-stock-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/clinic-stock-api/internal/interfaces/http"
	"github.com/jhoicas/clinic-stock-api/pkg/config"
	"github.com/jhoicas/clinic-stock-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, log.Component("postgres"))
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	prefRepo := postgres.NewUserPreferenceRepository(pool)
	dispensaryRepo := postgres.NewDispensaryRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	itemRepo := postgres.NewStockItemRepository(pool)
	txRepo := postgres.NewStockTransactionRepository(pool)
	alertRepo := postgres.NewStockAlertRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Alertas: SMTP si está configurado, si no solo log.
	notifier := notify.NewSMTPNotifier(cfg.SMTP, cfg.App.OwnerEmail, log.Component("notify"))
	alertUC := alerts.NewAlertUseCase(itemRepo, userRepo, alertRepo, notifier, alerts.Config{
		ExpiryWindowMonths: cfg.Alerts.ExpiryWindowMonths,
		Cooldown:           cfg.Alerts.Cooldown,
	}, log.Component("alerts"))

	// Clasificación IA opcional.
	var llm ports.LLMService
	if cfg.Anthropic.APIKey != "" {
		llm = infraai.NewAnthropicService(cfg.Anthropic.APIKey, cfg.Anthropic.Model)
	} else {
		log.Warn().Msg("ANTHROPIC_API_KEY vacío: clasificación de medicamentos deshabilitada")
	}

	policy := domaininv.Policy{
		LeadTimeDays: cfg.Analytics.LeadTimeDays,
		SafetyFactor: cfg.Analytics.SafetyFactor,
		SupplyDays:   cfg.Analytics.SupplyDays,
	}
	analyticsUC := analytics.NewPredictiveUseCase(itemRepo, txRepo, policy, cfg.Analytics.Workers, log.Component("analytics"))

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.App.OwnerEmail)

	pdfRenderer := infrapdf.NewMarotoTableRenderer(cfg.App.Name)
	exportUC := export.NewExportUseCase(itemRepo, txRepo, dispensaryRepo, analyticsUC, pdfRenderer, cfg.Alerts.ExpiryWindowMonths)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Clinic Stock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		DispensaryUC:  usecase.NewDispensaryUseCase(dispensaryRepo),
		CategoryUC:    catalog.NewCategoryUseCase(categoryRepo, llm),
		StockUC:       inventory.NewStockUseCase(txRunner, itemRepo, dispensaryRepo, categoryRepo, alertUC, cfg.Alerts.ExpiryWindowMonths),
		AdjustUC:      inventory.NewAdjustQuantityUseCase(txRunner, alertUC),
		TransactionUC: inventory.NewTransactionUseCase(txRepo),
		UserUC:        usecase.NewUserUseCase(userRepo),
		PreferenceUC:  usecase.NewPreferenceUseCase(prefRepo, dispensaryRepo),
		AnalyticsUC:   analyticsUC,
		ExportUC:      exportUC,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	// Las alertas en curso terminan antes de cerrar el pool.
	alertUC.Wait()

	log.Info().Msg("aplicación detenida")
}
