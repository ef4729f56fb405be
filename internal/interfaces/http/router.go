package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/clinic-stock-api/internal/application/analytics"
	"github.com/jhoicas/clinic-stock-api/internal/application/auth"
	"github.com/jhoicas/clinic-stock-api/internal/application/catalog"
	"github.com/jhoicas/clinic-stock-api/internal/application/export"
	"github.com/jhoicas/clinic-stock-api/internal/application/inventory"
	"github.com/jhoicas/clinic-stock-api/internal/application/usecase"
	"github.com/jhoicas/clinic-stock-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	DispensaryUC  *usecase.DispensaryUseCase
	CategoryUC    *catalog.CategoryUseCase
	StockUC       *inventory.StockUseCase
	AdjustUC      *inventory.AdjustQuantityUseCase
	TransactionUC *inventory.TransactionUseCase
	UserUC        *usecase.UserUseCase
	PreferenceUC  *usecase.PreferenceUseCase
	AnalyticsUC   *analytics.PredictiveUseCase
	ExportUC      *export.ExportUseCase
	JWTSecret     string
}

// Roles con permiso de escritura sobre el inventario.
var stockWriters = []string{entity.RoleAdmin, entity.RoleStockController, entity.RoleManager, entity.RoleFounder}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authHandler := NewAuthHandler(deps.AuthUC)
	dispensaryHandler := NewDispensaryHandler(deps.DispensaryUC)
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	stockHandler := NewStockHandler(deps.StockUC, deps.AdjustUC)
	transactionHandler := NewTransactionHandler(deps.TransactionUC)
	userHandler := NewUserHandler(deps.UserUC, deps.PreferenceUC)
	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC)
	exportHandler := NewExportHandler(deps.ExportUC)

	authMW := AuthMiddleware(deps.JWTSecret)

	// Auth (público salvo /me)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", authMW, authHandler.Me)

	// Dispensarios y categorías: lectura pública
	dispensaries := api.Group("/dispensaries")
	dispensaries.Get("/", dispensaryHandler.List)
	dispensaries.Get("/:id", dispensaryHandler.GetByID)
	dispensaries.Post("/", authMW, RequireRole(entity.RoleAdmin, entity.RoleFounder), dispensaryHandler.Create)

	categories := api.Group("/categories")
	categories.Get("/", categoryHandler.List)
	categories.Post("/classify", authMW, categoryHandler.Classify)
	categories.Post("/", authMW, RequireRole(entity.RoleAdmin), categoryHandler.Create)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", authMW)

	protected.Get("/preferences", userHandler.GetPreferences)
	protected.Put("/preferences", userHandler.SavePreferences)

	stock := protected.Group("/stock")
	writers := RequireRole(stockWriters...)
	stock.Get("/", stockHandler.List)
	stock.Get("/by-category", stockHandler.ListByCategory)
	stock.Get("/low", stockHandler.ListLowStock)
	stock.Get("/expiring", stockHandler.ListExpiring)
	stock.Post("/adjust", writers, stockHandler.Adjust)
	stock.Post("/", writers, stockHandler.Create)
	stock.Get("/:id", stockHandler.GetByID)
	stock.Put("/:id", writers, stockHandler.Update)
	stock.Delete("/:id", writers, stockHandler.Delete)

	transactions := protected.Group("/transactions")
	transactions.Get("/", transactionHandler.ListByDispensary)
	transactions.Get("/item/:id", transactionHandler.ListByItem)

	users := protected.Group("/users", RequireRole(entity.RoleAdmin, entity.RoleFounder))
	users.Get("/", userHandler.List)
	users.Put("/:id/role", userHandler.UpdateRole)
	users.Delete("/:id", userHandler.Delete)

	analyticsGroup := protected.Group("/analytics")
	analyticsGroup.Get("/dispensary/:id", analyticsHandler.Dispensary)
	analyticsGroup.Get("/item/:id", analyticsHandler.Item)

	protected.Get("/export/:report", exportHandler.Export)
}
