package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/multimovil/pos-api/internal/application/reports"
	"github.com/multimovil/pos-api/internal/application/sales"
	"github.com/multimovil/pos-api/internal/application/usecase"
	"github.com/multimovil/pos-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *usecase.AuthUseCase
	ProductUC  *usecase.ProductUseCase
	RepairUC   *usecase.RepairUseCase
	SettingsUC *usecase.SettingsUseCase
	CheckoutUC *sales.CheckoutUseCase
	RefundUC   *sales.RefundUseCase
	SaleQuery  *sales.SaleQueryUseCase
	CloseDayUC *sales.CloseDayUseCase
	ReportUC   *reports.ReportUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	settingsHandler := NewSettingsHandler(deps.SettingsUC)

	// Auth (público solo el login)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Tasas (público: la vista de precios en tienda las consulta sin sesión)
	api.Get("/rates", settingsHandler.GetRates)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// El PIN de administrador protege las operaciones destructivas.
	adminPIN := AdminPINMiddleware(deps.SettingsUC)

	// Registro de usuarios (solo admin)
	protected.Post("/auth/register", RequireRole(entity.RoleAdmin), authHandler.Register)
	protected.Get("/auth/me", authHandler.Me)
	protected.Get("/users", RequireRole(entity.RoleAdmin), authHandler.ListUsers)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.ListLowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", adminPIN, productHandler.Delete)

	// Repairs (protegido)
	repairs := protected.Group("/repairs")
	repairHandler := NewRepairHandler(deps.RepairUC, deps.ReportUC)
	repairs.Post("/", repairHandler.Create)
	repairs.Get("/", repairHandler.List)
	repairs.Get("/:id", repairHandler.GetByID)
	repairs.Put("/:id", repairHandler.Update)
	repairs.Patch("/:id/status", repairHandler.UpdateStatus)
	repairs.Post("/:id/parts", repairHandler.ReserveParts)
	repairs.Delete("/:id/parts/:productId", repairHandler.ReleasePart)
	repairs.Delete("/:id", adminPIN, repairHandler.Delete)
	repairs.Get("/:id/ticket", repairHandler.Ticket)

	// Sales (protegido)
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.CheckoutUC, deps.RefundUC, deps.SaleQuery, deps.ReportUC)
	salesGroup.Post("/", saleHandler.Checkout)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Get("/:id/receipt", saleHandler.Receipt)
	salesGroup.Post("/:id/refund", adminPIN, saleHandler.Refund)

	// Reconciliations (protegido; el cierre requiere PIN)
	recons := protected.Group("/reconciliations")
	reconHandler := NewReconciliationHandler(deps.CloseDayUC)
	recons.Post("/close", adminPIN, reconHandler.CloseDay)
	recons.Get("/", reconHandler.List)
	recons.Get("/:id", reconHandler.GetByID)

	// Reports (protegido)
	reportsGroup := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reportsGroup.Get("/summary", reportHandler.TodaySummary)
	reportsGroup.Get("/sales.xlsx", reportHandler.ExportSales)

	// Settings (protegido)
	settings := protected.Group("/settings")
	settings.Get("/", settingsHandler.Get)
	settings.Put("/", RequireRole(entity.RoleAdmin), settingsHandler.Update)
	settings.Post("/verify-pin", settingsHandler.VerifyPIN)
}
