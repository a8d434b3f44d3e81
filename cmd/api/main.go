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

	"github.com/multimovil/pos-api/internal/application/reports"
	"github.com/multimovil/pos-api/internal/application/sales"
	"github.com/multimovil/pos-api/internal/application/usecase"
	"github.com/multimovil/pos-api/internal/infrastructure/bcv"
	"github.com/multimovil/pos-api/internal/infrastructure/cache"
	infraexcel "github.com/multimovil/pos-api/internal/infrastructure/excel"
	infrapdf "github.com/multimovil/pos-api/internal/infrastructure/pdf"
	"github.com/multimovil/pos-api/internal/infrastructure/postgres"
	httpRouter "github.com/multimovil/pos-api/internal/interfaces/http"
	"github.com/multimovil/pos-api/pkg/config"
	"github.com/multimovil/pos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	repairRepo := postgres.NewRepairJobRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	reconRepo := postgres.NewReconciliationRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Cache de tasas (opcional; REDIS_ADDR vacío lo apaga)
	ratesCache := cache.New(cfg.Redis)
	defer func() { _ = ratesCache.Close() }()

	// Sincronizador de tasa BCV en segundo plano
	bcv.StartSync(ctx, bcv.SyncConfig{
		Client:         bcv.NewClient(cfg.Rates.BCVURL),
		SettingsRepo:   settingsRepo,
		RatesCache:     ratesCache,
		Log:            log,
		Interval:       cfg.Rates.SyncInterval,
		StaleThreshold: cfg.Rates.StaleThreshold,
	})

	authUC := usecase.NewAuthUseCase(userRepo, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration)
	productUC := usecase.NewProductUseCase(productRepo, settingsRepo)
	repairUC := usecase.NewRepairUseCase(txRunner, repairRepo)
	settingsUC := usecase.NewSettingsUseCase(settingsRepo, ratesCache)

	checkoutUC := sales.NewCheckoutUseCase(txRunner, productRepo, repairRepo, saleRepo, settingsRepo)
	refundUC := sales.NewRefundUseCase(txRunner, saleRepo, settingsRepo)
	saleQueryUC := sales.NewSaleQueryUseCase(saleRepo, settingsRepo)
	closeDayUC := sales.NewCloseDayUseCase(txRunner, settingsRepo, reconRepo)

	// Tickets térmicos de 80mm y export xlsx
	receipts := infrapdf.NewReceiptGenerator(cfg.Shop.Name, cfg.Shop.Address, cfg.Shop.Phone)
	exporter := infraexcel.NewSalesExporter()
	reportUC := reports.NewReportUseCase(saleRepo, productRepo, repairRepo, settingsRepo, receipts, exporter)

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
		Title:    "POS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		ProductUC:  productUC,
		RepairUC:   repairUC,
		SettingsUC: settingsUC,
		CheckoutUC: checkoutUC,
		RefundUC:   refundUC,
		SaleQuery:  saleQueryUC,
		CloseDayUC: closeDayUC,
		ReportUC:   reportUC,
		JWTSecret:  cfg.JWT.Secret,
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
	cancel() // detiene el sincronizador BCV

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
