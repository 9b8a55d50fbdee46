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
	appanalytics "github.com/dmarulanda/ventas-api/internal/application/analytics"
	"github.com/dmarulanda/ventas-api/internal/application/auth"
	"github.com/dmarulanda/ventas-api/internal/application/importer"
	"github.com/dmarulanda/ventas-api/internal/application/inventory"
	appsales "github.com/dmarulanda/ventas-api/internal/application/sales"
	"github.com/dmarulanda/ventas-api/internal/application/usecase"
	infrapdf "github.com/dmarulanda/ventas-api/internal/infrastructure/pdf"
	"github.com/dmarulanda/ventas-api/internal/infrastructure/postgres"
	httpRouter "github.com/dmarulanda/ventas-api/internal/interfaces/http"
	"github.com/dmarulanda/ventas-api/internal/interfaces/ws"
	"github.com/dmarulanda/ventas-api/pkg/config"
	"github.com/dmarulanda/ventas-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Hub de notificaciones en vivo; también recibe los eventos de dominio.
	hub := ws.NewHub()
	go hub.Run()

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	branchRepo := postgres.NewBranchRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	stockRepo := postgres.NewBranchStockRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	statsRepo := postgres.NewStatsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	companyUC := usecase.NewCompanyUseCase(companyRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	productUC := usecase.NewProductUseCase(productRepo, hub)
	branchUC := usecase.NewBranchUseCase(branchRepo, hub)
	moduleSvc := usecase.NewModuleService(companyRepo)
	distributeUC := inventory.NewDistributeStockUseCase(branchRepo, productRepo, stockRepo, hub)
	createSaleUC := appsales.NewCreateSaleUseCase(txRunner, branchRepo, productRepo, stockRepo, hub)
	listSalesUC := appsales.NewListSalesUseCase(saleRepo)
	statsUC := appanalytics.NewStatsUseCase(statsRepo)
	dashboardUC := appanalytics.NewDashboardUseCase(statsRepo)
	csvImporter := importer.NewCSVImporter(txRunner, hub)

	// PDF: reporte de ventas del período
	pdfGenerator := infrapdf.NewMarotoReportGenerator()
	reportUC := appsales.NewReportUseCase(companyRepo, saleRepo, statsRepo, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.HTTP.BodyLimitBytes(),
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(log.RequestLogger())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Ventas API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		CompanyUC:    companyUC,
		UserUC:       userUC,
		ProductUC:    productUC,
		BranchUC:     branchUC,
		DistributeUC: distributeUC,
		CreateSale:   createSaleUC,
		ListSales:    listSalesUC,
		ReportUC:     reportUC,
		StatsUC:      statsUC,
		DashboardUC:  dashboardUC,
		Importer:     csvImporter,
		Modules:      moduleSvc,
		Hub:          hub,
		JWTSecret:    cfg.JWT.Secret,
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

	log.Info().Msg("aplicación detenida")
}
