package http

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/dmarulanda/ventas-api/internal/application/analytics"
	"github.com/dmarulanda/ventas-api/internal/application/auth"
	"github.com/dmarulanda/ventas-api/internal/application/importer"
	"github.com/dmarulanda/ventas-api/internal/application/inventory"
	appsales "github.com/dmarulanda/ventas-api/internal/application/sales"
	"github.com/dmarulanda/ventas-api/internal/application/usecase"
	"github.com/dmarulanda/ventas-api/internal/domain/entity"
	"github.com/dmarulanda/ventas-api/internal/interfaces/ws"
	pkgjwt "github.com/dmarulanda/ventas-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	CompanyUC    *usecase.CompanyUseCase
	UserUC       *usecase.UserUseCase
	ProductUC    *usecase.ProductUseCase
	BranchUC     *usecase.BranchUseCase
	DistributeUC *inventory.DistributeStockUseCase
	CreateSale   *appsales.CreateSaleUseCase
	ListSales    *appsales.ListSalesUseCase
	ReportUC     *appsales.ReportUseCase
	StatsUC      *analytics.StatsUseCase
	DashboardUC  *analytics.DashboardUseCase
	Importer     *importer.CSVImporter
	Modules      *usecase.ModuleService
	Hub          *ws.Hub
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Alta de empresa (público, primer paso del onboarding)
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	api.Post("/companies", companyHandler.Create)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Empresa del token (protegido)
	companies := protected.Group("/companies")
	companies.Get("/me", companyHandler.GetByID)
	companies.Put("/me", RequireRole(entity.RoleAdmin), companyHandler.Update)

	// Users (protegido, solo admin)
	users := protected.Group("/users", RequireRole(entity.RoleAdmin))
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Importer)
	products.Post("/", RequireRole(entity.RoleAdmin), productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.ListLowStock)
	products.Post("/import",
		RequireRole(entity.RoleAdmin),
		RequireModule(entity.ModuleImports, deps.Modules),
		productHandler.Import)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", RequireRole(entity.RoleAdmin), productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Delete)

	// Branches (protegido)
	branches := protected.Group("/branches")
	branchHandler := NewBranchHandler(deps.BranchUC, deps.DistributeUC)
	branches.Post("/", RequireRole(entity.RoleAdmin), branchHandler.Create)
	branches.Get("/", branchHandler.List)
	branches.Get("/:id", branchHandler.GetByID)
	branches.Put("/:id", RequireRole(entity.RoleAdmin), branchHandler.Update)
	branches.Get("/:id/stock", branchHandler.GetStock)

	// Distribuciones bodega → sucursal (protegido)
	distributions := protected.Group("/distributions")
	distributionHandler := NewDistributionHandler(deps.DistributeUC)
	distributions.Post("/", RequireRole(entity.RoleAdmin), distributionHandler.Distribute)

	// Sales (protegido; vender lo puede hacer cualquier rol autenticado)
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.CreateSale, deps.ListSales, deps.ReportUC)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/report",
		RequireModule(entity.ModuleReports, deps.Modules),
		saleHandler.DownloadReport)
	salesGroup.Get("/:id", saleHandler.GetByID)

	// Stats (protegido)
	stats := protected.Group("/stats")
	statsHandler := NewStatsHandler(deps.StatsUC)
	stats.Get("/sales", statsHandler.GetSalesStats)
	stats.Get("/inventory", statsHandler.GetInventoryStats)

	// Dashboard (protegido)
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", dashboardHandler.GetSummary)

	// WebSocket de notificaciones en vivo. Los navegadores no mandan headers
	// en el handshake, así que el token viaja como query param.
	app.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return c.SendStatus(fiber.StatusUpgradeRequired)
		}
		_, companyID, _, err := pkgjwt.Parse(deps.JWTSecret, c.Query("token"))
		if err != nil {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		c.Locals(LocalCompanyID, companyID)
		return c.Next()
	})
	app.Get("/ws", websocket.New(func(conn *websocket.Conn) {
		companyID, _ := conn.Locals(LocalCompanyID).(string)
		deps.Hub.ServeClient(conn, companyID)
	}))
}
