package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/memimo/crm-api/internal/application/analytics"
	"github.com/memimo/crm-api/internal/application/auth"
	"github.com/memimo/crm-api/internal/application/campaign"
	"github.com/memimo/crm-api/internal/application/reports"
	"github.com/memimo/crm-api/internal/application/sale"
	"github.com/memimo/crm-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Sessions    *auth.SessionService
	UserUC      *usecase.UserAdminUseCase
	CustomerUC  *usecase.CustomerUseCase
	ProductUC   *usecase.ProductUseCase
	SaleUC      *sale.UseCase
	CampaignUC  *campaign.UseCase
	Dispatcher  *campaign.Dispatcher
	DashboardUC *analytics.DashboardUseCase
	ReportUC    *reports.UseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (login público, el resto valida sesión)
	authHandler := NewAuthHandler(deps.Sessions)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren sesión vigente)
	protected := api.Group("/", SessionMiddleware(deps.Sessions))

	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/me", authHandler.Me)

	// Clientes (protegido)
	customers := protected.Group("/clientes")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	// Productos y catálogo (protegido)
	products := protected.Group("/productos")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/categorias", productHandler.Categories)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Compras (protegido)
	sales := protected.Group("/compras")
	saleHandler := NewSaleHandler(deps.SaleUC)
	sales.Post("/", saleHandler.Create)
	sales.Get("/:id", saleHandler.GetByID)
	customers.Get("/:id/compras", saleHandler.ListByCustomer)

	// Campañas (protegido)
	campaigns := protected.Group("/campanas")
	campaignHandler := NewCampaignHandler(deps.CampaignUC, deps.Dispatcher)
	campaigns.Get("/", campaignHandler.List)
	campaigns.Post("/enviar", campaignHandler.Dispatch)
	campaigns.Get("/:id", campaignHandler.GetByID)
	campaigns.Put("/:id", campaignHandler.Update)
	campaigns.Put("/:id/estado", campaignHandler.ChangeStatus)
	campaigns.Get("/:id/clientes", campaignHandler.Assignments)
	campaigns.Delete("/:id", campaignHandler.Delete)

	// Reportes (protegido)
	reportGroup := protected.Group("/reportes")
	reportHandler := NewReportHandler(deps.DashboardUC, deps.ReportUC)
	reportGroup.Get("/dashboard", reportHandler.Dashboard)
	reportGroup.Get("/ventas.pdf", reportHandler.SalesPDF)

	// Usuarios (solo administradores)
	users := protected.Group("/usuarios", RequireAdmin())
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Get("/roles", userHandler.Roles)
	users.Post("/", userHandler.Create)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Deactivate)
	users.Post("/:id/activar", userHandler.Activate)
}
