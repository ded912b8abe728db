package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jhoicas/Taller-api/internal/application/billing"
	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/usecase"
	"github.com/jhoicas/Taller-api/internal/application/workshop"
	"github.com/jhoicas/Taller-api/pkg/jwt"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ClientUC      *usecase.ClientUseCase
	VehicleUC     *usecase.VehicleUseCase
	TechnicianUC  *usecase.TechnicianUseCase
	CatalogUC     *usecase.CatalogUseCase
	SettingsUC    *usecase.SettingsUseCase
	Interventions *workshop.InterventionService
	Orders        *workshop.OrderService
	InvoiceUC     *billing.InvoiceUseCase
	PrintUC       *billing.PrintUseCase
	JWTSecret     string
	Logger        *logger.Logger
}

// Router registra las rutas de la API. Todas bajo /api requieren Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	adminOnly := RequireRole(jwt.RoleAdmin)
	byID := ValidID()

	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Clients
	clients := api.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC, log)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", byID, clientHandler.Detail)
	clients.Put("/:id", byID, clientHandler.Update)
	clients.Delete("/:id", adminOnly, byID, clientHandler.Delete)

	// Vehicles
	vehicles := api.Group("/vehicles")
	vehicleHandler := NewVehicleHandler(deps.VehicleUC, log)
	vehicles.Post("/", vehicleHandler.Create)
	vehicles.Get("/", vehicleHandler.List)
	vehicles.Get("/:id", byID, vehicleHandler.GetByID)
	vehicles.Put("/:id", byID, vehicleHandler.Update)
	vehicles.Delete("/:id", adminOnly, byID, vehicleHandler.Delete)

	// Technicians
	technicians := api.Group("/technicians")
	technicianHandler := NewTechnicianHandler(deps.TechnicianUC, log)
	technicians.Post("/", technicianHandler.Create)
	technicians.Get("/", technicianHandler.List)
	technicians.Get("/:id", byID, technicianHandler.GetByID)
	technicians.Put("/:id", byID, technicianHandler.Update)
	technicians.Delete("/:id", adminOnly, byID, technicianHandler.Delete)

	// Catalog (selectores de líneas)
	catalog := api.Group("/catalog")
	catalogHandler := NewCatalogHandler(deps.CatalogUC, log)
	catalog.Get("/categories", catalogHandler.Categories)
	catalog.Get("/articles", catalogHandler.Articles)
	catalog.Get("/articles/search", catalogHandler.Search)
	catalog.Get("/offers", catalogHandler.Offers)
	catalog.Get("/offers/:id/articles", catalogHandler.OfferArticles)
	catalog.Post("/selection", catalogHandler.Preview)

	// Interventions y pedidos
	interventions := api.Group("/interventions")
	interventionHandler := NewInterventionHandler(deps.Interventions, deps.Orders, log)
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.PrintUC, log)
	interventions.Post("/", interventionHandler.Create)
	interventions.Get("/", interventionHandler.List)
	interventions.Get("/calendar", interventionHandler.Calendar)
	interventions.Get("/:id", byID, interventionHandler.Get)
	interventions.Put("/:id", byID, interventionHandler.Update)
	interventions.Delete("/:id", adminOnly, byID, interventionHandler.Delete)
	interventions.Post("/:id/status", byID, interventionHandler.ChangeStatus)
	interventions.Post("/:id/technician", byID, interventionHandler.AssignTechnician)
	interventions.Post("/:id/order", byID, interventionHandler.CreateOrder)
	interventions.Post("/:id/invoice", byID, invoiceHandler.FromIntervention)

	orders := api.Group("/orders")
	orders.Get("/:id", byID, interventionHandler.GetOrder)
	orders.Post("/:id/invoice", byID, invoiceHandler.FromOrder)

	// Invoices
	invoices := api.Group("/invoices")
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", byID, invoiceHandler.GetByID)
	invoices.Get("/:id/print", byID, invoiceHandler.Print)
	invoices.Post("/:id/payment", byID, invoiceHandler.Pay)

	// Settings
	settings := api.Group("/settings")
	settingsHandler := NewSettingsHandler(deps.SettingsUC, log)
	settings.Get("/", settingsHandler.Get)
	settings.Put("/", adminOnly, settingsHandler.Save)
}

// ValidID responde 404 cuando el :id de la ruta no es un UUID: ese recurso no puede existir.
func ValidID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if uuid.Validate(c.Params("id")) != nil {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
		}
		return c.Next()
	}
}
