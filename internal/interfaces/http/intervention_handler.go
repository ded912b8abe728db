package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/workshop"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

// InterventionHandler intervenciones, flujo de estados y pedidos derivados.
type InterventionHandler struct {
	svc    *workshop.InterventionService
	orders *workshop.OrderService
	errs   errorWriter
}

// NewInterventionHandler construye el handler.
func NewInterventionHandler(svc *workshop.InterventionService, orders *workshop.OrderService, log *logger.Logger) *InterventionHandler {
	return &InterventionHandler{svc: svc, orders: orders, errs: errorWriter{log: log}}
}

// Create godoc
// @Summary      Crear intervención
// @Description  Las ofertas de offer_ids se desglosan en artículos y se fusionan con items.
// @Tags         interventions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InterventionRequest  true  "Datos de la intervención"
// @Success      201   {object}  dto.InterventionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/interventions [post]
func (h *InterventionHandler) Create(c *fiber.Ctx) error {
	var in dto.InterventionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.svc.Create(c.UserContext(), actor(c), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar intervenciones
// @Description  Página, total de páginas y conteo por estado.
// @Tags         interventions
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "En attente | En cours | Terminée | Facturée | Annulée"
// @Param        search  query  string  false  "Matrícula, cliente o descripción"
// @Param        page    query  int     false  "Página (desde 1)"
// @Success      200  {object}  dto.InterventionListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/interventions [get]
func (h *InterventionHandler) List(c *fiber.Ctx) error {
	out, err := h.svc.List(c.UserContext(), c.Query("status"), c.Query("search"), c.QueryInt("page", 1))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// Calendar godoc
// @Summary      Calendario de intervenciones
// @Description  Agrupadas por fecha programada.
// @Tags         interventions
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Estado"
// @Param        search  query  string  false  "Término"
// @Success      200  {array}  dto.CalendarDay
// @Router       /api/interventions/calendar [get]
func (h *InterventionHandler) Calendar(c *fiber.Ctx) error {
	out, err := h.svc.Calendar(c.UserContext(), c.Query("status"), c.Query("search"))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener intervención
// @Tags         interventions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la intervención"
// @Success      200  {object}  dto.InterventionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/interventions/{id} [get]
func (h *InterventionHandler) Get(c *fiber.Ctx) error {
	out, err := h.svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar intervención
// @Description  Reemplaza campos y líneas. No permitido en estados terminales.
// @Tags         interventions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la intervención"
// @Param        body  body  dto.InterventionRequest  true  "Datos de la intervención"
// @Success      200   {object}  dto.InterventionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      412   {object}  dto.ErrorResponse
// @Router       /api/interventions/{id} [put]
func (h *InterventionHandler) Update(c *fiber.Ctx) error {
	var in dto.InterventionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.svc.Update(c.UserContext(), actor(c), c.Params("id"), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// ChangeStatus godoc
// @Summary      Cambiar estado
// @Tags         interventions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "ID de la intervención"
// @Param        body  body  dto.StatusRequest  true  "Estado destino"
// @Success      200   {object}  dto.InterventionResponse
// @Failure      412   {object}  dto.ErrorResponse
// @Router       /api/interventions/{id}/status [post]
func (h *InterventionHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.StatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.svc.ChangeStatus(c.UserContext(), actor(c), c.Params("id"), in.Status)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// AssignTechnician godoc
// @Summary      Asignar técnico
// @Description  technician_id vacío desasigna. No cambia el estado.
// @Tags         interventions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID de la intervención"
// @Param        body  body  dto.AssignTechnicianRequest  true  "Técnico"
// @Success      200   {object}  dto.InterventionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/interventions/{id}/technician [post]
func (h *InterventionHandler) AssignTechnician(c *fiber.Ctx) error {
	var in dto.AssignTechnicianRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.svc.AssignTechnician(c.UserContext(), actor(c), c.Params("id"), in.TechnicianID)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar intervención (admin)
// @Description  Solo En attente o Annulée.
// @Tags         interventions
// @Security     Bearer
// @Param        id   path  string  true  "ID de la intervención"
// @Success      204
// @Failure      412  {object}  dto.ErrorResponse
// @Router       /api/interventions/{id} [delete]
func (h *InterventionHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.UserContext(), actor(c), c.Params("id")); err != nil {
		return h.errs.write(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateOrder godoc
// @Summary      Derivar pedido
// @Description  Copia las líneas de la intervención. Un segundo pedido responde 409.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la intervención"
// @Success      201  {object}  dto.OrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      412  {object}  dto.ErrorResponse
// @Router       /api/interventions/{id}/order [post]
func (h *InterventionHandler) CreateOrder(c *fiber.Ctx) error {
	out, err := h.orders.CreateFromIntervention(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetOrder godoc
// @Summary      Obtener pedido
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *InterventionHandler) GetOrder(c *fiber.Ctx) error {
	out, err := h.orders.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}
