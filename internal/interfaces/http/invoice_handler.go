package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Taller-api/internal/application/billing"
	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

// InvoiceHandler facturación: creación, consulta, impresión y pago.
type InvoiceHandler struct {
	uc      *billing.InvoiceUseCase
	printer *billing.PrintUseCase
	errs    errorWriter
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *billing.InvoiceUseCase, printer *billing.PrintUseCase, log *logger.Logger) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, printer: printer, errs: errorWriter{log: log}}
}

// parseCreate acepta cuerpo vacío (todos los campos son opcionales).
func parseCreate(c *fiber.Ctx) (dto.CreateInvoiceRequest, bool) {
	var in dto.CreateInvoiceRequest
	if len(c.Body()) == 0 {
		return in, true
	}
	if err := c.BodyParser(&in); err != nil {
		return in, false
	}
	return in, true
}

// FromIntervention godoc
// @Summary      Facturar intervención
// @Description  Solo intervenciones Terminée. Pasa la intervención a Facturée.
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true   "ID de la intervención"
// @Param        body  body  dto.CreateInvoiceRequest  false  "TVA, descuento y fecha"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      412   {object}  dto.ErrorResponse
// @Router       /api/interventions/{id}/invoice [post]
func (h *InvoiceHandler) FromIntervention(c *fiber.Ctx) error {
	in, ok := parseCreate(c)
	if !ok {
		return invalidBody(c)
	}
	out, err := h.uc.FromIntervention(c.UserContext(), actor(c), c.Params("id"), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// FromOrder godoc
// @Summary      Facturar pedido
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true   "ID del pedido"
// @Param        body  body  dto.CreateInvoiceRequest  false  "TVA, descuento y fecha"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      412   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/invoice [post]
func (h *InvoiceHandler) FromOrder(c *fiber.Ctx) error {
	in, ok := parseCreate(c)
	if !ok {
		return invalidBody(c)
	}
	out, err := h.uc.FromOrder(c.UserContext(), actor(c), c.Params("id"), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar facturas
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        client_id       query  string  false  "Cliente"
// @Param        payment_status  query  string  false  "Payée | Non payée"
// @Param        limit           query  int     false  "Máximo por página"
// @Param        offset          query  int     false  "Desplazamiento"
// @Success      200  {array}  dto.InvoiceSummary
// @Router       /api/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.List(c.UserContext(), c.Query("client_id"), c.Query("payment_status"), page)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener factura
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// Print godoc
// @Summary      Vista imprimible
// @Description  Empresa, cliente, líneas, totales formateados y total en letras.
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {object}  dto.InvoicePrintView
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/print [get]
func (h *InvoiceHandler) Print(c *fiber.Ctx) error {
	out, err := h.printer.Print(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// Pay godoc
// @Summary      Registrar pago
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID de la factura"
// @Param        body  body  dto.PaymentRequest  true  "Modo y fecha de pago"
// @Success      200   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/payment [post]
func (h *InvoiceHandler) Pay(c *fiber.Ctx) error {
	var in dto.PaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Pay(c.UserContext(), actor(c), c.Params("id"), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}
