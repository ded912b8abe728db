package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/usecase"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

// TechnicianHandler maneja las peticiones HTTP de técnicos (protegido).
type TechnicianHandler struct {
	uc   *usecase.TechnicianUseCase
	errs errorWriter
}

// NewTechnicianHandler construye el handler.
func NewTechnicianHandler(uc *usecase.TechnicianUseCase, log *logger.Logger) *TechnicianHandler {
	return &TechnicianHandler{uc: uc, errs: errorWriter{log: log}}
}

// Create godoc
// @Summary      Registrar técnico
// @Tags         technicians
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TechnicianRequest  true  "Datos del técnico"
// @Success      201   {object}  dto.TechnicianResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/technicians [post]
func (h *TechnicianHandler) Create(c *fiber.Ctx) error {
	var in dto.TechnicianRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), actor(c), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar técnicos
// @Tags         technicians
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.TechnicianResponse
// @Router       /api/technicians [get]
func (h *TechnicianHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener técnico por ID
// @Tags         technicians
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del técnico"
// @Success      200  {object}  dto.TechnicianResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/technicians/{id} [get]
func (h *TechnicianHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar técnico
// @Tags         technicians
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del técnico"
// @Param        body  body  dto.TechnicianRequest  true  "Datos del técnico"
// @Success      200   {object}  dto.TechnicianResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/technicians/{id} [put]
func (h *TechnicianHandler) Update(c *fiber.Ctx) error {
	var in dto.TechnicianRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), actor(c), c.Params("id"), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar técnico (admin)
// @Tags         technicians
// @Security     Bearer
// @Param        id   path  string  true  "ID del técnico"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/technicians/{id} [delete]
func (h *TechnicianHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), actor(c), c.Params("id")); err != nil {
		return h.errs.write(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
