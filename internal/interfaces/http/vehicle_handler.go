package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/usecase"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

// VehicleHandler maneja las peticiones HTTP de vehículos (protegido).
type VehicleHandler struct {
	uc   *usecase.VehicleUseCase
	errs errorWriter
}

// NewVehicleHandler construye el handler.
func NewVehicleHandler(uc *usecase.VehicleUseCase, log *logger.Logger) *VehicleHandler {
	return &VehicleHandler{uc: uc, errs: errorWriter{log: log}}
}

// Create godoc
// @Summary      Registrar vehículo
// @Tags         vehicles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VehicleRequest  true  "Datos del vehículo"
// @Success      201   {object}  dto.VehicleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/vehicles [post]
func (h *VehicleHandler) Create(c *fiber.Ctx) error {
	var in dto.VehicleRequest
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
// @Summary      Listar vehículos
// @Tags         vehicles
// @Security     Bearer
// @Produce      json
// @Param        client_id  query  string  false  "Propietario"
// @Param        status     query  string  false  "actif | maintenance | inactif"
// @Param        search     query  string  false  "Matrícula, marca o modelo"
// @Success      200  {array}  dto.VehicleResponse
// @Router       /api/vehicles [get]
func (h *VehicleHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.List(c.UserContext(), c.Query("client_id"), c.Query("status"), c.Query("search"), page)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener vehículo por ID
// @Tags         vehicles
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del vehículo"
// @Success      200  {object}  dto.VehicleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/vehicles/{id} [get]
func (h *VehicleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar vehículo
// @Tags         vehicles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID del vehículo"
// @Param        body  body  dto.VehicleRequest  true  "Datos del vehículo"
// @Success      200   {object}  dto.VehicleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/vehicles/{id} [put]
func (h *VehicleHandler) Update(c *fiber.Ctx) error {
	var in dto.VehicleRequest
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
// @Summary      Eliminar vehículo (admin)
// @Tags         vehicles
// @Security     Bearer
// @Param        id   path  string  true  "ID del vehículo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/vehicles/{id} [delete]
func (h *VehicleHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), actor(c), c.Params("id")); err != nil {
		return h.errs.write(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
