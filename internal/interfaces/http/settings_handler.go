package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/usecase"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

// SettingsHandler perfil de la empresa (una sola fila).
type SettingsHandler struct {
	uc   *usecase.SettingsUseCase
	errs errorWriter
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(uc *usecase.SettingsUseCase, log *logger.Logger) *SettingsHandler {
	return &SettingsHandler{uc: uc, errs: errorWriter{log: log}}
}

// Get godoc
// @Summary      Perfil de la empresa
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SettingsResponse
// @Router       /api/settings [get]
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext())
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// Save godoc
// @Summary      Guardar perfil de la empresa (admin)
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SettingsRequest  true  "Perfil"
// @Success      200   {object}  dto.SettingsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/settings [put]
func (h *SettingsHandler) Save(c *fiber.Ctx) error {
	var in dto.SettingsRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Save(c.UserContext(), actor(c), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}
