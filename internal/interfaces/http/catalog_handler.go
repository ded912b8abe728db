package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/usecase"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

// CatalogHandler endpoints del catálogo que alimentan los selectores de líneas.
// Responden con sobre {success, articles|offres}.
type CatalogHandler struct {
	uc   *usecase.CatalogUseCase
	errs errorWriter
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *usecase.CatalogUseCase, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{uc: uc, errs: errorWriter{log: log}}
}

// envelopeError responde {success:false, message} con el estado que corresponda al error.
func (h *CatalogHandler) envelopeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ArticlesEnvelope{Success: false, Message: "Veuillez saisir un terme de recherche"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ArticlesEnvelope{Success: false, Message: "Offre introuvable"})
	}
	h.errs.log.Error().Err(err).Str("path", c.Path()).Msg("catálogo")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ArticlesEnvelope{Success: false, Message: "Erreur lors du chargement du catalogue"})
}

// Categories godoc
// @Summary      Listar categorías
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CategoryResponse
// @Router       /api/catalog/categories [get]
func (h *CatalogHandler) Categories(c *fiber.Ctx) error {
	out, err := h.uc.Categories(c.UserContext())
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// Articles godoc
// @Summary      Artículos por categoría
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        category_id  query  string  false  "Categoría (todas si se omite)"
// @Success      200  {object}  dto.ArticlesEnvelope
// @Router       /api/catalog/articles [get]
func (h *CatalogHandler) Articles(c *fiber.Ctx) error {
	list, err := h.uc.Articles(c.UserContext(), c.Query("category_id"))
	if err != nil {
		return h.envelopeError(c, err)
	}
	return c.JSON(dto.ArticlesEnvelope{Success: true, Articles: list})
}

// Search godoc
// @Summary      Buscar artículos
// @Description  Por referencia o designación, máximo 50 resultados.
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        search  query  string  true  "Término"
// @Success      200  {object}  dto.ArticlesEnvelope
// @Failure      400  {object}  dto.ArticlesEnvelope
// @Router       /api/catalog/articles/search [get]
func (h *CatalogHandler) Search(c *fiber.Ctx) error {
	list, err := h.uc.Search(c.UserContext(), c.Query("search"))
	if err != nil {
		return h.envelopeError(c, err)
	}
	return c.JSON(dto.ArticlesEnvelope{Success: true, Articles: list})
}

// Offers godoc
// @Summary      Ofertas por categoría
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        category_id  query  string  false  "Categoría (todas si se omite)"
// @Success      200  {object}  dto.OffersEnvelope
// @Router       /api/catalog/offers [get]
func (h *CatalogHandler) Offers(c *fiber.Ctx) error {
	list, err := h.uc.Offers(c.UserContext(), c.Query("category_id"))
	if err != nil {
		return h.envelopeError(c, err)
	}
	return c.JSON(dto.OffersEnvelope{Success: true, Offers: list})
}

// OfferArticles godoc
// @Summary      Artículos de una oferta
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la oferta"
// @Success      200  {object}  dto.ArticlesEnvelope
// @Failure      404  {object}  dto.ArticlesEnvelope
// @Router       /api/catalog/offers/{id}/articles [get]
func (h *CatalogHandler) OfferArticles(c *fiber.Ctx) error {
	list, err := h.uc.OfferArticles(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.envelopeError(c, err)
	}
	return c.JSON(dto.ArticlesEnvelope{Success: true, Articles: list})
}

// Preview godoc
// @Summary      Desglosar selección
// @Description  Agrega artículos y ofertas a las líneas dadas sin persistir nada.
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SelectionRequest  true  "Líneas actuales, artículos y ofertas"
// @Success      200   {object}  dto.SelectionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/catalog/selection [post]
func (h *CatalogHandler) Preview(c *fiber.Ctx) error {
	var in dto.SelectionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Preview(c.UserContext(), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}
