package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/pricing"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// SearchLimit máximo de artículos devueltos por la búsqueda.
const SearchLimit = 50

// CatalogUseCase consultas del catálogo y desglose de selecciones.
type CatalogUseCase struct {
	repo repository.CatalogRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(repo repository.CatalogRepository) *CatalogUseCase {
	return &CatalogUseCase{repo: repo}
}

func articleToResponse(a *entity.Article) dto.ArticleResponse {
	return dto.ArticleResponse{
		ID:          a.ID,
		CategoryID:  a.CategoryID,
		Reference:   a.Reference,
		Designation: a.Designation,
		SalePriceHT: a.SalePriceHT,
	}
}

func articlesToResponse(list []*entity.Article) []dto.ArticleResponse {
	out := make([]dto.ArticleResponse, 0, len(list))
	for _, a := range list {
		out = append(out, articleToResponse(a))
	}
	return out
}

// Categories lista las categorías.
func (uc *CatalogUseCase) Categories(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.CategoryResponse{ID: c.ID, Name: c.Name, WithArticle: c.WithArticle})
	}
	return out, nil
}

// Articles artículos de una categoría (todas si categoryID está vacío).
func (uc *CatalogUseCase) Articles(ctx context.Context, categoryID string) ([]dto.ArticleResponse, error) {
	list, err := uc.repo.ListArticles(ctx, strings.TrimSpace(categoryID))
	if err != nil {
		return nil, err
	}
	return articlesToResponse(list), nil
}

// Search busca artículos por referencia o designación. Término vacío = domain.ErrInvalidInput.
func (uc *CatalogUseCase) Search(ctx context.Context, term string) ([]dto.ArticleResponse, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, fmt.Errorf("%w: terme de recherche vide", domain.ErrInvalidInput)
	}
	list, err := uc.repo.SearchArticles(ctx, term, SearchLimit)
	if err != nil {
		return nil, err
	}
	return articlesToResponse(list), nil
}

// Offers ofertas de una categoría (todas si categoryID está vacío).
func (uc *CatalogUseCase) Offers(ctx context.Context, categoryID string) ([]dto.OfferResponse, error) {
	list, err := uc.repo.ListOffers(ctx, strings.TrimSpace(categoryID))
	if err != nil {
		return nil, err
	}
	out := make([]dto.OfferResponse, 0, len(list))
	for _, o := range list {
		out = append(out, dto.OfferResponse{
			ID:          o.ID,
			CategoryID:  o.CategoryID,
			Code:        o.Code,
			Name:        o.Name,
			Price:       o.Price,
			DiscountPct: o.DiscountPct,
		})
	}
	return out, nil
}

// OfferArticles artículos que componen la oferta.
func (uc *CatalogUseCase) OfferArticles(ctx context.Context, offerID string) ([]dto.ArticleResponse, error) {
	offer, err := uc.repo.GetOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if offer == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.repo.ListOfferArticles(ctx, offerID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ArticleResponse, 0, len(list))
	for _, oa := range list {
		a := articleToResponse(&oa.Article)
		a.SpecificDiscountPct = oa.SpecificDiscountPct
		out = append(out, a)
	}
	return out, nil
}

// Expand agrega a base los artículos y las ofertas indicadas (desglosadas en sus artículos),
// fusionando por artículo. base se valida antes de fusionar.
func (uc *CatalogUseCase) Expand(ctx context.Context, base []entity.LineItem, articleIDs, offerIDs []string) ([]entity.LineItem, error) {
	if err := pricing.ValidateLines(base); err != nil {
		return nil, err
	}
	if err := uc.checkReferences(ctx, base); err != nil {
		return nil, err
	}
	sel := pricing.NewSelection()
	for _, l := range base {
		sel.Add(l)
	}

	if len(articleIDs) > 0 {
		articles, err := uc.repo.GetArticlesByIDs(ctx, articleIDs)
		if err != nil {
			return nil, err
		}
		byID := make(map[string]*entity.Article, len(articles))
		for _, a := range articles {
			byID[a.ID] = a
		}
		v := domain.Violations{}
		for i, id := range articleIDs {
			a, ok := byID[id]
			if !ok {
				v.Add(fmt.Sprintf("article_ids[%d]", i), "Article introuvable")
				continue
			}
			sel.AddArticle(*a)
		}
		if err := v.Err(); err != nil {
			return nil, err
		}
	}

	for i, id := range offerIDs {
		offer, err := uc.repo.GetOffer(ctx, id)
		if err != nil {
			return nil, err
		}
		if offer == nil {
			return nil, &domain.ValidationError{Fields: map[string]string{
				fmt.Sprintf("offer_ids[%d]", i): "Offre introuvable",
			}}
		}
		components, err := uc.repo.ListOfferArticles(ctx, id)
		if err != nil {
			return nil, err
		}
		sel.AddOffer(*offer, components)
	}
	return sel.Lines(), nil
}

// checkReferences verifica que los artículos y ofertas citados por las líneas existan.
func (uc *CatalogUseCase) checkReferences(ctx context.Context, lines []entity.LineItem) error {
	var ids []string
	for _, l := range lines {
		if l.ArticleID != "" {
			ids = append(ids, l.ArticleID)
		}
	}
	known := map[string]bool{}
	if len(ids) > 0 {
		articles, err := uc.repo.GetArticlesByIDs(ctx, ids)
		if err != nil {
			return err
		}
		for _, a := range articles {
			known[a.ID] = true
		}
	}
	offers := map[string]bool{}
	v := domain.Violations{}
	for i, l := range lines {
		if l.ArticleID != "" && !known[l.ArticleID] {
			v.Add(fmt.Sprintf("items[%d].article_id", i), "Article introuvable")
		}
		if l.OfferID == "" {
			continue
		}
		found, ok := offers[l.OfferID]
		if !ok {
			offer, err := uc.repo.GetOffer(ctx, l.OfferID)
			if err != nil {
				return err
			}
			found = offer != nil
			offers[l.OfferID] = found
		}
		if !found {
			v.Add(fmt.Sprintf("items[%d].offer_id", i), "Offre introuvable")
		}
	}
	return v.Err()
}

// Preview desglose sin persistir (selector de líneas del cliente).
func (uc *CatalogUseCase) Preview(ctx context.Context, in dto.SelectionRequest) (*dto.SelectionResponse, error) {
	lines, err := uc.Expand(ctx, LinesFromRequest(in.Items), in.ArticleIDs, in.OfferIDs)
	if err != nil {
		return nil, err
	}
	return &dto.SelectionResponse{Items: LineResponses(lines), Subtotal: pricing.Subtotal(lines)}, nil
}
