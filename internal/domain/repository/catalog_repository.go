package repository

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// CatalogRepository lectura del catálogo (categorías, artículos y ofertas).
// El catálogo se alimenta con cmd/seed_catalog; la API no lo modifica.
type CatalogRepository interface {
	ListCategories(ctx context.Context) ([]*entity.Category, error)
	ListArticles(ctx context.Context, categoryID string) ([]*entity.Article, error)
	// SearchArticles busca por referencia o designación (LIKE), como máximo limit filas.
	SearchArticles(ctx context.Context, term string, limit int) ([]*entity.Article, error)
	GetArticlesByIDs(ctx context.Context, ids []string) ([]*entity.Article, error)
	ListOffers(ctx context.Context, categoryID string) ([]*entity.Offer, error)
	GetOffer(ctx context.Context, id string) (*entity.Offer, error)
	ListOfferArticles(ctx context.Context, offerID string) ([]*entity.OfferArticle, error)
}
