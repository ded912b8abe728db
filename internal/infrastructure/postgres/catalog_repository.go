package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo lectura del catálogo (categorías, artículos, ofertas).
type CatalogRepo struct {
	q Querier
}

// NewCatalogRepository construye el adaptador.
func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

const articleColumns = `a.id, COALESCE(a.category_id::text, ''), a.reference, a.designation, a.sale_price_ht`

func (r *CatalogRepo) queryArticles(ctx context.Context, query string, args ...any) ([]*entity.Article, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Article
	for rows.Next() {
		var a entity.Article
		if err := rows.Scan(&a.ID, &a.CategoryID, &a.Reference, &a.Designation, &a.SalePriceHT); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// ListCategories lista las categorías por nombre.
func (r *CatalogRepo) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, with_article FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.WithArticle); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// ListArticles artículos de la categoría (todas si categoryID está vacío).
func (r *CatalogRepo) ListArticles(ctx context.Context, categoryID string) ([]*entity.Article, error) {
	if categoryID == "" {
		return r.queryArticles(ctx, `SELECT `+articleColumns+` FROM articles a ORDER BY a.designation`)
	}
	if !isUUID(categoryID) {
		return nil, nil
	}
	return r.queryArticles(ctx,
		`SELECT `+articleColumns+` FROM articles a WHERE a.category_id = $1 ORDER BY a.designation`, categoryID)
}

// SearchArticles busca por referencia o designación.
func (r *CatalogRepo) SearchArticles(ctx context.Context, term string, limit int) ([]*entity.Article, error) {
	return r.queryArticles(ctx, `
		SELECT `+articleColumns+` FROM articles a
		WHERE a.reference ILIKE $1 OR a.designation ILIKE $1
		ORDER BY a.reference
		LIMIT $2`, likePattern(term), limit)
}

// GetArticlesByIDs artículos con los IDs dados (los inexistentes se omiten).
func (r *CatalogRepo) GetArticlesByIDs(ctx context.Context, ids []string) ([]*entity.Article, error) {
	ids = onlyUUIDs(ids)
	if len(ids) == 0 {
		return nil, nil
	}
	return r.queryArticles(ctx, `SELECT `+articleColumns+` FROM articles a WHERE a.id = ANY($1)`, ids)
}

const offerColumns = `id, COALESCE(category_id::text, ''), code, name, price, discount_pct`

func scanOffer(row pgx.Row) (*entity.Offer, error) {
	var o entity.Offer
	if err := row.Scan(&o.ID, &o.CategoryID, &o.Code, &o.Name, &o.Price, &o.DiscountPct); err != nil {
		return nil, err
	}
	return &o, nil
}

// ListOffers ofertas de la categoría (todas si categoryID está vacío).
func (r *CatalogRepo) ListOffers(ctx context.Context, categoryID string) ([]*entity.Offer, error) {
	query, args := `SELECT `+offerColumns+` FROM offers ORDER BY name`, []any{}
	if categoryID != "" {
		if !isUUID(categoryID) {
			return nil, nil
		}
		query, args = `SELECT `+offerColumns+` FROM offers WHERE category_id = $1 ORDER BY name`, []any{categoryID}
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list offers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Offer
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan offer: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// GetOffer obtiene una oferta por ID.
func (r *CatalogRepo) GetOffer(ctx context.Context, id string) (*entity.Offer, error) {
	o, err := scanOffer(r.q.QueryRow(ctx, `SELECT `+offerColumns+` FROM offers WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get offer: %w", err)
	}
	return o, nil
}

// ListOfferArticles artículos de la oferta con su descuento específico (NULL = el de la oferta).
func (r *CatalogRepo) ListOfferArticles(ctx context.Context, offerID string) ([]*entity.OfferArticle, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+articleColumns+`, oa.offer_id, oa.specific_discount_pct
		FROM offer_articles oa
		JOIN articles a ON a.id = oa.article_id
		WHERE oa.offer_id = $1
		ORDER BY oa.position`, offerID)
	if err != nil {
		return nil, fmt.Errorf("list offer articles: %w", err)
	}
	defer rows.Close()
	var list []*entity.OfferArticle
	for rows.Next() {
		var oa entity.OfferArticle
		if err := rows.Scan(&oa.ID, &oa.CategoryID, &oa.Reference, &oa.Designation, &oa.SalePriceHT,
			&oa.OfferID, &oa.SpecificDiscountPct); err != nil {
			return nil, fmt.Errorf("scan offer article: %w", err)
		}
		list = append(list, &oa)
	}
	return list, rows.Err()
}
