package memory

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.CatalogRepository = catalogRepo{}

// SeedCatalog carga categorías, artículos, ofertas y composición de ofertas.
func (s *Store) SeedCatalog(categories []entity.Category, articles []entity.Article, offers []entity.Offer, offerArticles []entity.OfferArticle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = append(s.categories, categories...)
	s.articles = append(s.articles, articles...)
	s.offers = append(s.offers, offers...)
	s.offerArticles = append(s.offerArticles, offerArticles...)
}

type catalogRepo struct{ s *Store }

// Catalog repositorio del catálogo.
func (s *Store) Catalog() repository.CatalogRepository { return catalogRepo{s} }

func (r catalogRepo) ListCategories(_ context.Context) ([]*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		c := c
		out = append(out, &c)
	}
	return out, nil
}

func (r catalogRepo) ListArticles(_ context.Context, categoryID string) ([]*entity.Article, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Article
	for _, a := range r.s.articles {
		a := a
		if categoryID == "" || a.CategoryID == categoryID {
			out = append(out, &a)
		}
	}
	return out, nil
}

func (r catalogRepo) SearchArticles(_ context.Context, term string, limit int) ([]*entity.Article, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Article
	for _, a := range r.s.articles {
		a := a
		if contains(a.Reference, term) || contains(a.Designation, term) {
			out = append(out, &a)
		}
	}
	return page(out, limit, 0), nil
}

func (r catalogRepo) GetArticlesByIDs(_ context.Context, ids []string) ([]*entity.Article, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []*entity.Article
	for _, a := range r.s.articles {
		a := a
		if want[a.ID] {
			out = append(out, &a)
		}
	}
	return out, nil
}

func (r catalogRepo) ListOffers(_ context.Context, categoryID string) ([]*entity.Offer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Offer
	for _, o := range r.s.offers {
		o := o
		if categoryID == "" || o.CategoryID == categoryID {
			out = append(out, &o)
		}
	}
	return out, nil
}

func (r catalogRepo) GetOffer(_ context.Context, id string) (*entity.Offer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.offers {
		if o.ID == id {
			o := o
			return &o, nil
		}
	}
	return nil, nil
}

func (r catalogRepo) ListOfferArticles(_ context.Context, offerID string) ([]*entity.OfferArticle, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.OfferArticle
	for _, oa := range r.s.offerArticles {
		oa := oa
		if oa.OfferID == offerID {
			out = append(out, &oa)
		}
	}
	return out, nil
}
