package pricing

import (
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Selection conjunto ordenado de líneas indexado por artículo.
// Agregar un artículo ya presente incrementa su cantidad en lugar de duplicar la fila.
type Selection struct {
	lines []entity.LineItem
	index map[string]int
}

// NewSelection parte de las líneas existentes (p. ej. las ya guardadas en la intervención).
func NewSelection(existing ...entity.LineItem) *Selection {
	s := &Selection{index: make(map[string]int, len(existing))}
	for _, l := range existing {
		s.put(l)
	}
	return s
}

// put agrega la línea o suma su cantidad a la existente con la misma clave.
func (s *Selection) put(l entity.LineItem) {
	key := l.Key()
	if i, ok := s.index[key]; ok && key != "" {
		s.lines[i].Quantity += l.Quantity
		Apply(&s.lines[i])
		return
	}
	Apply(&l)
	if key != "" {
		s.index[key] = len(s.lines)
	}
	s.lines = append(s.lines, l)
}

// Add agrega una línea ya valorizada (precio y descuento provistos por el cliente).
func (s *Selection) Add(l entity.LineItem) {
	if l.Quantity < 1 {
		l.Quantity = 1
	}
	s.put(l)
}

// AddArticle agrega una unidad del artículo al precio de catálogo, sin descuento.
func (s *Selection) AddArticle(a entity.Article) {
	s.put(entity.LineItem{
		ArticleID:   a.ID,
		Reference:   a.Reference,
		Designation: a.Designation,
		Quantity:    1,
		UnitPrice:   a.SalePriceHT,
		DiscountPct: decimal.Zero,
	})
}

// AddOffer desglosa la oferta en sus artículos. Cada artículo hereda su descuento
// específico o, en su defecto, el de la oferta.
func (s *Selection) AddOffer(o entity.Offer, components []*entity.OfferArticle) {
	for _, c := range components {
		discount := o.DiscountPct
		if c.SpecificDiscountPct != nil {
			discount = *c.SpecificDiscountPct
		}
		s.put(entity.LineItem{
			ArticleID:   c.ID,
			OfferID:     o.ID,
			Reference:   c.Reference,
			Designation: c.Designation,
			Quantity:    1,
			UnitPrice:   c.SalePriceHT,
			DiscountPct: ClampDiscount(discount),
		})
	}
}

// Lines devuelve una copia de las líneas en orden de inserción.
func (s *Selection) Lines() []entity.LineItem {
	out := make([]entity.LineItem, len(s.lines))
	copy(out, s.lines)
	return out
}

// Len número de filas distintas.
func (s *Selection) Len() int { return len(s.lines) }
