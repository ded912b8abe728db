package entity

import "github.com/shopspring/decimal"

// LineItem línea valorizada (artículo u oferta) de una intervención, pedido o factura.
// LineTotal = Quantity × UnitPrice × (1 − DiscountPct/100), redondeado a 2 decimales.
type LineItem struct {
	ID          string
	ArticleID   string // vacío si la línea no proviene del catálogo de artículos
	OfferID     string // oferta de la que proviene la línea (desglose), si aplica
	Reference   string
	Designation string
	Quantity    int
	UnitPrice   decimal.Decimal // HT
	DiscountPct decimal.Decimal // 0..100
	LineTotal   decimal.Decimal
}

// Key identifica la línea dentro de una selección: por artículo, o por oferta si no hay artículo.
// Las líneas libres (sin artículo ni oferta) devuelven "" y nunca se fusionan.
func (l LineItem) Key() string {
	switch {
	case l.ArticleID != "":
		return "a:" + l.ArticleID
	case l.OfferID != "":
		return "o:" + l.OfferID
	}
	return ""
}

// CloneLines copia las líneas sin sus IDs (para un nuevo propietario).
func CloneLines(in []LineItem) []LineItem {
	out := make([]LineItem, len(in))
	for i, l := range in {
		l.ID = ""
		out[i] = l
	}
	return out
}
