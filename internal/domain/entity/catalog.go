package entity

import "github.com/shopspring/decimal"

// Category agrupa artículos y ofertas. WithArticle indica si la categoría muestra artículos sueltos.
type Category struct {
	ID          string
	Name        string
	WithArticle bool
}

// Article pieza o servicio vendible.
type Article struct {
	ID          string
	CategoryID  string
	Reference   string
	Designation string
	SalePriceHT decimal.Decimal
}

// Offer paquete (forfait) de artículos vendido como una unidad seleccionable.
type Offer struct {
	ID          string
	CategoryID  string
	Code        string
	Name        string
	Price       decimal.Decimal
	DiscountPct decimal.Decimal // descuento por defecto de los artículos del paquete
}

// OfferArticle artículo componente de una oferta. SpecificDiscountPct nil = usar el de la oferta.
type OfferArticle struct {
	Article
	OfferID             string
	SpecificDiscountPct *decimal.Decimal
}
