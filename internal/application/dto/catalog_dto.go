package dto

import "github.com/shopspring/decimal"

// CategoryResponse categoría del catálogo.
type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	WithArticle bool   `json:"with_article"`
}

// ArticleResponse artículo tal como lo consumen los selectores de líneas.
type ArticleResponse struct {
	ID                  string           `json:"id"`
	CategoryID          string           `json:"category_id,omitempty"`
	Reference           string           `json:"reference"`
	Designation         string           `json:"designation"`
	SalePriceHT         decimal.Decimal  `json:"prix_vente_ht"`
	SpecificDiscountPct *decimal.Decimal `json:"remise_specifique,omitempty"` // solo en artículos de una oferta
}

// OfferResponse oferta (forfait).
type OfferResponse struct {
	ID          string          `json:"id"`
	CategoryID  string          `json:"category_id,omitempty"`
	Code        string          `json:"code"`
	Name        string          `json:"nom"`
	Price       decimal.Decimal `json:"prix"`
	DiscountPct decimal.Decimal `json:"remise"`
}

// ArticlesEnvelope {success, articles} o {success:false, message}.
type ArticlesEnvelope struct {
	Success  bool              `json:"success"`
	Articles []ArticleResponse `json:"articles,omitempty"`
	Message  string            `json:"message,omitempty"`
}

// OffersEnvelope {success, offres}.
type OffersEnvelope struct {
	Success bool            `json:"success"`
	Offers  []OfferResponse `json:"offres"`
	Message string          `json:"message,omitempty"`
}

// SelectionRequest agrega artículos y ofertas a un conjunto de líneas existente.
type SelectionRequest struct {
	Items      []LineItemRequest `json:"items,omitempty"`
	ArticleIDs []string          `json:"article_ids,omitempty"`
	OfferIDs   []string          `json:"offer_ids,omitempty"`
}

// SelectionResponse líneas resultantes con su subtotal.
type SelectionResponse struct {
	Items    []LineItemResponse `json:"items"`
	Subtotal decimal.Decimal    `json:"subtotal"`
}
