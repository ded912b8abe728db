package dto

import "github.com/shopspring/decimal"

// CreateInvoiceRequest body para POST /api/interventions/:id/invoice y /api/orders/:id/invoice.
// Sin tva_rate se usa la tasa configurada (BILLING_DEFAULT_TVA_RATE).
type CreateInvoiceRequest struct {
	TVARate        *decimal.Decimal `json:"tva_rate,omitempty"`
	DiscountAmount decimal.Decimal  `json:"discount_amount"`
	Date           string           `json:"date,omitempty" example:"2024-03-04"`
}

// PaymentRequest body para POST /api/invoices/:id/payment.
type PaymentRequest struct {
	PaymentMethod string `json:"payment_method" example:"Espèces"`
	PaymentDate   string `json:"payment_date,omitempty"`
}

// InvoiceResponse factura con detalle para GET /api/invoices/:id.
type InvoiceResponse struct {
	ID             string             `json:"id"`
	Number         string             `json:"number"`
	Date           string             `json:"date"`
	ClientID       string             `json:"client_id"`
	ClientName     string             `json:"client_name,omitempty"`
	InterventionID string             `json:"intervention_id,omitempty"`
	OrderID        string             `json:"order_id,omitempty"`
	Items          []LineItemResponse `json:"items"`
	SubtotalHT     decimal.Decimal    `json:"subtotal_ht"`
	TVARate        decimal.Decimal    `json:"tva_rate"`
	TVAAmount      decimal.Decimal    `json:"tva_amount"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	TotalTTC       decimal.Decimal    `json:"total_ttc"`
	PaymentStatus  string             `json:"payment_status"`
	PaymentMethod  string             `json:"payment_method,omitempty"`
	PaymentDate    string             `json:"payment_date,omitempty"`
}

// InvoiceSummary fila de listado.
type InvoiceSummary struct {
	ID            string          `json:"id"`
	Number        string          `json:"number"`
	Date          string          `json:"date"`
	ClientID      string          `json:"client_id"`
	TotalTTC      decimal.Decimal `json:"total_ttc"`
	PaymentStatus string          `json:"payment_status"`
}

// InvoicePrintView datos de la factura imprimible: importes formateados (fr-FR) y total en letras.
type InvoicePrintView struct {
	Company        SettingsResponse `json:"company"`
	ClientName     string           `json:"client_name"`
	ClientAddress  string           `json:"client_address,omitempty"`
	ClientPhone    string           `json:"client_phone,omitempty"`
	ClientEmail    string           `json:"client_email,omitempty"`
	Plate          string           `json:"plate,omitempty"`
	Vehicle        string           `json:"vehicle,omitempty"`
	Number         string           `json:"number"`
	Date           string           `json:"date"`
	Lines          []PrintLine      `json:"lines"`
	SubtotalHT     string           `json:"subtotal_ht"`
	TVARate        string           `json:"tva_rate"`
	TVAAmount      string           `json:"tva_amount"`
	ShowTVA        bool             `json:"show_tva"`
	DiscountAmount string           `json:"discount_amount"`
	TotalTTC       string           `json:"total_ttc"`
	AmountInWords  string           `json:"amount_in_words"`
	PaymentLabel   string           `json:"payment_label"` // Réglé | Non réglé
	PaymentMethod  string           `json:"payment_method,omitempty"`
}

// PrintLine línea de la factura impresa.
type PrintLine struct {
	Reference   string `json:"reference,omitempty"`
	Designation string `json:"designation"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	DiscountPct string `json:"discount_pct"`
	LineTotal   string `json:"line_total"`
}
