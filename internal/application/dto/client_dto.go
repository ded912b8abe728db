package dto

import "github.com/shopspring/decimal"

// ClientRequest body para POST/PUT /api/clients.
// type: "particulier" o "societe".
type ClientRequest struct {
	Type               string `json:"type" example:"particulier"`
	FirstName          string `json:"first_name,omitempty"`
	LastName           string `json:"last_name,omitempty"`
	CompanyName        string `json:"company_name,omitempty"`
	RegistrationNumber string `json:"registration_number,omitempty"` // RCC, obligatorio para sociedades
	Email              string `json:"email"`
	Phone              string `json:"phone"`
	Address            string `json:"address,omitempty"`
	PostalCode         string `json:"postal_code,omitempty"`
	City               string `json:"city,omitempty"`
	PaymentTermDays    int    `json:"payment_term_days,omitempty"` // 0..60, solo sociedades
	Notes              string `json:"notes,omitempty"`
}

// ClientResponse cliente en respuestas.
type ClientResponse struct {
	ID                 string `json:"id"`
	Type               string `json:"type"`
	DisplayName        string `json:"display_name"`
	FirstName          string `json:"first_name,omitempty"`
	LastName           string `json:"last_name,omitempty"`
	CompanyName        string `json:"company_name,omitempty"`
	RegistrationNumber string `json:"registration_number,omitempty"`
	Email              string `json:"email"`
	Phone              string `json:"phone"`
	Address            string `json:"address,omitempty"`
	PostalCode         string `json:"postal_code,omitempty"`
	City               string `json:"city,omitempty"`
	PaymentTermDays    int    `json:"payment_term_days"`
	Notes              string `json:"notes,omitempty"`
	CreatedAt          string `json:"created_at"`
}

// ClientListResponse GET /api/clients.
type ClientListResponse struct {
	Items []ClientResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

// ClientDetailResponse ficha del cliente con su historial y saldo pendiente.
type ClientDetailResponse struct {
	Client        ClientResponse         `json:"client"`
	Vehicles      []VehicleResponse      `json:"vehicles"`
	Interventions []InterventionListItem `json:"interventions"`
	Invoices      []InvoiceSummary       `json:"invoices"`
	TotalInvoiced decimal.Decimal        `json:"total_invoiced"`
	TotalPaid     decimal.Decimal        `json:"total_paid"`
	Balance       decimal.Decimal        `json:"balance"` // facturas Non payée
}
