package dto

import "github.com/shopspring/decimal"

// LineItemRequest línea enviada por el cliente. Sin article_id es una línea libre (mano de obra, etc.).
type LineItemRequest struct {
	ArticleID   string          `json:"article_id,omitempty"`
	OfferID     string          `json:"offer_id,omitempty"`
	Reference   string          `json:"reference,omitempty"`
	Designation string          `json:"designation"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	DiscountPct decimal.Decimal `json:"discount_pct"`
}

// LineItemResponse línea valorizada.
type LineItemResponse struct {
	ID          string          `json:"id,omitempty"`
	ArticleID   string          `json:"article_id,omitempty"`
	OfferID     string          `json:"offer_id,omitempty"`
	Reference   string          `json:"reference,omitempty"`
	Designation string          `json:"designation"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	DiscountPct decimal.Decimal `json:"discount_pct"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// InterventionRequest body para POST/PUT /api/interventions.
// offer_ids se desglosan en artículos y se fusionan con items por artículo.
type InterventionRequest struct {
	VehicleID          string            `json:"vehicle_id"`
	TechnicianID       string            `json:"technician_id,omitempty"`
	ScheduledDate      *string           `json:"scheduled_date,omitempty"`
	NextInspectionDate *string           `json:"next_inspection_date,omitempty"`
	OdometerAtVisit    int               `json:"odometer_at_visit"`
	Description        string            `json:"description"`
	Diagnosis          string            `json:"diagnosis,omitempty"`
	Comment            string            `json:"comment,omitempty"`
	Items              []LineItemRequest `json:"items,omitempty"`
	OfferIDs           []string          `json:"offer_ids,omitempty"`
}

// StatusRequest body para POST /api/interventions/:id/status.
type StatusRequest struct {
	Status string `json:"status" example:"En cours"`
}

// AssignTechnicianRequest body para POST /api/interventions/:id/technician (vacío = desasignar).
type AssignTechnicianRequest struct {
	TechnicianID string `json:"technician_id"`
}

// InterventionResponse intervención con líneas y datos relacionados.
type InterventionResponse struct {
	ID                 string             `json:"id"`
	VehicleID          string             `json:"vehicle_id"`
	Plate              string             `json:"plate,omitempty"`
	Vehicle            string             `json:"vehicle,omitempty"`
	ClientID           string             `json:"client_id,omitempty"`
	ClientName         string             `json:"client_name,omitempty"`
	TechnicianID       string             `json:"technician_id,omitempty"`
	TechnicianName     string             `json:"technician_name,omitempty"`
	Status             string             `json:"status"`
	NextStatuses       []string           `json:"next_statuses"`
	ScheduledDate      string             `json:"scheduled_date,omitempty"`
	StartDate          string             `json:"start_date,omitempty"`
	EndDate            string             `json:"end_date,omitempty"`
	NextInspectionDate string             `json:"next_inspection_date,omitempty"`
	OdometerAtVisit    int                `json:"odometer_at_visit"`
	Description        string             `json:"description"`
	Diagnosis          string             `json:"diagnosis,omitempty"`
	Comment            string             `json:"comment,omitempty"`
	OrderID            string             `json:"order_id,omitempty"`
	InvoiceID          string             `json:"invoice_id,omitempty"`
	Items              []LineItemResponse `json:"items"`
	Subtotal           decimal.Decimal    `json:"subtotal"`
}

// InterventionListItem fila del listado.
type InterventionListItem struct {
	ID                  string `json:"id"`
	Plate               string `json:"plate"`
	Vehicle             string `json:"vehicle"`
	ClientID            string `json:"client_id"`
	ClientName          string `json:"client_name"`
	TechnicianName      string `json:"technician_name,omitempty"`
	TechnicianSpecialty string `json:"technician_specialty,omitempty"`
	Status              string `json:"status"`
	ScheduledDate       string `json:"scheduled_date,omitempty"`
	Description         string `json:"description"`
}

// InterventionListResponse GET /api/interventions: página, total y conteo por estado.
type InterventionListResponse struct {
	Items      []InterventionListItem `json:"items"`
	Page       int                    `json:"page"`
	TotalPages int                    `json:"total_pages"`
	Total      int                    `json:"total"`
	Stats      map[string]int         `json:"stats"`
}

// CalendarDay intervenciones programadas para un día.
type CalendarDay struct {
	Date          string                 `json:"date"`
	Interventions []InterventionListItem `json:"interventions"`
}

// OrderResponse pedido derivado de una intervención.
type OrderResponse struct {
	ID             string             `json:"id"`
	InterventionID string             `json:"intervention_id"`
	CreatedAt      string             `json:"created_at"`
	Items          []LineItemResponse `json:"items"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
}
