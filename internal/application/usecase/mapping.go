package usecase

import (
	"strings"
	"time"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// ParseDate interpreta una fecha opcional YYYY-MM-DD; si es inválida registra el campo en v.
func ParseDate(v domain.Violations, field string, s *string) *time.Time {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	t, err := time.Parse(dto.DateLayout, strings.TrimSpace(*s))
	if err != nil {
		v.Add(field, "Date invalide (AAAA-MM-JJ)")
		return nil
	}
	return &t
}

// FormatDate fecha opcional en formato YYYY-MM-DD ("" si es nil).
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(dto.DateLayout)
}

// LinesFromRequest convierte las líneas recibidas (sin calcular totales).
func LinesFromRequest(items []dto.LineItemRequest) []entity.LineItem {
	out := make([]entity.LineItem, 0, len(items))
	for _, it := range items {
		out = append(out, entity.LineItem{
			ArticleID:   strings.TrimSpace(it.ArticleID),
			OfferID:     strings.TrimSpace(it.OfferID),
			Reference:   strings.TrimSpace(it.Reference),
			Designation: strings.TrimSpace(it.Designation),
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			DiscountPct: it.DiscountPct,
		})
	}
	return out
}

// LineResponses convierte líneas de dominio a DTO.
func LineResponses(lines []entity.LineItem) []dto.LineItemResponse {
	out := make([]dto.LineItemResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.LineItemResponse{
			ID:          l.ID,
			ArticleID:   l.ArticleID,
			OfferID:     l.OfferID,
			Reference:   l.Reference,
			Designation: l.Designation,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			DiscountPct: l.DiscountPct,
			LineTotal:   l.LineTotal,
		})
	}
	return out
}

func clientToResponse(c *entity.Client) dto.ClientResponse {
	return dto.ClientResponse{
		ID:                 c.ID,
		Type:               string(c.Type),
		DisplayName:        c.DisplayName(),
		FirstName:          c.FirstName,
		LastName:           c.LastName,
		CompanyName:        c.CompanyName,
		RegistrationNumber: c.RegistrationNumber,
		Email:              c.Email,
		Phone:              c.Phone,
		Address:            c.Address,
		PostalCode:         c.PostalCode,
		City:               c.City,
		PaymentTermDays:    c.PaymentTermDays,
		Notes:              c.Notes,
		CreatedAt:          c.CreatedAt.Format(time.RFC3339),
	}
}

func vehicleToResponse(v *entity.Vehicle) dto.VehicleResponse {
	return dto.VehicleResponse{
		ID:                    v.ID,
		ClientID:              v.ClientID,
		Plate:                 v.Plate,
		Make:                  v.Make,
		Model:                 v.Model,
		Year:                  v.Year,
		Odometer:              v.Odometer,
		Color:                 v.Color,
		FuelType:              string(v.FuelType),
		Power:                 v.Power,
		FirstRegistrationDate: FormatDate(v.FirstRegistrationDate),
		LastServiceDate:       FormatDate(v.LastServiceDate),
		NextInspectionDate:    FormatDate(v.NextInspectionDate),
		Status:                string(v.Status),
		Notes:                 v.Notes,
	}
}

// InterventionListItem fila de listado a partir de la vista.
func InterventionListItem(v *entity.InterventionView) dto.InterventionListItem {
	return dto.InterventionListItem{
		ID:                  v.ID,
		Plate:               v.Plate,
		Vehicle:             v.VehicleLabel,
		ClientID:            v.ClientID,
		ClientName:          v.ClientName,
		TechnicianName:      v.TechnicianName,
		TechnicianSpecialty: v.TechnicianSpecialty,
		Status:              string(v.Status),
		ScheduledDate:       FormatDate(v.ScheduledDate),
		Description:         v.Description,
	}
}

// InvoiceSummary fila de listado de facturas.
func InvoiceSummary(inv *entity.Invoice) dto.InvoiceSummary {
	return dto.InvoiceSummary{
		ID:            inv.ID,
		Number:        inv.Number,
		Date:          inv.Date.Format(dto.DateLayout),
		ClientID:      inv.ClientID,
		TotalTTC:      inv.TotalTTC,
		PaymentStatus: string(inv.PaymentStatus),
	}
}
