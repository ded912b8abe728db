package billing

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/usecase"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/pricing"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	"github.com/jhoicas/Taller-api/pkg/logger"
	"github.com/jhoicas/Taller-api/pkg/numwords"
)

// Etiquetas de pago de la factura impresa.
const (
	LabelPaid   = "Réglé"
	LabelUnpaid = "Non réglé"
)

// PrintUseCase arma los datos de la factura imprimible. La maquetación queda a cargo del cliente.
type PrintUseCase struct {
	invoices      repository.InvoiceRepository
	clients       repository.ClientRepository
	interventions repository.InterventionRepository
	settings      repository.SettingsRepository
	currency      string
	log           *logger.Logger
}

// NewPrintUseCase construye el caso de uso.
func NewPrintUseCase(
	invoices repository.InvoiceRepository,
	clients repository.ClientRepository,
	interventions repository.InterventionRepository,
	settings repository.SettingsRepository,
	currency string,
	log *logger.Logger,
) *PrintUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &PrintUseCase{
		invoices:      invoices,
		clients:       clients,
		interventions: interventions,
		settings:      settings,
		currency:      currency,
		log:           log.Component("print"),
	}
}

// Print devuelve la vista imprimible de la factura.
//
// Retorna:
//   - domain.ErrNotFound si la factura no existe.
//   - error de datos si falla alguna lectura.
func (uc *PrintUseCase) Print(ctx context.Context, invoiceID string) (*dto.InvoicePrintView, error) {
	// ── 1. Cargar factura ─────────────────────────────────────────────────────
	inv, err := uc.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("print: obtener factura: %w", err)
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if !pricing.VerifyTotals(pricing.InvoiceTotals(inv), inv.Lines) {
		uc.log.Warn().Str("invoice_id", inv.ID).Str("number", inv.Number).
			Msg("los totales almacenados no coinciden con las líneas")
	}

	// ── 2. Empresa, cliente y vehículo ────────────────────────────────────────
	settings, err := uc.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("print: obtener empresa: %w", err)
	}
	client, err := uc.clients.GetByID(ctx, inv.ClientID)
	if err != nil {
		return nil, fmt.Errorf("print: obtener cliente: %w", err)
	}
	view := &dto.InvoicePrintView{
		Company:        usecase.SettingsToResponse(settings),
		Number:         inv.Number,
		Date:           inv.Date.Format("02/01/2006"),
		Lines:          make([]dto.PrintLine, 0, len(inv.Lines)),
		SubtotalHT:     FormatAmount(inv.SubtotalHT),
		TVARate:        FormatPercent(inv.TVARate),
		TVAAmount:      FormatAmount(inv.TVAAmount),
		ShowTVA:        inv.TVARate.IsPositive(),
		DiscountAmount: FormatAmount(inv.DiscountAmount),
		TotalTTC:       FormatAmount(inv.TotalTTC),
		AmountInWords:  numwords.AmountInWords(inv.TotalTTC, uc.currency),
		PaymentLabel:   LabelUnpaid,
		PaymentMethod:  inv.PaymentMethod,
	}
	if inv.PaymentStatus == entity.PaymentPaid {
		view.PaymentLabel = LabelPaid
	}
	if client != nil {
		view.ClientName = client.DisplayName()
		view.ClientAddress = joinNonEmpty(client.Address, strings.TrimSpace(client.PostalCode+" "+client.City))
		view.ClientPhone = client.Phone
		view.ClientEmail = client.Email
	}
	if inv.InterventionID != "" {
		iv, err := uc.interventions.GetView(ctx, inv.InterventionID)
		if err != nil {
			return nil, fmt.Errorf("print: obtener intervención: %w", err)
		}
		if iv != nil {
			view.Plate = iv.Plate
			view.Vehicle = iv.VehicleLabel
		}
	}

	// ── 3. Líneas ─────────────────────────────────────────────────────────────
	for _, l := range inv.Lines {
		view.Lines = append(view.Lines, dto.PrintLine{
			Reference:   l.Reference,
			Designation: l.Designation,
			Quantity:    l.Quantity,
			UnitPrice:   FormatAmount(l.UnitPrice),
			DiscountPct: FormatPercent(l.DiscountPct),
			LineTotal:   FormatAmount(l.LineTotal),
		})
	}
	return view, nil
}

func joinNonEmpty(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ", ")
}
