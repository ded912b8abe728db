// Package billing facturación: creación de facturas desde intervenciones o pedidos,
// cobro y vista imprimible.
package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/usecase"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/pricing"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	"github.com/jhoicas/Taller-api/internal/domain/workflow"
)

// FormatNumber número de factura <prefijo>-<año>-<secuencia de 6 dígitos>.
func FormatNumber(prefix string, year int, seq int64) string {
	return fmt.Sprintf("%s-%d-%06d", prefix, year, seq)
}

// InvoiceUseCase crea facturas y registra pagos.
type InvoiceUseCase struct {
	invoices      repository.InvoiceRepository
	interventions repository.InterventionRepository
	orders        repository.OrderRepository
	vehicles      repository.VehicleRepository
	clients       repository.ClientRepository
	tx            repository.TxRunner
	audit         *usecase.Auditor
	metrics       Metrics
	opts          Options
	now           func() time.Time
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	invoices repository.InvoiceRepository,
	interventions repository.InterventionRepository,
	orders repository.OrderRepository,
	vehicles repository.VehicleRepository,
	clients repository.ClientRepository,
	tx repository.TxRunner,
	audit *usecase.Auditor,
	metrics Metrics,
	opts Options,
) *InvoiceUseCase {
	if metrics == nil {
		metrics = noMetrics{}
	}
	if opts.InvoicePrefix == "" {
		opts.InvoicePrefix = "FA"
	}
	if opts.IsPaymentMethod == nil {
		opts.IsPaymentMethod = func(string) bool { return true }
	}
	return &InvoiceUseCase{
		invoices:      invoices,
		interventions: interventions,
		orders:        orders,
		vehicles:      vehicles,
		clients:       clients,
		tx:            tx,
		audit:         audit,
		metrics:       metrics,
		opts:          opts,
		now:           time.Now,
	}
}

// FromIntervention factura una intervención Terminée. Si tiene pedido se facturan las líneas del pedido.
// Devuelve domain.ErrPreconditionFailed en cualquier otro estado.
func (uc *InvoiceUseCase) FromIntervention(ctx context.Context, actor usecase.Actor, interventionID string, req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	in, err := uc.interventions.GetByID(ctx, interventionID)
	if err != nil {
		return nil, err
	}
	if in == nil {
		return nil, domain.ErrNotFound
	}
	if err := workflow.CanInvoice(in.Status); err != nil {
		return nil, err
	}
	lines, orderID := in.Lines, ""
	if in.OrderID != "" {
		order, err := uc.orders.GetByID(ctx, in.OrderID)
		if err != nil {
			return nil, err
		}
		if order != nil {
			lines, orderID = order.Lines, order.ID
		}
	}
	return uc.create(ctx, actor, in, orderID, lines, req)
}

// FromOrder factura un pedido. La intervención de origen también debe estar Terminée.
func (uc *InvoiceUseCase) FromOrder(ctx context.Context, actor usecase.Actor, orderID string, req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	order, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	in, err := uc.interventions.GetByID(ctx, order.InterventionID)
	if err != nil {
		return nil, err
	}
	if in == nil {
		return nil, fmt.Errorf("intervención %s del pedido: %w", order.InterventionID, domain.ErrNotFound)
	}
	if err := workflow.CanInvoice(in.Status); err != nil {
		return nil, err
	}
	return uc.create(ctx, actor, in, order.ID, order.Lines, req)
}

// create calcula totales, numera, inserta la factura y pasa la intervención a Facturée en una transacción.
func (uc *InvoiceUseCase) create(
	ctx context.Context,
	actor usecase.Actor,
	in *entity.Intervention,
	orderID string,
	source []entity.LineItem,
	req dto.CreateInvoiceRequest,
) (*dto.InvoiceResponse, error) {
	if len(source) == 0 {
		return nil, fmt.Errorf("%w: no hay líneas para facturar", domain.ErrPreconditionFailed)
	}

	v := domain.Violations{}
	now := uc.now()
	date := now
	if s := strings.TrimSpace(req.Date); s != "" {
		if d := usecase.ParseDate(v, "date", &s); d != nil {
			date = *d
		}
	}
	if err := v.Err(); err != nil {
		return nil, err
	}
	tva := uc.opts.DefaultTVARate
	if req.TVARate != nil {
		tva = *req.TVARate
	}

	vehicle, err := uc.vehicles.GetByID(ctx, in.VehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, fmt.Errorf("vehículo %s de la intervención: %w", in.VehicleID, domain.ErrNotFound)
	}

	lines := entity.CloneLines(source)
	pricing.ApplyAll(lines)
	totals, err := pricing.ComputeTotals(lines, tva, req.DiscountAmount)
	if err != nil {
		return nil, err
	}

	inv := &entity.Invoice{
		ID:             uuid.New().String(),
		ClientID:       vehicle.ClientID,
		InterventionID: in.ID,
		OrderID:        orderID,
		Date:           date,
		Lines:          lines,
		SubtotalHT:     totals.SubtotalHT,
		TVARate:        totals.TVARate,
		TVAAmount:      totals.TVAAmount,
		DiscountAmount: totals.DiscountAmount,
		TotalTTC:       totals.TotalTTC,
		PaymentStatus:  entity.PaymentUnpaid,
		CreatedAt:      now,
	}
	from := in.Status

	err = uc.tx.Run(ctx, func(r repository.TxRepos) error {
		seq, err := r.Invoices.NextSequence(ctx)
		if err != nil {
			return err
		}
		inv.Number = FormatNumber(uc.opts.InvoicePrefix, date.Year(), seq)
		if err := r.Invoices.Create(ctx, inv); err != nil {
			return err
		}
		in.InvoiceID = inv.ID
		if err := workflow.Apply(in, entity.StatusInvoiced, now); err != nil {
			return err
		}
		if err := r.Interventions.Update(ctx, in); err != nil {
			return err
		}
		return r.Audit.Append(ctx, usecase.NewAuditEntry(actor, usecase.ActionInvoice, "invoice", inv.ID, inv.Number))
	})
	if err != nil {
		return nil, err
	}
	uc.metrics.InvoiceCreated()
	uc.metrics.StatusChanged(from, entity.StatusInvoiced)
	return uc.toResponse(ctx, inv)
}

func (uc *InvoiceUseCase) load(ctx context.Context, id string) (*entity.Invoice, error) {
	inv, err := uc.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return inv, nil
}

// Get factura con líneas y nombre del cliente.
func (uc *InvoiceUseCase) Get(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, inv)
}

// List facturas filtradas por cliente y estado de pago.
func (uc *InvoiceUseCase) List(ctx context.Context, clientID, paymentStatus string, page dto.PageRequest) ([]dto.InvoiceSummary, error) {
	status := entity.PaymentStatus(strings.TrimSpace(paymentStatus))
	if status != "" && status != entity.PaymentPaid && status != entity.PaymentUnpaid {
		return nil, &domain.ValidationError{Fields: map[string]string{"payment_status": "Statut de paiement invalide"}}
	}
	page.DefaultPage()
	list, err := uc.invoices.List(ctx, repository.InvoiceFilter{
		ClientID:      strings.TrimSpace(clientID),
		PaymentStatus: status,
		Limit:         page.Limit,
		Offset:        page.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.InvoiceSummary, 0, len(list))
	for _, inv := range list {
		out = append(out, usecase.InvoiceSummary(inv))
	}
	return out, nil
}

// Pay marca la factura como Payée. Pagar dos veces devuelve domain.ErrConflict.
func (uc *InvoiceUseCase) Pay(ctx context.Context, actor usecase.Actor, id string, req dto.PaymentRequest) (*dto.InvoiceResponse, error) {
	v := domain.Violations{}
	method := strings.TrimSpace(req.PaymentMethod)
	if method == "" {
		v.Add("payment_method", "Le mode de paiement est requis")
	} else if !uc.opts.IsPaymentMethod(method) {
		v.Add("payment_method", "Mode de paiement non autorisé")
	}
	date := uc.now()
	if s := strings.TrimSpace(req.PaymentDate); s != "" {
		if d := usecase.ParseDate(v, "payment_date", &s); d != nil {
			date = *d
		}
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	inv, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.PaymentStatus == entity.PaymentPaid {
		return nil, fmt.Errorf("%w: la factura %s ya está pagada", domain.ErrConflict, inv.Number)
	}
	inv.PaymentStatus = entity.PaymentPaid
	inv.PaymentMethod = method
	inv.PaymentDate = &date
	if err := uc.invoices.UpdatePayment(ctx, inv); err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, actor, usecase.ActionPayment, "invoice", inv.ID, method)
	return uc.toResponse(ctx, inv)
}

func (uc *InvoiceUseCase) toResponse(ctx context.Context, inv *entity.Invoice) (*dto.InvoiceResponse, error) {
	out := &dto.InvoiceResponse{
		ID:             inv.ID,
		Number:         inv.Number,
		Date:           inv.Date.Format(dto.DateLayout),
		ClientID:       inv.ClientID,
		InterventionID: inv.InterventionID,
		OrderID:        inv.OrderID,
		Items:          usecase.LineResponses(inv.Lines),
		SubtotalHT:     inv.SubtotalHT,
		TVARate:        inv.TVARate,
		TVAAmount:      inv.TVAAmount,
		DiscountAmount: inv.DiscountAmount,
		TotalTTC:       inv.TotalTTC,
		PaymentStatus:  string(inv.PaymentStatus),
		PaymentMethod:  inv.PaymentMethod,
		PaymentDate:    usecase.FormatDate(inv.PaymentDate),
	}
	client, err := uc.clients.GetByID(ctx, inv.ClientID)
	if err != nil {
		return nil, err
	}
	if client != nil {
		out.ClientName = client.DisplayName()
	}
	return out, nil
}
