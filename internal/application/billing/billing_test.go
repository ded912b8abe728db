package billing

import (
	"context"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/usecase"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/pricing"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	"github.com/jhoicas/Taller-api/internal/infrastructure/memory"
	"github.com/jhoicas/Taller-api/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	ctx     = context.Background()
	cashier = usecase.Actor{UserID: "u-caisse", Role: "accueil"}
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type billingMetrics struct {
	invoices    int
	transitions []string
}

func (m *billingMetrics) InvoiceCreated() { m.invoices++ }
func (m *billingMetrics) StatusChanged(from, to entity.InterventionStatus) {
	m.transitions = append(m.transitions, string(from)+"→"+string(to))
}

type fixture struct {
	st      *memory.Store
	uc      *InvoiceUseCase
	print   *PrintUseCase
	metrics *billingMetrics
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := memory.NewStore()
	require.NoError(t, st.Clients().Create(ctx, &entity.Client{
		ID: "c1", Type: entity.ClientIndividual, FirstName: "Karim", LastName: "Bennani",
		Email: "karim@example.ma", Phone: "0612345678", Address: "12 rue des Orangers", PostalCode: "20000", City: "Casablanca",
	}))
	require.NoError(t, st.Vehicles().Create(ctx, &entity.Vehicle{
		ID: "v1", ClientID: "c1", Plate: "1234-A-5", Make: "Dacia", Model: "Logan",
	}))
	m := &billingMetrics{}
	audit := usecase.NewAuditor(st.Audit(), logger.Nop())
	uc := NewInvoiceUseCase(st.Invoices(), st.Interventions(), st.Orders(), st.Vehicles(), st.Clients(), st, audit, m, Options{
		InvoicePrefix:   "FA",
		CurrencyWord:    "dirhams",
		IsPaymentMethod: func(m string) bool { return m == "Espèces" || m == "Chèque" },
	})
	return &fixture{
		st:      st,
		uc:      uc,
		print:   NewPrintUseCase(st.Invoices(), st.Clients(), st.Interventions(), st.Settings(), "dirhams", logger.Nop()),
		metrics: m,
	}
}

func workLines() []entity.LineItem {
	return []entity.LineItem{
		{ArticleID: "A", Reference: "FH-01", Designation: "Filtre à huile", Quantity: 2, UnitPrice: dec("80"), DiscountPct: dec("10")},
		{Designation: "Main d'oeuvre", Quantity: 1, UnitPrice: dec("150.50")},
	}
}

// seedIntervention guarda una intervención con las líneas valorizadas.
func (f *fixture) seedIntervention(t *testing.T, id string, status entity.InterventionStatus, lines []entity.LineItem) {
	t.Helper()
	pricing.ApplyAll(lines)
	require.NoError(t, f.st.Interventions().Create(ctx, &entity.Intervention{
		ID: id, VehicleID: "v1", Status: status, Description: "Vidange", Lines: lines, CreatedAt: time.Now(),
	}))
}

func TestFromIntervention_RequiereTerminee(t *testing.T) {
	f := newFixture(t)
	for _, st := range []entity.InterventionStatus{entity.StatusPending, entity.StatusInProgress, entity.StatusCancelled} {
		id := "i-" + string(st)
		f.seedIntervention(t, id, st, workLines())
		_, err := f.uc.FromIntervention(ctx, cashier, id, dto.CreateInvoiceRequest{})
		assert.ErrorIs(t, err, domain.ErrPreconditionFailed, "estado %s", st)
	}
	_, err := f.uc.FromIntervention(ctx, cashier, "nope", dto.CreateInvoiceRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, f.metrics.invoices)
}

func TestFromIntervention_Factura(t *testing.T) {
	f := newFixture(t)
	f.seedIntervention(t, "i1", entity.StatusDone, workLines())

	inv, err := f.uc.FromIntervention(ctx, cashier, "i1", dto.CreateInvoiceRequest{
		DiscountAmount: dec("20"), Date: "2024-03-04",
	})
	require.NoError(t, err)
	assert.Equal(t, "FA-2024-000001", inv.Number)
	assert.Equal(t, "2024-03-04", inv.Date)
	assert.Equal(t, "c1", inv.ClientID)
	assert.Equal(t, "Karim Bennani", inv.ClientName)
	assert.Equal(t, string(entity.PaymentUnpaid), inv.PaymentStatus)
	assert.True(t, dec("294.50").Equal(inv.SubtotalHT))
	assert.True(t, inv.TVAAmount.IsZero())
	assert.True(t, dec("274.50").Equal(inv.TotalTTC), "total = Σ líneas − remise")

	in, err := f.st.Interventions().GetByID(ctx, "i1")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusInvoiced, in.Status)
	assert.Equal(t, inv.ID, in.InvoiceID)

	stored, err := f.st.Invoices().GetByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.True(t, pricing.VerifyTotals(pricing.InvoiceTotals(stored), stored.Lines))

	assert.Equal(t, 1, f.metrics.invoices)
	assert.Equal(t, []string{"Terminée→Facturée"}, f.metrics.transitions)
	require.Len(t, f.st.AuditEntries(), 1)
	assert.Equal(t, inv.Number, f.st.AuditEntries()[0].Details)

	_, err = f.uc.FromIntervention(ctx, cashier, "i1", dto.CreateInvoiceRequest{})
	assert.ErrorIs(t, err, domain.ErrPreconditionFailed, "no se factura dos veces")
}

func TestFromIntervention_ConTVA(t *testing.T) {
	f := newFixture(t)
	f.seedIntervention(t, "i1", entity.StatusDone, workLines())
	tva := dec("20")

	inv, err := f.uc.FromIntervention(ctx, cashier, "i1", dto.CreateInvoiceRequest{TVARate: &tva})
	require.NoError(t, err)
	assert.True(t, dec("58.90").Equal(inv.TVAAmount))
	assert.True(t, dec("353.40").Equal(inv.TotalTTC))
}

func TestFromIntervention_Validacion(t *testing.T) {
	f := newFixture(t)
	f.seedIntervention(t, "i1", entity.StatusDone, workLines())

	_, err := f.uc.FromIntervention(ctx, cashier, "i1", dto.CreateInvoiceRequest{DiscountAmount: dec("1000")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.FromIntervention(ctx, cashier, "i1", dto.CreateInvoiceRequest{Date: "04/03/2024"})
	fields, ok := domain.FieldErrors(err)
	require.True(t, ok)
	assert.Contains(t, fields, "date")

	in, err := f.st.Interventions().GetByID(ctx, "i1")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDone, in.Status)
}

func TestFromIntervention_UsaLineasDelPedido(t *testing.T) {
	f := newFixture(t)
	f.seedIntervention(t, "i1", entity.StatusDone, workLines())
	orderLines := []entity.LineItem{{Designation: "Forfait", Quantity: 1, UnitPrice: dec("100")}}
	pricing.ApplyAll(orderLines)
	require.NoError(t, f.st.Orders().Create(ctx, &entity.Order{ID: "o1", InterventionID: "i1", Lines: orderLines}))
	in, err := f.st.Interventions().GetByID(ctx, "i1")
	require.NoError(t, err)
	in.OrderID = "o1"
	require.NoError(t, f.st.Interventions().Update(ctx, in))

	inv, err := f.uc.FromIntervention(ctx, cashier, "i1", dto.CreateInvoiceRequest{})
	require.NoError(t, err)
	assert.Equal(t, "o1", inv.OrderID)
	require.Len(t, inv.Items, 1)
	assert.True(t, dec("100").Equal(inv.TotalTTC))
}

func TestFromOrder(t *testing.T) {
	f := newFixture(t)
	f.seedIntervention(t, "i1", entity.StatusInProgress, workLines())
	orderLines := entity.CloneLines(workLines())
	pricing.ApplyAll(orderLines)
	require.NoError(t, f.st.Orders().Create(ctx, &entity.Order{ID: "o1", InterventionID: "i1", Lines: orderLines}))

	_, err := f.uc.FromOrder(ctx, cashier, "o1", dto.CreateInvoiceRequest{})
	assert.ErrorIs(t, err, domain.ErrPreconditionFailed)

	in, err := f.st.Interventions().GetByID(ctx, "i1")
	require.NoError(t, err)
	in.Status = entity.StatusDone
	require.NoError(t, f.st.Interventions().Update(ctx, in))

	inv, err := f.uc.FromOrder(ctx, cashier, "o1", dto.CreateInvoiceRequest{})
	require.NoError(t, err)
	assert.Equal(t, "i1", inv.InterventionID)
	assert.True(t, dec("294.50").Equal(inv.TotalTTC))

	_, err = f.uc.FromOrder(ctx, cashier, "o404", dto.CreateInvoiceRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_RollbackCompleto(t *testing.T) {
	f := newFixture(t)
	f.seedIntervention(t, "i1", entity.StatusDone, workLines())

	for _, op := range []string{"invoices.create", "interventions.update", "audit.append"} {
		f.st.FailOn = op
		_, err := f.uc.FromIntervention(ctx, cashier, "i1", dto.CreateInvoiceRequest{})
		assert.ErrorIs(t, err, memory.ErrInjected, op)

		list, err := f.st.Invoices().List(ctx, repository.InvoiceFilter{})
		require.NoError(t, err)
		assert.Empty(t, list, op)
		in, err := f.st.Interventions().GetByID(ctx, "i1")
		require.NoError(t, err)
		assert.Equal(t, entity.StatusDone, in.Status, op)
		assert.Empty(t, in.InvoiceID, op)
	}
	f.st.FailOn = ""

	inv, err := f.uc.FromIntervention(ctx, cashier, "i1", dto.CreateInvoiceRequest{Date: "2024-01-10"})
	require.NoError(t, err)
	assert.Equal(t, "FA-2024-000001", inv.Number, "la secuencia también se revierte")
}

func TestPay_CobrosConcurrentesUnoSolo(t *testing.T) {
	f := newFixture(t)
	f.seedIntervention(t, "i1", entity.StatusDone, workLines())
	inv, err := f.uc.FromIntervention(ctx, cashier, "i1", dto.CreateInvoiceRequest{})
	require.NoError(t, err)

	const n = 8
	errs := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.Pay(ctx, cashier, inv.ID, dto.PaymentRequest{PaymentMethod: "Espèces"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	ok := 0
	for err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrConflict)
	}
	assert.Equal(t, 1, ok)
}

func TestPay(t *testing.T) {
	f := newFixture(t)
	f.seedIntervention(t, "i1", entity.StatusDone, workLines())
	inv, err := f.uc.FromIntervention(ctx, cashier, "i1", dto.CreateInvoiceRequest{})
	require.NoError(t, err)

	_, err = f.uc.Pay(ctx, cashier, inv.ID, dto.PaymentRequest{})
	fields, ok := domain.FieldErrors(err)
	require.True(t, ok)
	assert.Equal(t, "Le mode de paiement est requis", fields["payment_method"])

	_, err = f.uc.Pay(ctx, cashier, inv.ID, dto.PaymentRequest{PaymentMethod: "Bitcoin"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	paid, err := f.uc.Pay(ctx, cashier, inv.ID, dto.PaymentRequest{PaymentMethod: "Chèque", PaymentDate: "2024-03-10"})
	require.NoError(t, err)
	assert.Equal(t, string(entity.PaymentPaid), paid.PaymentStatus)
	assert.Equal(t, "Chèque", paid.PaymentMethod)
	assert.Equal(t, "2024-03-10", paid.PaymentDate)

	_, err = f.uc.Pay(ctx, cashier, inv.ID, dto.PaymentRequest{PaymentMethod: "Espèces"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.uc.Pay(ctx, cashier, "nope", dto.PaymentRequest{PaymentMethod: "Espèces"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := f.uc.List(ctx, "c1", "Payée", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, inv.Number, list[0].Number)

	_, err = f.uc.List(ctx, "", "Remboursée", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPrint(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.st.Settings().Upsert(ctx, &entity.CompanySettings{ID: "s1", CompanyName: "Garage Atlas"}))
	f.seedIntervention(t, "i1", entity.StatusDone, workLines())
	inv, err := f.uc.FromIntervention(ctx, cashier, "i1", dto.CreateInvoiceRequest{DiscountAmount: dec("20"), Date: "2024-03-04"})
	require.NoError(t, err)

	view, err := f.print.Print(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "Garage Atlas", view.Company.CompanyName)
	assert.Equal(t, "04/03/2024", view.Date)
	assert.Equal(t, "Karim Bennani", view.ClientName)
	assert.Equal(t, "12 rue des Orangers, 20000 Casablanca", view.ClientAddress)
	assert.Equal(t, "1234-A-5", view.Plate)
	assert.Equal(t, "Dacia Logan", view.Vehicle)
	assert.False(t, view.ShowTVA)
	assert.Equal(t, "deux cent soixante-quatorze dirhams", view.AmountInWords)
	assert.Equal(t, LabelUnpaid, view.PaymentLabel)
	assert.True(t, strings.HasSuffix(view.TotalTTC, ",50"), view.TotalTTC)
	require.Len(t, view.Lines, 2)
	assert.Equal(t, "10", view.Lines[0].DiscountPct)

	_, err = f.uc.Pay(ctx, cashier, inv.ID, dto.PaymentRequest{PaymentMethod: "Espèces"})
	require.NoError(t, err)
	view, err = f.print.Print(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, LabelPaid, view.PaymentLabel)

	_, err = f.print.Print(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

var nonDigits = regexp.MustCompile(`[^0-9]`)

func TestFormatAmount(t *testing.T) {
	s := FormatAmount(dec("1234.5"))
	assert.True(t, strings.HasSuffix(s, ",50"), s)
	assert.Equal(t, "123450", nonDigits.ReplaceAllString(s, ""))
	assert.Equal(t, "0,00", FormatAmount(decimal.Zero))
	assert.Equal(t, "12,5", FormatPercent(dec("12.5")))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "FA-2024-000042", FormatNumber("FA", 2024, 42))
	assert.Equal(t, "FAC-2025-1234567", FormatNumber("FAC", 2025, 1234567))
}
