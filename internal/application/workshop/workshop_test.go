package workshop

import (
	"context"
	"math"
	"testing"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/usecase"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	ctx   = context.Background()
	actor = usecase.Actor{UserID: "u-accueil", Role: "accueil"}
)

type countingMetrics struct {
	transitions []string
	orders      int
}

func (m *countingMetrics) StatusChanged(from, to entity.InterventionStatus) {
	m.transitions = append(m.transitions, string(from)+"→"+string(to))
}
func (m *countingMetrics) OrderCreated() { m.orders++ }

type fixture struct {
	st      *memory.Store
	svc     *InterventionService
	orders  *OrderService
	metrics *countingMetrics
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := memory.NewStore()
	require.NoError(t, st.Clients().Create(ctx, &entity.Client{
		ID: "c1", Type: entity.ClientIndividual, FirstName: "Karim", LastName: "Bennani",
		Email: "karim@example.ma", Phone: "0612345678",
	}))
	require.NoError(t, st.Vehicles().Create(ctx, &entity.Vehicle{
		ID: "v1", ClientID: "c1", Plate: "1234-A-5", Make: "Dacia", Model: "Logan", Year: 2019,
	}))
	require.NoError(t, st.Technicians().Create(ctx, &entity.Technician{
		ID: "t1", FirstName: "Youssef", LastName: "Alami", Specialty: "Mécanique", Email: "y@garage.ma", UserName: "yalami",
	}))
	five := decimal.NewFromInt(5)
	st.SeedCatalog(nil,
		[]entity.Article{
			{ID: "A", Reference: "FH-01", Designation: "Filtre à huile", SalePriceHT: decimal.NewFromInt(80)},
			{ID: "B", Reference: "HM-5W30", Designation: "Huile moteur", SalePriceHT: decimal.NewFromInt(120)},
		},
		[]entity.Offer{{ID: "O1", Name: "Vidange", DiscountPct: decimal.NewFromInt(10)}},
		[]entity.OfferArticle{
			{Article: entity.Article{ID: "A", Reference: "FH-01", Designation: "Filtre à huile", SalePriceHT: decimal.NewFromInt(80)}, OfferID: "O1"},
			{Article: entity.Article{ID: "B", Reference: "HM-5W30", Designation: "Huile moteur", SalePriceHT: decimal.NewFromInt(120)}, OfferID: "O1", SpecificDiscountPct: &five},
		},
	)
	m := &countingMetrics{}
	catalog := usecase.NewCatalogUseCase(st.Catalog())
	return &fixture{
		st:      st,
		svc:     NewInterventionService(st.Interventions(), st.Vehicles(), st.Technicians(), catalog, st, m, 2),
		orders:  NewOrderService(st.Interventions(), st.Orders(), st, m),
		metrics: m,
	}
}

func lineReq(articleID string, qty int, price, pct int64) dto.LineItemRequest {
	return dto.LineItemRequest{
		ArticleID: articleID, Designation: "ligne " + articleID, Quantity: qty,
		UnitPrice: decimal.NewFromInt(price), DiscountPct: decimal.NewFromInt(pct),
	}
}

func (f *fixture) create(t *testing.T, items ...dto.LineItemRequest) *dto.InterventionResponse {
	t.Helper()
	out, err := f.svc.Create(ctx, actor, dto.InterventionRequest{
		VehicleID: "v1", Description: "Vidange et contrôle", OdometerAtVisit: 86000, Items: items,
	})
	require.NoError(t, err)
	return out
}

func TestCreate_DesglosaOfertaYFusiona(t *testing.T) {
	f := newFixture(t)
	out, err := f.svc.Create(ctx, actor, dto.InterventionRequest{
		VehicleID:   "v1",
		Description: "Vidange",
		Items:       []dto.LineItemRequest{lineReq("A", 1, 80, 0)},
		OfferIDs:    []string{"O1"},
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.StatusPending), out.Status)
	assert.Equal(t, "1234-A-5", out.Plate)
	assert.Equal(t, "Karim Bennani", out.ClientName)
	require.Len(t, out.Items, 2)
	assert.Equal(t, 2, out.Items[0].Quantity)
	assert.Equal(t, 1, out.Items[1].Quantity)
	assert.Equal(t, "O1", out.Items[1].OfferID)
	assert.True(t, decimal.NewFromInt(274).Equal(out.Subtotal))
	assert.Equal(t, []string{"En cours", "Annulée"}, out.NextStatuses)
}

func TestCreate_Validacion(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Create(ctx, actor, dto.InterventionRequest{
		VehicleID: "v404", TechnicianID: "t404",
		Items: []dto.LineItemRequest{lineReq("A", 0, 80, 0)},
	})
	fields, ok := domain.FieldErrors(err)
	require.True(t, ok)
	assert.Contains(t, fields, "vehicle_id")
	assert.Contains(t, fields, "technician_id")
	assert.Contains(t, fields, "description")

	_, err = f.svc.Create(ctx, actor, dto.InterventionRequest{
		VehicleID: "v1", Description: "x",
		Items: []dto.LineItemRequest{lineReq("A", 1, 80, 101)},
	})
	fields, ok = domain.FieldErrors(err)
	require.True(t, ok)
	assert.Contains(t, fields, "items[0].discount_pct")
}

func TestChangeStatus_Flujo(t *testing.T) {
	f := newFixture(t)
	in := f.create(t, lineReq("A", 1, 80, 0))

	_, err := f.svc.ChangeStatus(ctx, actor, in.ID, "Terminée")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	out, err := f.svc.ChangeStatus(ctx, actor, in.ID, "En cours")
	require.NoError(t, err)
	assert.NotEmpty(t, out.StartDate)

	out, err = f.svc.ChangeStatus(ctx, actor, in.ID, "Terminée")
	require.NoError(t, err)
	assert.NotEmpty(t, out.EndDate)

	_, err = f.svc.ChangeStatus(ctx, actor, in.ID, "Facturée")
	assert.ErrorIs(t, err, domain.ErrPreconditionFailed, "Facturée solo vía facturación")

	_, err = f.svc.ChangeStatus(ctx, actor, in.ID, "Annulée")
	require.NoError(t, err)
	_, err = f.svc.ChangeStatus(ctx, actor, in.ID, "En cours")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	assert.Equal(t, []string{"En attente→En cours", "En cours→Terminée", "Terminée→Annulée"}, f.metrics.transitions)
}

func TestUpdate_NoEditableSiTerminal(t *testing.T) {
	f := newFixture(t)
	in := f.create(t, lineReq("A", 1, 80, 0))

	out, err := f.svc.Update(ctx, actor, in.ID, dto.InterventionRequest{
		VehicleID: "v1", Description: "Vidange complète", Diagnosis: "Filtre colmaté",
		Items: []dto.LineItemRequest{lineReq("A", 3, 80, 0), {Designation: "Main d'oeuvre", Quantity: 1, UnitPrice: decimal.NewFromInt(150)}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Filtre colmaté", out.Diagnosis)
	require.Len(t, out.Items, 2)
	assert.True(t, decimal.NewFromInt(390).Equal(out.Subtotal))

	_, err = f.svc.ChangeStatus(ctx, actor, in.ID, "Annulée")
	require.NoError(t, err)
	_, err = f.svc.Update(ctx, actor, in.ID, dto.InterventionRequest{VehicleID: "v1", Description: "x"})
	assert.ErrorIs(t, err, domain.ErrPreconditionFailed)
}

func TestAssignTechnician_NoCambiaEstado(t *testing.T) {
	f := newFixture(t)
	in := f.create(t)

	out, err := f.svc.AssignTechnician(ctx, actor, in.ID, "t1")
	require.NoError(t, err)
	assert.Equal(t, "Youssef Alami", out.TechnicianName)
	assert.Equal(t, string(entity.StatusPending), out.Status)

	_, err = f.svc.AssignTechnician(ctx, actor, in.ID, "t404")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err = f.svc.AssignTechnician(ctx, actor, in.ID, "")
	require.NoError(t, err)
	assert.Empty(t, out.TechnicianID)
}

func TestList_PaginaYEstadisticas(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 3; i++ {
		f.create(t)
	}
	first := f.create(t)
	_, err := f.svc.ChangeStatus(ctx, actor, first.ID, "En cours")
	require.NoError(t, err)

	out, err := f.svc.List(ctx, "", "", 1)
	require.NoError(t, err)
	assert.Len(t, out.Items, 2)
	assert.Equal(t, 4, out.Total)
	assert.Equal(t, 2, out.TotalPages)
	assert.Len(t, out.Stats, len(entity.InterventionStatuses))
	assert.Equal(t, 3, out.Stats["En attente"])
	assert.Equal(t, 1, out.Stats["En cours"])
	assert.Equal(t, 0, out.Stats["Facturée"])

	out, err = f.svc.List(ctx, "En cours", "1234", 1)
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, first.ID, out.Items[0].ID)
	assert.Equal(t, 3, out.Stats["En attente"], "las estadísticas ignoran el filtro de estado")

	out, err = f.svc.List(ctx, "", "bennani", 0)
	require.NoError(t, err)
	assert.Equal(t, 4, out.Total)

	_, err = f.svc.List(ctx, "Livrée", "", 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestList_PaginaEnorme(t *testing.T) {
	f := newFixture(t)
	f.create(t)

	out, err := f.svc.List(ctx, "", "", math.MaxInt)
	require.NoError(t, err)
	assert.Equal(t, MaxPage, out.Page)
	assert.Empty(t, out.Items)
	assert.Equal(t, 1, out.Total)
}

func TestCalendar_AgrupaPorFecha(t *testing.T) {
	f := newFixture(t)
	for _, d := range []string{"2024-03-05", "2024-03-04", "2024-03-05"} {
		d := d
		_, err := f.svc.Create(ctx, actor, dto.InterventionRequest{VehicleID: "v1", Description: "RDV", ScheduledDate: &d})
		require.NoError(t, err)
	}
	f.create(t)

	days, err := f.svc.Calendar(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, "2024-03-04", days[0].Date)
	assert.Len(t, days[0].Interventions, 1)
	assert.Equal(t, "2024-03-05", days[1].Date)
	assert.Len(t, days[1].Interventions, 2)
}

func TestDelete_SoloPendienteOAnulada(t *testing.T) {
	f := newFixture(t)
	in := f.create(t)
	_, err := f.svc.ChangeStatus(ctx, actor, in.ID, "En cours")
	require.NoError(t, err)
	assert.ErrorIs(t, f.svc.Delete(ctx, actor, in.ID), domain.ErrPreconditionFailed)

	other := f.create(t)
	require.NoError(t, f.svc.Delete(ctx, actor, other.ID))
	_, err = f.svc.Get(ctx, other.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOrder_CopiaLineas(t *testing.T) {
	f := newFixture(t)
	in := f.create(t, lineReq("A", 2, 80, 10), lineReq("B", 1, 120, 0), dto.LineItemRequest{
		Designation: "Main d'oeuvre", Quantity: 1, UnitPrice: decimal.RequireFromString("150.50"),
	})

	order, err := f.orders.CreateFromIntervention(ctx, actor, in.ID)
	require.NoError(t, err)
	require.Len(t, order.Items, len(in.Items))
	for i, src := range in.Items {
		got := order.Items[i]
		assert.Equal(t, src.ArticleID, got.ArticleID)
		assert.Equal(t, src.Quantity, got.Quantity)
		assert.True(t, src.UnitPrice.Equal(got.UnitPrice))
		assert.True(t, src.DiscountPct.Equal(got.DiscountPct))
		assert.True(t, src.LineTotal.Equal(got.LineTotal))
	}

	after, err := f.svc.Get(ctx, in.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, after.OrderID)
	assert.Equal(t, string(entity.StatusPending), after.Status, "derivar pedido no cambia el estado")
	assert.Equal(t, 1, f.metrics.orders)

	_, err = f.orders.CreateFromIntervention(ctx, actor, in.ID)
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	got, err := f.orders.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, in.ID, got.InterventionID)
}

func TestOrder_Precondiciones(t *testing.T) {
	f := newFixture(t)
	empty := f.create(t)
	_, err := f.orders.CreateFromIntervention(ctx, actor, empty.ID)
	assert.ErrorIs(t, err, domain.ErrPreconditionFailed)

	cancelled := f.create(t, lineReq("A", 1, 80, 0))
	_, err = f.svc.ChangeStatus(ctx, actor, cancelled.ID, "Annulée")
	require.NoError(t, err)
	_, err = f.orders.CreateFromIntervention(ctx, actor, cancelled.ID)
	assert.ErrorIs(t, err, domain.ErrPreconditionFailed)

	_, err = f.orders.CreateFromIntervention(ctx, actor, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOrder_RollbackSiFallaVinculo(t *testing.T) {
	f := newFixture(t)
	in := f.create(t, lineReq("A", 1, 80, 0))
	f.st.FailOn = "interventions.update"

	_, err := f.orders.CreateFromIntervention(ctx, actor, in.ID)
	assert.ErrorIs(t, err, memory.ErrInjected)
	f.st.FailOn = ""

	o, err := f.st.Orders().GetByInterventionID(ctx, in.ID)
	require.NoError(t, err)
	assert.Nil(t, o, "el pedido no debe persistir")

	_, err = f.orders.CreateFromIntervention(ctx, actor, in.ID)
	assert.NoError(t, err)
}
