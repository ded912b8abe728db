package usecase

import (
	"testing"
	"time"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientUseCase_Create_Validacion(t *testing.T) {
	st, audit := newStore()
	uc := newClientUC(st, audit)

	cases := []struct {
		name  string
		in    dto.ClientRequest
		field string
	}{
		{"tipo desconocido", dto.ClientRequest{Type: "autre", Email: "a@b.ma", Phone: "1"}, "type"},
		{"particular sin nombre", dto.ClientRequest{Type: "particulier", LastName: "X", Email: "a@b.ma", Phone: "1"}, "first_name"},
		{"sociedad sin RCC", dto.ClientRequest{Type: "societe", CompanyName: "Atlas SARL", Email: "a@b.ma", Phone: "1"}, "registration_number"},
		{"plazo fuera de rango", dto.ClientRequest{Type: "societe", CompanyName: "Atlas", RegistrationNumber: "RC1", PaymentTermDays: 61, Email: "a@b.ma", Phone: "1"}, "payment_term_days"},
		{"plazo negativo", dto.ClientRequest{Type: "societe", CompanyName: "Atlas", RegistrationNumber: "RC1", PaymentTermDays: -1, Email: "a@b.ma", Phone: "1"}, "payment_term_days"},
		{"email inválido", dto.ClientRequest{Type: "particulier", FirstName: "A", LastName: "B", Email: "pas-un-email", Phone: "1"}, "email"},
		{"sin teléfono", dto.ClientRequest{Type: "particulier", FirstName: "A", LastName: "B", Email: "a@b.ma"}, "phone"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(ctx, admin, tc.in)
			fields, ok := domain.FieldErrors(err)
			require.True(t, ok, "se esperaba error de validación")
			assert.Contains(t, fields, tc.field)
		})
	}
	list, err := uc.List(ctx, "", "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestClientUseCase_Create_Particular(t *testing.T) {
	st, audit := newStore()
	uc := newClientUC(st, audit)

	out, err := uc.Create(ctx, admin, dto.ClientRequest{
		Type: "particulier", FirstName: " Karim ", LastName: "Bennani",
		CompanyName: "ignorado", PaymentTermDays: 30,
		Email: "karim@example.ma", Phone: "0612345678",
	})
	require.NoError(t, err)
	assert.Equal(t, "Karim Bennani", out.DisplayName)
	assert.Empty(t, out.CompanyName)
	assert.Equal(t, 0, out.PaymentTermDays)

	entries := st.AuditEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, ActionCreate, entries[0].Action)
	assert.Equal(t, out.ID, entries[0].EntityID)
	assert.Equal(t, admin.UserID, entries[0].UserID)
}

func TestClientUseCase_Create_RollbackSiFallaAuditoria(t *testing.T) {
	st, audit := newStore()
	uc := newClientUC(st, audit)
	st.FailOn = "audit.append"

	_, err := uc.Create(ctx, admin, dto.ClientRequest{
		Type: "societe", CompanyName: "Atlas Transport", RegistrationNumber: "RC-4411",
		PaymentTermDays: 60, Email: "compta@atlas.ma", Phone: "0522000000",
	})
	assert.ErrorIs(t, err, memory.ErrInjected)

	st.FailOn = ""
	list, err := uc.List(ctx, "", "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items, "el cliente no debe quedar persistido")
}

func TestClientUseCase_Detail_Saldo(t *testing.T) {
	st, audit := newStore()
	uc := newClientUC(st, audit)
	seedClient(st, "c1")
	seedVehicle(st, "v1", "c1", "1234-A-5")

	for i, status := range []entity.PaymentStatus{entity.PaymentPaid, entity.PaymentUnpaid, entity.PaymentUnpaid} {
		require.NoError(t, st.Invoices().Create(ctx, &entity.Invoice{
			ID: string(rune('a' + i)), ClientID: "c1", Number: "FA-2024-00000" + string(rune('1'+i)),
			Date: time.Now(), TotalTTC: decimal.NewFromInt(int64(100 * (i + 1))), PaymentStatus: status,
		}))
	}

	out, err := uc.Detail(ctx, "c1")
	require.NoError(t, err)
	assert.Len(t, out.Vehicles, 1)
	assert.Len(t, out.Invoices, 3)
	assert.True(t, decimal.NewFromInt(600).Equal(out.TotalInvoiced))
	assert.True(t, decimal.NewFromInt(100).Equal(out.TotalPaid))
	assert.True(t, decimal.NewFromInt(500).Equal(out.Balance))

	_, err = uc.Detail(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClientUseCase_Delete(t *testing.T) {
	st, audit := newStore()
	uc := newClientUC(st, audit)
	seedClient(st, "c1")
	seedClient(st, "c2")
	seedVehicle(st, "v1", "c1", "1234-A-5")

	assert.ErrorIs(t, uc.Delete(ctx, admin, "c1"), domain.ErrConflict)
	require.NoError(t, uc.Delete(ctx, admin, "c2"))
	_, err := uc.GetByID(ctx, "c2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, admin, "c2"), domain.ErrNotFound)
}

func TestClientUseCase_ListBusqueda(t *testing.T) {
	st, audit := newStore()
	uc := newClientUC(st, audit)
	seedClient(st, "c1")
	_, err := uc.Create(ctx, admin, dto.ClientRequest{
		Type: "societe", CompanyName: "Atlas Transport", RegistrationNumber: "RC-4411",
		Email: "compta@atlas.ma", Phone: "0522000000",
	})
	require.NoError(t, err)

	out, err := uc.List(ctx, "atlas", "", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Atlas Transport", out.Items[0].DisplayName)

	out, err = uc.List(ctx, "", "particulier", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, 1, out.Page.Total)
	assert.Equal(t, 20, out.Page.Limit)
}
