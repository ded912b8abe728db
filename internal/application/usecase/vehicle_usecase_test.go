package usecase

import (
	"testing"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validVehicle() dto.VehicleRequest {
	next := "2025-06-30"
	return dto.VehicleRequest{
		ClientID: "c1", Plate: " 1234-a-5 ", Make: "Renault", Model: "Clio",
		Year: 2018, Odometer: 120000, FuelType: "diesel", NextInspectionDate: &next,
	}
}

func TestVehicleUseCase_Create(t *testing.T) {
	st, audit := newStore()
	seedClient(st, "c1")
	uc := NewVehicleUseCase(st.Vehicles(), st.Clients(), audit)

	out, err := uc.Create(ctx, admin, validVehicle())
	require.NoError(t, err)
	assert.Equal(t, "1234-A-5", out.Plate)
	assert.Equal(t, "actif", out.Status)
	assert.Equal(t, "2025-06-30", out.NextInspectionDate)

	_, err = uc.Create(ctx, admin, validVehicle())
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestVehicleUseCase_Validacion(t *testing.T) {
	st, audit := newStore()
	seedClient(st, "c1")
	uc := NewVehicleUseCase(st.Vehicles(), st.Clients(), audit)

	bad := validVehicle()
	bad.ClientID = "inconnu"
	bad.FuelType = "charbon"
	bad.Status = "vendu"
	bad.Year = 1800
	bad.Odometer = -5
	date := "30/06/2025"
	bad.LastServiceDate = &date

	_, err := uc.Create(ctx, admin, bad)
	fields, ok := domain.FieldErrors(err)
	require.True(t, ok)
	for _, f := range []string{"client_id", "fuel_type", "status", "year", "odometer", "last_service_date"} {
		assert.Contains(t, fields, f)
	}
}

func TestVehicleUseCase_ListYUpdate(t *testing.T) {
	st, audit := newStore()
	seedClient(st, "c1")
	seedVehicle(st, "v1", "c1", "1111-B-1")
	seedVehicle(st, "v2", "c1", "2222-B-2")
	uc := NewVehicleUseCase(st.Vehicles(), st.Clients(), audit)

	req := validVehicle()
	req.Plate = "1111-B-1"
	req.Status = "maintenance"
	_, err := uc.Update(ctx, admin, "v1", req)
	require.NoError(t, err)

	list, err := uc.List(ctx, "c1", "maintenance", "", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Renault", list[0].Make)

	req.Plate = "2222-B-2"
	_, err = uc.Update(ctx, admin, "v1", req)
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	require.NoError(t, uc.Delete(ctx, admin, "v2"))
	_, err = uc.GetByID(ctx, "v2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
