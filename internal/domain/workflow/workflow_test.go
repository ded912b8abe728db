package workflow

import (
	"testing"
	"time"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTransition_Matriz(t *testing.T) {
	allowed := map[[2]entity.InterventionStatus]bool{
		{entity.StatusPending, entity.StatusInProgress}:   true,
		{entity.StatusPending, entity.StatusCancelled}:    true,
		{entity.StatusInProgress, entity.StatusDone}:      true,
		{entity.StatusInProgress, entity.StatusCancelled}: true,
		{entity.StatusDone, entity.StatusInvoiced}:        true,
		{entity.StatusDone, entity.StatusCancelled}:       true,
	}
	for _, from := range entity.InterventionStatuses {
		for _, to := range entity.InterventionStatuses {
			err := ValidateTransition(from, to)
			if allowed[[2]entity.InterventionStatus{from, to}] {
				assert.NoError(t, err, "%s → %s", from, to)
				continue
			}
			assert.ErrorIs(t, err, domain.ErrInvalidTransition, "%s → %s", from, to)
			assert.ErrorIs(t, err, domain.ErrPreconditionFailed)
		}
	}
}

func TestTerminales(t *testing.T) {
	assert.True(t, IsTerminal(entity.StatusInvoiced))
	assert.True(t, IsTerminal(entity.StatusCancelled))
	assert.False(t, IsTerminal(entity.StatusDone))
	assert.Empty(t, Next(entity.StatusInvoiced))
	assert.Empty(t, Next(entity.StatusCancelled))
	assert.Equal(t, []entity.InterventionStatus{entity.StatusInProgress, entity.StatusCancelled}, Next(entity.StatusPending))
}

func TestCanInvoice_SoloTerminee(t *testing.T) {
	for _, s := range entity.InterventionStatuses {
		err := CanInvoice(s)
		if s == entity.StatusDone {
			assert.NoError(t, err)
			continue
		}
		assert.ErrorIs(t, err, domain.ErrPreconditionFailed, "estado %s", s)
	}
}

func TestApply_SellaFechas(t *testing.T) {
	now := time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC)
	in := &entity.Intervention{Status: entity.StatusPending}

	require.NoError(t, Apply(in, entity.StatusInProgress, now))
	require.NotNil(t, in.StartDate)
	assert.Equal(t, now, *in.StartDate)
	assert.Nil(t, in.EndDate)

	later := now.Add(3 * time.Hour)
	require.NoError(t, Apply(in, entity.StatusDone, later))
	assert.Equal(t, now, *in.StartDate)
	require.NotNil(t, in.EndDate)
	assert.Equal(t, later, *in.EndDate)
	assert.Equal(t, entity.StatusDone, in.Status)
	assert.Equal(t, later, in.UpdatedAt)
}

func TestApply_FactureeRequiereFactura(t *testing.T) {
	in := &entity.Intervention{Status: entity.StatusDone}
	err := Apply(in, entity.StatusInvoiced, time.Now())
	assert.ErrorIs(t, err, domain.ErrPreconditionFailed)
	assert.Equal(t, entity.StatusDone, in.Status)

	in.InvoiceID = "inv-1"
	assert.NoError(t, Apply(in, entity.StatusInvoiced, time.Now()))
	assert.Equal(t, entity.StatusInvoiced, in.Status)
}

func TestApply_EstadoDesconocido(t *testing.T) {
	in := &entity.Intervention{Status: entity.StatusPending}
	assert.ErrorIs(t, Apply(in, "Livrée", time.Now()), domain.ErrInvalidInput)
	assert.ErrorIs(t, Apply(in, entity.StatusDone, time.Now()), domain.ErrInvalidTransition)
	assert.Equal(t, entity.StatusPending, in.Status)
}

func TestCanEditAndDelete(t *testing.T) {
	assert.NoError(t, CanEditLines(entity.StatusDone))
	assert.ErrorIs(t, CanEditLines(entity.StatusInvoiced), domain.ErrPreconditionFailed)
	assert.NoError(t, CanDelete(entity.StatusPending))
	assert.NoError(t, CanDelete(entity.StatusCancelled))
	assert.ErrorIs(t, CanDelete(entity.StatusInProgress), domain.ErrPreconditionFailed)
}
