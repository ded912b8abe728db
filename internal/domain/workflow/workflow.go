// Package workflow aplica el flujo de estados de una intervención:
// En attente → En cours → Terminée → Facturée, con Annulée desde cualquier estado no terminal.
package workflow

import (
	"fmt"
	"time"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// allowedTransitions estados alcanzables desde cada estado. Los terminales no tienen entrada.
var allowedTransitions = map[entity.InterventionStatus][]entity.InterventionStatus{
	entity.StatusPending:    {entity.StatusInProgress, entity.StatusCancelled},
	entity.StatusInProgress: {entity.StatusDone, entity.StatusCancelled},
	entity.StatusDone:       {entity.StatusInvoiced, entity.StatusCancelled},
}

// Next devuelve los estados alcanzables desde current (vacío si es terminal).
func Next(current entity.InterventionStatus) []entity.InterventionStatus {
	return append([]entity.InterventionStatus(nil), allowedTransitions[current]...)
}

// IsTerminal indica si el estado ya no admite cambios.
func IsTerminal(s entity.InterventionStatus) bool {
	return s == entity.StatusInvoiced || s == entity.StatusCancelled
}

// ValidateTransition devuelve domain.ErrInvalidTransition si from → to no está permitido.
func ValidateTransition(from, to entity.InterventionStatus) error {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s → %s", domain.ErrInvalidTransition, from, to)
}

// CanInvoice solo una intervención Terminée puede facturarse.
func CanInvoice(s entity.InterventionStatus) error {
	if s != entity.StatusDone {
		return fmt.Errorf("%w: la intervención debe estar %q para facturar (estado actual %q)",
			domain.ErrPreconditionFailed, entity.StatusDone, s)
	}
	return nil
}

// CanEditLines las líneas se editan mientras la intervención no sea terminal.
func CanEditLines(s entity.InterventionStatus) error {
	if IsTerminal(s) {
		return fmt.Errorf("%w: intervención %q no editable", domain.ErrPreconditionFailed, s)
	}
	return nil
}

// CanDelete solo se eliminan intervenciones en attente o annulées.
func CanDelete(s entity.InterventionStatus) error {
	if s != entity.StatusPending && s != entity.StatusCancelled {
		return fmt.Errorf("%w: solo se eliminan intervenciones %q o %q",
			domain.ErrPreconditionFailed, entity.StatusPending, entity.StatusCancelled)
	}
	return nil
}

// Apply valida y aplica el cambio de estado sobre in, sellando las fechas:
// En cours fija StartDate y Terminée fija EndDate si están vacías.
// Facturée exige una factura ya vinculada (InvoiceID).
func Apply(in *entity.Intervention, to entity.InterventionStatus, now time.Time) error {
	if !to.Valid() {
		return fmt.Errorf("%w: estado desconocido %q", domain.ErrInvalidInput, to)
	}
	if err := ValidateTransition(in.Status, to); err != nil {
		return err
	}
	if to == entity.StatusInvoiced && in.InvoiceID == "" {
		return fmt.Errorf("%w: Facturée requiere una factura vinculada", domain.ErrPreconditionFailed)
	}
	switch to {
	case entity.StatusInProgress:
		if in.StartDate == nil {
			t := now
			in.StartDate = &t
		}
	case entity.StatusDone:
		if in.EndDate == nil {
			t := now
			in.EndDate = &t
		}
	}
	in.Status = to
	in.UpdatedAt = now
	return nil
}
