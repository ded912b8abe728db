package entity

import "time"

// InterventionStatus estado del flujo de trabajo de una intervención.
type InterventionStatus string

const (
	StatusPending    InterventionStatus = "En attente"
	StatusInProgress InterventionStatus = "En cours"
	StatusDone       InterventionStatus = "Terminée"
	StatusInvoiced   InterventionStatus = "Facturée"
	StatusCancelled  InterventionStatus = "Annulée"
)

// InterventionStatuses en el orden del flujo (estadísticas y filtros).
var InterventionStatuses = []InterventionStatus{
	StatusPending, StatusInProgress, StatusDone, StatusInvoiced, StatusCancelled,
}

// Valid indica si el estado es conocido.
func (s InterventionStatus) Valid() bool {
	for _, st := range InterventionStatuses {
		if s == st {
			return true
		}
	}
	return false
}

// Intervention trabajo de reparación sobre un vehículo.
type Intervention struct {
	ID                 string
	VehicleID          string
	TechnicianID       string // vacío = sin asignar
	Status             InterventionStatus
	ScheduledDate      *time.Time
	StartDate          *time.Time
	EndDate            *time.Time
	NextInspectionDate *time.Time
	OdometerAtVisit    int
	Description        string
	Diagnosis          string
	Comment            string
	OrderID            string
	InvoiceID          string
	Lines              []LineItem
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// InterventionView fila de listado con datos del vehículo, cliente y técnico.
type InterventionView struct {
	Intervention
	Plate               string
	VehicleLabel        string
	ClientID            string
	ClientName          string
	TechnicianName      string
	TechnicianSpecialty string
}
