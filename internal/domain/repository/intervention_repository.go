package repository

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// InterventionFilter criterios del listado. El repositorio construye el WHERE
// únicamente con parámetros posicionales a partir de estos campos.
type InterventionFilter struct {
	Status *entity.InterventionStatus
	Search string // matrícula, apellido/nombre del cliente o descripción
	Limit  int    // 0 = sin límite
	Offset int
}

// InterventionRepository define el puerto de persistencia para Intervention y sus líneas.
type InterventionRepository interface {
	// Create inserta la intervención y sus líneas.
	Create(ctx context.Context, in *entity.Intervention) error
	// GetByID devuelve la intervención con sus líneas, o (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Intervention, error)
	GetView(ctx context.Context, id string) (*entity.InterventionView, error)
	List(ctx context.Context, f InterventionFilter) ([]*entity.InterventionView, int, error)
	// CountByStatus cuenta por estado aplicando solo Search del filtro.
	CountByStatus(ctx context.Context, f InterventionFilter) (map[entity.InterventionStatus]int, error)
	// Calendar lista las intervenciones con fecha programada, ordenadas por fecha.
	Calendar(ctx context.Context, f InterventionFilter) ([]*entity.InterventionView, error)
	ListByClient(ctx context.Context, clientID string) ([]*entity.InterventionView, error)
	// Update actualiza campos, estado, técnico, fechas y vínculos (no las líneas).
	Update(ctx context.Context, in *entity.Intervention) error
	ReplaceLines(ctx context.Context, interventionID string, lines []entity.LineItem) error
	Delete(ctx context.Context, id string) error
}
