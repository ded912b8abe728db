package repository

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// VehicleFilter criterios del listado de vehículos (campos vacíos = sin filtro).
type VehicleFilter struct {
	ClientID string
	Status   entity.VehicleStatus
	Search   string // matrícula, marca o modelo
	Limit    int
	Offset   int
}

// VehicleRepository define el puerto de persistencia para Vehicle.
type VehicleRepository interface {
	Create(ctx context.Context, v *entity.Vehicle) error
	GetByID(ctx context.Context, id string) (*entity.Vehicle, error)
	List(ctx context.Context, f VehicleFilter) ([]*entity.Vehicle, error)
	Update(ctx context.Context, v *entity.Vehicle) error
	Delete(ctx context.Context, id string) error
}
