package repository

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// TechnicianRepository define el puerto de persistencia para Technician.
type TechnicianRepository interface {
	Create(ctx context.Context, t *entity.Technician) error
	GetByID(ctx context.Context, id string) (*entity.Technician, error)
	List(ctx context.Context) ([]*entity.Technician, error)
	Update(ctx context.Context, t *entity.Technician) error
	Delete(ctx context.Context, id string) error
}
