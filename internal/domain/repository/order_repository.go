package repository

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order.
// Create devuelve domain.ErrDuplicate si la intervención ya tiene pedido.
type OrderRepository interface {
	Create(ctx context.Context, o *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	GetByInterventionID(ctx context.Context, interventionID string) (*entity.Order, error)
}
