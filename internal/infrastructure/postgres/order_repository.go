package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create inserta el pedido y sus líneas. La restricción única sobre intervention_id
// convierte un segundo pedido de la misma intervención en domain.ErrDuplicate.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO orders (id, intervention_id, created_at) VALUES ($1, $2, $3)`,
		o.ID, o.InterventionID, o.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return orderItems.insert(ctx, r.q, o.ID, o.Lines)
}

func (r *OrderRepo) getBy(ctx context.Context, column, value string) (*entity.Order, error) {
	var o entity.Order
	err := r.q.QueryRow(ctx,
		`SELECT id, intervention_id, created_at FROM orders WHERE `+column+` = $1`, value,
	).Scan(&o.ID, &o.InterventionID, &o.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if o.Lines, err = orderItems.list(ctx, r.q, o.ID); err != nil {
		return nil, err
	}
	return &o, nil
}

// GetByID obtiene un pedido con sus líneas.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return r.getBy(ctx, "id", id)
}

// GetByInterventionID obtiene el pedido de la intervención, si existe.
func (r *OrderRepo) GetByInterventionID(ctx context.Context, interventionID string) (*entity.Order, error) {
	return r.getBy(ctx, "intervention_id", interventionID)
}
