package workshop

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/usecase"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/pricing"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// OrderService deriva pedidos de intervenciones (como máximo uno por intervención).
type OrderService struct {
	interventions repository.InterventionRepository
	orders        repository.OrderRepository
	tx            repository.TxRunner
	metrics       Metrics
}

// NewOrderService construye el servicio.
func NewOrderService(
	interventions repository.InterventionRepository,
	orders repository.OrderRepository,
	tx repository.TxRunner,
	metrics Metrics,
) *OrderService {
	if metrics == nil {
		metrics = noMetrics{}
	}
	return &OrderService{interventions: interventions, orders: orders, tx: tx, metrics: metrics}
}

// CreateFromIntervention copia las líneas de la intervención a un nuevo pedido y lo vincula.
// Un segundo pedido para la misma intervención devuelve domain.ErrDuplicate.
// No cambia el estado de la intervención.
func (s *OrderService) CreateFromIntervention(ctx context.Context, actor usecase.Actor, interventionID string) (*dto.OrderResponse, error) {
	in, err := s.interventions.GetByID(ctx, interventionID)
	if err != nil {
		return nil, err
	}
	if in == nil {
		return nil, domain.ErrNotFound
	}
	if in.Status == entity.StatusCancelled {
		return nil, fmt.Errorf("%w: intervención annulée", domain.ErrPreconditionFailed)
	}
	if len(in.Lines) == 0 {
		return nil, fmt.Errorf("%w: la intervención no tiene líneas", domain.ErrPreconditionFailed)
	}
	if in.OrderID != "" {
		return nil, fmt.Errorf("%w: la intervención ya tiene el pedido %s", domain.ErrDuplicate, in.OrderID)
	}

	order := &entity.Order{
		ID:             uuid.New().String(),
		InterventionID: in.ID,
		Lines:          entity.CloneLines(in.Lines),
		CreatedAt:      time.Now(),
	}
	in.OrderID = order.ID
	in.UpdatedAt = order.CreatedAt

	err = s.tx.Run(ctx, func(r repository.TxRepos) error {
		if err := r.Orders.Create(ctx, order); err != nil {
			return err
		}
		if err := r.Interventions.Update(ctx, in); err != nil {
			return err
		}
		return r.Audit.Append(ctx, usecase.NewAuditEntry(actor, usecase.ActionOrder, "intervention", in.ID, order.ID))
	})
	if err != nil {
		return nil, err
	}
	s.metrics.OrderCreated()
	return orderToResponse(order), nil
}

// Get obtiene un pedido con sus líneas.
func (s *OrderService) Get(ctx context.Context, id string) (*dto.OrderResponse, error) {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	return orderToResponse(o), nil
}

func orderToResponse(o *entity.Order) *dto.OrderResponse {
	return &dto.OrderResponse{
		ID:             o.ID,
		InterventionID: o.InterventionID,
		CreatedAt:      o.CreatedAt.Format(time.RFC3339),
		Items:          usecase.LineResponses(o.Lines),
		Subtotal:       pricing.Subtotal(o.Lines),
	}
}
