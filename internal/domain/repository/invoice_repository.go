package repository

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// InvoiceFilter criterios del listado de facturas.
type InvoiceFilter struct {
	ClientID      string
	PaymentStatus entity.PaymentStatus
	Limit         int
	Offset        int
}

// InvoiceRepository define el puerto de persistencia para Invoice y sus líneas.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *entity.Invoice) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	List(ctx context.Context, f InvoiceFilter) ([]*entity.Invoice, error)
	// NextSequence devuelve el siguiente valor de la secuencia de numeración.
	NextSequence(ctx context.Context) (int64, error)
	// UpdatePayment registra estado, método y fecha de pago solo si la factura sigue
	// Non payée; si ya estaba pagada devuelve domain.ErrConflict.
	UpdatePayment(ctx context.Context, inv *entity.Invoice) error
}
