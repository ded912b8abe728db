package billing

import (
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Options parámetros de facturación (de config.BillingConfig).
type Options struct {
	DefaultTVARate  decimal.Decimal
	InvoicePrefix   string
	CurrencyWord    string
	// IsPaymentMethod indica si el modo de pago está permitido.
	IsPaymentMethod func(method string) bool
}

// Metrics contadores de facturación. Nil = sin métricas.
type Metrics interface {
	InvoiceCreated()
	StatusChanged(from, to entity.InterventionStatus)
}

type noMetrics struct{}

func (noMetrics) InvoiceCreated()                              {}
func (noMetrics) StatusChanged(_, _ entity.InterventionStatus) {}
