package workshop

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// LineExpander valida las líneas y agrega artículos y ofertas desglosadas (fusión por artículo).
type LineExpander interface {
	Expand(ctx context.Context, base []entity.LineItem, articleIDs, offerIDs []string) ([]entity.LineItem, error)
}

// Metrics contadores del taller. Nil = sin métricas.
type Metrics interface {
	StatusChanged(from, to entity.InterventionStatus)
	OrderCreated()
}

type noMetrics struct{}

func (noMetrics) StatusChanged(_, _ entity.InterventionStatus) {}
func (noMetrics) OrderCreated()                                {}
