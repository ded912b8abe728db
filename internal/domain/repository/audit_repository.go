package repository

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// AuditRepository registro de acciones.
type AuditRepository interface {
	Append(ctx context.Context, e *entity.AuditEntry) error
}
