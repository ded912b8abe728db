package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

// Acciones registradas en el log de auditoría.
const (
	ActionCreate   = "create"
	ActionUpdate   = "update"
	ActionDelete   = "delete"
	ActionStatus   = "status"
	ActionAssign   = "assign"
	ActionOrder    = "order"
	ActionInvoice  = "invoice"
	ActionPayment  = "payment"
	ActionSettings = "settings"
)

// NewAuditEntry arma la entrada para el actor.
func NewAuditEntry(actor Actor, action, entityName, entityID, details string) *entity.AuditEntry {
	return &entity.AuditEntry{
		ID:        uuid.New().String(),
		UserID:    actor.UserID,
		Action:    action,
		Entity:    entityName,
		EntityID:  entityID,
		Details:   details,
		CreatedAt: time.Now(),
	}
}

// Auditor registra acciones fuera de transacción. Un fallo se loguea y no se propaga.
// Dentro de una transacción usar TxRepos.Audit para que la entrada siga al commit.
type Auditor struct {
	repo repository.AuditRepository
	log  *logger.Logger
}

// NewAuditor construye el auditor.
func NewAuditor(repo repository.AuditRepository, log *logger.Logger) *Auditor {
	if log == nil {
		log = logger.Nop()
	}
	return &Auditor{repo: repo, log: log.Component("audit")}
}

// Record agrega la entrada (best-effort).
func (a *Auditor) Record(ctx context.Context, actor Actor, action, entityName, entityID, details string) {
	if a == nil || a.repo == nil {
		return
	}
	if err := a.repo.Append(ctx, NewAuditEntry(actor, action, entityName, entityID, details)); err != nil {
		a.log.Warn().Err(err).
			Str("action", action).
			Str("entity", entityName).
			Str("entity_id", entityID).
			Msg("no se pudo registrar auditoría")
	}
}
