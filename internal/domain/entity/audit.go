package entity

import "time"

// AuditEntry registro genérico de acciones (tabla de log).
type AuditEntry struct {
	ID        string
	UserID    string
	Action    string // create, update, delete, status, ...
	Entity    string
	EntityID  string
	Details   string
	CreatedAt time.Time
}
