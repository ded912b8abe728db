package entity

import "time"

// Order pedido derivado de una intervención (como máximo uno por intervención).
type Order struct {
	ID             string
	InterventionID string
	Lines          []LineItem
	CreatedAt      time.Time
}
