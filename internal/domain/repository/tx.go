package repository

import "context"

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Clients       ClientRepository
	Vehicles      VehicleRepository
	Interventions InterventionRepository
	Orders        OrderRepository
	Invoices      InvoiceRepository
	Audit         AuditRepository
}

// TxRunner ejecuta fn dentro de una transacción: Commit si fn devuelve nil, Rollback en otro caso.
type TxRunner interface {
	Run(ctx context.Context, fn func(r TxRepos) error) error
}
