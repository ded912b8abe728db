// Package memory implementa los puertos de persistencia en memoria.
// Lo usan las pruebas de casos de uso y handlers; el servidor usa postgres.
package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// ErrInjected error provocado con FailOn (pruebas de rollback).
var ErrInjected = errors.New("memory: fallo inyectado")

// Store datos en memoria. Guarda copias: mutar lo devuelto no altera el store.
type Store struct {
	mu sync.Mutex

	clients       map[string]entity.Client
	vehicles      map[string]entity.Vehicle
	technicians   map[string]entity.Technician
	interventions map[string]entity.Intervention
	orders        map[string]entity.Order
	invoices      map[string]entity.Invoice
	settings      *entity.CompanySettings
	audit         []entity.AuditEntry
	seq           int64

	categories    []entity.Category
	articles      []entity.Article
	offers        []entity.Offer
	offerArticles []entity.OfferArticle

	// FailOn nombre de operación ("invoices.create", "interventions.update", ...) que devolverá ErrInjected.
	FailOn string
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		clients:       map[string]entity.Client{},
		vehicles:      map[string]entity.Vehicle{},
		technicians:   map[string]entity.Technician{},
		interventions: map[string]entity.Intervention{},
		orders:        map[string]entity.Order{},
		invoices:      map[string]entity.Invoice{},
	}
}

func (s *Store) fail(op string) error {
	if s.FailOn == op {
		return ErrInjected
	}
	return nil
}

// snapshot copia superficial de los mapas; las líneas se copian al guardar, así que basta.
type snapshot struct {
	clients       map[string]entity.Client
	vehicles      map[string]entity.Vehicle
	technicians   map[string]entity.Technician
	interventions map[string]entity.Intervention
	orders        map[string]entity.Order
	invoices      map[string]entity.Invoice
	settings      *entity.CompanySettings
	audit         []entity.AuditEntry
	seq           int64
}

func copyMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot{
		clients:       copyMap(s.clients),
		vehicles:      copyMap(s.vehicles),
		technicians:   copyMap(s.technicians),
		interventions: copyMap(s.interventions),
		orders:        copyMap(s.orders),
		invoices:      copyMap(s.invoices),
		settings:      s.settings,
		audit:         append([]entity.AuditEntry(nil), s.audit...),
		seq:           s.seq,
	}
}

func (s *Store) restore(sn snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients = sn.clients
	s.vehicles = sn.vehicles
	s.technicians = sn.technicians
	s.interventions = sn.interventions
	s.orders = sn.orders
	s.invoices = sn.invoices
	s.settings = sn.settings
	s.audit = sn.audit
	s.seq = sn.seq
}

// Run ejecuta fn y descarta todos sus cambios si devuelve error.
func (s *Store) Run(ctx context.Context, fn func(r repository.TxRepos) error) error {
	sn := s.snapshot()
	if err := fn(s.Repos()); err != nil {
		s.restore(sn)
		return err
	}
	return nil
}

var _ repository.TxRunner = (*Store)(nil)

// Repos todos los repositorios sobre este store.
func (s *Store) Repos() repository.TxRepos {
	return repository.TxRepos{
		Clients:       s.Clients(),
		Vehicles:      s.Vehicles(),
		Interventions: s.Interventions(),
		Orders:        s.Orders(),
		Invoices:      s.Invoices(),
		Audit:         s.Audit(),
	}
}

// AuditEntries copia del log de auditoría.
func (s *Store) AuditEntries() []entity.AuditEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.AuditEntry(nil), s.audit...)
}

func copyLines(in []entity.LineItem) []entity.LineItem {
	if in == nil {
		return nil
	}
	return append([]entity.LineItem(nil), in...)
}
