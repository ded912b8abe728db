package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var (
	_ repository.ClientRepository       = clientRepo{}
	_ repository.VehicleRepository      = vehicleRepo{}
	_ repository.TechnicianRepository   = technicianRepo{}
	_ repository.InterventionRepository = interventionRepo{}
	_ repository.OrderRepository        = orderRepo{}
	_ repository.InvoiceRepository      = invoiceRepo{}
	_ repository.SettingsRepository     = settingsRepo{}
	_ repository.AuditRepository        = auditRepo{}
)

func contains(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

// ── Clientes ──────────────────────────────────────────────────────────────────

type clientRepo struct{ s *Store }

// Clients repositorio de clientes.
func (s *Store) Clients() repository.ClientRepository { return clientRepo{s} }

func (r clientRepo) Create(_ context.Context, c *entity.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("clients.create"); err != nil {
		return err
	}
	r.s.clients[c.ID] = *c
	return nil
}

func (r clientRepo) GetByID(_ context.Context, id string) (*entity.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.clients[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r clientRepo) List(_ context.Context, f repository.ClientFilter) ([]*entity.Client, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []*entity.Client
	for _, c := range r.s.clients {
		c := c
		if f.Type != "" && c.Type != f.Type {
			continue
		}
		if f.Search != "" && !contains(c.FirstName+" "+c.LastName+" "+c.CompanyName+" "+c.Email+" "+c.Phone, f.Search) {
			continue
		}
		all = append(all, &c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].DisplayName() < all[j].DisplayName() })
	return page(all, f.Limit, f.Offset), len(all), nil
}

func (r clientRepo) Update(_ context.Context, c *entity.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.clients[c.ID] = *c
	return nil
}

func (r clientRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.clients, id)
	return nil
}

// ── Vehículos ─────────────────────────────────────────────────────────────────

type vehicleRepo struct{ s *Store }

// Vehicles repositorio de vehículos.
func (s *Store) Vehicles() repository.VehicleRepository { return vehicleRepo{s} }

func (r vehicleRepo) plateTaken(plate, exceptID string) bool {
	for _, v := range r.s.vehicles {
		if v.Plate == plate && v.ID != exceptID {
			return true
		}
	}
	return false
}

func (r vehicleRepo) Create(_ context.Context, v *entity.Vehicle) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.plateTaken(v.Plate, v.ID) {
		return domain.ErrDuplicate
	}
	r.s.vehicles[v.ID] = *v
	return nil
}

func (r vehicleRepo) GetByID(_ context.Context, id string) (*entity.Vehicle, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.vehicles[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (r vehicleRepo) List(_ context.Context, f repository.VehicleFilter) ([]*entity.Vehicle, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []*entity.Vehicle
	for _, v := range r.s.vehicles {
		v := v
		if f.ClientID != "" && v.ClientID != f.ClientID {
			continue
		}
		if f.Status != "" && v.Status != f.Status {
			continue
		}
		if f.Search != "" && !contains(v.Plate+" "+v.Make+" "+v.Model, f.Search) {
			continue
		}
		all = append(all, &v)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Plate < all[j].Plate })
	return page(all, f.Limit, f.Offset), nil
}

func (r vehicleRepo) Update(_ context.Context, v *entity.Vehicle) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.plateTaken(v.Plate, v.ID) {
		return domain.ErrDuplicate
	}
	r.s.vehicles[v.ID] = *v
	return nil
}

func (r vehicleRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.vehicles, id)
	return nil
}

// ── Técnicos ──────────────────────────────────────────────────────────────────

type technicianRepo struct{ s *Store }

// Technicians repositorio de técnicos.
func (s *Store) Technicians() repository.TechnicianRepository { return technicianRepo{s} }

func (r technicianRepo) Create(_ context.Context, t *entity.Technician) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.technicians {
		if o.UserName == t.UserName || o.Email == t.Email {
			return domain.ErrDuplicate
		}
	}
	r.s.technicians[t.ID] = *t
	return nil
}

func (r technicianRepo) GetByID(_ context.Context, id string) (*entity.Technician, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.technicians[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r technicianRepo) List(_ context.Context) ([]*entity.Technician, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []*entity.Technician
	for _, t := range r.s.technicians {
		t := t
		all = append(all, &t)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].LastName < all[j].LastName })
	return all, nil
}

func (r technicianRepo) Update(_ context.Context, t *entity.Technician) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.technicians[t.ID] = *t
	return nil
}

func (r technicianRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.technicians, id)
	for k, in := range r.s.interventions {
		if in.TechnicianID == id {
			in.TechnicianID = ""
			r.s.interventions[k] = in
		}
	}
	return nil
}

// ── Intervenciones ────────────────────────────────────────────────────────────

type interventionRepo struct{ s *Store }

// Interventions repositorio de intervenciones.
func (s *Store) Interventions() repository.InterventionRepository { return interventionRepo{s} }

func withLineIDs(lines []entity.LineItem) []entity.LineItem {
	out := copyLines(lines)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = uuid.New().String()
		}
	}
	return out
}

func (r interventionRepo) Create(_ context.Context, in *entity.Intervention) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("interventions.create"); err != nil {
		return err
	}
	c := *in
	c.Lines = withLineIDs(in.Lines)
	r.s.interventions[in.ID] = c
	return nil
}

func (r interventionRepo) GetByID(_ context.Context, id string) (*entity.Intervention, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	in, ok := r.s.interventions[id]
	if !ok {
		return nil, nil
	}
	in.Lines = copyLines(in.Lines)
	return &in, nil
}

// view completa los datos relacionados; requiere el lock tomado.
func (r interventionRepo) view(in entity.Intervention) *entity.InterventionView {
	v := &entity.InterventionView{Intervention: in}
	v.Lines = copyLines(in.Lines)
	if veh, ok := r.s.vehicles[in.VehicleID]; ok {
		v.Plate = veh.Plate
		v.VehicleLabel = veh.Make + " " + veh.Model
		v.ClientID = veh.ClientID
		if c, ok := r.s.clients[veh.ClientID]; ok {
			v.ClientName = c.DisplayName()
		}
	}
	if t, ok := r.s.technicians[in.TechnicianID]; ok {
		v.TechnicianName = t.FullName()
		v.TechnicianSpecialty = t.Specialty
	}
	return v
}

func (r interventionRepo) GetView(_ context.Context, id string) (*entity.InterventionView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	in, ok := r.s.interventions[id]
	if !ok {
		return nil, nil
	}
	return r.view(in), nil
}

func (r interventionRepo) filtered(f repository.InterventionFilter, withStatus bool) []*entity.InterventionView {
	var all []*entity.InterventionView
	for _, in := range r.s.interventions {
		if withStatus && f.Status != nil && in.Status != *f.Status {
			continue
		}
		v := r.view(in)
		if f.Search != "" {
			var last, first string
			if veh, ok := r.s.vehicles[in.VehicleID]; ok {
				c := r.s.clients[veh.ClientID]
				last, first = c.LastName, c.FirstName
			}
			if !contains(v.Plate+"\x00"+last+"\x00"+first+"\x00"+v.Description, f.Search) {
				continue
			}
		}
		all = append(all, v)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return all
}

func (r interventionRepo) List(_ context.Context, f repository.InterventionFilter) ([]*entity.InterventionView, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := r.filtered(f, true)
	return page(all, f.Limit, f.Offset), len(all), nil
}

func (r interventionRepo) CountByStatus(_ context.Context, f repository.InterventionFilter) (map[entity.InterventionStatus]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := map[entity.InterventionStatus]int{}
	for _, v := range r.filtered(f, false) {
		out[v.Status]++
	}
	return out, nil
}

func (r interventionRepo) Calendar(_ context.Context, f repository.InterventionFilter) ([]*entity.InterventionView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.InterventionView
	for _, v := range r.filtered(f, true) {
		if v.ScheduledDate != nil {
			out = append(out, v)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ScheduledDate.Before(*out[j].ScheduledDate) })
	return out, nil
}

func (r interventionRepo) ListByClient(_ context.Context, clientID string) ([]*entity.InterventionView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.InterventionView
	for _, v := range r.filtered(repository.InterventionFilter{}, false) {
		if v.ClientID == clientID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r interventionRepo) Update(_ context.Context, in *entity.Intervention) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("interventions.update"); err != nil {
		return err
	}
	cur, ok := r.s.interventions[in.ID]
	if !ok {
		return domain.ErrNotFound
	}
	lines := cur.Lines
	cur = *in
	cur.Lines = lines
	r.s.interventions[in.ID] = cur
	return nil
}

func (r interventionRepo) ReplaceLines(_ context.Context, id string, lines []entity.LineItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.interventions[id]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Lines = withLineIDs(lines)
	r.s.interventions[id] = cur
	return nil
}

func (r interventionRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.interventions, id)
	return nil
}

// ── Pedidos ───────────────────────────────────────────────────────────────────

type orderRepo struct{ s *Store }

// Orders repositorio de pedidos.
func (s *Store) Orders() repository.OrderRepository { return orderRepo{s} }

func (r orderRepo) Create(_ context.Context, o *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("orders.create"); err != nil {
		return err
	}
	for _, existing := range r.s.orders {
		if existing.InterventionID == o.InterventionID {
			return domain.ErrDuplicate
		}
	}
	c := *o
	c.Lines = withLineIDs(o.Lines)
	r.s.orders[o.ID] = c
	return nil
}

func (r orderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	o.Lines = copyLines(o.Lines)
	return &o, nil
}

func (r orderRepo) GetByInterventionID(_ context.Context, interventionID string) (*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.orders {
		if o.InterventionID == interventionID {
			o.Lines = copyLines(o.Lines)
			return &o, nil
		}
	}
	return nil, nil
}

// ── Facturas ──────────────────────────────────────────────────────────────────

type invoiceRepo struct{ s *Store }

// Invoices repositorio de facturas.
func (s *Store) Invoices() repository.InvoiceRepository { return invoiceRepo{s} }

func (r invoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("invoices.create"); err != nil {
		return err
	}
	for _, o := range r.s.invoices {
		if o.Number == inv.Number || (inv.InterventionID != "" && o.InterventionID == inv.InterventionID) {
			return domain.ErrDuplicate
		}
	}
	c := *inv
	c.Lines = withLineIDs(inv.Lines)
	r.s.invoices[inv.ID] = c
	return nil
}

func (r invoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.invoices[id]
	if !ok {
		return nil, nil
	}
	inv.Lines = copyLines(inv.Lines)
	return &inv, nil
}

func (r invoiceRepo) List(_ context.Context, f repository.InvoiceFilter) ([]*entity.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []*entity.Invoice
	for _, inv := range r.s.invoices {
		inv := inv
		if f.ClientID != "" && inv.ClientID != f.ClientID {
			continue
		}
		if f.PaymentStatus != "" && inv.PaymentStatus != f.PaymentStatus {
			continue
		}
		inv.Lines = nil
		all = append(all, &inv)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Number > all[j].Number })
	return page(all, f.Limit, f.Offset), nil
}

func (r invoiceRepo) NextSequence(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.seq++
	return r.s.seq, nil
}

func (r invoiceRepo) UpdatePayment(_ context.Context, inv *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.invoices[inv.ID]
	if !ok {
		return fmt.Errorf("update payment %s: %w", inv.ID, domain.ErrNotFound)
	}
	if cur.PaymentStatus != entity.PaymentUnpaid {
		return fmt.Errorf("factura %s ya pagada: %w", inv.ID, domain.ErrConflict)
	}
	cur.PaymentStatus = inv.PaymentStatus
	cur.PaymentMethod = inv.PaymentMethod
	cur.PaymentDate = inv.PaymentDate
	r.s.invoices[inv.ID] = cur
	return nil
}

// ── Empresa y auditoría ───────────────────────────────────────────────────────

type settingsRepo struct{ s *Store }

// Settings repositorio del perfil de empresa.
func (s *Store) Settings() repository.SettingsRepository { return settingsRepo{s} }

func (r settingsRepo) Get(_ context.Context) (*entity.CompanySettings, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.settings == nil {
		return nil, nil
	}
	c := *r.s.settings
	return &c, nil
}

func (r settingsRepo) Upsert(_ context.Context, cs *entity.CompanySettings) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *cs
	r.s.settings = &c
	return nil
}

type auditRepo struct{ s *Store }

// Audit repositorio de auditoría.
func (s *Store) Audit() repository.AuditRepository { return auditRepo{s} }

func (r auditRepo) Append(_ context.Context, e *entity.AuditEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("audit.append"); err != nil {
		return err
	}
	r.s.audit = append(r.s.audit, *e)
	return nil
}
