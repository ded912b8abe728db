// Package workshop casos de uso del taller: intervenciones, flujo de estados y pedidos.
package workshop

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/usecase"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/pricing"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	"github.com/jhoicas/Taller-api/internal/domain/workflow"
)

// MaxPage última página admitida en el listado; más allá el OFFSET desborda.
const MaxPage = 100_000

// InterventionService casos de uso de intervenciones.
type InterventionService struct {
	repo        repository.InterventionRepository
	vehicles    repository.VehicleRepository
	technicians repository.TechnicianRepository
	lines       LineExpander
	tx          repository.TxRunner
	metrics     Metrics
	pageSize    int
	now         func() time.Time
}

// NewInterventionService construye el servicio. pageSize es el tamaño de página del listado.
func NewInterventionService(
	repo repository.InterventionRepository,
	vehicles repository.VehicleRepository,
	technicians repository.TechnicianRepository,
	lines LineExpander,
	tx repository.TxRunner,
	metrics Metrics,
	pageSize int,
) *InterventionService {
	if metrics == nil {
		metrics = noMetrics{}
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	return &InterventionService{
		repo:        repo,
		vehicles:    vehicles,
		technicians: technicians,
		lines:       lines,
		tx:          tx,
		metrics:     metrics,
		pageSize:    pageSize,
		now:         time.Now,
	}
}

// build valida el request y lo aplica sobre in (campos y líneas desglosadas).
func (s *InterventionService) build(ctx context.Context, in *entity.Intervention, req dto.InterventionRequest) error {
	v := domain.Violations{}
	v.Required("vehicle_id", req.VehicleID, "Le véhicule est requis")
	v.Required("description", req.Description, "La description est requise")
	if req.OdometerAtVisit < 0 {
		v.Add("odometer_at_visit", "Le kilométrage ne peut pas être négatif")
	}
	scheduled := usecase.ParseDate(v, "scheduled_date", req.ScheduledDate)
	nextInspection := usecase.ParseDate(v, "next_inspection_date", req.NextInspectionDate)

	if id := strings.TrimSpace(req.VehicleID); id != "" {
		vehicle, err := s.vehicles.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if vehicle == nil {
			v.Add("vehicle_id", "Véhicule introuvable")
		}
	}
	if id := strings.TrimSpace(req.TechnicianID); id != "" {
		tech, err := s.technicians.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if tech == nil {
			v.Add("technician_id", "Technicien introuvable")
		}
	}
	if err := v.Err(); err != nil {
		return err
	}

	lines, err := s.lines.Expand(ctx, usecase.LinesFromRequest(req.Items), nil, req.OfferIDs)
	if err != nil {
		return err
	}

	in.VehicleID = strings.TrimSpace(req.VehicleID)
	in.TechnicianID = strings.TrimSpace(req.TechnicianID)
	in.ScheduledDate = scheduled
	in.NextInspectionDate = nextInspection
	in.OdometerAtVisit = req.OdometerAtVisit
	in.Description = strings.TrimSpace(req.Description)
	in.Diagnosis = strings.TrimSpace(req.Diagnosis)
	in.Comment = strings.TrimSpace(req.Comment)
	in.Lines = lines
	return nil
}

// Create registra la intervención En attente con sus líneas, en una transacción.
func (s *InterventionService) Create(ctx context.Context, actor usecase.Actor, req dto.InterventionRequest) (*dto.InterventionResponse, error) {
	now := s.now()
	in := &entity.Intervention{
		ID:        uuid.New().String(),
		Status:    entity.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.build(ctx, in, req); err != nil {
		return nil, err
	}
	err := s.tx.Run(ctx, func(r repository.TxRepos) error {
		if err := r.Interventions.Create(ctx, in); err != nil {
			return err
		}
		return r.Audit.Append(ctx, usecase.NewAuditEntry(actor, usecase.ActionCreate, "intervention", in.ID, in.Description))
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, in.ID)
}

func (s *InterventionService) load(ctx context.Context, id string) (*entity.Intervention, error) {
	in, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in == nil {
		return nil, domain.ErrNotFound
	}
	return in, nil
}

// Get intervención con líneas, vehículo, cliente y técnico.
func (s *InterventionService) Get(ctx context.Context, id string) (*dto.InterventionResponse, error) {
	view, err := s.repo.GetView(ctx, id)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, domain.ErrNotFound
	}
	return interventionToResponse(view), nil
}

func interventionToResponse(v *entity.InterventionView) *dto.InterventionResponse {
	next := workflow.Next(v.Status)
	nextStatuses := make([]string, 0, len(next))
	for _, st := range next {
		nextStatuses = append(nextStatuses, string(st))
	}
	return &dto.InterventionResponse{
		ID:                 v.ID,
		VehicleID:          v.VehicleID,
		Plate:              v.Plate,
		Vehicle:            v.VehicleLabel,
		ClientID:           v.ClientID,
		ClientName:         v.ClientName,
		TechnicianID:       v.TechnicianID,
		TechnicianName:     v.TechnicianName,
		Status:             string(v.Status),
		NextStatuses:       nextStatuses,
		ScheduledDate:      usecase.FormatDate(v.ScheduledDate),
		StartDate:          usecase.FormatDate(v.StartDate),
		EndDate:            usecase.FormatDate(v.EndDate),
		NextInspectionDate: usecase.FormatDate(v.NextInspectionDate),
		OdometerAtVisit:    v.OdometerAtVisit,
		Description:        v.Description,
		Diagnosis:          v.Diagnosis,
		Comment:            v.Comment,
		OrderID:            v.OrderID,
		InvoiceID:          v.InvoiceID,
		Items:              usecase.LineResponses(v.Lines),
		Subtotal:           pricing.Subtotal(v.Lines),
	}
}

// filter arma el filtro del listado; un estado desconocido es error de validación.
func filter(status, search string) (repository.InterventionFilter, error) {
	f := repository.InterventionFilter{Search: strings.TrimSpace(search)}
	if status = strings.TrimSpace(status); status != "" {
		st := entity.InterventionStatus(status)
		if !st.Valid() {
			return f, &domain.ValidationError{Fields: map[string]string{"status": "Statut invalide"}}
		}
		f.Status = &st
	}
	return f, nil
}

// List página de intervenciones (page desde 1) con el conteo por estado.
// El conteo ignora el filtro de estado para que la barra de estados muestre todos.
func (s *InterventionService) List(ctx context.Context, status, search string, page int) (*dto.InterventionListResponse, error) {
	f, err := filter(status, search)
	if err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	f.Limit = s.pageSize
	f.Offset = (page - 1) * s.pageSize

	list, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	counts, err := s.repo.CountByStatus(ctx, repository.InterventionFilter{Search: f.Search})
	if err != nil {
		return nil, err
	}

	out := &dto.InterventionListResponse{
		Items:      make([]dto.InterventionListItem, 0, len(list)),
		Page:       page,
		TotalPages: (total + s.pageSize - 1) / s.pageSize,
		Total:      total,
		Stats:      make(map[string]int, len(entity.InterventionStatuses)),
	}
	for _, v := range list {
		out.Items = append(out.Items, usecase.InterventionListItem(v))
	}
	for _, st := range entity.InterventionStatuses {
		out.Stats[string(st)] = counts[st]
	}
	return out, nil
}

// Calendar agrupa por fecha programada (orden ascendente).
func (s *InterventionService) Calendar(ctx context.Context, status, search string) ([]dto.CalendarDay, error) {
	f, err := filter(status, search)
	if err != nil {
		return nil, err
	}
	list, err := s.repo.Calendar(ctx, f)
	if err != nil {
		return nil, err
	}
	byDay := map[string][]dto.InterventionListItem{}
	for _, v := range list {
		day := usecase.FormatDate(v.ScheduledDate)
		if day == "" {
			continue
		}
		byDay[day] = append(byDay[day], usecase.InterventionListItem(v))
	}
	days := make([]string, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Strings(days)
	out := make([]dto.CalendarDay, 0, len(days))
	for _, d := range days {
		out = append(out, dto.CalendarDay{Date: d, Interventions: byDay[d]})
	}
	return out, nil
}

// Update reemplaza campos y líneas. No se editan intervenciones terminales.
func (s *InterventionService) Update(ctx context.Context, actor usecase.Actor, id string, req dto.InterventionRequest) (*dto.InterventionResponse, error) {
	in, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := workflow.CanEditLines(in.Status); err != nil {
		return nil, err
	}
	if err := s.build(ctx, in, req); err != nil {
		return nil, err
	}
	in.UpdatedAt = s.now()
	err = s.tx.Run(ctx, func(r repository.TxRepos) error {
		if err := r.Interventions.Update(ctx, in); err != nil {
			return err
		}
		if err := r.Interventions.ReplaceLines(ctx, in.ID, in.Lines); err != nil {
			return err
		}
		return r.Audit.Append(ctx, usecase.NewAuditEntry(actor, usecase.ActionUpdate, "intervention", in.ID, in.Description))
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, in.ID)
}

// ChangeStatus aplica el cambio de estado validado por el flujo.
// Facturée no es alcanzable por aquí: lo fija la facturación al vincular la factura.
func (s *InterventionService) ChangeStatus(ctx context.Context, actor usecase.Actor, id string, to string) (*dto.InterventionResponse, error) {
	in, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	from := in.Status
	if err := workflow.Apply(in, entity.InterventionStatus(strings.TrimSpace(to)), s.now()); err != nil {
		return nil, err
	}
	err = s.tx.Run(ctx, func(r repository.TxRepos) error {
		if err := r.Interventions.Update(ctx, in); err != nil {
			return err
		}
		return r.Audit.Append(ctx, usecase.NewAuditEntry(actor, usecase.ActionStatus, "intervention", in.ID,
			fmt.Sprintf("%s → %s", from, in.Status)))
	})
	if err != nil {
		return nil, err
	}
	s.metrics.StatusChanged(from, in.Status)
	return s.Get(ctx, in.ID)
}

// AssignTechnician asigna (o desasigna con "") el técnico. No cambia el estado.
func (s *InterventionService) AssignTechnician(ctx context.Context, actor usecase.Actor, id, technicianID string) (*dto.InterventionResponse, error) {
	in, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if workflow.IsTerminal(in.Status) {
		return nil, fmt.Errorf("%w: intervención %q", domain.ErrPreconditionFailed, in.Status)
	}
	technicianID = strings.TrimSpace(technicianID)
	if technicianID != "" {
		tech, err := s.technicians.GetByID(ctx, technicianID)
		if err != nil {
			return nil, err
		}
		if tech == nil {
			return nil, &domain.ValidationError{Fields: map[string]string{"technician_id": "Technicien introuvable"}}
		}
	}
	in.TechnicianID = technicianID
	in.UpdatedAt = s.now()
	err = s.tx.Run(ctx, func(r repository.TxRepos) error {
		if err := r.Interventions.Update(ctx, in); err != nil {
			return err
		}
		return r.Audit.Append(ctx, usecase.NewAuditEntry(actor, usecase.ActionAssign, "intervention", in.ID, technicianID))
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, in.ID)
}

// Delete elimina una intervención En attente o Annulée sin pedido.
func (s *InterventionService) Delete(ctx context.Context, actor usecase.Actor, id string) error {
	in, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := workflow.CanDelete(in.Status); err != nil {
		return err
	}
	if in.OrderID != "" {
		return fmt.Errorf("%w: la intervención tiene un pedido", domain.ErrConflict)
	}
	return s.tx.Run(ctx, func(r repository.TxRepos) error {
		if err := r.Interventions.Delete(ctx, id); err != nil {
			return err
		}
		return r.Audit.Append(ctx, usecase.NewAuditEntry(actor, usecase.ActionDelete, "intervention", id, in.Description))
	})
}
