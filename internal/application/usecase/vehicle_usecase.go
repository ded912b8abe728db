package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// VehicleUseCase casos de uso de vehículos.
type VehicleUseCase struct {
	repo    repository.VehicleRepository
	clients repository.ClientRepository
	audit   *Auditor
}

// NewVehicleUseCase construye el caso de uso.
func NewVehicleUseCase(repo repository.VehicleRepository, clients repository.ClientRepository, audit *Auditor) *VehicleUseCase {
	return &VehicleUseCase{repo: repo, clients: clients, audit: audit}
}

// build valida el request y lo aplica sobre v. El cliente debe existir.
func (uc *VehicleUseCase) build(ctx context.Context, v *entity.Vehicle, in dto.VehicleRequest) error {
	errs := domain.Violations{}
	errs.Required("plate", in.Plate, "L'immatriculation est requise")
	errs.Required("client_id", in.ClientID, "Le client est requis")
	errs.Required("make", in.Make, "La marque est requise")
	errs.Required("model", in.Model, "Le modèle est requis")
	if in.Year < 1900 || in.Year > time.Now().Year()+1 {
		errs.Add("year", "Année invalide")
	}
	if in.Odometer < 0 {
		errs.Add("odometer", "Le kilométrage ne peut pas être négatif")
	}
	fuel := entity.FuelType(strings.TrimSpace(in.FuelType))
	if fuel != "" && !fuel.Valid() {
		errs.Add("fuel_type", "Carburant invalide")
	}
	status := entity.VehicleStatus(strings.TrimSpace(in.Status))
	if status == "" {
		status = entity.VehicleActive
	}
	if !status.Valid() {
		errs.Add("status", "Statut invalide")
	}
	firstReg := ParseDate(errs, "first_registration_date", in.FirstRegistrationDate)
	lastService := ParseDate(errs, "last_service_date", in.LastServiceDate)
	nextInspection := ParseDate(errs, "next_inspection_date", in.NextInspectionDate)

	if strings.TrimSpace(in.ClientID) != "" {
		client, err := uc.clients.GetByID(ctx, strings.TrimSpace(in.ClientID))
		if err != nil {
			return err
		}
		if client == nil {
			errs.Add("client_id", "Client introuvable")
		}
	}
	if err := errs.Err(); err != nil {
		return err
	}

	v.ClientID = strings.TrimSpace(in.ClientID)
	v.Plate = strings.ToUpper(strings.TrimSpace(in.Plate))
	v.Make = strings.TrimSpace(in.Make)
	v.Model = strings.TrimSpace(in.Model)
	v.Year = in.Year
	v.Odometer = in.Odometer
	v.Color = strings.TrimSpace(in.Color)
	v.FuelType = fuel
	v.Power = strings.TrimSpace(in.Power)
	v.FirstRegistrationDate = firstReg
	v.LastServiceDate = lastService
	v.NextInspectionDate = nextInspection
	v.Status = status
	v.Notes = in.Notes
	return nil
}

// Create registra un vehículo. Devuelve domain.ErrDuplicate si la matrícula ya existe.
func (uc *VehicleUseCase) Create(ctx context.Context, actor Actor, in dto.VehicleRequest) (*dto.VehicleResponse, error) {
	now := time.Now()
	v := &entity.Vehicle{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now}
	if err := uc.build(ctx, v, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, actor, ActionCreate, "vehicle", v.ID, v.Plate)
	out := vehicleToResponse(v)
	return &out, nil
}

func (uc *VehicleUseCase) load(ctx context.Context, id string) (*entity.Vehicle, error) {
	v, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	return v, nil
}

// GetByID obtiene un vehículo.
func (uc *VehicleUseCase) GetByID(ctx context.Context, id string) (*dto.VehicleResponse, error) {
	v, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	out := vehicleToResponse(v)
	return &out, nil
}

// List lista vehículos filtrando por cliente, estado y texto.
func (uc *VehicleUseCase) List(ctx context.Context, clientID, status, search string, page dto.PageRequest) ([]dto.VehicleResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, repository.VehicleFilter{
		ClientID: strings.TrimSpace(clientID),
		Status:   entity.VehicleStatus(strings.TrimSpace(status)),
		Search:   strings.TrimSpace(search),
		Limit:    page.Limit,
		Offset:   page.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.VehicleResponse, 0, len(list))
	for _, v := range list {
		out = append(out, vehicleToResponse(v))
	}
	return out, nil
}

// Update modifica el vehículo.
func (uc *VehicleUseCase) Update(ctx context.Context, actor Actor, id string, in dto.VehicleRequest) (*dto.VehicleResponse, error) {
	v, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.build(ctx, v, in); err != nil {
		return nil, err
	}
	v.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, actor, ActionUpdate, "vehicle", v.ID, v.Plate)
	out := vehicleToResponse(v)
	return &out, nil
}

// Delete elimina el vehículo.
func (uc *VehicleUseCase) Delete(ctx context.Context, actor Actor, id string) error {
	v, err := uc.load(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.audit.Record(ctx, actor, ActionDelete, "vehicle", id, v.Plate)
	return nil
}
