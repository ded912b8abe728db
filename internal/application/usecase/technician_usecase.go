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

// TechnicianUseCase casos de uso de técnicos. Las credenciales se gestionan fuera de este servicio.
type TechnicianUseCase struct {
	repo  repository.TechnicianRepository
	audit *Auditor
}

// NewTechnicianUseCase construye el caso de uso.
func NewTechnicianUseCase(repo repository.TechnicianRepository, audit *Auditor) *TechnicianUseCase {
	return &TechnicianUseCase{repo: repo, audit: audit}
}

func applyTechnician(t *entity.Technician, in dto.TechnicianRequest, now time.Time) error {
	v := domain.Violations{}
	v.Required("first_name", in.FirstName, "Le prénom est requis")
	v.Required("last_name", in.LastName, "Le nom est requis")
	v.Required("specialty", in.Specialty, "La spécialité est requise")
	v.Required("user_name", in.UserName, "Le nom d'utilisateur est requis")
	v.Email("email", in.Email, "L'email est requis", "L'email n'est pas valide")
	var birth time.Time
	if strings.TrimSpace(in.BirthDate) == "" {
		v.Add("birth_date", "La date de naissance est requise")
	} else if b := ParseDate(v, "birth_date", &in.BirthDate); b != nil {
		if b.After(now) {
			v.Add("birth_date", "La date de naissance ne peut pas être dans le futur")
		}
		birth = *b
	}
	if err := v.Err(); err != nil {
		return err
	}
	t.FirstName = strings.TrimSpace(in.FirstName)
	t.LastName = strings.TrimSpace(in.LastName)
	t.BirthDate = birth
	t.Specialty = strings.TrimSpace(in.Specialty)
	t.Email = strings.TrimSpace(in.Email)
	t.UserName = strings.TrimSpace(in.UserName)
	return nil
}

func technicianToResponse(t *entity.Technician) dto.TechnicianResponse {
	return dto.TechnicianResponse{
		ID:        t.ID,
		FirstName: t.FirstName,
		LastName:  t.LastName,
		FullName:  t.FullName(),
		BirthDate: t.BirthDate.Format(dto.DateLayout),
		Specialty: t.Specialty,
		Email:     t.Email,
		UserName:  t.UserName,
	}
}

// Create registra un técnico. Devuelve domain.ErrDuplicate si el usuario o email ya existen.
func (uc *TechnicianUseCase) Create(ctx context.Context, actor Actor, in dto.TechnicianRequest) (*dto.TechnicianResponse, error) {
	now := time.Now()
	t := &entity.Technician{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now}
	if err := applyTechnician(t, in, now); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, actor, ActionCreate, "technician", t.ID, t.FullName())
	out := technicianToResponse(t)
	return &out, nil
}

func (uc *TechnicianUseCase) load(ctx context.Context, id string) (*entity.Technician, error) {
	t, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	return t, nil
}

// GetByID obtiene un técnico.
func (uc *TechnicianUseCase) GetByID(ctx context.Context, id string) (*dto.TechnicianResponse, error) {
	t, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	out := technicianToResponse(t)
	return &out, nil
}

// List lista todos los técnicos.
func (uc *TechnicianUseCase) List(ctx context.Context) ([]dto.TechnicianResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TechnicianResponse, 0, len(list))
	for _, t := range list {
		out = append(out, technicianToResponse(t))
	}
	return out, nil
}

// Update modifica el técnico.
func (uc *TechnicianUseCase) Update(ctx context.Context, actor Actor, id string, in dto.TechnicianRequest) (*dto.TechnicianResponse, error) {
	t, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if err := applyTechnician(t, in, now); err != nil {
		return nil, err
	}
	t.UpdatedAt = now
	if err := uc.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, actor, ActionUpdate, "technician", t.ID, t.FullName())
	out := technicianToResponse(t)
	return &out, nil
}

// Delete elimina el técnico; sus intervenciones quedan sin asignar.
func (uc *TechnicianUseCase) Delete(ctx context.Context, actor Actor, id string) error {
	t, err := uc.load(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.audit.Record(ctx, actor, ActionDelete, "technician", id, t.FullName())
	return nil
}
