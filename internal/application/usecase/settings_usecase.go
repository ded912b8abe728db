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

// SettingsUseCase perfil de la empresa (una sola fila).
type SettingsUseCase struct {
	repo  repository.SettingsRepository
	audit *Auditor
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(repo repository.SettingsRepository, audit *Auditor) *SettingsUseCase {
	return &SettingsUseCase{repo: repo, audit: audit}
}

// SettingsToResponse convierte el perfil (nil = perfil vacío).
func SettingsToResponse(s *entity.CompanySettings) dto.SettingsResponse {
	if s == nil {
		return dto.SettingsResponse{}
	}
	out := dto.SettingsResponse{
		CompanyName:  s.CompanyName,
		PatentNumber: s.PatentNumber,
		FoundedOn:    FormatDate(s.FoundedOn),
		Manager:      s.Manager,
		Address:      s.Address,
		Phone:        s.Phone,
		Mobile:       s.Mobile,
		Email:        s.Email,
		LogoPath:     s.LogoPath,
	}
	if !s.UpdatedAt.IsZero() {
		out.UpdatedAt = s.UpdatedAt.Format(time.RFC3339)
	}
	return out
}

// Get devuelve el perfil; vacío si aún no se configuró.
func (uc *SettingsUseCase) Get(ctx context.Context) (*dto.SettingsResponse, error) {
	s, err := uc.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	out := SettingsToResponse(s)
	return &out, nil
}

// Save crea el perfil si no existe o lo actualiza.
func (uc *SettingsUseCase) Save(ctx context.Context, actor Actor, in dto.SettingsRequest) (*dto.SettingsResponse, error) {
	v := domain.Violations{}
	v.Required("company_name", in.CompanyName, "Le nom de l'entreprise est requis")
	v.Required("address", in.Address, "L'adresse est requise")
	v.Required("phone", in.Phone, "Le téléphone est requis")
	v.Email("email", in.Email, "L'email est requis", "L'email n'est pas valide")
	founded := ParseDate(v, "founded_on", in.FoundedOn)
	if err := v.Err(); err != nil {
		return nil, err
	}

	s, err := uc.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil {
		s = &entity.CompanySettings{ID: uuid.New().String()}
	}
	s.CompanyName = strings.TrimSpace(in.CompanyName)
	s.PatentNumber = strings.TrimSpace(in.PatentNumber)
	s.FoundedOn = founded
	s.Manager = strings.TrimSpace(in.Manager)
	s.Address = strings.TrimSpace(in.Address)
	s.Phone = strings.TrimSpace(in.Phone)
	s.Mobile = strings.TrimSpace(in.Mobile)
	s.Email = strings.TrimSpace(in.Email)
	s.LogoPath = strings.TrimSpace(in.LogoPath)
	s.UpdatedAt = time.Now()

	if err := uc.repo.Upsert(ctx, s); err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, actor, ActionSettings, "settings", s.ID, s.CompanyName)
	out := SettingsToResponse(s)
	return &out, nil
}
