package repository

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// SettingsRepository perfil único de la empresa.
type SettingsRepository interface {
	// Get devuelve (nil, nil) si aún no se configuró.
	Get(ctx context.Context) (*entity.CompanySettings, error)
	Upsert(ctx context.Context, s *entity.CompanySettings) error
}
