package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo perfil único de la empresa.
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository construye el adaptador.
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

// Get devuelve el perfil o (nil, nil) si aún no se configuró.
func (r *SettingsRepo) Get(ctx context.Context) (*entity.CompanySettings, error) {
	var s entity.CompanySettings
	err := r.q.QueryRow(ctx, `
		SELECT id, company_name, patent_number, founded_on, manager, address, phone, mobile, email, logo_path, updated_at
		FROM company_settings ORDER BY updated_at DESC LIMIT 1`,
	).Scan(&s.ID, &s.CompanyName, &s.PatentNumber, &s.FoundedOn, &s.Manager, &s.Address,
		&s.Phone, &s.Mobile, &s.Email, &s.LogoPath, &s.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company settings: %w", err)
	}
	return &s, nil
}

// Upsert inserta el perfil o lo actualiza si ya existe la fila.
func (r *SettingsRepo) Upsert(ctx context.Context, s *entity.CompanySettings) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO company_settings (id, company_name, patent_number, founded_on, manager, address, phone, mobile, email, logo_path, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE
		SET company_name  = EXCLUDED.company_name,
		    patent_number = EXCLUDED.patent_number,
		    founded_on    = EXCLUDED.founded_on,
		    manager       = EXCLUDED.manager,
		    address       = EXCLUDED.address,
		    phone         = EXCLUDED.phone,
		    mobile        = EXCLUDED.mobile,
		    email         = EXCLUDED.email,
		    logo_path     = EXCLUDED.logo_path,
		    updated_at    = EXCLUDED.updated_at`,
		s.ID, s.CompanyName, s.PatentNumber, dateOnly(s.FoundedOn), s.Manager, s.Address,
		s.Phone, s.Mobile, s.Email, s.LogoPath, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert company settings: %w", err)
	}
	return nil
}
