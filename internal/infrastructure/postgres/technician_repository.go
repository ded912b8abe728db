package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.TechnicianRepository = (*TechnicianRepo)(nil)

// TechnicianRepo implementación de TechnicianRepository.
type TechnicianRepo struct {
	q Querier
}

// NewTechnicianRepository construye el adaptador.
func NewTechnicianRepository(q Querier) *TechnicianRepo {
	return &TechnicianRepo{q: q}
}

const technicianColumns = `id, first_name, last_name, birth_date, specialty, email, user_name, created_at, updated_at`

func scanTechnician(row pgx.Row) (*entity.Technician, error) {
	var t entity.Technician
	if err := row.Scan(&t.ID, &t.FirstName, &t.LastName, &t.BirthDate, &t.Specialty, &t.Email, &t.UserName,
		&t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// Create persiste un técnico. Usuario o email repetido = domain.ErrDuplicate.
func (r *TechnicianRepo) Create(ctx context.Context, t *entity.Technician) error {
	query := `
		INSERT INTO technicians (` + technicianColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.FirstName, t.LastName, dateOnly(&t.BirthDate), t.Specialty, t.Email, t.UserName, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert technician: %w", err)
	}
	return nil
}

// GetByID obtiene un técnico por ID.
func (r *TechnicianRepo) GetByID(ctx context.Context, id string) (*entity.Technician, error) {
	t, err := scanTechnician(r.q.QueryRow(ctx, `SELECT `+technicianColumns+` FROM technicians WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get technician: %w", err)
	}
	return t, nil
}

// List todos los técnicos por apellido.
func (r *TechnicianRepo) List(ctx context.Context) ([]*entity.Technician, error) {
	rows, err := r.q.Query(ctx, `SELECT `+technicianColumns+` FROM technicians ORDER BY last_name, first_name`)
	if err != nil {
		return nil, fmt.Errorf("list technicians: %w", err)
	}
	defer rows.Close()
	var list []*entity.Technician
	for rows.Next() {
		t, err := scanTechnician(rows)
		if err != nil {
			return nil, fmt.Errorf("scan technician: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// Update actualiza un técnico.
func (r *TechnicianRepo) Update(ctx context.Context, t *entity.Technician) error {
	query := `
		UPDATE technicians SET first_name = $2, last_name = $3, birth_date = $4, specialty = $5,
		       email = $6, user_name = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.FirstName, t.LastName, dateOnly(&t.BirthDate), t.Specialty, t.Email, t.UserName, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update technician: %w", err)
	}
	return nil
}

// Delete elimina el técnico; sus intervenciones quedan sin asignar (ON DELETE SET NULL).
func (r *TechnicianRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM technicians WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete technician: %w", err)
	}
	return nil
}
