package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.VehicleRepository = (*VehicleRepo)(nil)

// VehicleRepo implementación de VehicleRepository (usable con pool o tx).
type VehicleRepo struct {
	q Querier
}

// NewVehicleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVehicleRepository(q Querier) *VehicleRepo {
	return &VehicleRepo{q: q}
}

const vehicleColumns = `id, client_id, plate, make, model, year, odometer, color, fuel_type, power,
		first_registration_date, last_service_date, next_inspection_date, status, notes, created_at, updated_at`

func scanVehicle(row pgx.Row) (*entity.Vehicle, error) {
	var v entity.Vehicle
	err := row.Scan(&v.ID, &v.ClientID, &v.Plate, &v.Make, &v.Model, &v.Year, &v.Odometer, &v.Color,
		&v.FuelType, &v.Power, &v.FirstRegistrationDate, &v.LastServiceDate, &v.NextInspectionDate,
		&v.Status, &v.Notes, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Create persiste un vehículo. Matrícula repetida = domain.ErrDuplicate.
func (r *VehicleRepo) Create(ctx context.Context, v *entity.Vehicle) error {
	query := `
		INSERT INTO vehicles (` + vehicleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(ctx, query,
		v.ID, v.ClientID, v.Plate, v.Make, v.Model, v.Year, v.Odometer, v.Color, string(v.FuelType), v.Power,
		dateOnly(v.FirstRegistrationDate), dateOnly(v.LastServiceDate), dateOnly(v.NextInspectionDate),
		string(v.Status), v.Notes, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert vehicle: %w", err)
	}
	return nil
}

// GetByID obtiene un vehículo por ID.
func (r *VehicleRepo) GetByID(ctx context.Context, id string) (*entity.Vehicle, error) {
	v, err := scanVehicle(r.q.QueryRow(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vehicle: %w", err)
	}
	return v, nil
}

// List filtra por cliente, estado y texto (matrícula, marca, modelo).
func (r *VehicleRepo) List(ctx context.Context, f repository.VehicleFilter) ([]*entity.Vehicle, error) {
	var conds []string
	var args []any
	if f.ClientID != "" {
		if !isUUID(f.ClientID) {
			return nil, nil
		}
		args = append(args, f.ClientID)
		conds = append(conds, fmt.Sprintf("client_id = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, string(f.Status))
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if strings.TrimSpace(f.Search) != "" {
		args = append(args, likePattern(f.Search))
		conds = append(conds, fmt.Sprintf("(plate ILIKE $%[1]d OR make ILIKE $%[1]d OR model ILIKE $%[1]d)", len(args)))
	}
	query := `SELECT ` + vehicleColumns + ` FROM vehicles`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY plate"
	if f.Limit > 0 {
		args = append(args, f.Limit, f.Offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

// Update actualiza un vehículo.
func (r *VehicleRepo) Update(ctx context.Context, v *entity.Vehicle) error {
	query := `
		UPDATE vehicles SET client_id = $2, plate = $3, make = $4, model = $5, year = $6, odometer = $7,
		       color = $8, fuel_type = $9, power = $10, first_registration_date = $11,
		       last_service_date = $12, next_inspection_date = $13, status = $14, notes = $15, updated_at = $16
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		v.ID, v.ClientID, v.Plate, v.Make, v.Model, v.Year, v.Odometer, v.Color, string(v.FuelType), v.Power,
		dateOnly(v.FirstRegistrationDate), dateOnly(v.LastServiceDate), dateOnly(v.NextInspectionDate),
		string(v.Status), v.Notes, v.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update vehicle: %w", err)
	}
	return nil
}

// Delete elimina un vehículo. Con intervenciones asociadas devuelve domain.ErrConflict.
func (r *VehicleRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM vehicles WHERE id = $1`, id); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("vehicle %s: %w", id, domain.ErrConflict)
		}
		return fmt.Errorf("delete vehicle: %w", err)
	}
	return nil
}
