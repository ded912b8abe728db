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

var _ repository.InterventionRepository = (*InterventionRepo)(nil)

// InterventionRepo implementación de InterventionRepository (usable con pool o tx).
// Create y ReplaceLines escriben varias filas: llamarlos dentro de TxRunner.Run.
type InterventionRepo struct {
	q Querier
}

// NewInterventionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInterventionRepository(q Querier) *InterventionRepo {
	return &InterventionRepo{q: q}
}

const interventionColumns = `i.id, i.vehicle_id, i.technician_id, i.status, i.scheduled_date, i.start_date, i.end_date,
		i.next_inspection_date, i.odometer_at_visit, i.description, i.diagnosis, i.comment,
		i.order_id, i.invoice_id, i.created_at, i.updated_at`

// viewSelect intervención más vehículo, cliente y técnico (LEFT JOIN: el técnico es opcional).
const viewSelect = `SELECT ` + interventionColumns + `,
		v.plate, v.make, v.model, c.id, c.type, c.first_name, c.last_name, c.company_name,
		COALESCE(t.first_name, ''), COALESCE(t.last_name, ''), COALESCE(t.specialty, '')
	FROM interventions i
	JOIN vehicles v ON v.id = i.vehicle_id
	JOIN clients c ON c.id = v.client_id
	LEFT JOIN technicians t ON t.id = i.technician_id`

func scanIntervention(row pgx.Row, extra ...any) (*entity.Intervention, error) {
	var in entity.Intervention
	var technicianID, orderID, invoiceID *string
	dest := []any{&in.ID, &in.VehicleID, &technicianID, &in.Status, &in.ScheduledDate, &in.StartDate, &in.EndDate,
		&in.NextInspectionDate, &in.OdometerAtVisit, &in.Description, &in.Diagnosis, &in.Comment,
		&orderID, &invoiceID, &in.CreatedAt, &in.UpdatedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	in.TechnicianID, in.OrderID, in.InvoiceID = derefStr(technicianID), derefStr(orderID), derefStr(invoiceID)
	return &in, nil
}

func scanView(row pgx.Row) (*entity.InterventionView, error) {
	var vMake, vModel string
	var client entity.Client
	var techFirst, techLast string
	v := &entity.InterventionView{}
	in, err := scanIntervention(row, &v.Plate, &vMake, &vModel, &client.ID, &client.Type, &client.FirstName,
		&client.LastName, &client.CompanyName, &techFirst, &techLast, &v.TechnicianSpecialty)
	if err != nil {
		return nil, err
	}
	v.Intervention = *in
	v.VehicleLabel = strings.TrimSpace(vMake + " " + vModel)
	v.ClientID = client.ID
	v.ClientName = client.DisplayName()
	v.TechnicianName = strings.TrimSpace(techFirst + " " + techLast)
	return v, nil
}

// filterWhere arma el WHERE del listado con parámetros posicionales.
// withStatus=false ignora el estado (conteo por estado).
func filterWhere(f repository.InterventionFilter, withStatus bool) (string, []any) {
	var conds []string
	var args []any
	if withStatus && f.Status != nil {
		args = append(args, string(*f.Status))
		conds = append(conds, fmt.Sprintf("i.status = $%d", len(args)))
	}
	if strings.TrimSpace(f.Search) != "" {
		args = append(args, likePattern(f.Search))
		conds = append(conds, fmt.Sprintf(
			"(v.plate ILIKE $%[1]d OR c.last_name ILIKE $%[1]d OR c.first_name ILIKE $%[1]d OR i.description ILIKE $%[1]d)",
			len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *InterventionRepo) queryViews(ctx context.Context, query string, args ...any) ([]*entity.InterventionView, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list interventions: %w", err)
	}
	defer rows.Close()
	var list []*entity.InterventionView
	for rows.Next() {
		v, err := scanView(rows)
		if err != nil {
			return nil, fmt.Errorf("scan intervention: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

// Create inserta la intervención y sus líneas.
func (r *InterventionRepo) Create(ctx context.Context, in *entity.Intervention) error {
	query := `
		INSERT INTO interventions (id, vehicle_id, technician_id, status, scheduled_date, start_date, end_date,
		       next_inspection_date, odometer_at_visit, description, diagnosis, comment, order_id, invoice_id,
		       created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		in.ID, in.VehicleID, nullIfEmpty(in.TechnicianID), string(in.Status), dateOnly(in.ScheduledDate),
		in.StartDate, in.EndDate, dateOnly(in.NextInspectionDate), in.OdometerAtVisit, in.Description,
		in.Diagnosis, in.Comment, nullIfEmpty(in.OrderID), nullIfEmpty(in.InvoiceID), in.CreatedAt, in.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert intervention: %w", err)
	}
	return interventionItems.insert(ctx, r.q, in.ID, in.Lines)
}

// GetByID obtiene la intervención con sus líneas.
func (r *InterventionRepo) GetByID(ctx context.Context, id string) (*entity.Intervention, error) {
	in, err := scanIntervention(r.q.QueryRow(ctx, `SELECT `+interventionColumns+` FROM interventions i WHERE i.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get intervention: %w", err)
	}
	if in.Lines, err = interventionItems.list(ctx, r.q, in.ID); err != nil {
		return nil, err
	}
	return in, nil
}

// GetView obtiene la intervención con líneas y datos relacionados.
func (r *InterventionRepo) GetView(ctx context.Context, id string) (*entity.InterventionView, error) {
	v, err := scanView(r.q.QueryRow(ctx, viewSelect+` WHERE i.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get intervention view: %w", err)
	}
	if v.Lines, err = interventionItems.list(ctx, r.q, v.ID); err != nil {
		return nil, err
	}
	return v, nil
}

// List página de intervenciones (sin líneas), más recientes primero, y el total filtrado.
func (r *InterventionRepo) List(ctx context.Context, f repository.InterventionFilter) ([]*entity.InterventionView, int, error) {
	where, args := filterWhere(f, true)

	var total int
	countQuery := `SELECT COUNT(*) FROM interventions i
		JOIN vehicles v ON v.id = i.vehicle_id
		JOIN clients c ON c.id = v.client_id` + where
	if err := r.q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count interventions: %w", err)
	}

	query := viewSelect + where + ` ORDER BY i.created_at DESC`
	if f.Limit > 0 {
		args = append(args, f.Limit, f.Offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}
	list, err := r.queryViews(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// CountByStatus cuenta por estado aplicando solo la búsqueda.
func (r *InterventionRepo) CountByStatus(ctx context.Context, f repository.InterventionFilter) (map[entity.InterventionStatus]int, error) {
	where, args := filterWhere(f, false)
	rows, err := r.q.Query(ctx, `SELECT i.status, COUNT(*) FROM interventions i
		JOIN vehicles v ON v.id = i.vehicle_id
		JOIN clients c ON c.id = v.client_id`+where+` GROUP BY i.status`, args...)
	if err != nil {
		return nil, fmt.Errorf("count interventions by status: %w", err)
	}
	defer rows.Close()
	out := map[entity.InterventionStatus]int{}
	for rows.Next() {
		var st string
		var n int
		if err := rows.Scan(&st, &n); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		out[entity.InterventionStatus(st)] = n
	}
	return out, rows.Err()
}

// Calendar intervenciones con fecha programada, en orden de fecha.
func (r *InterventionRepo) Calendar(ctx context.Context, f repository.InterventionFilter) ([]*entity.InterventionView, error) {
	where, args := filterWhere(f, true)
	if where == "" {
		where = " WHERE i.scheduled_date IS NOT NULL"
	} else {
		where += " AND i.scheduled_date IS NOT NULL"
	}
	return r.queryViews(ctx, viewSelect+where+` ORDER BY i.scheduled_date, i.created_at`, args...)
}

// ListByClient intervenciones de los vehículos del cliente.
func (r *InterventionRepo) ListByClient(ctx context.Context, clientID string) ([]*entity.InterventionView, error) {
	return r.queryViews(ctx, viewSelect+` WHERE c.id = $1 ORDER BY i.created_at DESC`, clientID)
}

// Update actualiza la cabecera (estado, fechas, técnico, vínculos). No toca las líneas.
func (r *InterventionRepo) Update(ctx context.Context, in *entity.Intervention) error {
	query := `
		UPDATE interventions
		SET vehicle_id           = $2,
		    technician_id        = $3,
		    status               = $4,
		    scheduled_date       = $5,
		    start_date           = $6,
		    end_date             = $7,
		    next_inspection_date = $8,
		    odometer_at_visit    = $9,
		    description          = $10,
		    diagnosis            = $11,
		    comment              = $12,
		    order_id             = $13,
		    invoice_id           = $14,
		    updated_at           = $15
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		in.ID, in.VehicleID, nullIfEmpty(in.TechnicianID), string(in.Status), dateOnly(in.ScheduledDate),
		in.StartDate, in.EndDate, dateOnly(in.NextInspectionDate), in.OdometerAtVisit, in.Description,
		in.Diagnosis, in.Comment, nullIfEmpty(in.OrderID), nullIfEmpty(in.InvoiceID), in.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update intervention: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ReplaceLines borra las líneas actuales e inserta las nuevas.
func (r *InterventionRepo) ReplaceLines(ctx context.Context, interventionID string, lines []entity.LineItem) error {
	if err := interventionItems.deleteAll(ctx, r.q, interventionID); err != nil {
		return err
	}
	return interventionItems.insert(ctx, r.q, interventionID, entity.CloneLines(lines))
}

// Delete elimina la intervención; las líneas caen por ON DELETE CASCADE.
func (r *InterventionRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM interventions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete intervention: %w", err)
	}
	return nil
}
