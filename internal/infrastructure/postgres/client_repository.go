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

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación de ClientRepository (usable con pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

const clientColumns = `id, type, first_name, last_name, company_name, registration_number, email, phone,
		address, postal_code, city, payment_term_days, notes, created_at, updated_at`

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	err := row.Scan(&c.ID, &c.Type, &c.FirstName, &c.LastName, &c.CompanyName, &c.RegistrationNumber,
		&c.Email, &c.Phone, &c.Address, &c.PostalCode, &c.City, &c.PaymentTermDays, &c.Notes,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste un nuevo cliente.
func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		c.ID, string(c.Type), c.FirstName, c.LastName, c.CompanyName, c.RegistrationNumber, c.Email, c.Phone,
		c.Address, c.PostalCode, c.City, c.PaymentTermDays, c.Notes, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	c, err := scanClient(r.q.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

// List filtra por tipo y por texto (nombre, razón social, email, teléfono) y devuelve el total sin paginar.
func (r *ClientRepo) List(ctx context.Context, f repository.ClientFilter) ([]*entity.Client, int, error) {
	var conds []string
	var args []any
	if f.Type != "" {
		args = append(args, string(f.Type))
		conds = append(conds, fmt.Sprintf("type = $%d", len(args)))
	}
	if strings.TrimSpace(f.Search) != "" {
		args = append(args, likePattern(f.Search))
		conds = append(conds, fmt.Sprintf(
			"(first_name ILIKE $%[1]d OR last_name ILIKE $%[1]d OR company_name ILIKE $%[1]d OR email ILIKE $%[1]d OR phone ILIKE $%[1]d)",
			len(args)))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM clients`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count clients: %w", err)
	}

	query := `SELECT ` + clientColumns + ` FROM clients` + where +
		` ORDER BY CASE WHEN type = 'societe' THEN company_name ELSE first_name || ' ' || last_name END`
	if f.Limit > 0 {
		args = append(args, f.Limit, f.Offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, c)
	}
	return list, total, rows.Err()
}

// Update actualiza un cliente.
func (r *ClientRepo) Update(ctx context.Context, c *entity.Client) error {
	query := `
		UPDATE clients SET type = $2, first_name = $3, last_name = $4, company_name = $5,
		       registration_number = $6, email = $7, phone = $8, address = $9, postal_code = $10,
		       city = $11, payment_term_days = $12, notes = $13, updated_at = $14
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		c.ID, string(c.Type), c.FirstName, c.LastName, c.CompanyName, c.RegistrationNumber, c.Email, c.Phone,
		c.Address, c.PostalCode, c.City, c.PaymentTermDays, c.Notes, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update client: %w", err)
	}
	return nil
}

// Delete elimina un cliente por ID.
func (r *ClientRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("client %s: %w", id, domain.ErrConflict)
		}
		return fmt.Errorf("delete client: %w", err)
	}
	return nil
}
