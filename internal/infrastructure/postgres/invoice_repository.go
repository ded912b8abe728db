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

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, client_id, intervention_id, order_id, number, date,
		subtotal_ht, tva_rate, tva_amount, discount_amount, total_ttc,
		payment_status, payment_method, payment_date, created_at`

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var interventionID, orderID, paymentMethod *string
	err := row.Scan(
		&inv.ID, &inv.ClientID, &interventionID, &orderID, &inv.Number, &inv.Date,
		&inv.SubtotalHT, &inv.TVARate, &inv.TVAAmount, &inv.DiscountAmount, &inv.TotalTTC,
		&inv.PaymentStatus, &paymentMethod, &inv.PaymentDate, &inv.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	inv.InterventionID = derefStr(interventionID)
	inv.OrderID = derefStr(orderID)
	inv.PaymentMethod = derefStr(paymentMethod)
	return &inv, nil
}

// Create persiste la cabecera y las líneas. Número o intervención ya facturada = domain.ErrDuplicate.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.ClientID, nullIfEmpty(inv.InterventionID), nullIfEmpty(inv.OrderID), inv.Number, dateOnly(&inv.Date),
		inv.SubtotalHT, inv.TVARate, inv.TVAAmount, inv.DiscountAmount, inv.TotalTTC,
		string(inv.PaymentStatus), nullIfEmpty(inv.PaymentMethod), dateOnly(inv.PaymentDate), inv.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("invoice %s: %w", inv.Number, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return invoiceItems.insert(ctx, r.q, inv.ID, inv.Lines)
}

// GetByID obtiene una factura con sus líneas.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	inv, err := scanInvoice(r.q.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	if inv.Lines, err = invoiceItems.list(ctx, r.q, inv.ID); err != nil {
		return nil, err
	}
	return inv, nil
}

// List cabeceras filtradas por cliente y estado de pago, por número descendente.
func (r *InvoiceRepo) List(ctx context.Context, f repository.InvoiceFilter) ([]*entity.Invoice, error) {
	var conds []string
	var args []any
	if f.ClientID != "" {
		if !isUUID(f.ClientID) {
			return nil, nil
		}
		args = append(args, f.ClientID)
		conds = append(conds, fmt.Sprintf("client_id = $%d", len(args)))
	}
	if f.PaymentStatus != "" {
		args = append(args, string(f.PaymentStatus))
		conds = append(conds, fmt.Sprintf("payment_status = $%d", len(args)))
	}
	query := `SELECT ` + invoiceColumns + ` FROM invoices`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY number DESC"
	if f.Limit > 0 {
		args = append(args, f.Limit, f.Offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// NextSequence siguiente valor de invoice_number_seq. Los valores consumidos por
// transacciones abortadas no se reutilizan (la numeración puede tener huecos).
func (r *InvoiceRepo) NextSequence(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT nextval('invoice_number_seq')`).Scan(&n); err != nil {
		return 0, fmt.Errorf("next invoice number: %w", err)
	}
	return n, nil
}

// UpdatePayment actualiza estado, modo y fecha de pago de una factura aún no pagada.
// La condición sobre payment_status impide que dos cobros concurrentes se acepten.
func (r *InvoiceRepo) UpdatePayment(ctx context.Context, inv *entity.Invoice) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE invoices
		SET payment_status = $2,
		    payment_method = $3,
		    payment_date   = $4
		WHERE id = $1 AND payment_status = $5`,
		inv.ID, string(inv.PaymentStatus), nullIfEmpty(inv.PaymentMethod), dateOnly(inv.PaymentDate),
		string(entity.PaymentUnpaid),
	)
	if err != nil {
		return fmt.Errorf("update invoice payment: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM invoices WHERE id = $1)`, inv.ID).Scan(&exists); err != nil {
		return fmt.Errorf("update invoice payment: %w", err)
	}
	if !exists {
		return fmt.Errorf("update payment %s: %w", inv.ID, domain.ErrNotFound)
	}
	return fmt.Errorf("factura %s ya pagada: %w", inv.ID, domain.ErrConflict)
}
