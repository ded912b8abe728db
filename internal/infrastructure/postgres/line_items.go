package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// lineTable tabla de líneas de un documento (intervención, pedido o factura).
// Las tres comparten columnas; solo cambia la columna del dueño.
type lineTable struct {
	name  string
	owner string
}

var (
	interventionItems = lineTable{name: "intervention_items", owner: "intervention_id"}
	orderItems        = lineTable{name: "order_items", owner: "order_id"}
	invoiceItems      = lineTable{name: "invoice_items", owner: "invoice_id"}
)

// insert persiste las líneas en orden (position) y completa los IDs vacíos.
func (t lineTable) insert(ctx context.Context, q Querier, ownerID string, lines []entity.LineItem) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, %s, position, article_id, offer_id, reference, designation, quantity, unit_price, discount_pct, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`, t.name, t.owner)
	for i := range lines {
		l := &lines[i]
		if l.ID == "" {
			l.ID = uuid.New().String()
		}
		_, err := q.Exec(ctx, query,
			l.ID, ownerID, i, nullIfEmpty(l.ArticleID), nullIfEmpty(l.OfferID), l.Reference, l.Designation,
			l.Quantity, l.UnitPrice, l.DiscountPct, l.LineTotal,
		)
		if err != nil {
			return fmt.Errorf("insert %s: %w", t.name, err)
		}
	}
	return nil
}

// list devuelve las líneas del dueño en el orden en que se guardaron.
func (t lineTable) list(ctx context.Context, q Querier, ownerID string) ([]entity.LineItem, error) {
	query := fmt.Sprintf(`
		SELECT id, article_id, offer_id, reference, designation, quantity, unit_price, discount_pct, line_total
		FROM %s WHERE %s = $1 ORDER BY position`, t.name, t.owner)
	rows, err := q.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", t.name, err)
	}
	defer rows.Close()
	var out []entity.LineItem
	for rows.Next() {
		var l entity.LineItem
		var articleID, offerID *string
		if err := rows.Scan(&l.ID, &articleID, &offerID, &l.Reference, &l.Designation,
			&l.Quantity, &l.UnitPrice, &l.DiscountPct, &l.LineTotal); err != nil {
			return nil, fmt.Errorf("scan %s: %w", t.name, err)
		}
		l.ArticleID, l.OfferID = derefStr(articleID), derefStr(offerID)
		out = append(out, l)
	}
	return out, rows.Err()
}

func (t lineTable) deleteAll(ctx context.Context, q Querier, ownerID string) error {
	if _, err := q.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.name, t.owner), ownerID); err != nil {
		return fmt.Errorf("delete %s: %w", t.name, err)
	}
	return nil
}
