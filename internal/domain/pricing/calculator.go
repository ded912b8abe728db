// Package pricing contiene los cálculos de importes (servicio de dominio sin I/O):
// total por línea, subtotal, totales de factura y desglose de ofertas.
package pricing

import (
	"fmt"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Round2 redondea a 2 decimales, mitad alejándose de cero.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// LineTotal = round2(Cantidad * PrecioUnitario * (1 - Descuento/100)).
func LineTotal(quantity int, unitPrice, discountPct decimal.Decimal) decimal.Decimal {
	gross := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	return Round2(gross.Mul(hundred.Sub(discountPct)).Div(hundred))
}

// Apply recalcula LineTotal de la línea.
func Apply(l *entity.LineItem) {
	l.LineTotal = LineTotal(l.Quantity, l.UnitPrice, l.DiscountPct)
}

// ApplyAll recalcula LineTotal de todas las líneas.
func ApplyAll(lines []entity.LineItem) {
	for i := range lines {
		Apply(&lines[i])
	}
}

// Subtotal suma los totales de línea recalculados (no confía en LineTotal almacenado).
func Subtotal(lines []entity.LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(LineTotal(l.Quantity, l.UnitPrice, l.DiscountPct))
	}
	return sum
}

// ClampDiscount limita el descuento a [0,100]. Solo para datos de catálogo.
func ClampDiscount(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	if d.GreaterThan(hundred) {
		return hundred
	}
	return d
}

// ValidateLine registra en v los errores de la línea i (claves items[i].campo).
func ValidateLine(v domain.Violations, i int, l entity.LineItem) {
	prefix := fmt.Sprintf("items[%d].", i)
	if l.Quantity < 1 {
		v.Add(prefix+"quantity", "La quantité doit être au moins 1")
	}
	if l.UnitPrice.IsNegative() {
		v.Add(prefix+"unit_price", "Le prix unitaire ne peut pas être négatif")
	}
	if l.DiscountPct.IsNegative() || l.DiscountPct.GreaterThan(hundred) {
		v.Add(prefix+"discount_pct", "La remise doit être comprise entre 0 et 100")
	}
}

// ValidateLines valida todas las líneas y devuelve un *domain.ValidationError si hay errores.
// Dos filas con la misma clave se fusionan más adelante, así que deben coincidir
// en precio y descuento.
func ValidateLines(lines []entity.LineItem) error {
	v := domain.Violations{}
	first := make(map[string]int, len(lines))
	for i, l := range lines {
		ValidateLine(v, i, l)
		key := l.Key()
		if key == "" {
			continue
		}
		j, seen := first[key]
		if !seen {
			first[key] = i
			continue
		}
		if !lines[j].UnitPrice.Equal(l.UnitPrice) || !lines[j].DiscountPct.Equal(l.DiscountPct) {
			field := "article_id"
			if l.ArticleID == "" {
				field = "offer_id"
			}
			v.Add(fmt.Sprintf("items[%d].%s", i, field), "Ligne en double avec un prix ou une remise différents")
		}
	}
	return v.Err()
}
