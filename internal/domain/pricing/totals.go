package pricing

import (
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Totals importes de una factura.
// TotalTTC = SubtotalHT + TVAAmount - DiscountAmount.
type Totals struct {
	SubtotalHT     decimal.Decimal
	TVARate        decimal.Decimal
	TVAAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	TotalTTC       decimal.Decimal
}

// ComputeTotals calcula los totales de las líneas con la tasa de TVA y el descuento global.
// Con tvaRate = 0 el total es exactamente Σ line_total - discount.
func ComputeTotals(lines []entity.LineItem, tvaRate, discount decimal.Decimal) (Totals, error) {
	v := domain.Violations{}
	if tvaRate.IsNegative() || tvaRate.GreaterThan(hundred) {
		v.Add("tva_rate", "Le taux de TVA doit être compris entre 0 et 100")
	}
	if discount.IsNegative() {
		v.Add("discount_amount", "La remise ne peut pas être négative")
	}
	if err := v.Err(); err != nil {
		return Totals{}, err
	}

	sub := Subtotal(lines)
	tva := Round2(sub.Mul(tvaRate).Div(hundred))
	if discount.GreaterThan(sub.Add(tva)) {
		v.Add("discount_amount", "La remise dépasse le montant de la facture")
		return Totals{}, v.Err()
	}
	discount = Round2(discount)
	return Totals{
		SubtotalHT:     sub,
		TVARate:        tvaRate,
		TVAAmount:      tva,
		DiscountAmount: discount,
		TotalTTC:       sub.Add(tva).Sub(discount),
	}, nil
}

// InvoiceTotals extrae los totales almacenados en la factura.
func InvoiceTotals(inv *entity.Invoice) Totals {
	return Totals{
		SubtotalHT:     inv.SubtotalHT,
		TVARate:        inv.TVARate,
		TVAAmount:      inv.TVAAmount,
		DiscountAmount: inv.DiscountAmount,
		TotalTTC:       inv.TotalTTC,
	}
}

// VerifyTotals recalcula desde las líneas y compara con los totales almacenados.
func VerifyTotals(stored Totals, lines []entity.LineItem) bool {
	got, err := ComputeTotals(lines, stored.TVARate, stored.DiscountAmount)
	if err != nil {
		return false
	}
	return got.SubtotalHT.Equal(stored.SubtotalHT) &&
		got.TVAAmount.Equal(stored.TVAAmount) &&
		got.TotalTTC.Equal(stored.TotalTTC)
}
