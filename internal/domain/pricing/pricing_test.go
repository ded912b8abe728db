package pricing

import (
	"testing"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDec(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, d(want).Equal(got), append([]interface{}{"want %s got %s", want, got.String()}, msgAndArgs...)...)
}

func TestLineTotal(t *testing.T) {
	cases := []struct {
		qty int
		price, pct string
		want string
	}{
		{3, "10.00", "0", "30"},
		{2, "19.99", "15", "33.98"},
		{1, "0.125", "0", "0.13"},
		{1, "100", "100", "0"},
		{4, "12.50", "50", "25"},
		{7, "3.33", "33.3", "15.55"},
	}
	for _, tc := range cases {
		assertDec(t, tc.want, LineTotal(tc.qty, d(tc.price), d(tc.pct)))
	}
}

func TestLineTotal_CoincideConFormula(t *testing.T) {
	for qty := 1; qty <= 12; qty++ {
		for _, price := range []string{"0", "0.01", "9.99", "149.90", "1234.56"} {
			for pct := 0; pct <= 100; pct += 5 {
				p, disc := d(price), decimal.NewFromInt(int64(pct))
				want := p.Mul(decimal.NewFromInt(int64(qty))).
					Mul(decimal.NewFromInt(1).Sub(disc.Div(hundred))).Round(2)
				assert.True(t, want.Equal(LineTotal(qty, p, disc)), "qty=%d price=%s pct=%d", qty, price, pct)
			}
		}
	}
}

func TestValidateLines(t *testing.T) {
	lines := []entity.LineItem{
		{Quantity: 1, UnitPrice: d("10"), DiscountPct: d("0")},
		{Quantity: 0, UnitPrice: d("10"), DiscountPct: d("101")},
		{Quantity: 2, UnitPrice: d("-1"), DiscountPct: d("-0.5")},
	}
	err := ValidateLines(lines)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	fields, ok := domain.FieldErrors(err)
	require.True(t, ok)
	assert.Contains(t, fields, "items[1].quantity")
	assert.Contains(t, fields, "items[1].discount_pct")
	assert.Contains(t, fields, "items[2].unit_price")
	assert.Contains(t, fields, "items[2].discount_pct")
	assert.NotContains(t, fields, "items[0].quantity")

	assert.NoError(t, ValidateLines(lines[:1]))
	assert.NoError(t, ValidateLines([]entity.LineItem{{Quantity: 1, UnitPrice: d("0"), DiscountPct: d("100")}}))
}

func TestValidateLines_DuplicadosConPrecioDistinto(t *testing.T) {
	lines := []entity.LineItem{
		{ArticleID: "A", Quantity: 1, UnitPrice: d("100"), DiscountPct: d("0")},
		{ArticleID: "A", Quantity: 1, UnitPrice: d("50"), DiscountPct: d("50")},
		{OfferID: "O1", Quantity: 1, UnitPrice: d("30"), DiscountPct: d("0")},
		{OfferID: "O1", Quantity: 1, UnitPrice: d("30"), DiscountPct: d("5")},
	}
	err := ValidateLines(lines)
	require.Error(t, err)
	fields, ok := domain.FieldErrors(err)
	require.True(t, ok)
	assert.Contains(t, fields, "items[1].article_id")
	assert.Contains(t, fields, "items[3].offer_id")
	assert.NotContains(t, fields, "items[0].article_id")

	// Mismo precio y descuento: se aceptan y se fusionan sin cambiar el importe.
	same := []entity.LineItem{
		{ArticleID: "A", Quantity: 1, UnitPrice: d("100"), DiscountPct: d("10")},
		{ArticleID: "A", Quantity: 2, UnitPrice: d("100.00"), DiscountPct: d("10")},
	}
	require.NoError(t, ValidateLines(same))
	sel := NewSelection(same...)
	require.Equal(t, 1, sel.Len())
	assert.Equal(t, 3, sel.Lines()[0].Quantity)
	assertDec(t, "270", Subtotal(sel.Lines()))
}

func TestClampDiscount(t *testing.T) {
	assertDec(t, "0", ClampDiscount(d("-3")))
	assertDec(t, "100", ClampDiscount(d("150")))
	assertDec(t, "12.5", ClampDiscount(d("12.5")))
}

func sampleLines() []entity.LineItem {
	return []entity.LineItem{
		{Quantity: 2, UnitPrice: d("50"), DiscountPct: d("10")}, // 90
		{Quantity: 1, UnitPrice: d("20"), DiscountPct: d("0")},  // 20
	}
}

func TestComputeTotals(t *testing.T) {
	tot, err := ComputeTotals(sampleLines(), decimal.Zero, d("10"))
	require.NoError(t, err)
	assertDec(t, "110", tot.SubtotalHT)
	assertDec(t, "0", tot.TVAAmount)
	assertDec(t, "100", tot.TotalTTC)

	tot, err = ComputeTotals(sampleLines(), d("20"), d("10"))
	require.NoError(t, err)
	assertDec(t, "22", tot.TVAAmount)
	assertDec(t, "122", tot.TotalTTC)
}

func TestComputeTotals_Rechazos(t *testing.T) {
	_, err := ComputeTotals(sampleLines(), d("101"), decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = ComputeTotals(sampleLines(), decimal.Zero, d("-1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = ComputeTotals(sampleLines(), decimal.Zero, d("110.01"))
	fields, ok := domain.FieldErrors(err)
	require.True(t, ok)
	assert.Contains(t, fields, "discount_amount")
}

func TestVerifyTotals_IdaYVuelta(t *testing.T) {
	for pct := 0; pct <= 100; pct += 7 {
		for discount := 0; discount <= 30; discount += 3 {
			lines := []entity.LineItem{
				{Quantity: 3, UnitPrice: d("33.33"), DiscountPct: decimal.NewFromInt(int64(pct))},
				{Quantity: 1, UnitPrice: d("45.10"), DiscountPct: d("0")},
			}
			ApplyAll(lines)
			tot, err := ComputeTotals(lines, decimal.Zero, decimal.NewFromInt(int64(discount)))
			require.NoError(t, err)

			sum := decimal.Zero
			for _, l := range lines {
				sum = sum.Add(l.LineTotal)
			}
			assert.True(t, tot.TotalTTC.Equal(sum.Sub(decimal.NewFromInt(int64(discount)))))
			assert.True(t, VerifyTotals(tot, lines))
		}
	}

	tot, err := ComputeTotals(sampleLines(), decimal.Zero, d("10"))
	require.NoError(t, err)
	tot.TotalTTC = tot.TotalTTC.Add(d("0.01"))
	assert.False(t, VerifyTotals(tot, sampleLines()))
}

var (
	artA = entity.Article{ID: "A", Reference: "FH-01", Designation: "Filtre à huile", SalePriceHT: d("80")}
	artB = entity.Article{ID: "B", Reference: "HM-5W30", Designation: "Huile moteur 5W30", SalePriceHT: d("120")}
)

func TestSelection_OfertaFusionaPorArticulo(t *testing.T) {
	s := NewSelection()
	s.AddArticle(artA)

	offer := entity.Offer{ID: "O1", Name: "Vidange", DiscountPct: d("10")}
	s.AddOffer(offer, []*entity.OfferArticle{
		{Article: artA, OfferID: "O1"},
		{Article: artB, OfferID: "O1"},
	})

	lines := s.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "A", lines[0].ArticleID)
	assert.Equal(t, 2, lines[0].Quantity)
	assertDec(t, "160", lines[0].LineTotal)
	assert.Equal(t, "B", lines[1].ArticleID)
	assert.Equal(t, 1, lines[1].Quantity)
	assert.Equal(t, "O1", lines[1].OfferID)
	assertDec(t, "108", lines[1].LineTotal)
}

func TestSelection_DescuentoEspecificoPrevalece(t *testing.T) {
	five := d("5")
	s := NewSelection()
	s.AddOffer(entity.Offer{ID: "O1", DiscountPct: d("10")}, []*entity.OfferArticle{
		{Article: artA, SpecificDiscountPct: &five},
		{Article: artB},
	})
	lines := s.Lines()
	require.Len(t, lines, 2)
	assertDec(t, "5", lines[0].DiscountPct)
	assertDec(t, "10", lines[1].DiscountPct)
}

func TestSelection_LineasExistentesYLibres(t *testing.T) {
	s := NewSelection(
		entity.LineItem{ArticleID: "A", Quantity: 3, UnitPrice: d("80"), DiscountPct: d("0")},
		entity.LineItem{Designation: "Main d'oeuvre", Quantity: 1, UnitPrice: d("150"), DiscountPct: d("0")},
	)
	s.Add(entity.LineItem{Designation: "Main d'oeuvre", Quantity: 2, UnitPrice: d("150"), DiscountPct: d("0")})
	s.AddArticle(artA)

	lines := s.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, 4, lines[0].Quantity)
	assertDec(t, "320", lines[0].LineTotal)
	assert.Equal(t, 3, s.Len())

	lines[0].Quantity = 99
	assert.Equal(t, 4, s.Lines()[0].Quantity)
}
