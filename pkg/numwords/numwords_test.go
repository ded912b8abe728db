package numwords

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestWords_ValoresLimite(t *testing.T) {
	cases := []struct {
		n    uint64
		want string
	}{
		{0, "zéro"},
		{1, "un"},
		{10, "dix"},
		{11, "onze"},
		{16, "seize"},
		{17, "dix-sept"},
		{20, "vingt"},
		{21, "vingt et un"},
		{22, "vingt-deux"},
		{61, "soixante et un"},
		{70, "soixante-dix"},
		{71, "soixante et onze"},
		{72, "soixante-douze"},
		{79, "soixante-dix-neuf"},
		{80, "quatre-vingts"},
		{81, "quatre-vingt-un"},
		{90, "quatre-vingt-dix"},
		{91, "quatre-vingt-onze"},
		{99, "quatre-vingt-dix-neuf"},
		{100, "cent"},
		{101, "cent un"},
		{180, "cent quatre-vingts"},
		{200, "deux cents"},
		{201, "deux cent un"},
		{1000, "mille"},
		{1001, "mille un"},
		{1234, "mille deux cent trente-quatre"},
		{2000, "deux mille"},
		{80000, "quatre-vingt mille"},
		{200000, "deux cent mille"},
		{999999, "neuf cent quatre-vingt-dix-neuf mille neuf cent quatre-vingt-dix-neuf"},
		{1000000, "un million"},
		{2000000, "deux millions"},
		{200000000, "deux cents millions"},
		{1000000000, "un milliard"},
		{3001001, "trois millions mille un"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Words(tc.n), "Words(%d)", tc.n)
	}
}

// Propiedades sobre todo el rango usual de facturas.
func TestWords_Propiedades(t *testing.T) {
	for n := uint64(1); n <= 20000; n++ {
		w := Words(n)
		if assert.NotEmpty(t, w) {
			assert.False(t, strings.Contains(w, "  "), "doble espacio en %d: %q", n, w)
			assert.False(t, strings.HasSuffix(w, "-") || strings.HasPrefix(w, " "), "borde inválido en %d: %q", n, w)
			assert.False(t, strings.HasPrefix(w, "un mille"), "'un mille' en %d", n)
			assert.False(t, strings.HasPrefix(w, "un cent"), "'un cent' en %d", n)
			assert.False(t, strings.Contains(w, "dix-onze"), "sufijo 7x/9x mal formado en %d", n)
		}
		if n < 1000 && n > 1 {
			assert.True(t, strings.HasSuffix(Words(n*1000), " mille"), "Words(%d)", n*1000)
		}
	}
}

func TestAmountInWords(t *testing.T) {
	assert.Equal(t, "mille deux cent trente-quatre dirhams", AmountInWords(decimal.RequireFromString("1234.99"), "dirhams"))
	assert.Equal(t, "zéro dirhams", AmountInWords(decimal.RequireFromString("0.40"), "dirhams"))
	assert.Equal(t, "cent", AmountInWords(decimal.NewFromInt(100), ""))
	assert.Equal(t, "moins dix", AmountInWords(decimal.NewFromInt(-10), ""))
}
