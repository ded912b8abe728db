// Package numwords escribe montos en letras en francés (facturas impresas).
package numwords

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	thousand = 1_000
	million  = 1_000_000
	milliard = 1_000_000_000
)

var (
	units = [...]string{"", "un", "deux", "trois", "quatre", "cinq", "six", "sept", "huit", "neuf"}
	teens = [...]string{"dix", "onze", "douze", "treize", "quatorze", "quinze", "seize", "dix-sept", "dix-huit", "dix-neuf"}
	tens  = [...]string{"", "dix", "vingt", "trente", "quarante", "cinquante", "soixante"}
)

// Words convierte un entero no negativo a su forma cardinal en francés.
// Ortografía tradicional: "vingt et un", "soixante et onze", "quatre-vingts",
// "deux cents"; "mille" es invariable.
func Words(n uint64) string {
	if n == 0 {
		return "zéro"
	}
	return spell(n, true)
}

// AmountInWords escribe la parte entera de amount seguida de la moneda.
func AmountInWords(amount decimal.Decimal, currency string) string {
	prefix := ""
	if amount.IsNegative() {
		prefix = "moins "
		amount = amount.Neg()
	}
	out := prefix + Words(uint64(amount.Floor().IntPart()))
	if currency = strings.TrimSpace(currency); currency != "" {
		out += " " + currency
	}
	return out
}

// spell: final indica que nada sigue al número (controla el plural de cent/vingt).
func spell(n uint64, final bool) string {
	var parts []string
	if n >= milliard {
		q := n / milliard
		parts = append(parts, spell(q, true)+" milliard"+plural(q))
		n %= milliard
	}
	if n >= million {
		q := n / million
		parts = append(parts, spell(q, true)+" million"+plural(q))
		n %= million
	}
	if n >= thousand {
		q := n / thousand
		if q == 1 {
			parts = append(parts, "mille")
		} else {
			parts = append(parts, spell(q, false)+" mille")
		}
		n %= thousand
	}
	if n > 0 {
		parts = append(parts, hundreds(n, final))
	}
	return strings.Join(parts, " ")
}

func hundreds(n uint64, final bool) string {
	h, r := n/100, n%100
	var parts []string
	if h > 0 {
		w := "cent"
		if h > 1 {
			w = units[h] + " cent"
			if r == 0 && final {
				w += "s"
			}
		}
		parts = append(parts, w)
	}
	if r > 0 {
		parts = append(parts, belowHundred(r, final))
	}
	return strings.Join(parts, " ")
}

func belowHundred(n uint64, final bool) string {
	if n < 10 {
		return units[n]
	}
	if n < 20 {
		return teens[n-10]
	}
	t, u := n/10, n%10
	switch t {
	case 7:
		if u == 1 {
			return "soixante et onze"
		}
		return "soixante-" + teens[u]
	case 8:
		if u == 0 {
			if final {
				return "quatre-vingts"
			}
			return "quatre-vingt"
		}
		return "quatre-vingt-" + units[u]
	case 9:
		return "quatre-vingt-" + teens[u]
	}
	switch u {
	case 0:
		return tens[t]
	case 1:
		return tens[t] + " et un"
	default:
		return tens[t] + "-" + units[u]
	}
}

func plural(q uint64) string {
	if q > 1 {
		return "s"
	}
	return ""
}
