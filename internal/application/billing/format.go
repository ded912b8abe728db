package billing

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var frPrinter = message.NewPrinter(language.French)

// FormatAmount importe con 2 decimales en formato fr-FR (separador de miles y coma decimal).
func FormatAmount(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return frPrinter.Sprint(number.Decimal(f, number.Scale(2)))
}

// FormatPercent porcentaje sin decimales superfluos ("10", "12,5").
func FormatPercent(d decimal.Decimal) string {
	f, _ := d.Float64()
	return frPrinter.Sprint(number.Decimal(f, number.MaxFractionDigits(2)))
}
