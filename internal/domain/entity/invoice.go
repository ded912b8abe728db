package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus estado de cobro de una factura.
type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "Non payée"
	PaymentPaid   PaymentStatus = "Payée"
)

// Invoice factura con sus líneas. TotalTTC = SubtotalHT + TVAAmount − DiscountAmount.
type Invoice struct {
	ID             string
	ClientID       string
	InterventionID string
	OrderID        string
	Number         string
	Date           time.Time
	Lines          []LineItem
	SubtotalHT     decimal.Decimal
	TVARate        decimal.Decimal
	TVAAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	TotalTTC       decimal.Decimal
	PaymentStatus  PaymentStatus
	PaymentMethod  string
	PaymentDate    *time.Time
	CreatedAt      time.Time
}
