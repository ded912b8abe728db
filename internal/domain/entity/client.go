package entity

import "time"

// ClientType distingue particulares de sociedades.
type ClientType string

const (
	ClientIndividual ClientType = "particulier"
	ClientCompany    ClientType = "societe"
)

// MaxPaymentTermDays plazo de pago máximo para sociedades.
const MaxPaymentTermDays = 60

// Client cliente del taller. Los particulares usan FirstName/LastName;
// las sociedades CompanyName, RegistrationNumber (RCC) y PaymentTermDays.
type Client struct {
	ID                 string
	Type               ClientType
	FirstName          string
	LastName           string
	CompanyName        string
	RegistrationNumber string
	Email              string
	Phone              string
	Address            string
	PostalCode         string
	City               string
	PaymentTermDays    int
	Notes              string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// DisplayName nombre a mostrar en listados y documentos.
func (c *Client) DisplayName() string {
	if c.Type == ClientCompany {
		return c.CompanyName
	}
	return c.FirstName + " " + c.LastName
}
