package entity

import "time"

// CompanySettings perfil único de la empresa (encabezado de documentos impresos).
type CompanySettings struct {
	ID           string
	CompanyName  string
	PatentNumber string
	FoundedOn    *time.Time
	Manager      string
	Address      string
	Phone        string
	Mobile       string
	Email        string
	LogoPath     string
	UpdatedAt    time.Time
}
