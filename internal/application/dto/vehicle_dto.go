package dto

// VehicleRequest body para POST/PUT /api/vehicles. Fechas en formato YYYY-MM-DD.
type VehicleRequest struct {
	ClientID              string  `json:"client_id"`
	Plate                 string  `json:"plate" example:"12345-A-6"`
	Make                  string  `json:"make"`
	Model                 string  `json:"model"`
	Year                  int     `json:"year"`
	Odometer              int     `json:"odometer"`
	Color                 string  `json:"color,omitempty"`
	FuelType              string  `json:"fuel_type,omitempty"` // essence|diesel|hybride|electrique|gpl
	Power                 string  `json:"power,omitempty"`
	FirstRegistrationDate *string `json:"first_registration_date,omitempty"`
	LastServiceDate       *string `json:"last_service_date,omitempty"`
	NextInspectionDate    *string `json:"next_inspection_date,omitempty"`
	Status                string  `json:"status,omitempty"` // actif (defecto)|maintenance|inactif
	Notes                 string  `json:"notes,omitempty"`
}

// VehicleResponse vehículo en respuestas.
type VehicleResponse struct {
	ID                    string `json:"id"`
	ClientID              string `json:"client_id"`
	Plate                 string `json:"plate"`
	Make                  string `json:"make"`
	Model                 string `json:"model"`
	Year                  int    `json:"year"`
	Odometer              int    `json:"odometer"`
	Color                 string `json:"color,omitempty"`
	FuelType              string `json:"fuel_type,omitempty"`
	Power                 string `json:"power,omitempty"`
	FirstRegistrationDate string `json:"first_registration_date,omitempty"`
	LastServiceDate       string `json:"last_service_date,omitempty"`
	NextInspectionDate    string `json:"next_inspection_date,omitempty"`
	Status                string `json:"status"`
	Notes                 string `json:"notes,omitempty"`
}
