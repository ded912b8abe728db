package entity

import "time"

// VehicleStatus estado administrativo del vehículo.
type VehicleStatus string

const (
	VehicleActive      VehicleStatus = "actif"
	VehicleMaintenance VehicleStatus = "maintenance"
	VehicleInactive    VehicleStatus = "inactif"
)

// Valid indica si el estado es conocido.
func (s VehicleStatus) Valid() bool {
	switch s {
	case VehicleActive, VehicleMaintenance, VehicleInactive:
		return true
	}
	return false
}

// FuelType tipo de combustible.
type FuelType string

const (
	FuelPetrol   FuelType = "essence"
	FuelDiesel   FuelType = "diesel"
	FuelHybrid   FuelType = "hybride"
	FuelElectric FuelType = "electrique"
	FuelLPG      FuelType = "gpl"
)

// Valid indica si el combustible es conocido.
func (f FuelType) Valid() bool {
	switch f {
	case FuelPetrol, FuelDiesel, FuelHybrid, FuelElectric, FuelLPG:
		return true
	}
	return false
}

// Vehicle vehículo perteneciente a exactamente un cliente.
type Vehicle struct {
	ID                    string
	ClientID              string
	Plate                 string
	Make                  string
	Model                 string
	Year                  int
	Odometer              int
	Color                 string
	FuelType              FuelType
	Power                 string
	FirstRegistrationDate *time.Time
	LastServiceDate       *time.Time
	NextInspectionDate    *time.Time
	Status                VehicleStatus
	Notes                 string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
