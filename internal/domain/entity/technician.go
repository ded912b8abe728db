package entity

import "time"

// Technician mecánico asignable a intervenciones (referenciado, nunca poseído).
type Technician struct {
	ID        string
	FirstName string
	LastName  string
	BirthDate time.Time
	Specialty string
	Email     string
	UserName  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName "prénom nom", como en los listados del taller.
func (t *Technician) FullName() string {
	return t.FirstName + " " + t.LastName
}
