package dto

// TechnicianRequest body para POST/PUT /api/technicians.
type TechnicianRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	BirthDate string `json:"birth_date" example:"1990-05-14"`
	Specialty string `json:"specialty"`
	Email     string `json:"email"`
	UserName  string `json:"user_name"`
}

// TechnicianResponse técnico en respuestas.
type TechnicianResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
	BirthDate string `json:"birth_date"`
	Specialty string `json:"specialty"`
	Email     string `json:"email"`
	UserName  string `json:"user_name"`
}
