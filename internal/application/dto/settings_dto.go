package dto

// SettingsRequest body para PUT /api/settings.
type SettingsRequest struct {
	CompanyName  string  `json:"company_name"`
	PatentNumber string  `json:"patent_number,omitempty"`
	FoundedOn    *string `json:"founded_on,omitempty"`
	Manager      string  `json:"manager,omitempty"`
	Address      string  `json:"address"`
	Phone        string  `json:"phone"`
	Mobile       string  `json:"mobile,omitempty"`
	Email        string  `json:"email"`
	LogoPath     string  `json:"logo_path,omitempty"`
}

// SettingsResponse perfil de la empresa.
type SettingsResponse struct {
	CompanyName  string `json:"company_name"`
	PatentNumber string `json:"patent_number,omitempty"`
	FoundedOn    string `json:"founded_on,omitempty"`
	Manager      string `json:"manager,omitempty"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	Mobile       string `json:"mobile,omitempty"`
	Email        string `json:"email"`
	LogoPath     string `json:"logo_path,omitempty"`
	UpdatedAt    string `json:"updated_at,omitempty"`
}
