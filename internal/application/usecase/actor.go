package usecase

import "github.com/jhoicas/Taller-api/pkg/jwt"

// Actor usuario que ejecuta la operación. Lo construye el handler a partir del token
// de la petición y se pasa explícitamente a cada caso de uso.
type Actor struct {
	UserID string
	Role   string
}

// IsAdmin indica si el actor tiene rol administrador.
func (a Actor) IsAdmin() bool {
	return a.Role == jwt.RoleAdmin
}
