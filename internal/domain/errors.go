package domain

import (
	"errors"
	"fmt"
	"net/mail"
	"sort"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrPreconditionFailed = errors.New("precondición no cumplida")
	// ErrInvalidTransition es un caso particular de precondición.
	ErrInvalidTransition = fmt.Errorf("%w: transición de estado no permitida", ErrPreconditionFailed)
)

// ValidationError agrupa errores por campo del formulario (campo -> mensaje).
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validación: " + strings.Join(parts, "; ")
}

// Is permite errors.Is(err, ErrInvalidInput) sobre errores de validación.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Violations acumula errores por campo; vacío significa válido.
type Violations map[string]string

// Add registra el primer mensaje para el campo.
func (v Violations) Add(field, msg string) {
	if _, ok := v[field]; !ok {
		v[field] = msg
	}
}

// Required falla si el valor está vacío (ignorando espacios).
func (v Violations) Required(field, value, msg string) {
	if strings.TrimSpace(value) == "" {
		v.Add(field, msg)
	}
}

// Err devuelve nil si no hay violaciones.
func (v Violations) Err() error {
	if len(v) == 0 {
		return nil
	}
	return &ValidationError{Fields: map[string]string(v)}
}

// FieldErrors extrae el mapa de campos si err es un ValidationError.
func FieldErrors(err error) (map[string]string, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Fields, true
	}
	return nil, false
}

// Email falla si el valor no es una dirección válida (vacío incluido).
func (v Violations) Email(field, value, requiredMsg, invalidMsg string) {
	value = strings.TrimSpace(value)
	if value == "" {
		v.Add(field, requiredMsg)
		return
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		v.Add(field, invalidMsg)
	}
}
