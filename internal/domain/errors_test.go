package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViolations(t *testing.T) {
	v := Violations{}
	assert.NoError(t, v.Err())

	v.Required("nom", "  ", "Le nom est requis")
	v.Add("nom", "otro mensaje")
	v.Add("email", "L'email n'est pas valide")

	err := v.Err()
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)

	fields, ok := FieldErrors(fmt.Errorf("crear cliente: %w", err))
	assert.True(t, ok)
	assert.Equal(t, "Le nom est requis", fields["nom"])
	assert.Equal(t, "validación: email: L'email n'est pas valide; nom: Le nom est requis", err.Error())
}

func TestInvalidTransitionEsPrecondicion(t *testing.T) {
	assert.True(t, errors.Is(ErrInvalidTransition, ErrPreconditionFailed))
	assert.False(t, errors.Is(ErrPreconditionFailed, ErrInvalidTransition))
}

func TestViolations_Email(t *testing.T) {
	v := Violations{}
	v.Email("a", "", "requis", "invalide")
	v.Email("b", "garage@example.ma", "requis", "invalide")
	v.Email("c", "pas-un-email", "requis", "invalide")
	v.Email("d", "Garage <garage@example.ma>", "requis", "invalide")
	assert.Equal(t, Violations{"a": "requis", "c": "invalide", "d": "invalide"}, v)
}
