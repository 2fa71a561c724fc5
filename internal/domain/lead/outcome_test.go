package lead

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutcomeFor(t *testing.T) {
	ok := OutcomeFor(nil)
	assert.True(t, ok.OK())
	assert.Equal(t, "Lead creado exitosamente", ok.Summary)

	fields := FieldErrors{FieldEmail: "Email es requerido"}
	invalid := OutcomeFor(fmt.Errorf("submit: %w", &ValidationError{Fields: fields}))
	assert.Equal(t, SeverityError, invalid.Severity)
	assert.Equal(t, "Error", invalid.Summary)
	assert.Equal(t, "Hay errores en el formulario, corrijalos e intente nuevamente.", invalid.Detail)
	assert.Equal(t, 5000, invalid.Life)
	assert.Equal(t, fields, invalid.Fields)

	for _, err := range []error{
		&ServerError{StatusCode: 500},
		&TransportError{Err: errors.New("refused")},
		errors.New("anything else"),
	} {
		o := OutcomeFor(err)
		assert.False(t, o.OK())
		assert.Equal(t, "Ha ocurrido un error al crear", o.Detail)
		assert.Zero(t, o.Life)
		assert.Nil(t, o.Fields)
	}
}

func TestValidationError_MessageListsFields(t *testing.T) {
	err := &ValidationError{Fields: FieldErrors{FieldPais: "x", FieldEmail: "y"}}
	assert.Equal(t, "lead validation failed: email, pais", err.Error())
	assert.True(t, IsValidation(err))
	assert.False(t, IsValidation(&ServerError{}))
}
