package lead

import (
	"fmt"

	"leadform/internal/pkg/validator"
)

// FieldErrors maps a form field to its single error message.
type FieldErrors map[string]string

type careerForm struct {
	Nombre   string `json:"nombre" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Pais     string `json:"pais" validate:"required"`
	Telefono string `json:"telefono" validate:"required,digits,min=7,max=15"`
	Carrera  string `json:"carrera" validate:"required"`
}

type productForm struct {
	Nombre   string `json:"nombre" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Pais     string `json:"pais" validate:"required"`
	Telefono string `json:"telefono" validate:"required,digits,min=7,max=15"`
	Producto string `json:"producto" validate:"required"`
	Status   string `json:"status" validate:"required"`
	Owner    string `json:"owner" validate:"required"`
}

var messages = map[string]map[string]string{
	FieldNombre: {
		"required": "Nombre es requerido",
		"min":      "Nombre debe tener al menos 2 caracteres",
		"max":      "Nombre no puede tener más de 50 caracteres",
	},
	FieldEmail: {
		"required": "Email es requerido",
		"email":    "Debe ser un email válido",
	},
	FieldPais: {
		"required": "Pais es requerido",
	},
	FieldTelefono: {
		"required": "Telefono es requerido",
		"digits":   "El teléfono solo puede contener números",
		"min":      "El teléfono debe tener al menos 7 dígitos",
		"max":      "El teléfono no puede exceder los 15 dígitos",
	},
	FieldCarrera: {
		"required": "Carrera es requerida",
	},
	FieldProducto: {
		"required": "Producto es requerido",
	},
	FieldStatus: {
		"required": "Status es requerido",
	},
	FieldOwner: {
		"required": "Owner es requerido",
	},
}

// Schema validates drafts of one form variant.
type Schema struct {
	variant Variant
}

func NewSchema(variant Variant) *Schema {
	return &Schema{variant: variant}
}

func (s *Schema) Variant() Variant {
	return s.variant
}

// Validate returns nil when the draft is valid.
func (s *Schema) Validate(d Draft) FieldErrors {
	var form interface{}
	switch s.variant {
	case VariantCareer:
		form = &careerForm{
			Nombre:   d.Nombre,
			Email:    d.Email,
			Pais:     d.Pais,
			Telefono: d.Telefono,
			Carrera:  d.Carrera,
		}
	default:
		form = &productForm{
			Nombre:   d.Nombre,
			Email:    d.Email,
			Pais:     d.Pais,
			Telefono: d.Telefono,
			Producto: d.Producto,
			Status:   d.Status,
			Owner:    d.Owner,
		}
	}

	failed := validator.Validate(form)
	if len(failed) == 0 {
		return nil
	}

	errs := make(FieldErrors, len(failed))
	for field, tag := range failed {
		errs[field] = message(field, tag)
	}
	return errs
}

func message(field, tag string) string {
	if m, ok := messages[field][tag]; ok {
		return m
	}
	return fmt.Sprintf("%s no es válido", field)
}
