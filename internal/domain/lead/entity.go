package lead

import (
	"strings"
	"time"
)

// Variant selects the field set of the form.
type Variant string

const (
	VariantCareer  Variant = "career"
	VariantProduct Variant = "product"
)

// Form field names. They double as json keys of the draft and keys of FieldErrors.
const (
	FieldNombre   = "nombre"
	FieldEmail    = "email"
	FieldTelefono = "telefono"
	FieldPais     = "pais"
	FieldCarrera  = "carrera"
	FieldProducto = "producto"
	FieldOwner    = "owner"
	FieldStatus   = "status"
)

// ParseVariant accepts "career" or "product".
func ParseVariant(s string) (Variant, error) {
	switch v := Variant(strings.ToLower(strings.TrimSpace(s))); v {
	case VariantCareer, VariantProduct:
		return v, nil
	default:
		return "", ErrUnknownVariant
	}
}

// Fields lists the form fields of the variant in display order.
func (v Variant) Fields() []string {
	if v == VariantCareer {
		return []string{FieldNombre, FieldEmail, FieldTelefono, FieldPais, FieldCarrera}
	}
	return []string{FieldNombre, FieldEmail, FieldTelefono, FieldPais, FieldProducto, FieldOwner, FieldStatus}
}

func (v Variant) HasField(field string) bool {
	for _, f := range v.Fields() {
		if f == field {
			return true
		}
	}
	return false
}

// Draft is the flat, not-yet-submitted lead as edited in the form.
type Draft struct {
	Nombre   string `json:"nombre"`
	Email    string `json:"email"`
	Telefono string `json:"telefono"`
	Pais     string `json:"pais"`
	Carrera  string `json:"carrera,omitempty"`
	Producto string `json:"producto,omitempty"`
	Owner    string `json:"owner,omitempty"`
	Status   string `json:"status,omitempty"`
}

// Set assigns a field by its form name. It reports false for unknown names.
func (d *Draft) Set(field, value string) bool {
	switch field {
	case FieldNombre:
		d.Nombre = value
	case FieldEmail:
		d.Email = value
	case FieldTelefono:
		d.Telefono = value
	case FieldPais:
		d.Pais = value
	case FieldCarrera:
		d.Carrera = value
	case FieldProducto:
		d.Producto = value
	case FieldOwner:
		d.Owner = value
	case FieldStatus:
		d.Status = value
	default:
		return false
	}
	return true
}

// SubmissionResult is the recorded result of one broker call
type SubmissionResult string

const (
	ResultSuccess        SubmissionResult = "success"
	ResultServerError    SubmissionResult = "server_error"
	ResultTransportError SubmissionResult = "transport_error"
)

// Submission is one attempt to deliver a lead to the broker.
type Submission struct {
	ID         string           `json:"id" gorm:"primaryKey;size:36"`
	Variant    Variant          `json:"variant" gorm:"size:16;not null"`
	Nombre     string           `json:"nombre" gorm:"size:50"`
	Email      string           `json:"email" gorm:"size:255;index"`
	Result     SubmissionResult `json:"result" gorm:"size:32;not null;index"`
	StatusCode int              `json:"status_code"`
	Error      string           `json:"error,omitempty" gorm:"size:1024"`
	LatencyMS  int64            `json:"latency_ms"`
	CreatedAt  time.Time        `json:"created_at" gorm:"index"`
}

// TableName returns the table name
func (Submission) TableName() string {
	return "lead_submissions"
}
