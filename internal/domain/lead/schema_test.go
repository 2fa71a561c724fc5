package lead

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validProductDraft() Draft {
	return Draft{
		Nombre:   "Ana",
		Email:    "ana@example.com",
		Telefono: "5512345678",
		Pais:     "1",
		Producto: "3",
		Owner:    "2",
		Status:   "1",
	}
}

func validCareerDraft() Draft {
	return Draft{
		Nombre:   "Ana",
		Email:    "ana@example.com",
		Telefono: "5512345678",
		Pais:     "1",
		Carrera:  "7",
	}
}

func TestSchema_ValidDrafts(t *testing.T) {
	assert.Nil(t, NewSchema(VariantProduct).Validate(validProductDraft()))
	assert.Nil(t, NewSchema(VariantCareer).Validate(validCareerDraft()))
}

func TestSchema_EmptyDraftReportsEveryField(t *testing.T) {
	errs := NewSchema(VariantProduct).Validate(Draft{})
	assert.Equal(t, FieldErrors{
		FieldNombre:   "Nombre es requerido",
		FieldEmail:    "Email es requerido",
		FieldTelefono: "Telefono es requerido",
		FieldPais:     "Pais es requerido",
		FieldProducto: "Producto es requerido",
		FieldOwner:    "Owner es requerido",
		FieldStatus:   "Status es requerido",
	}, errs)

	errs = NewSchema(VariantCareer).Validate(Draft{})
	assert.Len(t, errs, 5)
	assert.Equal(t, "Carrera es requerida", errs[FieldCarrera])
	assert.NotContains(t, errs, FieldProducto)
}

func TestSchema_FieldRules(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(d *Draft)
		field string
		msg   string
	}{
		{"nombre short", func(d *Draft) { d.Nombre = "A" }, FieldNombre, "Nombre debe tener al menos 2 caracteres"},
		{"nombre long", func(d *Draft) { d.Nombre = strings.Repeat("a", 51) }, FieldNombre, "Nombre no puede tener más de 50 caracteres"},
		{"email without domain dot", func(d *Draft) { d.Email = "a@b" }, FieldEmail, "Debe ser un email válido"},
		{"email without at", func(d *Draft) { d.Email = "ab.com" }, FieldEmail, "Debe ser un email válido"},
		{"telefono letters", func(d *Draft) { d.Telefono = "12345ab" }, FieldTelefono, "El teléfono solo puede contener números"},
		{"telefono letters and short", func(d *Draft) { d.Telefono = "12a" }, FieldTelefono, "El teléfono solo puede contener números"},
		{"telefono short", func(d *Draft) { d.Telefono = "123456" }, FieldTelefono, "El teléfono debe tener al menos 7 dígitos"},
		{"telefono long", func(d *Draft) { d.Telefono = "1234567890123456" }, FieldTelefono, "El teléfono no puede exceder los 15 dígitos"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validProductDraft()
			tt.edit(&d)

			errs := NewSchema(VariantProduct).Validate(d)
			assert.Equal(t, FieldErrors{tt.field: tt.msg}, errs)
		})
	}
}

func TestSchema_Boundaries(t *testing.T) {
	schema := NewSchema(VariantProduct)

	for _, d := range []Draft{
		func() Draft { d := validProductDraft(); d.Nombre = "Al"; return d }(),
		func() Draft { d := validProductDraft(); d.Nombre = strings.Repeat("ñ", 50); return d }(),
		func() Draft { d := validProductDraft(); d.Telefono = "1234567"; return d }(),
		func() Draft { d := validProductDraft(); d.Telefono = "123456789012345"; return d }(),
		func() Draft { d := validProductDraft(); d.Email = "a@b.com"; return d }(),
	} {
		assert.Nil(t, schema.Validate(d), "draft %+v", d)
	}
}

func TestSchema_IgnoresFieldsOfOtherVariant(t *testing.T) {
	d := validCareerDraft()
	d.Producto = ""
	d.Owner = ""
	assert.Nil(t, NewSchema(VariantCareer).Validate(d))
}
