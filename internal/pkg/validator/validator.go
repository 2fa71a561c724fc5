package validator

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var digitsRegex = regexp.MustCompile(`^[0-9]+$`)

func init() {
	validate = validator.New()

	// Report fields by their json name so callers can key messages by form field.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	// digits accepts ASCII digits only: no sign, no decimal point, no spaces.
	if err := validate.RegisterValidation("digits", func(fl validator.FieldLevel) bool {
		return digitsRegex.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
}

// Validate struct fields. The result maps each failing field to the first tag it failed.
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return map[string]string{"": err.Error()}
	}

	errs := make(map[string]string, len(validationErrors))
	for _, fieldErr := range validationErrors {
		if _, seen := errs[fieldErr.Field()]; !seen {
			errs[fieldErr.Field()] = fieldErr.Tag()
		}
	}
	return errs
}
