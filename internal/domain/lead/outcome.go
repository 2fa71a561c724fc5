package lead

import "errors"

// Severity of a toast shown to the person filling the form.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

const (
	summaryCreated     = "Lead creado exitosamente"
	summaryError       = "Error"
	detailFormInvalid  = "Hay errores en el formulario, corrijalos e intente nuevamente."
	detailCreateFailed = "Ha ocurrido un error al crear"

	// invalidFormLife is how long, in milliseconds, the validation toast stays visible.
	invalidFormLife = 5000
)

// Outcome is the display value of a submission. It never names the error kind.
type Outcome struct {
	Severity Severity    `json:"severity"`
	Summary  string      `json:"summary"`
	Detail   string      `json:"detail,omitempty"`
	Life     int         `json:"life,omitempty"`
	Fields   FieldErrors `json:"fields,omitempty"`
}

func (o Outcome) OK() bool {
	return o.Severity == SeveritySuccess
}

// OutcomeFor collapses a Submit result into one of the two user-visible outcomes.
func OutcomeFor(err error) Outcome {
	if err == nil {
		return Outcome{Severity: SeveritySuccess, Summary: summaryCreated}
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		return Outcome{
			Severity: SeverityError,
			Summary:  summaryError,
			Detail:   detailFormInvalid,
			Life:     invalidFormLife,
			Fields:   ve.Fields,
		}
	}

	return Outcome{
		Severity: SeverityError,
		Summary:  summaryError,
		Detail:   detailCreateFailed,
	}
}
