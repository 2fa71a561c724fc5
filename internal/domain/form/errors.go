package form

import "errors"

var (
	ErrFormNotFound = errors.New("form not found")
	ErrFormBusy     = errors.New("form is submitting")
	ErrFormClosed   = errors.New("form is closed")
	ErrUnknownField = errors.New("unknown form field")
)
