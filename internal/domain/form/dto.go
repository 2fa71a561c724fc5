package form

import "leadform/internal/domain/lead"

// UpdateFormRequest carries field edits keyed by form field name.
type UpdateFormRequest struct {
	Fields map[string]string `json:"fields" binding:"required"`
}

// SubmitFormResponse is returned after a submit attempt.
type SubmitFormResponse struct {
	Outcome lead.Outcome `json:"outcome"`
	Form    View         `json:"form"`
}
