package form

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"leadform/internal/domain/lead"
	"leadform/internal/domain/notification"
	"leadform/internal/pkg/response"
)

// Handler handles form session HTTP requests
type Handler struct {
	registry *Registry
	hub      *notification.Hub
}

// NewHandler creates form handler
func NewHandler(registry *Registry, hub *notification.Hub) *Handler {
	return &Handler{
		registry: registry,
		hub:      hub,
	}
}

// OpenForm handles POST /api/v1/forms
func (h *Handler) OpenForm(c *gin.Context) {
	form := h.registry.Open(c.Request.Context())
	response.Success(c, http.StatusCreated, form.Snapshot())
}

// GetForm handles GET /api/v1/forms/:id
func (h *Handler) GetForm(c *gin.Context) {
	form, ok := h.lookup(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, form.Snapshot())
}

// UpdateForm handles PATCH /api/v1/forms/:id
func (h *Handler) UpdateForm(c *gin.Context) {
	form, ok := h.lookup(c)
	if !ok {
		return
	}

	var req UpdateFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	if err := form.SetFields(req.Fields); err != nil {
		h.writeFormError(c, err)
		return
	}

	response.Success(c, http.StatusOK, form.Snapshot())
}

// SubmitForm handles POST /api/v1/forms/:id/submit
func (h *Handler) SubmitForm(c *gin.Context) {
	form, ok := h.lookup(c)
	if !ok {
		return
	}

	outcome, err := form.Submit(c.Request.Context())
	if errors.Is(err, ErrFormBusy) || errors.Is(err, ErrFormClosed) {
		h.writeFormError(c, err)
		return
	}
	if err != nil {
		lead.WriteSubmitError(c, err, outcome)
		return
	}

	response.Success(c, http.StatusOK, SubmitFormResponse{
		Outcome: outcome,
		Form:    form.Snapshot(),
	})
}

// CloseForm handles DELETE /api/v1/forms/:id
func (h *Handler) CloseForm(c *gin.Context) {
	if err := h.registry.Close(c.Param("id")); err != nil {
		h.writeFormError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Form closed"})
}

// Notifications handles GET /ws/forms/:id/notifications
func (h *Handler) Notifications(c *gin.Context) {
	form, ok := h.lookup(c)
	if !ok {
		return
	}
	if err := h.hub.ServeWS(c.Writer, c.Request, form.ID()); err != nil {
		// The upgrader has already answered the request.
		_ = c.Error(err)
	}
}

func (h *Handler) lookup(c *gin.Context) (*Controller, bool) {
	form, err := h.registry.Get(c.Param("id"))
	if err != nil {
		h.writeFormError(c, err)
		return nil, false
	}
	return form, true
}

func (h *Handler) writeFormError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrFormNotFound):
		response.Error(c, http.StatusNotFound, "FORM_NOT_FOUND", "Form not found")
	case errors.Is(err, ErrFormBusy):
		response.Error(c, http.StatusConflict, "FORM_BUSY", "Form is being submitted")
	case errors.Is(err, ErrFormClosed):
		response.Error(c, http.StatusGone, "FORM_CLOSED", "Form was closed")
	case errors.Is(err, ErrUnknownField):
		response.Error(c, http.StatusBadRequest, "UNKNOWN_FIELD", "Unknown form field")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
