package reference

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"leadform/internal/pkg/response"
)

// Handler handles reference HTTP requests
type Handler struct {
	loader *Loader
}

// NewHandler creates reference handler
func NewHandler(loader *Loader) *Handler {
	return &Handler{loader: loader}
}

// GetReference handles GET /api/v1/references/:entity
func (h *Handler) GetReference(c *gin.Context) {
	entity, err := ParseEntity(c.Param("entity"))
	if err != nil {
		response.Error(c, http.StatusNotFound, "UNKNOWN_ENTITY", "Unknown reference entity")
		return
	}

	response.Success(c, http.StatusOK, h.loader.Load(c.Request.Context(), entity))
}
