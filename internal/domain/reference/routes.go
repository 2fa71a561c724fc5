package reference

import "github.com/gin-gonic/gin"

// RegisterRoutes registers reference routes (public)
func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	r.GET("/references/:entity", handler.GetReference)
}
