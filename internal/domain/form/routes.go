package form

import "github.com/gin-gonic/gin"

// RegisterRoutes registers form session routes. submitGuards run before the submit handler.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, submitGuards ...gin.HandlerFunc) {
	forms := r.Group("/forms")
	{
		forms.POST("", handler.OpenForm)
		forms.GET("/:id", handler.GetForm)
		forms.PATCH("/:id", handler.UpdateForm)
		forms.POST("/:id/submit", append(submitGuards, handler.SubmitForm)...)
		forms.DELETE("/:id", handler.CloseForm)
	}
}

// RegisterWSRoutes registers websocket routes
func RegisterWSRoutes(r *gin.RouterGroup, handler *Handler) {
	r.GET("/forms/:id/notifications", handler.Notifications)
}
