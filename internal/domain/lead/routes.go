package lead

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes registers public lead routes. submitGuards run before the submit handler.
func RegisterPublicRoutes(r *gin.RouterGroup, handler *Handler, submitGuards ...gin.HandlerFunc) {
	r.POST("/leads", append(submitGuards, handler.SubmitLead)...)
}

// RegisterAdminRoutes registers operator routes
func RegisterAdminRoutes(r *gin.RouterGroup, handler *Handler) {
	submissions := r.Group("/submissions")
	{
		submissions.GET("", handler.ListSubmissions)
		submissions.GET("/stats", handler.GetStats)
	}
}
