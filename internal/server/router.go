package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"leadform/internal/domain/form"
	"leadform/internal/domain/lead"
	"leadform/internal/domain/notification"
	"leadform/internal/domain/reference"
	"leadform/internal/middleware"
	jwtsvc "leadform/internal/pkg/jwt"
	"leadform/internal/pkg/response"
)

// Deps are the collaborators the HTTP API is built from.
type Deps struct {
	Log         *logrus.Logger
	LeadService *lead.Service
	History     lead.HistoryReader
	Loader      *reference.Loader
	Registry    *form.Registry
	Hub         *notification.Hub
	JWT         *jwtsvc.Service
	// SubmitLimit guards the submit endpoints. Nil disables rate limiting.
	SubmitLimit gin.HandlerFunc
	CORSOrigins []string
	MetricsPath string
}

// NewRouter wires every route of the service.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(d.Log),
		middleware.ErrorLogger(d.Log),
		middleware.CORS(d.CORSOrigins),
	)

	r.GET("/healthz", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{
			"status":     "ok",
			"variant":    d.LeadService.Variant(),
			"open_forms": d.Registry.Len(),
		})
	})
	if d.MetricsPath != "" {
		r.GET(d.MetricsPath, gin.WrapH(promhttp.Handler()))
	}

	var guards []gin.HandlerFunc
	if d.SubmitLimit != nil {
		guards = append(guards, d.SubmitLimit)
	}

	leadHandler := lead.NewHandler(d.LeadService, d.History)
	formHandler := form.NewHandler(d.Registry, d.Hub)

	v1 := r.Group("/api/v1")
	{
		reference.RegisterRoutes(v1, reference.NewHandler(d.Loader))
		lead.RegisterPublicRoutes(v1, leadHandler, guards...)
		form.RegisterRoutes(v1, formHandler, guards...)

		admin := v1.Group("/admin")
		admin.Use(middleware.JWTAuth(d.JWT), middleware.OperatorOnly())
		lead.RegisterAdminRoutes(admin, leadHandler)
	}

	form.RegisterWSRoutes(r.Group("/ws"), formHandler)

	return r
}
