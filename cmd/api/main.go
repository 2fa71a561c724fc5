package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"leadform/internal/config"
	"leadform/internal/database"
	"leadform/internal/domain/form"
	"leadform/internal/domain/lead"
	"leadform/internal/domain/notification"
	"leadform/internal/domain/reference"
	"leadform/internal/middleware"
	jwtsvc "leadform/internal/pkg/jwt"
	"leadform/internal/pkg/logger"
	"leadform/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("config load failed")
	}

	log := logger.New(cfg.LogLevel)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.WithError(err).Fatal("database connect failed")
	}
	if err := lead.AutoMigrate(db); err != nil {
		log.WithError(err).Fatal("database migrate failed")
	}

	variant, err := lead.ParseVariant(cfg.FormVariant)
	if err != nil {
		log.WithError(err).Fatal("invalid form variant")
	}

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	var source reference.Source = reference.NewStaticSource()
	if cfg.ReferenceSource == config.ReferenceSourceLive {
		source = reference.NewLiveSource(cfg.APIURL, httpClient, cfg.HTTPTimeout)
	}
	source = reference.NewCachedSource(source, cfg.ReferenceCacheTTL)
	loader := reference.NewLoader(source, log)

	history := lead.NewRepository(db)
	leadService := lead.NewService(
		lead.NewSchema(variant),
		lead.NewClient(cfg.APIURL, httpClient, cfg.HTTPTimeout),
		history,
		log,
	)

	hub := notification.NewHub(middleware.AllowedOrigins(cfg.CORSAllowedOrigins), log)
	defer hub.Close()
	registry := form.NewRegistry(leadService, loader, hub, cfg.ErrorToastTTL, log)

	submitLimit, err := middleware.RateLimit(cfg.RateLimit)
	if err != nil {
		log.WithError(err).Fatal("invalid rate limit")
	}

	router := server.NewRouter(server.Deps{
		Log:         log,
		LeadService: leadService,
		History:     history,
		Loader:      loader,
		Registry:    registry,
		Hub:         hub,
		JWT:         jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL),
		SubmitLimit: submitLimit,
		CORSOrigins: cfg.CORSAllowedOrigins,
		MetricsPath: cfg.MetricsPath,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sweepIdleForms(ctx, registry, cfg.FormIdleTTL, log)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithFields(logrus.Fields{
			"addr":             cfg.Addr(),
			"variant":          variant,
			"reference_source": cfg.ReferenceSource,
		}).Info("lead form api listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}

func sweepIdleForms(ctx context.Context, registry *form.Registry, maxIdle time.Duration, log *logrus.Logger) {
	ticker := time.NewTicker(maxIdle / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := registry.CloseIdle(maxIdle); n > 0 {
				log.WithField("closed", n).Info("closed idle forms")
			}
		}
	}
}
