package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"leadform/internal/config"
	"leadform/internal/database"
	"leadform/internal/domain/lead"
	"leadform/internal/pkg/logger"
)

// Seeds a development database with a week of fake submission history for the admin API.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("config load failed")
	}
	log := logger.New(cfg.LogLevel)

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.WithError(err).Fatal("DB connection failed")
	}

	log.Info("running AutoMigrate")
	if err := lead.AutoMigrate(db); err != nil {
		log.WithError(err).Fatal("AutoMigrate failed")
	}

	log.Info("cleaning old data")
	if err := db.Exec("DELETE FROM lead_submissions").Error; err != nil {
		log.WithError(err).Fatal("cleanup failed")
	}

	ctx := context.Background()
	repo := lead.NewRepository(db)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	names := []string{"Ana López", "Carlos Ruiz", "María Pérez", "Jorge Díaz", "Lucía Gómez"}
	variants := []lead.Variant{lead.VariantCareer, lead.VariantProduct}
	now := time.Now()

	counts := map[lead.SubmissionResult]int{}
	for i := 0; i < 40; i++ {
		s := &lead.Submission{
			ID:        uuid.NewString(),
			Variant:   variants[i%len(variants)],
			Nombre:    names[i%len(names)],
			Email:     fmt.Sprintf("lead%02d@example.com", i+1),
			LatencyMS: int64(80 + rng.Intn(400)),
			CreatedAt: now.Add(-time.Duration(rng.Intn(7*24)) * time.Hour),
		}

		switch r := rng.Intn(10); {
		case r < 7:
			s.Result = lead.ResultSuccess
			s.StatusCode = 200
		case r < 9:
			s.Result = lead.ResultServerError
			s.StatusCode = 500
			s.Error = "broker responded 500 Internal Server Error"
		default:
			s.Result = lead.ResultTransportError
			s.Error = "broker request failed: context deadline exceeded"
		}

		if err := repo.Create(ctx, s); err != nil {
			log.WithError(err).Fatal("insert submission failed")
		}
		counts[s.Result]++
	}

	log.WithFields(logrus.Fields{
		"success":         counts[lead.ResultSuccess],
		"server_error":    counts[lead.ResultServerError],
		"transport_error": counts[lead.ResultTransportError],
	}).Info("seed completed")
}
