package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"leadform/internal/config"
	"leadform/internal/database"
	"leadform/internal/domain/lead"
	"leadform/internal/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("config load failed")
	}
	log := logger.New(cfg.LogLevel)

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.WithError(err).Fatal("db connect failed")
	}
	if err := lead.AutoMigrate(db); err != nil {
		log.WithError(err).Fatal("db migrate failed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cutoff := time.Now().Add(-cfg.HistoryRetention)
	n, err := lead.NewRepository(db).DeleteOlderThan(ctx, cutoff)
	if err != nil {
		log.WithError(err).Fatal("cleanup lead_submissions failed")
	}

	log.WithFields(logrus.Fields{
		"deleted": n,
		"cutoff":  cutoff.Format(time.RFC3339),
	}).Info("history cleanup completed")
}
