package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"go.uber.org/zap"

	"taskboard/internal/blobstore"
	"taskboard/internal/config"
	"taskboard/internal/publisher"
	"taskboard/internal/repository"
	"taskboard/internal/server"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = logger.Sync() // Flushes buffer, if any
	}()

	accessLog := logrus.New()
	accessLog.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	cfgPath := "configs/config.yml"
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// Database connection
	db, err := repository.NewPostgresDB(cfg.Database.URL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	repository.MigrateDB(db, logger)

	// Blob store for profile pictures
	blobs, err := blobstore.NewS3Store(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize blob store", zap.Error(err))
	}

	// Publish channel for the live task-count broadcast
	var events publisher.Publisher = publisher.Noop{}
	if cfg.Publisher.Enabled {
		events = publisher.NewClient(cfg.Publisher.URL, logger)
	}

	// Initialize and run the server
	srv := server.NewServer(db, cfg, blobs, events, logger, accessLog)
	if err := srv.Run(cfg.Server.Port); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}
