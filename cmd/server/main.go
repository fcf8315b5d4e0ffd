package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/formsense/motion-backend-go/internal/api"
	"github.com/formsense/motion-backend-go/internal/config"
	"github.com/formsense/motion-backend-go/internal/database"
	"github.com/formsense/motion-backend-go/internal/handler"
	"github.com/formsense/motion-backend-go/internal/profiles"
	"github.com/formsense/motion-backend-go/internal/repository"
	"github.com/formsense/motion-backend-go/internal/service"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load(context.Background())
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	db, err := database.Open(cfg.DBPath, log)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db, log); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}

	// Seed the built-in exercise profiles, then load everything the
	// store holds into the read-only registry.
	profileRepo := repository.NewProfileRepository(db)
	if err := profileRepo.Seed(profiles.Builtin()); err != nil {
		log.WithError(err).Fatal("failed to seed exercise profiles")
	}

	stored, err := profileRepo.LoadAll()
	if err != nil {
		log.WithError(err).Fatal("failed to load exercise profiles")
	}

	registry, err := profiles.NewRegistry(stored)
	if err != nil {
		log.WithError(err).Fatal("failed to build profile registry")
	}
	log.WithField("profiles", len(stored)).Info("exercise profiles loaded")

	analysisService := service.NewAnalysisService(registry, log)
	profileService := service.NewProfileService(registry)

	sessionHandler := handler.NewSessionHandler(analysisService)
	profileHandler := handler.NewProfileHandler(profileService)

	router := api.SetupRouter(cfg, log, sessionHandler, profileHandler)

	log.WithField("port", cfg.Port).Info("server starting")
	if err := router.Run(cfg.Port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
