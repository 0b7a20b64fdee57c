package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/go-user-roles/internal/config"
	"github.com/MKhiriev/go-user-roles/internal/handler"
	"github.com/MKhiriev/go-user-roles/internal/logger"
	"github.com/MKhiriev/go-user-roles/internal/server"
	"github.com/MKhiriev/go-user-roles/internal/service"
	"github.com/MKhiriev/go-user-roles/internal/store"
	"github.com/MKhiriev/go-user-roles/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Println(buildInfo)

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		logger.NewLogger("user-directory", "").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewLogger("user-directory", cfg.App.LogLevel)
	log.Debug().Any("config", cfg).Msg("received configs")

	gateway, err := store.NewGateway(cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storage gateway")
	}

	// fail fast on a bad DSN instead of on the first request
	if _, err = gateway.Open(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("error opening storage")
	}

	services, err := service.NewServices(store.NewStorages(gateway, log), *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	runErr := srv.RunServer()

	if err = gateway.Close(); err != nil {
		log.Err(err).Msg("error closing storage gateway")
	}
	if runErr != nil {
		os.Exit(1)
	}
}
