package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/MKhiriev/go-user-roles/internal/adapter"
	"github.com/MKhiriev/go-user-roles/internal/config"
	"github.com/MKhiriev/go-user-roles/internal/logger"
	"github.com/MKhiriev/go-user-roles/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	cfg, err := config.GetClientConfig()
	if err != nil {
		logger.NewClientLogger("user-directory-client", "").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewClientLogger("user-directory-client", cfg.LogLevel)

	directory, err := adapter.NewHTTPDirectoryAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create directory adapter")
	}

	cli := &commandLine{
		directory: directory,
		buildInfo: models.NewAppBuildInfo(buildVersion, buildDate, buildCommit),
		out:       os.Stdout,
	}

	if err = cli.run(context.Background(), os.Args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, usage)
			os.Exit(2)
		}
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
