package config

import (
	"fmt"
	"time"
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the base address of the directory API.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientConfig is the client configuration assembled from environment
// variables and an optional JSON file.
type ClientConfig struct {
	// LogLevel is a zerolog level name for the client logger.
	LogLevel string
	// Adapter contains the directory API address and timeout.
	Adapter ClientAdapter
}

// GetClientConfig builds and validates the client configuration.
//
// Command-line arguments belong to the client's subcommands, so only
// environment variables and the JSON file named by CONFIG are consulted.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withJSON().
		build()
	if err != nil {
		return nil, fmt.Errorf("error getting client configs: %w", err)
	}

	clientCfg := &ClientConfig{
		LogLevel: cfg.App.LogLevel,
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
	}

	if err := clientCfg.validate(); err != nil {
		return nil, err
	}

	return clientCfg, nil
}
