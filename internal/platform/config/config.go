// Package config loads runtime configuration from the environment.
package config

import (
	"os"
	"time"

	"notadesk/internal/erp"
)

// Config holds everything the server needs to start.
type Config struct {
	// Addr is the listen address for the HTTP server.
	Addr string
	// DBPath is the SQLite snapshot file. Empty means in-memory only: the
	// session state is lost on restart.
	DBPath string
	// CatalogPath optionally overrides the built-in org unit catalog with a
	// YAML file.
	CatalogPath string
	// RequestTimeout bounds each HTTP request.
	RequestTimeout time.Duration
	// ShutdownTimeout bounds graceful drain on termination.
	ShutdownTimeout time.Duration
	// ERP configures the accounting projection.
	ERP erp.Config
}

// FromEnv reads configuration from NOTADESK_* variables, applying defaults
// for anything unset.
func FromEnv() Config {
	return Config{
		Addr:            envOr("NOTADESK_ADDR", ":8080"),
		DBPath:          os.Getenv("NOTADESK_DB_PATH"),
		CatalogPath:     os.Getenv("NOTADESK_CATALOG_PATH"),
		RequestTimeout:  durationOr("NOTADESK_REQUEST_TIMEOUT", 30*time.Second),
		ShutdownTimeout: durationOr("NOTADESK_SHUTDOWN_TIMEOUT", 10*time.Second),
		ERP: erp.Config{
			MovementType: envOr("NOTADESK_ERP_MOVEMENT_TYPE", erp.DefaultMovementType),
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
