package config

import (
	"fmt"
	"os"
	"strings"

	"usecase-assistant/internal/usecase/store"
)

// Config captures process level settings for the use case tools.
type Config struct {
	// StorageDir holds one JSON record per use case.
	StorageDir string
	LogLevel   string
	// AuditJournal, when set, receives one JSON line per create, update or delete.
	AuditJournal string
	// MetricsTextfile, when set, receives a Prometheus text exposition of the
	// run's metrics on exit.
	MetricsTextfile string
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() (Config, error) {
	return fromLookup(os.LookupEnv)
}

func fromLookup(lookup func(string) (string, bool)) (Config, error) {
	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}

	cfg := Config{
		StorageDir:      get("USECASE_STORAGE_DIR"),
		LogLevel:        get("USECASE_LOG_LEVEL"),
		AuditJournal:    get("USECASE_AUDIT_JOURNAL"),
		MetricsTextfile: get("USECASE_METRICS_TEXTFILE"),
	}
	if cfg.StorageDir == "" {
		dir, err := store.DefaultDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve default storage directory: %w", err)
		}
		cfg.StorageDir = dir
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
	return cfg, nil
}
