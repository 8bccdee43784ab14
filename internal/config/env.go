package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix prefixes every environment variable civicdash reads.
const EnvPrefix = "CIVICDASH_"

// envOverlay mirrors the Config fields that may be set from the environment.
type envOverlay struct {
	Dataset     string        `env:"DATASET"`
	Timeout     time.Duration `env:"TIMEOUT"`
	Verbose     bool          `env:"VERBOSE"`
	Format      string        `env:"FORMAT"`
	Tab         string        `env:"TAB"`
	ExportDir   string        `env:"EXPORT_DIR"`
	Concurrency int           `env:"CONCURRENCY"`
	LogFormat   string        `env:"LOG_FORMAT"`
}

// ApplyEnv overlays CIVICDASH_* variables onto cfg. Variables that are not
// set leave cfg untouched. A nil environ reads the process environment.
func ApplyEnv(cfg *Config, environ map[string]string) error {
	overlay := envOverlay{
		Dataset:     cfg.DatasetLocation,
		Timeout:     cfg.Timeout,
		Verbose:     cfg.Verbose,
		Tab:         cfg.Tab,
		ExportDir:   cfg.ExportDir,
		Concurrency: cfg.Concurrency,
		LogFormat:   cfg.LogFormat,
	}

	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&overlay, opts); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}

	cfg.DatasetLocation = overlay.Dataset
	cfg.Timeout = overlay.Timeout
	cfg.Verbose = overlay.Verbose
	cfg.Tab = overlay.Tab
	cfg.ExportDir = overlay.ExportDir
	cfg.Concurrency = overlay.Concurrency
	cfg.LogFormat = normalizeLogFormat(overlay.LogFormat)
	if overlay.Format != "" {
		return setFormat(cfg, overlay.Format)
	}
	return nil
}
