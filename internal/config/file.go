package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/nao1215/civicdash/internal/report"
)

// DatasetConfig is the dataset section of the config file.
type DatasetConfig struct {
	// Location overrides the default dataset path or URL.
	Location string `yaml:"location,omitempty"`

	// Timeout bounds the fetch, e.g. "30s". Empty or "0" means none.
	Timeout string `yaml:"timeout,omitempty"`

	// Headers are sent with HTTP requests, e.g. Authorization.
	Headers map[string]string `yaml:"headers,omitempty"`
}

// ReportConfig is the report section of the config file.
type ReportConfig struct {
	// Format is one of text, json or markdown.
	Format string `yaml:"format,omitempty"`

	// Verbose enables debug logging and verbose text output.
	Verbose bool `yaml:"verbose,omitempty"`

	// Tab is the tab shown first.
	Tab string `yaml:"tab,omitempty"`
}

// ExportConfig is the export section of the config file.
type ExportConfig struct {
	Dir         string `yaml:"dir,omitempty"`
	Concurrency int    `yaml:"concurrency,omitempty"`
}

// LogConfig is the log section of the config file.
type LogConfig struct {
	// Format is text or json.
	Format string `yaml:"format,omitempty"`
}

// File represents the structure of the .civicdash configuration file.
type File struct {
	Dataset DatasetConfig `yaml:"dataset,omitempty"`
	Report  ReportConfig  `yaml:"report,omitempty"`
	Export  ExportConfig  `yaml:"export,omitempty"`
	Log     LogConfig     `yaml:"log,omitempty"`
}

// Apply copies every value set in the file onto cfg.
// Unset values leave cfg untouched.
func (cf *File) Apply(cfg *Config) error {
	if cf.Dataset.Location != "" {
		cfg.DatasetLocation = cf.Dataset.Location
	}
	if cf.Dataset.Timeout != "" {
		d, err := time.ParseDuration(cf.Dataset.Timeout)
		if err != nil {
			return err
		}
		cfg.Timeout = d
	}
	if len(cf.Dataset.Headers) > 0 {
		if cfg.DatasetHeaders == nil {
			cfg.DatasetHeaders = make(map[string]string, len(cf.Dataset.Headers))
		}
		for k, v := range cf.Dataset.Headers {
			cfg.DatasetHeaders[k] = v
		}
	}

	if cf.Report.Format != "" {
		if err := setFormat(cfg, cf.Report.Format); err != nil {
			return err
		}
	}
	if cf.Report.Verbose {
		cfg.Verbose = true
	}
	if cf.Report.Tab != "" {
		cfg.Tab = cf.Report.Tab
	}

	if cf.Export.Dir != "" {
		cfg.ExportDir = cf.Export.Dir
	}
	if cf.Export.Concurrency != 0 {
		cfg.Concurrency = cf.Export.Concurrency
	}

	if cf.Log.Format != "" {
		cfg.LogFormat = normalizeLogFormat(cf.Log.Format)
	}
	return nil
}

// setFormat maps a format name onto the report flags.
func setFormat(cfg *Config, format string) error {
	f, err := report.ParseFormat(format)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	cfg.JSONReport = f == report.FormatJSON
	cfg.MarkdownReport = f == report.FormatMarkdown
	return nil
}

func normalizeLogFormat(format string) string {
	return strings.ToLower(strings.TrimSpace(format))
}
