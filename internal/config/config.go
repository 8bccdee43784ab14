package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"github.com/nao1215/civicdash/internal/loader"
)

// Default configuration values.
const (
	// DefaultDatasetLocation is the well-known path of the seed dataset,
	// relative to the working directory.
	DefaultDatasetLocation = loader.DefaultLocation

	// DefaultTimeout of zero means the dataset fetch has no deadline.
	// A slow endpoint keeps the dashboard in the loading state until it
	// answers or the user interrupts.
	DefaultTimeout = time.Duration(0)

	// DefaultExportDir is the directory export writes into when --dir is omitted.
	DefaultExportDir = "civicdash-export"

	// DefaultConcurrency is the number of views rendered in parallel by export.
	DefaultConcurrency = 4

	// AppName is the application name used for XDG directory paths.
	AppName = "civicdash"
)

// Log output formats.
const (
	// LogFormatText writes key=value log lines.
	LogFormatText = "text"
	// LogFormatJSON writes one JSON object per log line.
	LogFormatJSON = "json"
)

// Config holds all configuration options for civicdash.
// This struct is populated from defaults, the config file, the environment
// and CLI flags, in that order, and passed through the application via
// dependency injection rather than global state.
type Config struct {
	// DatasetLocation is a file path, a file:// URL or an http(s) URL.
	DatasetLocation string

	// DatasetHeaders are sent with HTTP dataset requests.
	// They only come from the config file.
	DatasetHeaders map[string]string

	// Timeout bounds the dataset fetch. Zero means no timeout.
	Timeout time.Duration

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, FindConfigFile searches the default locations.
	ConfigFilePath string

	// JSONReport selects JSON output. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport selects Markdown output. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the rendered view.
	// When set, the view is written to this file instead of stdout.
	// Directories are created automatically if they don't exist.
	ReportFile string

	// Tee also writes the view to stdout when ReportFile is set.
	Tee bool

	// LogFormat is LogFormatText or LogFormatJSON.
	LogFormat string

	// Tab is the tab shown first.
	Tab string

	// Assembly and Module are drill-down selections applied on start.
	Assembly string
	Module   string

	// ExportDir is the output directory of the export command.
	ExportDir string

	// Concurrency limits parallel rendering during export.
	Concurrency int
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		DatasetLocation: DefaultDatasetLocation,
		Timeout:         DefaultTimeout,
		Tab:             "overview",
		LogFormat:       LogFormatText,
		ExportDir:       DefaultExportDir,
		Concurrency:     DefaultConcurrency,
	}
}

// XDGConfigDir returns the XDG config directory for civicdash.
// On Linux: ~/.config/civicdash
// On macOS: ~/Library/Application Support/civicdash
// On Windows: %APPDATA%\civicdash
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found.
func (c *Config) Validate() error {
	if c.DatasetLocation == "" {
		return ErrNoDataset
	}

	// Zero disables the timeout; only negative values are invalid
	if c.Timeout < 0 {
		return ErrInvalidTimeout
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	if c.Tee && c.ReportFile == "" {
		return ErrTeeWithoutOutput
	}

	if c.LogFormat != LogFormatText && c.LogFormat != LogFormatJSON {
		return ErrUnknownLogFormat
	}

	return nil
}
