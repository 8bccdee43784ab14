package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() so callers can use
// errors.Is() while users still get a readable message.
var (
	// ErrNoDataset is returned when the dataset location is empty.
	ErrNoDataset = errors.New("no dataset specified: set --dataset or dataset.location")

	// ErrInvalidTimeout is returned when the timeout is negative.
	// Use 0 to disable the timeout.
	ErrInvalidTimeout = errors.New("invalid timeout: must be non-negative")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidConcurrency is returned when the export concurrency is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrUnknownFormat is returned when a config file or the environment
	// names an output format other than text, json or markdown.
	ErrUnknownFormat = errors.New("unknown output format: use text, json or markdown")

	// ErrTeeWithoutOutput is returned when --tee is given without --output.
	ErrTeeWithoutOutput = errors.New("--tee requires --output")

	// ErrUnknownLogFormat is returned when the log format is neither text nor json.
	ErrUnknownLogFormat = errors.New("unknown log format: use text or json")
)
