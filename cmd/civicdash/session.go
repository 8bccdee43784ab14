package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/civicdash/internal/config"
	"github.com/nao1215/civicdash/internal/loader"
	"github.com/nao1215/civicdash/internal/log"
	"github.com/nao1215/civicdash/internal/metrics"
	"github.com/nao1215/civicdash/internal/projection"
	"github.com/nao1215/civicdash/internal/report"
	"github.com/nao1215/civicdash/internal/selection"
)

// session ties one loaded dataset to one metrics engine for a command run.
type session struct {
	cfg    *config.Config
	logger *slog.Logger
	loader *loader.Loader
	engine *metrics.Engine
}

// newSession prepares a session. Nothing is fetched until load is called.
func newSession(cfg *config.Config, logger *slog.Logger) *session {
	var opts []loader.HTTPOption
	if len(cfg.DatasetHeaders) > 0 {
		opts = append(opts, loader.WithHeaders(cfg.DatasetHeaders))
	}
	src := loader.NewSource(cfg.DatasetLocation, cfg.Timeout, opts...)

	return &session{
		cfg:    cfg,
		logger: logger,
		loader: loader.New(src, loader.WithLogger(logger)),
		engine: metrics.NewEngine(metrics.WithEngineLogger(logger)),
	}
}

// load runs the one-shot load and returns the resulting state.
func (s *session) load(ctx context.Context) loader.State {
	_, _ = s.loader.Load(ctx)
	return s.state()
}

// state returns the load state with dataset credentials removed from the
// error text.
func (s *session) state() loader.State {
	st := s.loader.State()
	if st.Err == nil {
		return st
	}
	if redacted, ok := log.RedactURL(s.cfg.DatasetLocation); ok {
		st.Err = &redactedError{
			msg: strings.ReplaceAll(st.Err.Error(), s.cfg.DatasetLocation, redacted),
			err: st.Err,
		}
	}
	return st
}

// logStats reports metrics cache usage at debug level.
func (s *session) logStats() {
	stats := s.engine.Stats()
	s.logger.Debug("metrics cache", "hits", stats.Hits, "misses", stats.Misses, "entries", stats.Entries)
}

// view projects sel against the current load state.
func (s *session) view(sel selection.State) *projection.View {
	return projection.Build(s.state(), sel, s.engine)
}

// redactedError keeps the wrapped error for errors.Is while printing a
// message without credentials.
type redactedError struct {
	msg string
	err error
}

func (e *redactedError) Error() string { return e.msg }
func (e *redactedError) Unwrap() error { return e.err }

// buildConfig creates a Config from the config file, the environment and
// the flags that were set explicitly on the command line.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(configPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("dataset") {
		if cfg.DatasetLocation, err = flags.GetString("dataset"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("timeout") {
		if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("verbose") {
		if cfg.Verbose, err = flags.GetBool("verbose"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("log-format") {
		if cfg.LogFormat, err = flags.GetString("log-format"); err != nil {
			return nil, err
		}
	}

	// Report format flags exist on show and explore only
	if flags.Lookup("json") != nil && flags.Lookup("markdown") != nil {
		jsonSet, err := flags.GetBool("json")
		if err != nil {
			return nil, err
		}
		markdownSet, err := flags.GetBool("markdown")
		if err != nil {
			return nil, err
		}
		if jsonSet || markdownSet {
			cfg.JSONReport = jsonSet
			cfg.MarkdownReport = markdownSet
		}
	}

	for name, dst := range map[string]*string{
		"output":   &cfg.ReportFile,
		"assembly": &cfg.Assembly,
		"module":   &cfg.Module,
		"dir":      &cfg.ExportDir,
	} {
		if flags.Lookup(name) != nil && flags.Changed(name) {
			if *dst, err = flags.GetString(name); err != nil {
				return nil, err
			}
		}
	}
	if flags.Lookup("tee") != nil && flags.Changed("tee") {
		if cfg.Tee, err = flags.GetBool("tee"); err != nil {
			return nil, err
		}
	}
	if flags.Lookup("concurrency") != nil && flags.Changed("concurrency") {
		if cfg.Concurrency, err = flags.GetInt("concurrency"); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	return cfg, nil
}

// setupLogger creates the secure structured logger for a run.
func setupLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	if cfg.LogFormat == config.LogFormatJSON {
		return log.NewSecureJSONLogger(cmd.ErrOrStderr(), cfg.Verbose)
	}
	return log.NewSecureLogger(cmd.ErrOrStderr(), cfg.Verbose)
}

// reportFormat maps the report flags to a format.
func reportFormat(cfg *config.Config) report.Format {
	switch {
	case cfg.JSONReport:
		return report.FormatJSON
	case cfg.MarkdownReport:
		return report.FormatMarkdown
	default:
		return report.FormatText
	}
}

// initialSelection applies the configured tab and drill-downs.
func initialSelection(cfg *config.Config, args []string) (selection.State, error) {
	name := cfg.Tab
	if len(args) > 0 {
		name = args[0]
	}
	tab, err := selection.ParseTab(name)
	if err != nil {
		return selection.State{}, err
	}

	sel := selection.Initial().SelectTab(tab)
	if cfg.Assembly != "" {
		sel = sel.ToggleAssembly(cfg.Assembly)
	}
	if cfg.Module != "" {
		sel = sel.ToggleModule(cfg.Module)
	}
	return sel, nil
}

// openOutput returns the report destination: the report file when set,
// stdout otherwise. The returned close function is never nil.
func openOutput(cfg *config.Config, stdout io.Writer) (io.Writer, func() error, error) {
	if cfg.ReportFile == "" {
		return stdout, func() error { return nil }, nil
	}

	// Create directories if they don't exist
	dir := filepath.Dir(cfg.ReportFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}
