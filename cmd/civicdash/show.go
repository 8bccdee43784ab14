package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/civicdash/internal/loader"
	"github.com/nao1215/civicdash/internal/report"
)

// NewShowCmd creates the show command.
func NewShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [tab]",
		Short: "Render one dashboard tab",
		Long: `Show loads the dataset once and renders a single tab.

Tabs: overview (default), charter, assemblies, modules, audits, participation.

Examples:
  # Overview of the seed dataset
  civicdash show

  # Assembly detail panel
  civicdash show assemblies --assembly asm-housing

  # Module detail as Markdown written to a file
  civicdash show modules --module mod-ledger --markdown -o out/modules.md

  # Same, and print it as well
  civicdash show modules --markdown -o out/modules.md --tee

  # Remote dataset as JSON
  civicdash show participation --json -d https://data.example.org/seed.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runShowCmd,
	}

	addViewFlags(cmd)
	cmd.Flags().StringP("output", "o", "",
		"Write the view to specified file path (creates directories if needed)")
	cmd.Flags().Bool("tee", false,
		"With --output, also write the view to stdout")

	return cmd
}

// addViewFlags registers the selection and format flags shared by show and explore.
func addViewFlags(cmd *cobra.Command) {
	cmd.Flags().String("assembly", "", "Select an assembly by id")
	cmd.Flags().String("module", "", "Select a governance module by id")
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown (mutually exclusive with --json)")
}

// runShowCmd executes the show command.
func runShowCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	sel, err := initialSelection(cfg, args)
	if err != nil {
		return err
	}

	logger := setupLogger(cmd, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess := newSession(cfg, logger)
	state := sess.load(ctx)

	output, closeOutput, err := openOutput(cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer closeOutput() //nolint:errcheck // closed explicitly below on success

	format := reportFormat(cfg)
	w := report.New(format, output, cfg.Verbose)
	if cfg.Tee {
		w = report.NewMultiWriter(w, report.New(format, cmd.OutOrStdout(), cfg.Verbose))
	}
	if _, err := w.Write(sess.view(sel)); err != nil {
		return fmt.Errorf("failed to write view: %w", err)
	}
	if err := closeOutput(); err != nil {
		return fmt.Errorf("failed to close output: %w", err)
	}

	sess.logStats()

	if state.Phase == loader.Failed {
		return fmt.Errorf("dataset unavailable: %w", state.Err)
	}
	return nil
}
