package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nao1215/civicdash/internal/config"
)

// NewRootCmd creates the root command for civicdash.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "civicdash",
		Short: "Civic governance dashboard",
		Long: `civicdash renders a civic-governance dataset as dashboard views.

The dataset is loaded once per run from a local file (default data/seed.json)
or an http(s) URL. Views are derived from it per tab: overview, charter,
assemblies, modules, audits and participation.

Settings are read from defaults, the .civicdash config file, CIVICDASH_*
environment variables and flags, each overriding the previous.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .civicdash in current, XDG config or home directory)")
	cmd.PersistentFlags().StringP("dataset", "d", config.DefaultDatasetLocation,
		"Dataset file path or http(s) URL")
	cmd.PersistentFlags().DurationP("timeout", "t", config.DefaultTimeout,
		"Dataset fetch timeout (0 disables the timeout)")
	cmd.PersistentFlags().String("log-format", config.LogFormatText,
		"Log output format: text or json")

	// Add subcommands
	cmd.AddCommand(NewShowCmd())
	cmd.AddCommand(NewExploreCmd())
	cmd.AddCommand(NewExportCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
