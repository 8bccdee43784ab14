package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/civicdash/internal/report"
	"github.com/nao1215/civicdash/internal/selection"
)

const exploreHelp = `Intents:
  tab <name>       switch tab (overview, charter, assemblies, modules, audits, participation)
  <name>           shorthand for "tab <name>"
  assembly <id>    select or deselect an assembly
  module <id>      select or deselect a governance module
  help             show this help
  quit             leave the session
`

// NewExploreCmd creates the explore command.
func NewExploreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Explore the dashboard interactively",
		Long: `Explore loads the dataset once and reads intents from standard input,
one per line, rendering the dashboard again after every intent.

Reading a line blocks: an interrupt (Ctrl+C) is noticed once the current line
is entered or input ends. Use "quit" or end of input (Ctrl+D) to leave at once.

` + exploreHelp + `
Examples:
  civicdash explore
  printf 'assemblies\nassembly asm-housing\n' | civicdash explore --markdown`,
		Args: cobra.NoArgs,
		RunE: runExploreCmd,
	}

	addViewFlags(cmd)

	return cmd
}

// runExploreCmd executes the explore command.
func runExploreCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	sel, err := initialSelection(cfg, nil)
	if err != nil {
		return err
	}

	logger := setupLogger(cmd, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess := newSession(cfg, logger)
	defer sess.logStats()
	w := report.New(reportFormat(cfg), cmd.OutOrStdout(), cfg.Verbose)

	// The placeholder is shown while the one fetch runs.
	if _, err := w.Write(sess.view(sel)); err != nil {
		return err
	}
	sess.load(ctx)

	return explore(ctx, cmd.InOrStdin(), cmd.ErrOrStderr(), sess, w, sel)
}

// explore runs the event loop: one intent, one state transition, one render.
// It returns at end of input, on "quit" or when ctx is cancelled.
func explore(ctx context.Context, in io.Reader, errOut io.Writer, sess *session, w report.Writer, sel selection.State) error {
	if _, err := w.Write(sess.view(sel)); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}

		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "quit", "exit", "q":
			return nil
		case "help", "?":
			fmt.Fprint(errOut, exploreHelp)
			continue
		}

		action, err := selection.ParseAction(line)
		if err != nil {
			fmt.Fprintf(errOut, "%v (type \"help\" for intents)\n", err)
			continue
		}

		sel = selection.Reduce(sel, action)
		sess.logger.Debug("intent applied", "intent", line, "tab", sel.Tab,
			"assembly", sel.Assembly, "module", sel.Module)

		if _, err := w.Write(sess.view(sel)); err != nil {
			return err
		}
	}
	return scanner.Err()
}
