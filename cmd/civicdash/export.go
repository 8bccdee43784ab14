package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"regexp"
	"sync/atomic"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/nao1215/civicdash/internal/config"
	"github.com/nao1215/civicdash/internal/loader"
	"github.com/nao1215/civicdash/internal/report"
	"github.com/nao1215/civicdash/internal/selection"
)

// NewExportCmd creates the export command.
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every dashboard view to a directory",
		Long: `Export loads the dataset once and renders every tab, every assembly
detail and every module detail in text, JSON and Markdown.

Files are named <tab>.<ext>, assemblies-<id>.<ext> and modules-<id>.<ext>.

Examples:
  civicdash export
  civicdash export --dir site/views -n 8`,
		Args: cobra.NoArgs,
		RunE: runExportCmd,
	}

	cmd.Flags().String("dir", config.DefaultExportDir, "Output directory")
	cmd.Flags().IntP("concurrency", "n", config.DefaultConcurrency,
		"Number of views rendered in parallel")

	return cmd
}

// exportJob is one view in one format.
type exportJob struct {
	name   string
	sel    selection.State
	format report.Format
}

// runExportCmd executes the export command.
func runExportCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	logger := setupLogger(cmd, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess := newSession(cfg, logger)
	if state := sess.load(ctx); state.Phase != loader.Ready {
		return fmt.Errorf("dataset unavailable: %w", state.Err)
	}

	n, err := exportViews(ctx, sess, cfg.ExportDir, cfg.Concurrency)
	if err != nil {
		return err
	}

	sess.logStats()
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d files to %s\n", n, cfg.ExportDir)
	return nil
}

// exportJobs lists every view of a loaded session in every format.
func exportJobs(sess *session) []exportJob {
	var views []exportJob
	for _, tab := range selection.Tabs() {
		views = append(views, exportJob{name: string(tab), sel: selection.Initial().SelectTab(tab)})
	}

	ds := sess.state().Dataset
	base := selection.Initial()
	used := make(map[string]bool)
	for _, a := range ds.Assemblies {
		views = append(views, exportJob{
			name: uniqueName(used, "assemblies-"+safeName(a.ID)),
			sel:  base.SelectTab(selection.TabAssemblies).ToggleAssembly(a.ID),
		})
	}
	for _, m := range ds.Modules {
		views = append(views, exportJob{
			name: uniqueName(used, "modules-"+safeName(m.ID)),
			sel:  base.SelectTab(selection.TabModules).ToggleModule(m.ID),
		})
	}

	jobs := make([]exportJob, 0, len(views)*len(report.Formats()))
	for _, v := range views {
		for _, f := range report.Formats() {
			v.format = f
			jobs = append(jobs, v)
		}
	}
	return jobs
}

// exportViews renders all jobs into dir with at most limit in flight and
// returns the number of files written.
func exportViews(ctx context.Context, sess *session, dir string, limit int) (int, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return 0, fmt.Errorf("failed to create export directory: %w", err)
	}

	var written atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for _, job := range exportJobs(sess) {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			var buf bytes.Buffer
			w := report.New(job.format, &buf, sess.cfg.Verbose)
			if _, err := w.Write(sess.view(job.sel)); err != nil {
				return fmt.Errorf("render %s: %w", job.name, err)
			}

			path := filepath.Join(dir, job.name+job.format.Extension())
			if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			written.Add(1)
			sess.logger.Debug("view exported", "path", path)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return int(written.Load()), err
	}
	return int(written.Load()), nil
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// safeName turns a dataset id into a file name component.
func safeName(id string) string {
	name := unsafeChars.ReplaceAllString(id, "-")
	if name == "" || name == "." || name == ".." {
		return "unnamed"
	}
	return name
}

// uniqueName returns name, or name with the first free "-N" suffix when
// another id already mapped to it, and records the result in used.
func uniqueName(used map[string]bool, name string) string {
	candidate := name
	for n := 2; used[candidate]; n++ {
		candidate = fmt.Sprintf("%s-%d", name, n)
	}
	used[candidate] = true
	return candidate
}
