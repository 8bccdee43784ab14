package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/civicdash/internal/model"
	"github.com/nao1215/civicdash/internal/projection"
)

const ruleWidth = 70

// SimpleWriter outputs human-readable text views.
// This format is designed for terminal display with clear section
// formatting and no ANSI escapes, so it pipes cleanly to files.
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether empty lists are announced.
	showEmpty bool

	// verbose enables additional detail in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to announce empty lists.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the view in human-readable format.
func (w *SimpleWriter) Write(view *projection.View) (int, error) {
	if view == nil {
		return 0, ErrNilView
	}

	var sb strings.Builder

	w.writeHeader(&sb, view)

	switch view.Status {
	case projection.StatusFailed:
		sb.WriteString(failedMessage + "\n")
		if w.verbose && view.Error != "" {
			fmt.Fprintf(&sb, "Reason: %s\n", view.Error)
		}
		sb.WriteString("\n")
	case projection.StatusLoading:
		sb.WriteString(loadingMessage + "\n\n")
	default:
		w.writeBody(&sb, view)
	}

	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

func (w *SimpleWriter) writeBody(sb *strings.Builder, view *projection.View) {
	switch {
	case view.Overview != nil:
		w.writeOverview(sb, view.Overview)
	case view.Charter != nil:
		w.writeCharter(sb, view.Charter)
	case view.Assemblies != nil:
		w.writeAssemblies(sb, view.Assemblies)
	case view.Modules != nil:
		w.writeModules(sb, view.Modules)
	case view.Audits != nil:
		w.writeAudits(sb, view.Audits)
	case view.Participation != nil:
		w.writeParticipation(sb, view.Participation)
	}
}

// writeHeader writes the banner and the tab bar.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, view *projection.View) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString("                   CIVIC GOVERNANCE DASHBOARD\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n\n")

	tabs := make([]string, len(view.Nav))
	for i, item := range view.Nav {
		if item.Active {
			tabs[i] = "[" + item.Label + "]"
		} else {
			tabs[i] = item.Label
		}
	}
	sb.WriteString(strings.Join(tabs, " | "))
	sb.WriteString("\n\n")
}

// writeSection writes a section title framed by rules.
func (w *SimpleWriter) writeSection(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString(strings.ToUpper(title))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n\n")
}

func (w *SimpleWriter) writeHeading(sb *strings.Builder, h projection.Heading) {
	w.writeSection(sb, h.Title)
	if h.Subtitle != "" {
		sb.WriteString(h.Subtitle)
		sb.WriteString("\n\n")
	}
}

func (w *SimpleWriter) writeCards(sb *strings.Builder, cards []projection.StatCard) {
	width := 0
	for _, c := range cards {
		width = max(width, len(c.Label))
	}
	for _, c := range cards {
		fmt.Fprintf(sb, "  %-*s  %s", width+1, c.Label+":", c.Value)
		if c.Sub != "" {
			fmt.Fprintf(sb, " (%s)", c.Sub)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeEmpty(sb *strings.Builder, what string) {
	if w.showEmpty {
		fmt.Fprintf(sb, "  No %s\n\n", what)
	}
}

func (w *SimpleWriter) writeAuditSeries(sb *strings.Builder, series []model.AuditYear) {
	if len(series) == 0 {
		w.writeEmpty(sb, "audit history")
		return
	}
	sb.WriteString("  Year   Audited  Incidents  Resolved\n")
	for _, y := range series {
		fmt.Fprintf(sb, "  %-6d %6s%%  %9d  %8d\n", y.Year, plain(y.Audited), y.Incidents, y.Resolved)
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeOverview(sb *strings.Builder, o *projection.OverviewView) {
	w.writeHeading(sb, o.Heading)
	w.writeCards(sb, o.Cards)

	sb.WriteString("Charter pillars\n")
	if len(o.Pillars) == 0 {
		w.writeEmpty(sb, "pillars")
	}
	for _, p := range o.Pillars {
		fmt.Fprintf(sb, "  [+] %s\n", p.Title)
		if w.verbose && p.Description != "" {
			fmt.Fprintf(sb, "      %s\n", p.Description)
		}
	}
	sb.WriteString("\nAI audit coverage\n")
	w.writeAuditSeries(sb, o.AuditSeries)

	sb.WriteString("Funding stack\n")
	if len(o.Funding) == 0 {
		w.writeEmpty(sb, "funding sources")
	}
	for _, f := range o.Funding {
		fmt.Fprintf(sb, "  * %s: %s", f.Label, f.Value)
		if f.Sub != "" {
			fmt.Fprintf(sb, " %s", f.Sub)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeCharter(sb *strings.Builder, c *projection.CharterView) {
	w.writeHeading(sb, c.Heading)
	for _, p := range c.Pillars {
		fmt.Fprintf(sb, "%s\n", p.Title)
		if p.Description != "" {
			fmt.Fprintf(sb, "  %s\n", p.Description)
		}
		for _, pr := range p.Principles {
			fmt.Fprintf(sb, "  %d. %s\n", pr.Number, pr.Text)
		}
		sb.WriteString("\n")
	}
	if c.Enforcement != "" {
		fmt.Fprintf(sb, "Enforcement: %s\n\n", c.Enforcement)
	}
}

func (w *SimpleWriter) writeAssemblies(sb *strings.Builder, a *projection.AssembliesView) {
	w.writeHeading(sb, a.Heading)
	if len(a.Cards) == 0 {
		w.writeEmpty(sb, "assemblies")
	}
	for _, c := range a.Cards {
		marker := " "
		if c.Selected {
			marker = ">"
		}
		fmt.Fprintf(sb, "%s %s (%s) [%s]\n", marker, c.Name, c.Domain, c.ID)
		fmt.Fprintf(sb, "    %d decisions, %s binding, %s turnout\n", c.Decisions, c.Binding, c.Turnout)
	}
	sb.WriteString("\n")

	if a.Panel.Kind != projection.PanelDetail || a.Panel.Detail == nil {
		sb.WriteString(a.Panel.Prompt + "\n\n")
		return
	}

	d := a.Panel.Detail
	w.writeSection(sb, d.Name)
	w.writeCards(sb, []projection.StatCard{
		{Label: "Members", Value: fmt.Sprint(d.Members)},
		{Label: "Decisions", Value: fmt.Sprint(d.Decisions)},
		{Label: "Turnout", Value: d.Turnout},
		{Label: "Stipend", Value: d.Stipend, Sub: "per session"},
		{Label: "Next session", Value: d.NextSession},
	})
	sb.WriteString("Demographics\n")
	for _, e := range d.Demographics {
		fmt.Fprintf(sb, "  %-10s %s\n", e.Label, e.Value)
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeModules(sb *strings.Builder, m *projection.ModulesView) {
	w.writeHeading(sb, m.Heading)
	if len(m.Cards) == 0 {
		w.writeEmpty(sb, "modules")
	}
	for _, c := range m.Cards {
		marker := " "
		if c.Selected {
			marker = ">"
		}
		fmt.Fprintf(sb, "%s %s [%s] (%s)\n", marker, c.Title, c.Badge, c.ID)
		fmt.Fprintf(sb, "    %s\n", c.Summary)
	}
	sb.WriteString("\n")

	if m.Panel.Kind != projection.PanelDetail || m.Panel.Detail == nil {
		sb.WriteString(m.Panel.Prompt + "\n\n")
		return
	}

	d := m.Panel.Detail
	w.writeSection(sb, d.Title+" "+d.Badge)
	sb.WriteString(d.Description + "\n\n")
	sb.WriteString("Features\n")
	for _, f := range d.Features {
		fmt.Fprintf(sb, "  [+] %s\n", f)
	}
	fmt.Fprintf(sb, "\nTech stack: %s\n\n", d.TechStack)

	sb.WriteString("Live metrics\n")
	if len(d.Metrics) == 0 {
		w.writeEmpty(sb, "metrics")
	}
	for _, r := range d.Metrics {
		fmt.Fprintf(sb, "  %s: %s\n", r.Label, r.Value)
		if w.verbose {
			fmt.Fprintf(sb, "    key: %s\n", r.Key)
		}
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeAudits(sb *strings.Builder, a *projection.AuditsView) {
	w.writeHeading(sb, a.Heading)
	w.writeCards(sb, a.Cards)
	w.writeAuditSeries(sb, a.Series)
}

func (w *SimpleWriter) writeParticipation(sb *strings.Builder, p *projection.ParticipationView) {
	w.writeHeading(sb, p.Heading)
	w.writeCards(sb, p.Cards)

	sb.WriteString("Demographic equity index (1.0 = parity)\n")
	if len(p.Equity) == 0 {
		w.writeEmpty(sb, "equity data")
	}
	for _, e := range p.Equity {
		fmt.Fprintf(sb, "  %-24s %s  %-9s %s\n", e.Label, e.Value, e.Band, bar(e.BarPercent))
	}

	sb.WriteString("\n")
	fmt.Fprintf(sb, "Satisfaction:  %s %s\n", p.Satisfaction.Value, p.Satisfaction.Caption)
	fmt.Fprintf(sb, "Accessibility: %s %s\n\n", p.Accessibility.Value, p.Accessibility.Caption)

	sb.WriteString("Assembly participation\n")
	for _, pt := range p.AssemblySeries {
		fmt.Fprintf(sb, "  %-16s %4d members  %3d%% turnout\n", pt.Name, pt.Members, pt.Turnout)
	}
	sb.WriteString("\n")
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString("Generated by civicdash\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
}

// bar draws a 20 cell bar for a percentage, capped at 100%.
func bar(percent float64) string {
	const cells = 20
	n := int(min(max(percent, 0), 100) / 100 * cells)
	return "[" + strings.Repeat("#", n) + strings.Repeat(".", cells-n) + "]"
}
