package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/civicdash/internal/metrics"
	"github.com/nao1215/civicdash/internal/model"
	"github.com/nao1215/civicdash/internal/projection"
)

// MarkdownWriter outputs views in Markdown format.
// This format is designed for documentation and sharing.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the view in Markdown format.
func (w *MarkdownWriter) Write(view *projection.View) (int, error) {
	if view == nil {
		return 0, ErrNilView
	}

	md := markdown.NewMarkdown(w.output)

	md.H1("Civic Governance Dashboard")
	md.PlainText("")
	w.writeNav(md, view.Nav)

	switch view.Status {
	case projection.StatusFailed:
		if view.Error != "" {
			md.Cautionf("%s %s", failedMessage, view.Error)
		} else {
			md.Caution(failedMessage)
		}
		md.PlainText("")
	case projection.StatusLoading:
		md.Note(loadingMessage)
		md.PlainText("")
	default:
		w.writeBody(md, view)
	}

	w.writeFooter(md)

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeBody(md *markdown.Markdown, view *projection.View) {
	switch {
	case view.Overview != nil:
		w.writeOverview(md, view.Overview)
	case view.Charter != nil:
		w.writeCharter(md, view.Charter)
	case view.Assemblies != nil:
		w.writeAssemblies(md, view.Assemblies)
	case view.Modules != nil:
		w.writeModules(md, view.Modules)
	case view.Audits != nil:
		w.writeAudits(md, view.Audits)
	case view.Participation != nil:
		w.writeParticipation(md, view.Participation)
	}
}

// writeNav writes the tab bar with the active tab in bold.
func (w *MarkdownWriter) writeNav(md *markdown.Markdown, nav []projection.NavItem) {
	if len(nav) == 0 {
		return
	}
	line := ""
	for i, item := range nav {
		if i > 0 {
			line += " · "
		}
		if item.Active {
			line += "**" + item.Label + "**"
		} else {
			line += item.Label
		}
	}
	md.PlainText(line)
	md.PlainText("")
}

func (w *MarkdownWriter) writeHeading(md *markdown.Markdown, h projection.Heading) {
	md.H2(h.Title)
	md.PlainText("")
	if h.Subtitle != "" {
		md.PlainText(h.Subtitle)
		md.PlainText("")
	}
}

func (w *MarkdownWriter) writeCards(md *markdown.Markdown, cards []projection.StatCard) {
	rows := make([][]string, len(cards))
	for i, c := range cards {
		sub := c.Sub
		if sub == "" {
			sub = "-"
		}
		rows[i] = []string{c.Label, "**" + c.Value + "**", sub}
	}
	writeTable(md, []string{"Metric", "Value", "Detail"}, rows)
	md.PlainText("")
}

func (w *MarkdownWriter) writeAuditSeries(md *markdown.Markdown, series []model.AuditYear) {
	if len(series) == 0 {
		md.PlainText("No audit history recorded.")
		md.PlainText("")
		return
	}
	rows := make([][]string, len(series))
	for i, y := range series {
		rows[i] = []string{
			strconv.Itoa(y.Year),
			plain(y.Audited) + "%",
			strconv.Itoa(y.Incidents),
			strconv.Itoa(y.Resolved),
		}
	}
	writeTable(md, []string{"Year", "Coverage", "Incidents", "Resolved"}, rows)
	md.PlainText("")
}

func (w *MarkdownWriter) writeOverview(md *markdown.Markdown, o *projection.OverviewView) {
	w.writeHeading(md, o.Heading)
	w.writeCards(md, o.Cards)

	md.H3("Charter pillars")
	md.PlainText("")
	if len(o.Pillars) > 0 {
		items := make([]string, len(o.Pillars))
		for i, p := range o.Pillars {
			items[i] = "**" + p.Title + "**: " + p.Description
		}
		md.BulletList(items...)
		md.PlainText("")
	}

	md.H3("AI audit coverage")
	md.PlainText("")
	w.writeAuditSeries(md, o.AuditSeries)

	md.H3("Funding stack")
	md.PlainText("")
	if len(o.Funding) == 0 {
		md.PlainText("No funding sources listed.")
		md.PlainText("")
		return
	}
	rows := make([][]string, len(o.Funding))
	for i, f := range o.Funding {
		rows[i] = []string{f.Label, f.Value, f.Sub}
	}
	writeTable(md, []string{"Source", "Amount", "Note"}, rows)
	md.PlainText("")
}

func (w *MarkdownWriter) writeCharter(md *markdown.Markdown, c *projection.CharterView) {
	w.writeHeading(md, c.Heading)
	for _, p := range c.Pillars {
		md.H3(p.Title)
		md.PlainText("")
		if p.Description != "" {
			md.PlainText(p.Description)
			md.PlainText("")
		}
		if len(p.Principles) > 0 {
			texts := make([]string, len(p.Principles))
			for i, pr := range p.Principles {
				texts[i] = pr.Text
			}
			md.OrderedList(texts...)
			md.PlainText("")
		}
	}
	if c.Enforcement != "" {
		md.Important(c.Enforcement)
		md.PlainText("")
	}
}

func (w *MarkdownWriter) writeAssemblies(md *markdown.Markdown, a *projection.AssembliesView) {
	w.writeHeading(md, a.Heading)

	rows := make([][]string, len(a.Cards))
	for i, c := range a.Cards {
		name := c.Name
		if c.Selected {
			name = "**" + name + "**"
		}
		rows[i] = []string{name, c.Domain, "`" + c.ID + "`", strconv.Itoa(c.Decisions), c.Binding, c.Turnout}
	}
	writeTable(md, []string{"Assembly", "Domain", "ID", "Decisions", "Binding", "Turnout"}, rows)
	md.PlainText("")

	if a.Panel.Kind != projection.PanelDetail || a.Panel.Detail == nil {
		md.Tip(a.Panel.Prompt)
		md.PlainText("")
		return
	}

	d := a.Panel.Detail
	md.H3(d.Name)
	md.PlainText("")
	w.writeCards(md, []projection.StatCard{
		{Label: "Members", Value: strconv.Itoa(d.Members)},
		{Label: "Decisions", Value: strconv.Itoa(d.Decisions)},
		{Label: "Turnout", Value: d.Turnout},
		{Label: "Stipend", Value: d.Stipend, Sub: "per session"},
		{Label: "Next session", Value: d.NextSession},
	})

	demo := make([][]string, len(d.Demographics))
	for i, e := range d.Demographics {
		demo[i] = []string{e.Label, e.Value}
	}
	writeTable(md, []string{"Group", "Share"}, demo)
	md.PlainText("")
}

func (w *MarkdownWriter) writeModules(md *markdown.Markdown, m *projection.ModulesView) {
	w.writeHeading(md, m.Heading)

	rows := make([][]string, len(m.Cards))
	ga := 0
	for i, c := range m.Cards {
		title := c.Title
		if c.Selected {
			title = "**" + title + "**"
		}
		if c.GA {
			ga++
		}
		rows[i] = []string{title, c.Badge, "`" + c.ID + "`", c.Summary}
	}
	writeTable(md, []string{"Module", "Status", "ID", "Summary"}, rows)
	md.PlainText("")

	if len(m.Cards) > 0 {
		chart := piechart.NewPieChart(
			io.Discard,
			piechart.WithTitle("Module Maturity"),
			piechart.WithShowData(true),
		)
		if ga > 0 {
			chart.LabelAndIntValue("GA", uint64(ga))
		}
		if rest := len(m.Cards) - ga; rest > 0 {
			chart.LabelAndIntValue("In development", uint64(rest))
		}
		md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
		md.PlainText("")
	}

	if m.Panel.Kind != projection.PanelDetail || m.Panel.Detail == nil {
		md.Tip(m.Panel.Prompt)
		md.PlainText("")
		return
	}

	d := m.Panel.Detail
	md.H3(d.Title + " (" + d.Badge + ")")
	md.PlainText("")
	md.PlainText(d.Description)
	md.PlainText("")
	if len(d.Features) > 0 {
		md.BulletList(d.Features...)
		md.PlainText("")
	}
	md.PlainTextf("Tech stack: `%s`", d.TechStack)
	md.PlainText("")

	if len(d.Metrics) > 0 {
		metricRows := make([][]string, len(d.Metrics))
		for i, r := range d.Metrics {
			metricRows[i] = []string{r.Label, r.Value}
		}
		writeTable(md, []string{"Metric", "Value"}, metricRows)
		md.PlainText("")
	}
}

func (w *MarkdownWriter) writeAudits(md *markdown.Markdown, a *projection.AuditsView) {
	w.writeHeading(md, a.Heading)
	w.writeCards(md, a.Cards)
	w.writeAuditSeries(md, a.Series)
}

func (w *MarkdownWriter) writeParticipation(md *markdown.Markdown, p *projection.ParticipationView) {
	w.writeHeading(md, p.Heading)
	w.writeCards(md, p.Cards)

	md.H3("Demographic equity index")
	md.PlainText("")
	if len(p.Equity) > 0 {
		rows := make([][]string, len(p.Equity))
		counts := make(map[metrics.Band]int, len(metrics.Bands()))
		for i, e := range p.Equity {
			rows[i] = []string{e.Label, e.Value, string(e.Band)}
			counts[e.Band]++
		}
		writeTable(md, []string{"Group", "Index", "Band"}, rows)
		md.PlainText("")
		w.writeBandChart(md, counts)
		if counts[metrics.BandPoor] > 0 {
			md.Warningf("%d group(s) rated %s on the equity index.", counts[metrics.BandPoor], metrics.BandPoor)
			md.PlainText("")
		}
	}

	writeTable(md, []string{"Score", "Value", "Notes"}, [][]string{
		{"Satisfaction", p.Satisfaction.Value, p.Satisfaction.Caption},
		{"Accessibility", p.Accessibility.Value, p.Accessibility.Caption},
	})
	md.PlainText("")

	if len(p.AssemblySeries) > 0 {
		md.H3("Assembly participation")
		md.PlainText("")
		rows := make([][]string, len(p.AssemblySeries))
		for i, pt := range p.AssemblySeries {
			rows[i] = []string{pt.Name, strconv.Itoa(pt.Members), strconv.Itoa(pt.Turnout) + "%"}
		}
		writeTable(md, []string{"Assembly", "Members", "Turnout"}, rows)
		md.PlainText("")
	}
}

// writeBandChart writes a mermaid pie chart of equity bands.
func (w *MarkdownWriter) writeBandChart(md *markdown.Markdown, counts map[metrics.Band]int) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Equity Band Distribution"),
		piechart.WithShowData(true),
	)
	for _, b := range metrics.Bands() {
		if counts[b] > 0 {
			chart.LabelAndIntValue(b.String(), uint64(counts[b]))
		}
	}
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Generated by civicdash*")
}

// cellEscaper keeps dataset text from closing a table cell or row.
var cellEscaper = strings.NewReplacer("|", `\|`, "\r\n", " ", "\n", " ")

// writeTable writes a table with every cell escaped.
func writeTable(md *markdown.Markdown, header []string, rows [][]string) {
	escaped := make([][]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = cellEscaper.Replace(cell)
		}
		escaped[i] = cells
	}
	md.Table(markdown.TableSet{Header: header, Rows: escaped})
}
