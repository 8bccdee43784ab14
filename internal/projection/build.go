package projection

import (
	"strconv"
	"strings"

	"github.com/nao1215/civicdash/internal/loader"
	"github.com/nao1215/civicdash/internal/metrics"
	"github.com/nao1215/civicdash/internal/model"
	"github.com/nao1215/civicdash/internal/selection"
)

const (
	// summaryLimit is the rune length after which module descriptions are cut on cards.
	summaryLimit = 100

	// assemblySuffix is stripped from assembly names on the participation chart.
	assemblySuffix = " Assembly"

	assemblyPrompt = "Select an assembly to explore its details and demographics."
	modulePrompt   = "Select a module to explore its features, tech stack, and live metrics."
)

// Build projects the active tab of sel. It derives nothing unless state is
// Ready. A nil engine is replaced by a fresh one.
func Build(state loader.State, sel selection.State, eng *metrics.Engine) *View {
	v := &View{
		Selection: sel,
		Nav:       nav(sel.Tab),
	}

	switch {
	case state.Phase == loader.Failed:
		v.Status = StatusFailed
		if state.Err != nil {
			v.Error = state.Err.Error()
		}
		return v
	case !state.IsReady():
		v.Status = StatusLoading
		return v
	}

	if eng == nil {
		eng = metrics.NewEngine()
	}
	ds := state.Dataset
	v.Status = StatusReady

	switch sel.Tab {
	case selection.TabCharter:
		v.Charter = charterView(ds)
	case selection.TabAssemblies:
		v.Assemblies = assembliesView(ds, sel.Assembly)
	case selection.TabModules:
		v.Modules = modulesView(ds, sel.Module)
	case selection.TabAudits:
		v.Audits = auditsView(ds, eng.Summary(ds))
	case selection.TabParticipation:
		v.Participation = participationView(ds)
	default:
		v.Selection.Tab = selection.TabOverview
		v.Nav = nav(selection.TabOverview)
		v.Overview = overviewView(ds, eng.Summary(ds))
	}
	return v
}

func nav(active selection.Tab) []NavItem {
	tabs := selection.Tabs()
	items := make([]NavItem, len(tabs))
	for i, t := range tabs {
		items[i] = NavItem{Tab: t, Label: t.Label(), Active: t == active}
	}
	return items
}

func overviewView(ds *model.Dataset, s metrics.Summary) *OverviewView {
	binding := metrics.NotAvailable
	if s.AverageBindingRate != nil {
		binding = metrics.FormatPercent(*s.AverageBindingRate)
	}

	p := ds.Participation
	pillars := make([]PillarSummary, len(ds.Charter.Pillars))
	for i, pl := range ds.Charter.Pillars {
		pillars[i] = pillarSummary(pl)
	}

	return &OverviewView{
		Heading: Heading{Title: "Governance Overview", Subtitle: "Key institutional metrics at a glance"},
		Cards: []StatCard{
			{Label: "Assemblies active", Value: strconv.Itoa(s.AssemblyCount)},
			{Label: "Decisions issued", Value: strconv.Itoa(s.TotalDecisions), Sub: binding + " binding"},
			{Label: "Modules deployed", Value: strconv.Itoa(s.GAModuleCount), Sub: "of " + strconv.Itoa(s.ModuleCount) + " total"},
			{Label: "Registered voters", Value: metrics.FormatCompact(p.Registered), Sub: "of " + metrics.FormatCompact(p.TotalResidents)},
		},
		Pillars:     pillars,
		AuditSeries: auditSeries(ds),
		Funding:     append([]model.FundingItem{}, ds.FundingStack...),
	}
}

func pillarSummary(p model.Pillar) PillarSummary {
	return PillarSummary{
		ID:          p.ID,
		Title:       p.Title,
		Icon:        p.Icon,
		Color:       p.Color,
		Description: p.Description,
	}
}

func charterView(ds *model.Dataset) *CharterView {
	pillars := make([]PillarView, len(ds.Charter.Pillars))
	for i, p := range ds.Charter.Pillars {
		principles := make([]Principle, len(p.Principles))
		for j, text := range p.Principles {
			principles[j] = Principle{Number: j + 1, Text: text}
		}
		pillars[i] = PillarView{PillarSummary: pillarSummary(p), Principles: principles}
	}

	return &CharterView{
		Heading:     Heading{Title: ds.Charter.Title, Subtitle: ds.Charter.Purpose},
		Pillars:     pillars,
		Enforcement: ds.Charter.Enforcement,
	}
}

func assembliesView(ds *model.Dataset, selected string) *AssembliesView {
	cards := make([]AssemblyCard, len(ds.Assemblies))
	for i, a := range ds.Assemblies {
		cards[i] = AssemblyCard{
			ID:        a.ID,
			Name:      a.Name,
			Domain:    a.Domain,
			Members:   a.Members,
			Decisions: a.DecisionsIssued,
			Binding:   metrics.FormatPercent(a.BindingRate),
			Turnout:   metrics.FormatPercent(a.AvgTurnout),
			Selected:  selected != "" && a.ID == selected,
		}
	}

	return &AssembliesView{
		Heading: Heading{
			Title:    "Citizen Assemblies",
			Subtitle: "Randomly stratified assemblies mirroring local demographics. Stipends, childcare, transit passes, and language access remove participation barriers.",
		},
		Cards: cards,
		Panel: assemblyPanel(ds, selected),
	}
}

// assemblyPanel resolves the selection; unknown ids yield the prompt.
func assemblyPanel(ds *model.Dataset, selected string) AssemblyPanel {
	a, ok := ds.Assembly(selected)
	if !ok {
		return AssemblyPanel{Kind: PanelNoSelection, Prompt: assemblyPrompt}
	}

	d := a.Demographics
	return AssemblyPanel{
		Kind: PanelDetail,
		Detail: &AssemblyDetail{
			ID:          a.ID,
			Name:        a.Name,
			Domain:      a.Domain,
			NextSession: a.NextSession,
			Members:     a.Members,
			Decisions:   a.DecisionsIssued,
			Turnout:     metrics.FormatPercent(a.AvgTurnout),
			Stipend:     "$" + plainNumber(a.StipendPerSession),
			Demographics: []DemographicEntry{
				{Label: "18–34", Value: plainNumber(d.Age18To34) + "%"},
				{Label: "35–54", Value: plainNumber(d.Age35To54) + "%"},
				{Label: "55+", Value: plainNumber(d.Age55Plus) + "%"},
				{Label: "Female", Value: plainNumber(d.Female) + "%"},
				{Label: "Male", Value: plainNumber(d.Male) + "%"},
				{Label: "Non-binary", Value: plainNumber(d.NonBinary) + "%"},
			},
		},
	}
}

func modulesView(ds *model.Dataset, selected string) *ModulesView {
	cards := make([]ModuleCard, len(ds.Modules))
	for i, m := range ds.Modules {
		cards[i] = ModuleCard{
			ID:       m.ID,
			Title:    m.Title,
			Badge:    badge(m),
			GA:       m.Status.IsGA(),
			Summary:  truncate(m.Description, summaryLimit),
			Selected: selected != "" && m.ID == selected,
		}
	}

	return &ModulesView{
		Heading: Heading{Title: "Governance Modules", Subtitle: "Composable building blocks: cities adopt independently via APIs"},
		Cards:   cards,
		Panel:   modulePanel(ds, selected),
	}
}

func modulePanel(ds *model.Dataset, selected string) ModulePanel {
	m, ok := ds.Module(selected)
	if !ok {
		return ModulePanel{Kind: PanelNoSelection, Prompt: modulePrompt}
	}

	rows := make([]MetricRow, len(m.Metrics))
	for i, e := range m.Metrics {
		rows[i] = MetricRow{
			Key:   e.Key,
			Label: metrics.HumanizeKey(e.Key),
			Value: metrics.FormatMetricValue(e.Value),
		}
	}

	return ModulePanel{
		Kind: PanelDetail,
		Detail: &ModuleDetail{
			ID:          m.ID,
			Title:       m.Title,
			Description: m.Description,
			Badge:       badge(m),
			GA:          m.Status.IsGA(),
			Features:    append([]string{}, m.Features...),
			TechStack:   m.TechStack,
			Metrics:     rows,
		},
	}
}

func badge(m model.GovModule) string {
	return m.Status.String() + " v" + m.Version
}

func auditsView(ds *model.Dataset, s metrics.Summary) *AuditsView {
	cards := []StatCard{
		{Label: "Current coverage", Value: metrics.NotAvailable},
		{Label: "Systems tracked", Value: metrics.NotAvailable},
		{Label: "Incidents (latest yr)", Value: metrics.NotAvailable},
		{Label: "Resolution rate", Value: metrics.NotAvailable},
	}
	if latest := s.LatestAudit; latest != nil && s.ResolutionRate != nil {
		cards[0].Value = plainNumber(latest.Audited) + "%"
		cards[1].Value = strconv.Itoa(latest.Total)
		cards[2].Value = strconv.Itoa(latest.Incidents)
		cards[2].Sub = strconv.Itoa(latest.Resolved) + " resolved"
		cards[3].Value = metrics.FormatPercent(*s.ResolutionRate)
	}

	return &AuditsView{
		Heading: Heading{
			Title:    "AI Audit Tracker",
			Subtitle: "Coverage of high-risk AI systems with participatory safety reviews. Threshold breaches trigger automatic policy reviews.",
		},
		Cards:  cards,
		Series: auditSeries(ds),
	}
}

func auditSeries(ds *model.Dataset) []model.AuditYear {
	return append([]model.AuditYear{}, ds.AuditTimeline...)
}

func participationView(ds *model.Dataset) *ParticipationView {
	p := ds.Participation

	equity := make([]EquityCell, len(p.DemographicEquity))
	for i, e := range p.DemographicEquity {
		equity[i] = EquityCell{
			Group:      e.Group,
			Label:      metrics.HumanizeKey(e.Group),
			Value:      metrics.FormatFixed(e.Index, 2),
			Index:      e.Index,
			Band:       metrics.EquityBand(e.Index),
			BarPercent: e.Index * 100,
		}
	}

	series := make([]AssemblyPoint, len(ds.Assemblies))
	for i, a := range ds.Assemblies {
		series[i] = AssemblyPoint{
			Name:    strings.TrimSuffix(a.Name, assemblySuffix),
			Members: a.Members,
			Turnout: metrics.RoundPercent(a.AvgTurnout),
		}
	}

	return &ParticipationView{
		Heading: Heading{Title: "Participation & Equity", Subtitle: "Measuring who participates, demographic equity, accessibility, and satisfaction"},
		Cards: []StatCard{
			{Label: "Registered", Value: metrics.FormatCompact(p.Registered), Sub: "of " + metrics.FormatCompact(p.TotalResidents)},
			{Label: "Active voters", Value: metrics.FormatCompact(p.ActiveVoters)},
			{Label: "Avg turnout", Value: metrics.FormatPercent(p.AvgTurnoutRate)},
			{Label: "Quadratic votes (Q)", Value: metrics.FormatCompact(p.QuadraticVotesLastQuarter)},
		},
		Equity: equity,
		Satisfaction: Gauge{
			Value:        plainNumber(p.SatisfactionIndex),
			Caption:      "out of " + metrics.FormatFixed(metrics.SatisfactionScale, 1) + ", based on biannual resident surveys",
			SharePercent: metrics.SatisfactionShare(p) * 100,
		},
		Accessibility: Gauge{
			Value:        metrics.FormatPercent(p.AccessibilityScore),
			Caption:      "Screen reader, multi-language, IVR, large print, offline support",
			SharePercent: p.AccessibilityScore * 100,
		},
		AssemblySeries: series,
	}
}

// plainNumber renders a number the way it is written in the dataset.
func plainNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// truncate cuts s to limit runes and appends an ellipsis when it was longer.
func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "…"
}
