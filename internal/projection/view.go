package projection

import (
	"github.com/nao1215/civicdash/internal/metrics"
	"github.com/nao1215/civicdash/internal/model"
	"github.com/nao1215/civicdash/internal/selection"
)

// Status is the load status a View was built from.
type Status string

const (
	// StatusLoading is used while the dataset is pending or in flight.
	StatusLoading Status = "loading"
	// StatusFailed is used after a failed load. It never changes.
	StatusFailed Status = "failed"
	// StatusReady is used once the dataset is available.
	StatusReady Status = "ready"
)

// View is everything a renderer needs for the active tab.
// Exactly one tab section is set when Status is StatusReady.
type View struct {
	Status    Status          `json:"status"`
	Error     string          `json:"error,omitempty"`
	Selection selection.State `json:"selection"`
	Nav       []NavItem       `json:"nav"`

	Overview      *OverviewView      `json:"overview,omitempty"`
	Charter       *CharterView       `json:"charter,omitempty"`
	Assemblies    *AssembliesView    `json:"assemblies,omitempty"`
	Modules       *ModulesView       `json:"modules,omitempty"`
	Audits        *AuditsView        `json:"audits,omitempty"`
	Participation *ParticipationView `json:"participation,omitempty"`
}

// NavItem is one entry of the tab bar.
type NavItem struct {
	Tab    selection.Tab `json:"tab"`
	Label  string        `json:"label"`
	Active bool          `json:"active"`
}

// Heading is the title block of a tab.
type Heading struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
}

// StatCard is a labelled headline figure.
type StatCard struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Sub   string `json:"sub,omitempty"`
}

// OverviewView is the overview tab.
type OverviewView struct {
	Heading     Heading             `json:"heading"`
	Cards       []StatCard          `json:"cards"`
	Pillars     []PillarSummary     `json:"pillars"`
	AuditSeries []model.AuditYear   `json:"audit_series"`
	Funding     []model.FundingItem `json:"funding"`
}

// PillarSummary is a pillar without its principles.
type PillarSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// CharterView is the charter tab.
type CharterView struct {
	Heading     Heading      `json:"heading"`
	Pillars     []PillarView `json:"pillars"`
	Enforcement string       `json:"enforcement"`
}

// PillarView is a pillar with numbered principles.
type PillarView struct {
	PillarSummary
	Principles []Principle `json:"principles"`
}

// Principle is a principle numbered from 1.
type Principle struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

// PanelKind tells a detail panel with a record from the "no selection" prompt.
type PanelKind string

const (
	// PanelDetail carries the selected record.
	PanelDetail PanelKind = "detail"
	// PanelNoSelection carries only a prompt.
	PanelNoSelection PanelKind = "no_selection"
)

// AssembliesView is the assemblies tab.
type AssembliesView struct {
	Heading Heading        `json:"heading"`
	Cards   []AssemblyCard `json:"cards"`
	Panel   AssemblyPanel  `json:"panel"`
}

// AssemblyCard is the compact form of an assembly.
type AssemblyCard struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Domain    string `json:"domain"`
	Members   int    `json:"members"`
	Decisions int    `json:"decisions"`
	Binding   string `json:"binding"`
	Turnout   string `json:"turnout"`
	Selected  bool   `json:"selected"`
}

// AssemblyPanel is the drill-down panel of the assemblies tab.
type AssemblyPanel struct {
	Kind   PanelKind       `json:"kind"`
	Prompt string          `json:"prompt,omitempty"`
	Detail *AssemblyDetail `json:"detail,omitempty"`
}

// AssemblyDetail is the full form of the selected assembly.
type AssemblyDetail struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Domain       string             `json:"domain"`
	NextSession  string             `json:"next_session"`
	Members      int                `json:"members"`
	Decisions    int                `json:"decisions"`
	Turnout      string             `json:"turnout"`
	Stipend      string             `json:"stipend"`
	Demographics []DemographicEntry `json:"demographics"`
}

// DemographicEntry is one demographic share, e.g. {"55+", "25%"}.
type DemographicEntry struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ModulesView is the modules tab.
type ModulesView struct {
	Heading Heading      `json:"heading"`
	Cards   []ModuleCard `json:"cards"`
	Panel   ModulePanel  `json:"panel"`
}

// ModuleCard is the compact form of a governance module.
type ModuleCard struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Badge    string `json:"badge"`
	GA       bool   `json:"ga"`
	Summary  string `json:"summary"`
	Selected bool   `json:"selected"`
}

// ModulePanel is the drill-down panel of the modules tab.
type ModulePanel struct {
	Kind   PanelKind     `json:"kind"`
	Prompt string        `json:"prompt,omitempty"`
	Detail *ModuleDetail `json:"detail,omitempty"`
}

// ModuleDetail is the full form of the selected module.
type ModuleDetail struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Badge       string      `json:"badge"`
	GA          bool        `json:"ga"`
	Features    []string    `json:"features"`
	TechStack   string      `json:"tech_stack"`
	Metrics     []MetricRow `json:"metrics"`
}

// MetricRow is one humanized module metric.
type MetricRow struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// AuditsView is the audit tracker tab.
type AuditsView struct {
	Heading Heading           `json:"heading"`
	Cards   []StatCard        `json:"cards"`
	Series  []model.AuditYear `json:"series"`
}

// ParticipationView is the participation and equity tab.
type ParticipationView struct {
	Heading        Heading         `json:"heading"`
	Cards          []StatCard      `json:"cards"`
	Equity         []EquityCell    `json:"equity"`
	Satisfaction   Gauge           `json:"satisfaction"`
	Accessibility  Gauge           `json:"accessibility"`
	AssemblySeries []AssemblyPoint `json:"assembly_series"`
}

// EquityCell is the equity index of one demographic group.
type EquityCell struct {
	Group      string       `json:"group"`
	Label      string       `json:"label"`
	Value      string       `json:"value"`
	Index      float64      `json:"index"`
	Band       metrics.Band `json:"band"`
	BarPercent float64      `json:"bar_percent"`
}

// Gauge is a single score with the share of its scale it fills.
type Gauge struct {
	Value        string  `json:"value"`
	Caption      string  `json:"caption"`
	SharePercent float64 `json:"share_percent"`
}

// AssemblyPoint is one bar pair of the assembly participation chart.
type AssemblyPoint struct {
	Name    string `json:"name"`
	Members int    `json:"members"`
	Turnout int    `json:"turnout"`
}
