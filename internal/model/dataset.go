package model

// StatusGA is the module status for generally available modules.
// Every other status is treated as "in development".
const StatusGA ModuleStatus = "GA"

// ModuleStatus is the release status of a governance module.
type ModuleStatus string

// IsGA reports whether the status is the generally available state.
func (s ModuleStatus) IsGA() bool {
	return s == StatusGA
}

// String returns the status as written in the dataset.
func (s ModuleStatus) String() string {
	return string(s)
}

// Dataset is the complete seed document.
// It is created once at load time and never mutated afterwards.
type Dataset struct {
	// Charter is the governing charter with its pillars.
	Charter Charter `json:"charter"`

	// Assemblies lists the citizen assemblies. Ids are unique.
	Assemblies []Assembly `json:"assemblies"`

	// Modules lists the governance modules. Ids are unique.
	Modules []GovModule `json:"modules"`

	// AuditTimeline is ordered by year ascending.
	// The last entry is the current snapshot.
	AuditTimeline []AuditYear `json:"auditTimeline"`

	// Participation holds the resident participation figures.
	Participation Participation `json:"participation"`

	// FundingStack lists the funding sources shown on the overview.
	FundingStack []FundingItem `json:"fundingStack"`

	// Fingerprint identifies the raw document this dataset was parsed from.
	// It is set by the loader and is empty for hand-built datasets.
	Fingerprint string `json:"-"`
}

// Assembly returns the assembly with the given id.
// The second return value is false when no assembly matches.
func (d *Dataset) Assembly(id string) (Assembly, bool) {
	if d == nil || id == "" {
		return Assembly{}, false
	}
	for _, a := range d.Assemblies {
		if a.ID == id {
			return a, true
		}
	}
	return Assembly{}, false
}

// Module returns the governance module with the given id.
// The second return value is false when no module matches.
func (d *Dataset) Module(id string) (GovModule, bool) {
	if d == nil || id == "" {
		return GovModule{}, false
	}
	for _, m := range d.Modules {
		if m.ID == id {
			return m, true
		}
	}
	return GovModule{}, false
}

// Charter is the governance charter.
type Charter struct {
	Title       string   `json:"title"`
	Purpose     string   `json:"purpose"`
	Pillars     []Pillar `json:"pillars"`
	Enforcement string   `json:"enforcement"`
}

// Pillar is one pillar of the charter.
type Pillar struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	Description string `json:"desc"`

	// Principles are rendered in order and numbered from 1.
	Principles []string `json:"principles"`
}

// Assembly is a randomly stratified citizen assembly.
type Assembly struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Domain       string       `json:"domain"`
	Members      int          `json:"members"`
	Demographics Demographics `json:"demographics"`
	MeetingsHeld int          `json:"meetingsHeld"`

	// DecisionsIssued counts every decision, binding or advisory.
	DecisionsIssued int `json:"decisionsIssued"`

	// BindingRate is the fraction (0-1) of decisions that are binding.
	BindingRate float64 `json:"bindingRate"`

	// AvgTurnout is the fraction (0-1) of members attending a session.
	AvgTurnout float64 `json:"avgTurnout"`

	// StipendPerSession is the currency amount paid per member per session.
	StipendPerSession float64 `json:"stipendPerSession"`

	// NextSession is a free-form date or label.
	NextSession string `json:"nextSession"`
}

// Demographics holds the composition of an assembly in percent (0-100).
// The age bands and the gender categories are each expected to sum to
// roughly 100, but nothing enforces or normalizes that.
type Demographics struct {
	Age18To34 float64 `json:"age18_34"`
	Age35To54 float64 `json:"age35_54"`
	Age55Plus float64 `json:"age55plus"`
	Female    float64 `json:"female"`
	Male      float64 `json:"male"`
	NonBinary float64 `json:"nonbinary"`
}

// GovModule is a composable governance building block.
type GovModule struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Status      ModuleStatus `json:"status"`
	Version     string       `json:"version"`
	Description string       `json:"desc"`
	Features    []string     `json:"features"`
	TechStack   string       `json:"techStack"`

	// Metrics is open-ended; keys and value kinds differ per module.
	Metrics Metrics `json:"metrics"`
}

// AuditYear is one year of AI audit tracking.
type AuditYear struct {
	Year int `json:"year"`

	// Audited is the coverage of high-risk systems in percent (0-100).
	Audited float64 `json:"audited"`

	// Total is the number of systems tracked.
	Total     int `json:"total"`
	Incidents int `json:"incidents"`
	Resolved  int `json:"resolved"`
}

// Participation holds resident participation and equity figures.
type Participation struct {
	TotalResidents       float64 `json:"totalResidents"`
	Registered           float64 `json:"registered"`
	ActiveVoters         float64 `json:"activeVoters"`
	AssemblyParticipants float64 `json:"assemblyParticipants"`

	// AvgTurnoutRate is a fraction (0-1).
	AvgTurnoutRate float64 `json:"avgTurnoutRate"`

	QuadraticVotesLastQuarter float64 `json:"quadraticVotesLastQuarter"`

	// DemographicEquity maps a group to its parity index; 1.0 is parity.
	DemographicEquity EquityIndex `json:"demographicEquity"`

	// SatisfactionIndex is on a 0-5 scale.
	SatisfactionIndex float64 `json:"satisfactionIndex"`

	// AccessibilityScore is a fraction (0-1).
	AccessibilityScore float64 `json:"accessibilityScore"`
}

// FundingItem is one entry of the funding stack.
// Value is already formatted for display.
type FundingItem struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Sub   string `json:"sub"`
	Color string `json:"color"`
}
