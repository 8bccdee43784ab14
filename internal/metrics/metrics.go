package metrics

import (
	"errors"

	"github.com/nao1215/civicdash/internal/model"
)

var (
	// ErrNoAssemblies is returned by averages over an empty assembly list.
	ErrNoAssemblies = errors.New("no assemblies in dataset")

	// ErrNoAudits is returned when the audit timeline is empty.
	ErrNoAudits = errors.New("audit timeline is empty")
)

// SatisfactionScale is the maximum of the satisfaction index.
const SatisfactionScale = 5.0

// TotalDecisions sums the decisions issued by every assembly.
func TotalDecisions(ds *model.Dataset) int {
	total := 0
	for _, a := range ds.Assemblies {
		total += a.DecisionsIssued
	}
	return total
}

// AverageBindingRate returns the arithmetic mean of the assemblies' binding
// rates, or ErrNoAssemblies when there are none.
func AverageBindingRate(ds *model.Dataset) (float64, error) {
	if len(ds.Assemblies) == 0 {
		return 0, ErrNoAssemblies
	}
	sum := 0.0
	for _, a := range ds.Assemblies {
		sum += a.BindingRate
	}
	return sum / float64(len(ds.Assemblies)), nil
}

// LatestAudit returns the last entry of the year-ordered audit timeline,
// or ErrNoAudits when the timeline is empty.
func LatestAudit(ds *model.Dataset) (model.AuditYear, error) {
	if len(ds.AuditTimeline) == 0 {
		return model.AuditYear{}, ErrNoAudits
	}
	return ds.AuditTimeline[len(ds.AuditTimeline)-1], nil
}

// ResolutionRate returns resolved / max(1, incidents).
// A year without incidents therefore reports resolved/1.
func ResolutionRate(y model.AuditYear) float64 {
	return float64(y.Resolved) / float64(max(1, y.Incidents))
}

// GAModuleCount counts the generally available modules.
func GAModuleCount(ds *model.Dataset) int {
	n := 0
	for _, m := range ds.Modules {
		if m.Status.IsGA() {
			n++
		}
	}
	return n
}

// ModuleCount returns the number of modules regardless of status.
func ModuleCount(ds *model.Dataset) int {
	return len(ds.Modules)
}

// SatisfactionShare returns the satisfaction index as a fraction of its scale.
func SatisfactionShare(p model.Participation) float64 {
	return p.SatisfactionIndex / SatisfactionScale
}

// Summary bundles every aggregate of a dataset.
// Optional aggregates are nil when their source collection is empty.
type Summary struct {
	AssemblyCount      int              `json:"assembly_count"`
	TotalDecisions     int              `json:"total_decisions"`
	AverageBindingRate *float64         `json:"average_binding_rate,omitempty"`
	ModuleCount        int              `json:"module_count"`
	GAModuleCount      int              `json:"ga_module_count"`
	LatestAudit        *model.AuditYear `json:"latest_audit,omitempty"`
	ResolutionRate     *float64         `json:"resolution_rate,omitempty"`
}

// Summarize computes the Summary of ds.
func Summarize(ds *model.Dataset) Summary {
	s := Summary{
		AssemblyCount:  len(ds.Assemblies),
		TotalDecisions: TotalDecisions(ds),
		ModuleCount:    ModuleCount(ds),
		GAModuleCount:  GAModuleCount(ds),
	}

	if avg, err := AverageBindingRate(ds); err == nil {
		s.AverageBindingRate = &avg
	}
	if latest, err := LatestAudit(ds); err == nil {
		rate := ResolutionRate(latest)
		s.LatestAudit = &latest
		s.ResolutionRate = &rate
	}
	return s
}
