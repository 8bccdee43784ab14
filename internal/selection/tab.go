package selection

import (
	"fmt"
	"strings"
)

// Tab is a dashboard tab.
type Tab string

// Dashboard tabs in navigation order.
const (
	TabOverview      Tab = "overview"
	TabCharter       Tab = "charter"
	TabAssemblies    Tab = "assemblies"
	TabModules       Tab = "modules"
	TabAudits        Tab = "audits"
	TabParticipation Tab = "participation"
)

var tabLabels = map[Tab]string{
	TabOverview:      "Overview",
	TabCharter:       "Charter",
	TabAssemblies:    "Assemblies",
	TabModules:       "Modules",
	TabAudits:        "Audit Tracker",
	TabParticipation: "Participation",
}

// Tabs returns every tab in navigation order.
func Tabs() []Tab {
	return []Tab{TabOverview, TabCharter, TabAssemblies, TabModules, TabAudits, TabParticipation}
}

// ParseTab converts a tab name, case-insensitively, into a Tab.
func ParseTab(s string) (Tab, error) {
	t := Tab(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownTab, s)
	}
	return t, nil
}

// Valid reports whether t is one of the dashboard tabs.
func (t Tab) Valid() bool {
	_, ok := tabLabels[t]
	return ok
}

// Label returns the navigation label of the tab.
func (t Tab) Label() string {
	return tabLabels[t]
}

// String returns the tab name.
func (t Tab) String() string {
	return string(t)
}
