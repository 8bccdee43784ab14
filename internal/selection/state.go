package selection

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownTab is returned for a tab name outside Tabs().
	ErrUnknownTab = errors.New("unknown tab")

	// ErrUnknownAction is returned by ParseAction for unrecognized input.
	ErrUnknownAction = errors.New("unknown action")
)

// State is the view state of one dashboard session.
// An empty Assembly or Module means nothing is selected.
type State struct {
	Tab      Tab    `json:"tab"`
	Assembly string `json:"selected_assembly,omitempty"`
	Module   string `json:"selected_module,omitempty"`
}

// Initial returns the state of a new session: overview tab, no selection.
func Initial() State {
	return State{Tab: TabOverview}
}

// SelectTab switches the active tab. Selections are kept.
func (s State) SelectTab(t Tab) State {
	s.Tab = t
	return s
}

// ToggleAssembly selects the assembly with the given id, replacing any
// previous selection, or deselects it when it is already selected.
func (s State) ToggleAssembly(id string) State {
	s.Assembly = toggle(s.Assembly, id)
	return s
}

// ToggleModule is ToggleAssembly for governance modules.
func (s State) ToggleModule(id string) State {
	s.Module = toggle(s.Module, id)
	return s
}

func toggle(current, id string) string {
	if current == id {
		return ""
	}
	return id
}

// ActionKind names a state transition.
type ActionKind int

const (
	// ActionSelectTab switches tabs.
	ActionSelectTab ActionKind = iota
	// ActionToggleAssembly toggles the assembly selection.
	ActionToggleAssembly
	// ActionToggleModule toggles the module selection.
	ActionToggleModule
)

// Action is a user intent forwarded by the rendering layer.
type Action struct {
	Kind ActionKind
	Tab  Tab
	ID   string
}

// SelectTabAction returns the action switching to t.
func SelectTabAction(t Tab) Action {
	return Action{Kind: ActionSelectTab, Tab: t}
}

// ToggleAssemblyAction returns the action toggling assembly id.
func ToggleAssemblyAction(id string) Action {
	return Action{Kind: ActionToggleAssembly, ID: id}
}

// ToggleModuleAction returns the action toggling module id.
func ToggleModuleAction(id string) Action {
	return Action{Kind: ActionToggleModule, ID: id}
}

// Reduce applies a to s and returns the resulting state.
// Unknown action kinds leave the state unchanged.
func Reduce(s State, a Action) State {
	switch a.Kind {
	case ActionSelectTab:
		return s.SelectTab(a.Tab)
	case ActionToggleAssembly:
		return s.ToggleAssembly(a.ID)
	case ActionToggleModule:
		return s.ToggleModule(a.ID)
	default:
		return s
	}
}

// ParseAction decodes a textual intent:
//
//	tab <name>
//	assembly <id>
//	module <id>
//
// A bare tab name is accepted as shorthand for "tab <name>".
func ParseAction(line string) (Action, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Action{}, fmt.Errorf("%w: empty input", ErrUnknownAction)
	}

	verb := strings.ToLower(fields[0])
	switch {
	case verb == "tab" && len(fields) == 2:
		t, err := ParseTab(fields[1])
		if err != nil {
			return Action{}, err
		}
		return SelectTabAction(t), nil
	case verb == "assembly" && len(fields) == 2:
		return ToggleAssemblyAction(fields[1]), nil
	case verb == "module" && len(fields) == 2:
		return ToggleModuleAction(fields[1]), nil
	case len(fields) == 1:
		if t, err := ParseTab(verb); err == nil {
			return SelectTabAction(t), nil
		}
	}
	return Action{}, fmt.Errorf("%w: %q", ErrUnknownAction, line)
}
