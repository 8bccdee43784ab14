package loader

import "github.com/nao1215/civicdash/internal/model"

// Phase is the lifecycle phase of a load.
type Phase int

const (
	// Pending means no load has been attempted yet.
	Pending Phase = iota
	// Loading means the fetch is in flight.
	Loading
	// Ready means the dataset was loaded and parsed.
	Ready
	// Failed means the fetch or the parse failed. It is terminal.
	Failed
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case Pending:
		return "pending"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is a snapshot of the load lifecycle.
// Dataset is non-nil only in Ready; Err is non-nil only in Failed.
type State struct {
	Phase   Phase
	Dataset *model.Dataset
	Err     error
}

// PendingState returns the state before any load.
func PendingState() State {
	return State{Phase: Pending}
}

// ReadyState returns a Ready state holding ds.
func ReadyState(ds *model.Dataset) State {
	return State{Phase: Ready, Dataset: ds}
}

// FailedState returns a Failed state holding err.
func FailedState(err error) State {
	return State{Phase: Failed, Err: err}
}

// IsReady reports whether a dataset is available.
func (s State) IsReady() bool {
	return s.Phase == Ready && s.Dataset != nil
}
