// Package selection tracks which dashboard tab is active and which
// assembly and module, at most one of each, the user has drilled into.
//
// State is an immutable value; every transition returns a new State.
// Selections survive tab switches. An id that does not exist in the
// dataset is accepted here and treated as "no selection" by the
// projection layer.
package selection
