// Package metrics derives aggregate figures from a loaded dataset.
//
// Every function here is pure and deterministic: the same dataset always
// yields the same result and nothing is mutated. Aggregates over empty
// collections never produce NaN; they return ErrNoAssemblies or ErrNoAudits
// and the caller renders a "not available" value instead.
//
// The formatters reproduce the dashboard's number formatting exactly and do
// not depend on the locale.
package metrics
