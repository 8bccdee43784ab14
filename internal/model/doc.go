// Package model defines the civic-governance dataset consumed by civicdash.
//
// This package contains the following main types:
//   - Dataset: The whole seed document (charter, assemblies, modules,
//     audit timeline, participation and funding stack)
//   - Assembly and GovModule: The records a user can drill into
//   - MetricValue: A tagged union of Number or Text for module metrics
//   - Metrics and EquityIndex: Ordered key/value sequences that keep the
//     order of the source document
//
// All entities are immutable once loaded. Fractions (binding rate, turnout,
// accessibility) are stored in [0,1]; percentages (audit coverage,
// demographics) use 0-100 and the satisfaction index uses 0-5. Callers must
// respect the per-field scale.
package model
