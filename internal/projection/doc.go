// Package projection maps the loaded dataset, its derived metrics and the
// current selection into display-ready views, one per dashboard tab.
//
// A View is rebuilt on every state change. Nothing is derived unless the
// load state is Ready; a pending or failed load yields a View that carries
// only its status. Missing aggregates render as metrics.NotAvailable and a
// selection that matches no record renders the same "no selection" panel
// as an empty selection.
package projection
