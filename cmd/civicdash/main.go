// Package main provides the entry point for the civicdash CLI.
//
// civicdash renders a civic-governance dataset (charter, citizen assemblies,
// governance modules, AI audits, participation and equity) as dashboard
// views in text, JSON or Markdown.
//
// Usage:
//
//	civicdash show [tab]
//	civicdash explore
//	civicdash export --dir out
//
// See --help for all available options.
package main

// main is the entry point for civicdash.
func main() {
	Execute()
}
