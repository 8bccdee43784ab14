// Package report renders dashboard views.
//
// This package contains writers for different output formats:
//   - SimpleWriter: Human-readable text output for terminal display
//   - JSONWriter: Structured JSON output for tool integration
//   - MarkdownWriter: GitHub-flavored Markdown with mermaid charts
//
// Writers only read a projection.View; all figures arrive already formatted
// by the projection package. Writers implement the Writer interface, so they
// can be used interchangeably and composed for multi-format output.
package report
