package report

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/civicdash/internal/projection"
)

// ErrNilView is returned when a writer is handed a nil view.
var ErrNilView = errors.New("report: nil view")

// Writer defines the interface for view output.
// Implementations render a dashboard view in various formats.
type Writer interface {
	// Write outputs the view to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(view *projection.View) (int, error)
}

// Format names an output format.
type Format string

const (
	// FormatText is the plain text format of SimpleWriter.
	FormatText Format = "text"
	// FormatJSON is the format of JSONWriter.
	FormatJSON Format = "json"
	// FormatMarkdown is the format of MarkdownWriter.
	FormatMarkdown Format = "markdown"
)

// Formats returns every supported format.
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatMarkdown}
}

// Extension returns the file extension used when a view is exported.
func (f Format) Extension() string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatMarkdown:
		return ".md"
	default:
		return ".txt"
	}
}

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatText, "txt", "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatMarkdown, "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown report format %q", s)
	}
}

// New creates the writer for format f. Verbose text writers show metric
// keys and announce empty lists.
func New(f Format, output io.Writer, verbose bool) Writer {
	switch f {
	case FormatJSON:
		return NewJSONWriter(output, WithPrettyPrint())
	case FormatMarkdown:
		return NewMarkdownWriter(output)
	default:
		return NewSimpleWriter(output, WithVerbose(verbose), WithShowEmpty(verbose))
	}
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the view to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(view *projection.View) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(view)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

const (
	loadingMessage = "Loading governance data…"
	failedMessage  = "Unable to load governance data."
)

// plain renders a dataset number without trailing zeros.
func plain(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
