package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/nao1215/civicdash/internal/loader"
	"github.com/nao1215/civicdash/internal/projection"
	"github.com/nao1215/civicdash/internal/selection"
)

// loadTestState parses the fixture dataset into a Ready state.
func loadTestState(t *testing.T) loader.State {
	t.Helper()

	data, err := os.ReadFile("testdata/dataset.json")
	if err != nil {
		t.Fatalf("failed to read fixture: %v", err)
	}
	ds, err := loader.Parse(data)
	if err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}
	return loader.ReadyState(ds)
}

// createTestView projects tab of the fixture dataset.
func createTestView(t *testing.T, sel selection.State) *projection.View {
	t.Helper()
	return projection.Build(loadTestState(t), sel, nil)
}

func tabState(tab selection.Tab) selection.State {
	return selection.Initial().SelectTab(tab)
}

// TestSimpleWriter tests the human-readable view writer.
func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes header and tab bar", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		_, err := w.Write(createTestView(t, selection.Initial()))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "CIVIC GOVERNANCE DASHBOARD") {
			t.Error("expected output to contain header")
		}
		if !strings.Contains(output, "[Overview]") {
			t.Error("expected active tab to be marked")
		}
		if !strings.Contains(output, "Audit Tracker") {
			t.Error("expected tab bar to list every tab")
		}
	})

	t.Run("writes overview cards", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		_, err := w.Write(createTestView(t, selection.Initial()))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{"Decisions issued:", "62 (61% binding)", "1.9M (of 2.5M)", "Municipal budget: $4.2M"} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q", want)
			}
		}
	})

	t.Run("writes selected assembly detail", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)
		view := createTestView(t, tabState(selection.TabAssemblies).ToggleAssembly("asm-housing"))

		_, err := w.Write(view)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "> Housing Assembly") {
			t.Error("expected selected card to be marked")
		}
		if !strings.Contains(output, "$45 (per session)") {
			t.Error("expected stipend in detail panel")
		}
		if !strings.Contains(output, "Non-binary") {
			t.Error("expected demographics in detail panel")
		}
	})

	t.Run("writes prompt without selection", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		_, err := w.Write(createTestView(t, tabState(selection.TabModules)))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "Select a module") {
			t.Error("expected selection prompt")
		}
	})

	t.Run("verbose mode includes metric keys", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf, WithVerbose(true))
		view := createTestView(t, tabState(selection.TabModules).ToggleModule("mod-ledger"))

		_, err := w.Write(view)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "Decisions Recorded: 18K") {
			t.Error("expected humanized metric row")
		}
		if !strings.Contains(output, "key: decisions_recorded") {
			t.Error("expected verbose output to contain metric keys")
		}
	})

	t.Run("writes participation equity bands", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		_, err := w.Write(createTestView(t, tabState(selection.TabParticipation)))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "Low Income") {
			t.Error("expected humanized equity group")
		}
		if !strings.Contains(output, "excellent") {
			t.Error("expected equity band")
		}
		if !strings.Contains(output, "Climate") || strings.Contains(output, "Climate Assembly") {
			t.Error("expected assembly suffix to be stripped in series")
		}
	})
}

// TestSimpleWriterNotReady tests the loading and failure placeholders.
func TestSimpleWriterNotReady(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		state    loader.State
		verbose  bool
		expected string
		absent   string
	}{
		{"loading", loader.PendingState(), false, loadingMessage, failedMessage},
		{"failed", loader.FailedState(errors.New("connection refused")), false, failedMessage, "connection refused"},
		{"failed verbose", loader.FailedState(errors.New("connection refused")), true, "Reason: connection refused", loadingMessage},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			w := NewSimpleWriter(&buf, WithVerbose(tc.verbose))
			view := projection.Build(tc.state, selection.Initial(), nil)

			if _, err := w.Write(view); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			output := buf.String()
			if !strings.Contains(output, tc.expected) {
				t.Errorf("expected output to contain %q", tc.expected)
			}
			if strings.Contains(output, tc.absent) {
				t.Errorf("expected output not to contain %q", tc.absent)
			}
		})
	}
}

// TestSimpleWriterShowEmpty tests empty list announcements.
func TestSimpleWriterShowEmpty(t *testing.T) {
	t.Parallel()

	empty := projection.Build(loader.ReadyState(nil), selection.Initial(), nil)
	if empty.Status != projection.StatusLoading {
		t.Fatalf("expected nil dataset to project as loading, got %s", empty.Status)
	}

	view := &projection.View{
		Status:   projection.StatusReady,
		Overview: &projection.OverviewView{Heading: projection.Heading{Title: "Governance Overview"}},
	}

	var quiet, loud bytes.Buffer
	if _, err := NewSimpleWriter(&quiet).Write(view); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := NewSimpleWriter(&loud, WithShowEmpty(true)).Write(view); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Contains(quiet.String(), "No funding sources") {
		t.Error("expected empty lists to be omitted by default")
	}
	if !strings.Contains(loud.String(), "No funding sources") {
		t.Error("expected empty lists to be announced")
	}

	var verbose bytes.Buffer
	if _, err := New(FormatText, &verbose, true).Write(view); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(verbose.String(), "No funding sources") {
		t.Error("expected verbose text writer to announce empty lists")
	}
}

// TestJSONWriter tests the JSON view writer.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("outputs valid JSON", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf)

		_, err := w.Write(createTestView(t, tabState(selection.TabAudits)))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var parsed projection.View
		if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if parsed.Status != projection.StatusReady {
			t.Errorf("expected status %q, got %q", projection.StatusReady, parsed.Status)
		}
		if parsed.Audits == nil {
			t.Fatal("expected audits section")
		}
		if parsed.Overview != nil {
			t.Error("expected only the active tab to be projected")
		}
		if got := parsed.Audits.Cards[3].Value; got != "100%" {
			t.Errorf("expected resolution rate 100%%, got %q", got)
		}
	})

	t.Run("compact output by default", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf)

		_, err := w.Write(createTestView(t, selection.Initial()))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := strings.TrimSuffix(buf.String(), "\n")
		if strings.Contains(output, "\n") {
			t.Error("expected compact JSON output")
		}
	})

	t.Run("pretty print", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf, WithPrettyPrint())

		_, err := w.Write(createTestView(t, selection.Initial()))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "\n  \"status\": \"ready\"") {
			t.Error("expected indented JSON output")
		}
	})

	t.Run("custom indent", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf, WithIndent(">", "\t"))

		_, err := w.Write(createTestView(t, selection.Initial()))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "\n>\t\"status\"") {
			t.Error("expected prefix and tab indentation")
		}
	})

	t.Run("failed view carries error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf)
		view := projection.Build(loader.FailedState(errors.New("boom")), selection.Initial(), nil)

		if _, err := w.Write(view); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), `"status":"failed"`) || !strings.Contains(buf.String(), `"error":"boom"`) {
			t.Errorf("unexpected output: %s", buf.String())
		}
	})
}

// TestMarkdownWriter tests the Markdown view writer.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		sel      selection.State
		expected []string
	}{
		{
			name:     "overview",
			sel:      selection.Initial(),
			expected: []string{"# Civic Governance Dashboard", "**Overview**", "## Governance Overview", "Decisions issued", "Municipal budget"},
		},
		{
			name:     "charter",
			sel:      tabState(selection.TabCharter),
			expected: []string{"## Civic Charter", "### Transparency", "Explain every decision", "[!IMPORTANT]"},
		},
		{
			name:     "assembly detail",
			sel:      tabState(selection.TabAssemblies).ToggleAssembly("asm-climate"),
			expected: []string{"### Climate Assembly", "$60", "18–34"},
		},
		{
			name:     "assembly prompt",
			sel:      tabState(selection.TabAssemblies),
			expected: []string{"[!TIP]", "Select an assembly"},
		},
		{
			name:     "modules chart",
			sel:      tabState(selection.TabModules).ToggleModule("mod-qv"),
			expected: []string{"```mermaid", "Module Maturity", "Ballots Cast", "2.4M"},
		},
		{
			name:     "audits",
			sel:      tabState(selection.TabAudits),
			expected: []string{"Current coverage", "22%", "2027"},
		},
		{
			name:     "participation",
			sel:      tabState(selection.TabParticipation),
			expected: []string{"Equity Band Distribution", "[!WARNING]", "Non Native Speakers", "Satisfaction"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			w := NewMarkdownWriter(&buf)

			n, err := w.Write(createTestView(t, tc.sel))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if n == 0 {
				t.Error("expected non-zero byte count")
			}

			output := buf.String()
			for _, want := range tc.expected {
				if !strings.Contains(output, want) {
					t.Errorf("expected output to contain %q", want)
				}
			}
			if !strings.Contains(output, "Generated by civicdash") {
				t.Error("expected footer")
			}
		})
	}
}

// TestMarkdownWriterEscapesCells tests that dataset text cannot break tables.
func TestMarkdownWriterEscapesCells(t *testing.T) {
	t.Parallel()

	view := &projection.View{
		Status:    projection.StatusReady,
		Selection: tabState(selection.TabModules),
		Modules: &projection.ModulesView{
			Heading: projection.Heading{Title: "Governance Modules"},
			Cards: []projection.ModuleCard{
				{ID: "m", Title: "A | B", Badge: "GA v1", GA: true, Summary: "x | y\nnext line"},
			},
			Panel: projection.ModulePanel{Kind: projection.PanelNoSelection, Prompt: "Select a module"},
		},
	}

	var buf bytes.Buffer
	if _, err := NewMarkdownWriter(&buf).Write(view); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	output := buf.String()

	if !strings.Contains(output, `A \| B`) || !strings.Contains(output, `x \| y next line`) {
		t.Errorf("expected escaped cells, got %s", output)
	}
	if strings.Contains(output, "| A | B |") {
		t.Errorf("expected pipe in title not to split the cell, got %s", output)
	}
}

// TestMarkdownWriterNotReady tests the Markdown placeholders.
func TestMarkdownWriterNotReady(t *testing.T) {
	t.Parallel()

	t.Run("loading", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		view := projection.Build(loader.PendingState(), selection.Initial(), nil)
		if _, err := NewMarkdownWriter(&buf).Write(view); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "[!NOTE]") || !strings.Contains(buf.String(), loadingMessage) {
			t.Errorf("expected loading note, got %s", buf.String())
		}
	})

	t.Run("failed", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		view := projection.Build(loader.FailedState(errors.New("timeout")), selection.Initial(), nil)
		if _, err := NewMarkdownWriter(&buf).Write(view); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "[!CAUTION]") || !strings.Contains(buf.String(), "timeout") {
			t.Errorf("expected caution alert, got %s", buf.String())
		}
	})
}

// TestMultiWriter tests writing to multiple outputs.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	var textBuf, jsonBuf bytes.Buffer
	mw := NewMultiWriter(NewSimpleWriter(&textBuf), NewJSONWriter(&jsonBuf))

	n, err := mw.Write(createTestView(t, selection.Initial()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != textBuf.Len()+jsonBuf.Len() {
		t.Errorf("expected %d bytes, got %d", textBuf.Len()+jsonBuf.Len(), n)
	}
	if textBuf.Len() == 0 || jsonBuf.Len() == 0 {
		t.Error("expected output in both writers")
	}
}

// TestWriteNilView tests that every writer rejects a nil view.
func TestWriteNilView(t *testing.T) {
	t.Parallel()

	for _, f := range Formats() {
		t.Run(string(f), func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			_, err := New(f, &buf, false).Write(nil)
			if !errors.Is(err, ErrNilView) {
				t.Errorf("expected ErrNilView, got %v", err)
			}
		})
	}
}

// TestParseFormat tests format name parsing.
func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{" md ", FormatMarkdown, false},
		{"markdown", FormatMarkdown, false},
		{"html", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestFormatExtension tests export file extensions.
func TestFormatExtension(t *testing.T) {
	t.Parallel()

	want := map[Format]string{FormatText: ".txt", FormatJSON: ".json", FormatMarkdown: ".md"}
	for f, ext := range want {
		if got := f.Extension(); got != ext {
			t.Errorf("%s.Extension() = %q, want %q", f, got, ext)
		}
	}
}
