package display

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

func TestDisplayWarning_TitleOnly(t *testing.T) {
	var buf bytes.Buffer
	w := Warning{
		Title: "Configuration Missing",
	}

	w.Display(&buf)

	output := buf.String()

	// Should contain yellow color code
	if !strings.Contains(output, "\x1b[33m") {
		t.Error("Expected yellow ANSI color code in output")
	}

	// Should contain warning emoji
	if !strings.Contains(output, "⚠️") {
		t.Error("Expected warning emoji ⚠️ in output")
	}

	// Should contain title
	if !strings.Contains(output, "Configuration Missing") {
		t.Error("Expected title in output")
	}

	// Should end with reset code
	if !strings.Contains(output, "\x1b[0m") {
		t.Error("Expected ANSI reset code in output")
	}
}

func TestDisplayWarning_WithMessage(t *testing.T) {
	var buf bytes.Buffer
	w := Warning{
		Title:   "Numbers are not padded",
		Message: "DIGITS is zero, labels keep their natural width",
	}

	w.Display(&buf)

	output := buf.String()

	if !strings.Contains(output, "Numbers are not padded") {
		t.Error("Expected title in output")
	}

	// Message is indented by four spaces
	if !strings.Contains(output, "    DIGITS is zero, labels keep their natural width") {
		t.Error("Expected indented message in output")
	}
}

func TestDisplayWarning_FileLabels(t *testing.T) {
	tests := []struct {
		name     string
		files    []string
		wantText string
	}{
		{
			name:     "single file",
			files:    []string{"a_numbered.pdf"},
			wantText: "Affected file:",
		},
		{
			name:     "multiple files",
			files:    []string{"a_numbered.pdf", "b_numbered.pdf"},
			wantText: "Affected files:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := Warning{Title: "Check input", Files: tt.files}

			w.Display(&buf)

			output := buf.String()
			if !strings.Contains(output, tt.wantText) {
				t.Errorf("expected %q in output, got %q", tt.wantText, output)
			}

			// Files are listed numbered
			for i, file := range tt.files {
				want := fmt.Sprintf("%d. %s", i+1, file)
				if !strings.Contains(output, want) {
					t.Errorf("expected file entry %q in output, got %q", want, output)
				}
			}
		})
	}
}

func TestDisplayWarning_WithSuggestion(t *testing.T) {
	var buf bytes.Buffer
	w := Warning{
		Title:      "Numbered copies in the input folder",
		Suggestion: "Move them out of the input folder.",
	}

	w.Display(&buf)

	output := buf.String()
	if !strings.Contains(output, "Suggestion:") {
		t.Error("Expected suggestion header in output")
	}
	if !strings.Contains(output, "Move them out of the input folder.") {
		t.Error("Expected suggestion text in output")
	}
}

func TestWarnNumberedCopies(t *testing.T) {
	w := WarnNumberedCopies([]string{"a_numbered.pdf"})

	if w.Title != "Numbered copies in the input folder" {
		t.Errorf("unexpected title %q", w.Title)
	}
	if len(w.Files) != 1 || w.Files[0] != "a_numbered.pdf" {
		t.Errorf("unexpected files %v", w.Files)
	}
	if w.Suggestion == "" {
		t.Error("expected a suggestion")
	}

	var buf bytes.Buffer
	w.Display(&buf)
	if !strings.Contains(buf.String(), "numbered twice") {
		t.Errorf("expected double numbering explanation, got %q", buf.String())
	}
}

func TestWarnOverwrites(t *testing.T) {
	w := WarnOverwrites([]string{"a_numbered.pdf", "b_numbered.pdf"})

	if w.Title != "Existing numbered copies will be overwritten" {
		t.Errorf("unexpected title %q", w.Title)
	}
	if len(w.Files) != 2 {
		t.Errorf("unexpected files %v", w.Files)
	}
}
