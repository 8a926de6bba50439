package display

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewProgressIndicator(t *testing.T) {
	var buf bytes.Buffer
	pi := NewProgressIndicator(&buf, 3)

	if pi == nil {
		t.Fatal("NewProgressIndicator() returned nil")
	}
	if pi.totalDocs != 3 {
		t.Errorf("totalDocs = %d, want 3", pi.totalDocs)
	}
	if pi.current != 0 {
		t.Errorf("current = %d, want 0", pi.current)
	}
}

func TestProgressIndicator_Start(t *testing.T) {
	var buf bytes.Buffer
	pi := NewProgressIndicator(&buf, 3)

	pi.Start()

	if got := buf.String(); got != "Reading page counts:\n" {
		t.Errorf("Start() output = %q", got)
	}
}

func TestProgressIndicator_Step(t *testing.T) {
	var buf bytes.Buffer
	pi := NewProgressIndicator(&buf, 3)

	pi.Step("/scans/20251031_minutes.pdf")
	pi.Step("notes.pdf")

	output := buf.String()

	// Steps count up and display basenames only
	if !strings.Contains(output, "[1/3] 20251031_minutes.pdf") {
		t.Errorf("expected first step line, got %q", output)
	}
	if !strings.Contains(output, "[2/3] notes.pdf") {
		t.Errorf("expected second step line, got %q", output)
	}

	// Cyan ANSI wrapping per line
	if !strings.Contains(output, "\x1b[36m") {
		t.Error("expected cyan ANSI color code in output")
	}
	if !strings.Contains(output, "\x1b[0m") {
		t.Error("expected ANSI reset code in output")
	}
}

func TestProgressIndicator_Complete(t *testing.T) {
	var buf bytes.Buffer
	pi := NewProgressIndicator(&buf, 2)

	pi.Step("a.pdf")
	pi.Step("b.pdf")
	buf.Reset()

	pi.Complete()

	output := buf.String()
	if !strings.Contains(output, "✓") {
		t.Error("expected green checkmark in output")
	}
	if !strings.Contains(output, "Inspected 2 documents") {
		t.Errorf("expected completion message, got %q", output)
	}
	if !strings.Contains(output, "\x1b[32m") {
		t.Error("expected green ANSI color code in output")
	}
}

func TestDisplaySingleDocument(t *testing.T) {
	var buf bytes.Buffer

	DisplaySingleDocument(&buf, "/scans/input/report.pdf")

	if got := buf.String(); got != "Inspecting report.pdf...\n" {
		t.Errorf("DisplaySingleDocument() output = %q", got)
	}
}
