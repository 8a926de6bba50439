package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/kessler/pagemark/internal/history"
	"github.com/kessler/pagemark/internal/models"
)

// Helper function to execute a history subcommand with args
func executeHistoryCommand(t *testing.T, args []string) (string, error) {
	t.Helper()

	rootCmd := &cobra.Command{Use: "pagemark"}
	rootCmd.AddCommand(NewHistoryCommand())

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return buf.String(), err
}

// seedHistory records one finished run in the workspace database.
func seedHistory(t *testing.T, home string) {
	t.Helper()

	dbPath := filepath.Join(home, ".pagemark", "history", "runs.db")
	store, err := history.NewStore(dbPath)
	if err != nil {
		t.Fatalf("Failed to open history store: %v", err)
	}
	defer store.Close()

	run := &history.Run{
		StartedAt:   time.Now().Add(-time.Minute),
		FinishedAt:  time.Now(),
		Mode:        "continuous",
		StartNumber: 1,
		NextNumber:  7,
		Documents:   3,
		Succeeded:   2,
		Failed:      1,
		DurationMs:  1200,
		InputDir:    filepath.Join(home, "input"),
		OutputDir:   filepath.Join(home, "output"),
	}
	docs := []history.RunDocument{
		{Name: "a.pdf", OutputPath: "a_numbered.pdf", Pages: 2, FirstLabel: 1, LastLabel: 4, Status: models.StatusNumbered},
		{Name: "b.pdf", Status: models.StatusFailed, Error: "failed to read page dimensions"},
		{Name: "c.pdf", OutputPath: "c_numbered.pdf", Pages: 1, FirstLabel: 5, LastLabel: 6, Status: models.StatusNumbered},
	}
	if err := store.RecordRun(context.Background(), run, docs); err != nil {
		t.Fatalf("Failed to record run: %v", err)
	}
}

func newHistoryHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("PAGEMARK_HOME", home)
	return home
}

func TestHistoryCommands_NoDatabase(t *testing.T) {
	newHistoryHome(t)

	tests := []struct {
		name        string
		args        []string
		wantContain string
	}{
		{
			name:        "show without database",
			args:        []string{"history", "show"},
			wantContain: "No run history found.",
		},
		{
			name:        "stats without database",
			args:        []string{"history", "stats"},
			wantContain: "No run history found.",
		},
		{
			name:        "clear without database",
			args:        []string{"history", "clear", "--force"},
			wantContain: "No history database found at:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := executeHistoryCommand(t, tt.args)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !strings.Contains(output, tt.wantContain) {
				t.Errorf("Expected output containing %q, got: %s", tt.wantContain, output)
			}
		})
	}
}

func TestHistoryShow(t *testing.T) {
	home := newHistoryHome(t)
	seedHistory(t, home)

	output, err := executeHistoryCommand(t, []string{"history", "show"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !strings.Contains(output, "=== Recent Numbering Runs ===") {
		t.Errorf("Expected header, got: %s", output)
	}
	if !strings.Contains(output, "Mode: continuous") {
		t.Errorf("Expected mode line, got: %s", output)
	}
	if !strings.Contains(output, "Numbers: started at 1, next is 7") {
		t.Errorf("Expected counter line, got: %s", output)
	}
	if !strings.Contains(output, "2 numbered") || !strings.Contains(output, "1 failed") {
		t.Errorf("Expected outcome counts, got: %s", output)
	}

	// Per-document rows only appear with --documents
	if strings.Contains(output, "a.pdf") {
		t.Errorf("Expected no per-document rows without --documents, got: %s", output)
	}
}

func TestHistoryShowWithDocuments(t *testing.T) {
	home := newHistoryHome(t)
	seedHistory(t, home)

	output, err := executeHistoryCommand(t, []string{"history", "show", "--documents"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !strings.Contains(output, "a.pdf: NUMBERED (numbers 1-4)") {
		t.Errorf("Expected numbered document row, got: %s", output)
	}
	if !strings.Contains(output, "b.pdf: FAILED: failed to read page dimensions") {
		t.Errorf("Expected failed document row, got: %s", output)
	}
}

func TestHistoryShowLimit(t *testing.T) {
	home := newHistoryHome(t)
	seedHistory(t, home)
	seedHistory(t, home)
	seedHistory(t, home)

	output, err := executeHistoryCommand(t, []string{"history", "show", "--limit", "2"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if strings.Count(output, "Run #") != 2 {
		t.Errorf("Expected exactly 2 runs with --limit 2, got: %s", output)
	}
}

func TestHistoryStats(t *testing.T) {
	home := newHistoryHome(t)
	seedHistory(t, home)

	output, err := executeHistoryCommand(t, []string{"history", "stats"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !strings.Contains(output, "=== Run History Statistics ===") {
		t.Errorf("Expected header, got: %s", output)
	}
	if !strings.Contains(output, "Runs: 1") {
		t.Errorf("Expected run count, got: %s", output)
	}
	if !strings.Contains(output, "Documents: 3") {
		t.Errorf("Expected document count, got: %s", output)
	}
	if !strings.Contains(output, "Pages numbered: 3") {
		t.Errorf("Expected page count, got: %s", output)
	}
	if !strings.Contains(output, "Success rate:") {
		t.Errorf("Expected success rate, got: %s", output)
	}
}

func TestHistoryClearForce(t *testing.T) {
	home := newHistoryHome(t)
	seedHistory(t, home)

	output, err := executeHistoryCommand(t, []string{"history", "clear", "--force"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(output, "Deleted 1 record.") {
		t.Errorf("Expected deletion report, got: %s", output)
	}

	output, err = executeHistoryCommand(t, []string{"history", "show"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(output, "No runs recorded yet.") {
		t.Errorf("Expected empty history after clear, got: %s", output)
	}
}

func TestHistoryClearRequiresConfirmation(t *testing.T) {
	home := newHistoryHome(t)
	seedHistory(t, home)

	// Test stdin is not a terminal, the confirmation reads EOF and aborts
	output, err := executeHistoryCommand(t, []string{"history", "clear"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(output, "Operation cancelled.") {
		t.Errorf("Expected cancellation, got: %s", output)
	}

	// The recorded run survives
	output, err = executeHistoryCommand(t, []string{"history", "show"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(output, "Numbers: started at 1, next is 7") {
		t.Errorf("Expected run to survive a cancelled clear, got: %s", output)
	}
}
