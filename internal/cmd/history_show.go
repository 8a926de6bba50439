package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kessler/pagemark/internal/history"
	"github.com/kessler/pagemark/internal/models"
)

// NewHistoryShowCommand creates the 'pagemark history show' command
func NewHistoryShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show recent numbering runs",
		Long: `Display the most recent numbering runs including:
  - When each run happened and how long it took
  - Numbering mode and the number range consumed
  - Documents numbered and failed
  - Per-document outcomes with --documents`,
		Args: cobra.NoArgs,
		RunE: runHistoryShow,
	}

	cmd.Flags().Int("limit", 10, "Maximum number of runs to show")
	cmd.Flags().Bool("documents", false, "List the per-document outcomes of each run")

	return cmd
}

// runHistoryShow executes the show command
func runHistoryShow(cmd *cobra.Command, args []string) error {
	output := cmd.OutOrStdout()
	limit, _ := cmd.Flags().GetInt("limit")
	withDocs, _ := cmd.Flags().GetBool("documents")

	dbPath, err := historyDBPath("")
	if err != nil {
		return err
	}

	// Check if database exists
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Fprintf(output, "No run history found.\n")
		return nil
	}

	// Open history store
	store, err := history.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	defer store.Close()

	ctx := context.Background()
	runs, err := store.Recent(ctx, limit)
	if err != nil {
		return fmt.Errorf("query runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Fprintf(output, "No runs recorded yet.\n")
		return nil
	}

	var docsByRun map[string][]*history.RunDocument
	if withDocs {
		docsByRun = make(map[string][]*history.RunDocument, len(runs))
		for _, run := range runs {
			docs, err := store.Documents(ctx, run.ID)
			if err != nil {
				return fmt.Errorf("query run documents: %w", err)
			}
			docsByRun[run.ID] = docs
		}
	}

	printRuns(output, runs, docsByRun)

	return nil
}

// printRuns formats and prints the recorded runs, most recent first
func printRuns(w io.Writer, runs []*history.Run, docsByRun map[string][]*history.RunDocument) {
	// Colors
	cyan := color.New(color.FgCyan, color.Bold)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	gray := color.New(color.FgHiBlack)

	// Header
	cyan.Fprintf(w, "\n=== Recent Numbering Runs ===\n\n")

	for i, run := range runs {
		// Run number (reverse order since we show most recent first)
		runNum := len(runs) - i
		cyan.Fprintf(w, "Run #%d\n", runNum)

		// Timestamp
		fmt.Fprintf(w, "  Time: %s ", formatTimestamp(run.StartedAt))
		gray.Fprintf(w, "(%s ago)\n", formatAge(time.Since(run.StartedAt)))

		// Counter movement
		fmt.Fprintf(w, "  Mode: %s\n", run.Mode)
		fmt.Fprintf(w, "  Numbers: started at %d, next is %d\n", run.StartNumber, run.NextNumber)

		// Outcome
		fmt.Fprintf(w, "  Documents: ")
		green.Fprintf(w, "%d numbered", run.Succeeded)
		if run.Failed > 0 {
			fmt.Fprintf(w, ", ")
			red.Fprintf(w, "%d failed", run.Failed)
		}
		fmt.Fprintf(w, " of %d\n", run.Documents)

		fmt.Fprintf(w, "  Duration: %s\n", time.Duration(run.DurationMs)*time.Millisecond)
		fmt.Fprintf(w, "  Input: %s\n", run.InputDir)

		// Per-document rows
		for _, doc := range docsByRun[run.ID] {
			fmt.Fprintf(w, "    - %s: ", doc.Name)
			switch doc.Status {
			case models.StatusNumbered:
				green.Fprintf(w, "%s", doc.Status)
				fmt.Fprintf(w, " (numbers %d-%d)", doc.FirstLabel, doc.LastLabel)
			case models.StatusFailed:
				red.Fprintf(w, "%s", doc.Status)
				if doc.Error != "" {
					fmt.Fprintf(w, ": %s", doc.Error)
				}
			default:
				gray.Fprintf(w, "%s", doc.Status)
			}
			fmt.Fprintln(w)
		}

		// Separator between runs
		if i < len(runs)-1 {
			fmt.Fprintln(w)
		}
	}

	fmt.Fprintln(w)
}

// formatTimestamp formats a timestamp for display
func formatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

// formatAge formats the time since an event for human-readable display
func formatAge(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%.0fm", d.Minutes())
	}
	if d < 24*time.Hour {
		return fmt.Sprintf("%.1fh", d.Hours())
	}
	days := int(d.Hours() / 24)
	return fmt.Sprintf("%dd", days)
}
