package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kessler/pagemark/internal/history"
)

// NewHistoryStatsCommand creates the 'pagemark history stats' command
func NewHistoryStatsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate run statistics",
		Long: `Display aggregate statistics over every recorded run including:
  - Total runs and documents processed
  - Pages numbered
  - Success rate
  - Time of the last run`,
		Args: cobra.NoArgs,
		RunE: runHistoryStats,
	}

	return cmd
}

// runHistoryStats executes the stats command
func runHistoryStats(cmd *cobra.Command, args []string) error {
	output := cmd.OutOrStdout()

	dbPath, err := historyDBPath("")
	if err != nil {
		return err
	}

	// Check if database exists
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Fprintf(output, "No run history found.\n")
		fmt.Fprintf(output, "Database path: %s\n", dbPath)
		return nil
	}

	// Open history store
	store, err := history.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	defer store.Close()

	stats, err := store.GetStats(context.Background())
	if err != nil {
		return fmt.Errorf("get statistics: %w", err)
	}

	if stats.Runs == 0 {
		fmt.Fprintf(output, "No runs recorded yet.\n")
		return nil
	}

	printHistoryStats(output, stats)

	return nil
}

// printHistoryStats formats and prints the aggregate statistics
func printHistoryStats(w io.Writer, stats *history.Stats) {
	// Colors
	cyan := color.New(color.FgCyan, color.Bold)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)

	// Header
	cyan.Fprintf(w, "\n=== Run History Statistics ===\n\n")

	fmt.Fprintf(w, "Runs: %d\n", stats.Runs)
	fmt.Fprintf(w, "Documents: %d\n", stats.Documents)
	fmt.Fprintf(w, "Numbered: ")
	green.Fprintf(w, "%d\n", stats.Succeeded)
	fmt.Fprintf(w, "Failed: ")
	red.Fprintf(w, "%d\n", stats.Failed)

	if stats.Documents > 0 {
		rate := float64(stats.Succeeded) / float64(stats.Documents) * 100
		fmt.Fprintf(w, "Success rate: ")
		if rate >= 70 {
			green.Fprintf(w, "%.1f%%", rate)
		} else if rate >= 40 {
			yellow.Fprintf(w, "%.1f%%", rate)
		} else {
			red.Fprintf(w, "%.1f%%", rate)
		}
		fmt.Fprintf(w, " (%d/%d)\n", stats.Succeeded, stats.Documents)
	}

	fmt.Fprintf(w, "Pages numbered: %d\n", stats.PagesNumbered)

	if !stats.LastRun.IsZero() {
		fmt.Fprintf(w, "Last run: %s\n", formatTimestamp(stats.LastRun))
	}

	fmt.Fprintf(w, "\n")
}
