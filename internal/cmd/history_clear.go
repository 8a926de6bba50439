package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kessler/pagemark/internal/history"
)

// newHistoryClearCommand creates the 'pagemark history clear' command
func newHistoryClearCommand() *cobra.Command {
	var force bool
	var dbPath string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded runs",
		Long: `Delete every recorded run and its per-document rows.

The next continuous run falls back to start number 1 afterwards.

Examples:
  # Clear the history (requires confirmation)
  pagemark history clear

  # Clear without asking
  pagemark history clear --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryClear(cmd, force, dbPath)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip the confirmation prompt")
	cmd.Flags().StringVar(&dbPath, "db-path", "", "Path to history database (for testing)")

	return cmd
}

// runHistoryClear executes the clear command
func runHistoryClear(cmd *cobra.Command, force bool, dbPathOverride string) error {
	output := cmd.OutOrStdout()

	dbPath, err := historyDBPath(dbPathOverride)
	if err != nil {
		return err
	}

	if !force {
		fmt.Fprintf(output, "WARNING: This will delete ALL recorded runs from the history database.\n")
		if !confirmAction(output) {
			fmt.Fprintf(output, "Operation cancelled.\n")
			return nil
		}
	}

	// Check if database exists
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Fprintf(output, "No history database found at: %s\n", dbPath)
		return nil
	}

	// Open history store
	store, err := history.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	defer store.Close()

	deletedCount, err := store.Clear(context.Background())
	if err != nil {
		return fmt.Errorf("delete records: %w", err)
	}

	// Report results
	recordText := "record"
	if deletedCount != 1 {
		recordText = "records"
	}
	fmt.Fprintf(output, "Deleted %d %s.\n", deletedCount, recordText)

	return nil
}

// confirmAction prompts the user for confirmation
func confirmAction(output io.Writer) bool {
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Fprintf(output, "Continue? [y/N]: ")

	if !scanner.Scan() {
		return false
	}

	response := strings.TrimSpace(strings.ToLower(scanner.Text()))
	return response == "y" || response == "yes"
}
