package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kessler/pagemark/internal/config"
)

// NewHistoryCommand creates the 'pagemark history' parent command
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Run history commands",
		Long: `Commands for viewing and managing the run history.

Every numbering run is recorded in a SQLite database under the
workspace root, including the number range each document consumed.
Continuous runs use it to suggest where the next run should start.`,
	}

	// Add subcommands
	cmd.AddCommand(NewHistoryShowCommand())
	cmd.AddCommand(NewHistoryStatsCommand())
	cmd.AddCommand(newHistoryClearCommand())

	return cmd
}

// historyDBPath resolves the run history database the same way the run
// command does: from config, resolved against the workspace root. An
// override skips the lookup entirely.
func historyDBPath(override string) (string, error) {
	if override != "" {
		return override, nil
	}

	home, err := config.ResolveHome()
	if err != nil {
		return "", fmt.Errorf("failed to resolve workspace root: %w", err)
	}

	cfg, err := config.LoadConfigFromDir(home)
	if err != nil {
		return "", fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Resolve(home)

	return cfg.History.DBPath, nil
}
