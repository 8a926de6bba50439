package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for pagemark
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pagemark",
		Short: "Batch page numbering for PDF documents",
		Long: `Pagemark stamps ascending page numbers onto every PDF in a folder
and writes the numbered copies next to the originals.

Each page receives two numbers at configurable positions (coords.env),
optionally framed by a box or a circle. Numbering either restarts for
every document or runs continuously across the whole batch.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	// Add subcommands
	cmd.AddCommand(NewRunCommand())
	cmd.AddCommand(NewInspectCommand())
	cmd.AddCommand(NewHistoryCommand())

	return cmd
}
