package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kessler/pagemark/internal/config"
	"github.com/kessler/pagemark/internal/display"
	"github.com/kessler/pagemark/internal/fileutil"
	"github.com/kessler/pagemark/internal/sequence"
	"github.com/kessler/pagemark/internal/stamp"
)

// NewInspectCommand creates and returns the inspect subcommand
func NewInspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [input-dir]",
		Short: "Preview a numbering run without writing anything",
		Long: `Inspect the input folder and show what a run would do:
  - The documents in processing order
  - Page count per document
  - The number range each document would consume
  - The numbered copy each document would produce

Nothing is written. Use --mode and --start to preview the counter
behavior of the corresponding run.

Exit code: 0 if every document is readable, 1 otherwise`,
		Args:         cobra.MaximumNArgs(1),
		RunE:         inspectCommand,
		SilenceUsage: true,
	}

	cmd.Flags().String("config", "", "Path to config file (default: .pagemark/config.yaml)")
	cmd.Flags().String("coords", "", "Path to the coords.env layout file")
	cmd.Flags().String("mode", "reseed", "Numbering mode to preview: reseed or continuous")
	cmd.Flags().Int("start", 1, "First number to preview")

	return cmd
}

// inspectCommand implements the inspect command logic
func inspectCommand(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	home, err := config.ResolveHome()
	if err != nil {
		return fmt.Errorf("failed to resolve workspace root: %w", err)
	}

	configPath, _ := cmd.Flags().GetString("config")
	var cfg *config.Config

	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		cfg, err = config.LoadConfigFromDir(home)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}

	modeFlag, _ := cmd.Flags().GetString("mode")
	startFlag, _ := cmd.Flags().GetInt("start")
	coordsFlag, _ := cmd.Flags().GetString("coords")

	mode, err := sequence.ParseMode(modeFlag)
	if err != nil {
		return fmt.Errorf("invalid mode %q: %w", modeFlag, err)
	}
	if startFlag < 1 {
		return fmt.Errorf("--start must be a positive number, got %d", startFlag)
	}

	var inputDirPtr *string
	if len(args) == 1 {
		inputDirPtr = &args[0]
	}
	var coordsPtr *string
	if cmd.Flags().Changed("coords") {
		coordsPtr = &coordsFlag
	}
	cfg.MergeWithFlags(inputDirPtr, nil, coordsPtr, nil)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	cfg.Resolve(home)

	// The same preconditions a run would check
	layout, err := config.LoadLayout(cfg.CoordsFile)
	if err != nil {
		return fmt.Errorf("failed to load layout: %w", err)
	}
	fmt.Fprintf(out, "✓ Layout: %s\n", layout.Summary())

	docs, err := fileutil.DiscoverPDFs(cfg.InputDir)
	if err != nil {
		return fmt.Errorf("failed to discover documents: %w", err)
	}
	fmt.Fprintf(out, "✓ Found %d PDF(s) in %s\n", len(docs), cfg.InputDir)

	if copies := display.NumberedCopies(docs, cfg.OutputSuffix); len(copies) > 0 {
		display.WarnNumberedCopies(copies).Display(out)
	}

	// Read page counts; an unreadable document is reported but does not
	// stop the inspection
	var problems []string
	counts := make([]int, len(docs))

	var progress *display.ProgressIndicator
	if len(docs) == 1 {
		display.DisplaySingleDocument(out, docs[0].Name)
	} else {
		progress = display.NewProgressIndicator(out, len(docs))
		progress.Start()
	}

	for i, doc := range docs {
		if progress != nil {
			progress.Step(doc.Name)
		}
		pages, err := stamp.PageCount(doc.Path)
		if err != nil {
			counts[i] = -1
			msg := fmt.Sprintf("%s: %v", doc.Name, err)
			problems = append(problems, msg)
			fmt.Fprintf(out, "✗ %s\n", msg)
			continue
		}
		counts[i] = pages
	}

	if progress != nil {
		progress.Complete()
	}

	// Preview the counter the same way the runner drives it: a failed
	// document never advances the carried sequence
	fmt.Fprintf(out, "\nNumbering plan (mode: %s, first number: %d):\n", mode, startFlag)

	next := startFlag
	totalPages := 0
	for i, doc := range docs {
		if counts[i] < 0 {
			fmt.Fprintf(out, "  %2d) %s: unreadable\n", i+1, doc.Name)
			continue
		}

		docStart := startFlag
		if mode == sequence.ModeContinuous {
			docStart = next
		}
		first, last := sequence.Range(docStart, counts[i])

		outName := doc.OutputName(cfg.OutputSuffix)
		marker := ""
		if _, statErr := os.Stat(filepath.Join(cfg.OutputDir, outName)); statErr == nil {
			marker = " (overwrites existing copy)"
		}

		pageLabel := "pages"
		if counts[i] == 1 {
			pageLabel = "page"
		}
		fmt.Fprintf(out, "  %2d) %s: %d %s, numbers %d-%d -> %s%s\n",
			i+1, doc.Name, counts[i], pageLabel, first, last, outName, marker)

		if mode == sequence.ModeContinuous {
			next = last + 1
		}
		totalPages += counts[i]
	}

	if len(problems) == 0 {
		fmt.Fprintf(out, "\n✓ Ready to number %d document(s), %d page(s) in total.\n", len(docs), totalPages)
		return nil
	}

	// Report all problems
	fmt.Fprintf(out, "\n✗ Inspection failed\n")
	for _, msg := range problems {
		fmt.Fprintf(out, "  ✗ %s\n", msg)
	}
	fmt.Fprintf(out, "\nFound %d problem(s)!\n", len(problems))

	return fmt.Errorf("inspection failed with %d problem(s)", len(problems))
}
