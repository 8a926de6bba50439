package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/kessler/pagemark/internal/config"
	"github.com/kessler/pagemark/internal/display"
	"github.com/kessler/pagemark/internal/executor"
	"github.com/kessler/pagemark/internal/filelock"
	"github.com/kessler/pagemark/internal/fileutil"
	"github.com/kessler/pagemark/internal/history"
	"github.com/kessler/pagemark/internal/logger"
	"github.com/kessler/pagemark/internal/models"
	"github.com/kessler/pagemark/internal/prompt"
	"github.com/kessler/pagemark/internal/sequence"
)

// NewRunCommand creates the run command
func NewRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [input-dir]",
		Short: "Number every PDF in a folder",
		Long: `Number the pages of every PDF in the input folder and write the
numbered copies to the output folder.

Each page receives two consecutive numbers at the positions configured
in coords.env. Numbering either restarts at the same number for every
document (reseed) or runs on across the whole batch (continuous).

Configuration is loaded from .pagemark/config.yaml if present.
CLI flags override configuration file settings. Without flags the
missing answers are asked interactively; when stdin is not a terminal
every question resolves to its default.

Examples:
  # Number everything in the configured input folder
  pagemark run --all

  # Number a specific folder, restarting at 100 for every document
  pagemark run ./scans --all --mode reseed --start 100

  # Continue the sequence from the previous run
  pagemark run --all --mode continuous

  # Pick the third file from the discovery listing
  pagemark run --select 3

  # Fully scripted, no prompts ever
  pagemark run --all --no-input

  # Other options
  pagemark run --coords other.env      # Alternate stamp layout
  pagemark run --output ./done         # Alternate output folder
  pagemark run --verbose               # Show per-page numbering decisions
  pagemark run --config custom.yaml    # Use custom config file`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCommand,
	}

	// Add flags
	cmd.Flags().String("config", "", "Path to config file (default: .pagemark/config.yaml)")
	cmd.Flags().Bool("all", false, "Number every discovered PDF without asking")
	cmd.Flags().Int("select", 0, "Number only the PDF at this position in the discovery listing (1-based)")
	cmd.Flags().String("mode", "", "Numbering mode: reseed or continuous")
	cmd.Flags().Int("start", 0, "First number to place (default 1)")
	cmd.Flags().Bool("no-input", false, "Never prompt; every question resolves to its default")
	cmd.Flags().String("coords", "", "Path to the coords.env layout file")
	cmd.Flags().String("output", "", "Directory for the numbered copies")
	cmd.Flags().String("log-dir", "", "Directory for log files")
	cmd.Flags().Bool("verbose", false, "Show per-page numbering decisions")

	return cmd
}

// runCommand implements the run command logic
func runCommand(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	home, err := config.ResolveHome()
	if err != nil {
		return fmt.Errorf("failed to resolve workspace root: %w", err)
	}

	// Load configuration from file
	configPath, _ := cmd.Flags().GetString("config")
	var cfg *config.Config

	if configPath != "" {
		// Load from explicit config path
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		// Load from default .pagemark/config.yaml
		cfg, err = config.LoadConfigFromDir(home)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}

	// Get flag values
	allFiles, _ := cmd.Flags().GetBool("all")
	selectIndex, _ := cmd.Flags().GetInt("select")
	modeFlag, _ := cmd.Flags().GetString("mode")
	startFlag, _ := cmd.Flags().GetInt("start")
	noInput, _ := cmd.Flags().GetBool("no-input")
	coordsFlag, _ := cmd.Flags().GetString("coords")
	outputFlag, _ := cmd.Flags().GetString("output")
	logDirFlag, _ := cmd.Flags().GetString("log-dir")
	verbose, _ := cmd.Flags().GetBool("verbose")

	// Validate conflicting flags
	if cmd.Flags().Changed("all") && cmd.Flags().Changed("select") {
		return fmt.Errorf("cannot use both --all and --select")
	}

	// Build flag pointers for merge (only non-default values)
	var inputDirPtr *string
	if len(args) == 1 {
		inputDirPtr = &args[0]
	}

	var outputPtr *string
	if cmd.Flags().Changed("output") {
		outputPtr = &outputFlag
	}

	var coordsPtr *string
	if cmd.Flags().Changed("coords") {
		coordsPtr = &coordsFlag
	}

	var logDirPtr *string
	if cmd.Flags().Changed("log-dir") {
		logDirPtr = &logDirFlag
	}

	// Merge CLI flags with config (flags take precedence)
	cfg.MergeWithFlags(inputDirPtr, outputPtr, coordsPtr, logDirPtr)

	// Validate merged configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Resolve relative paths against the workspace root
	cfg.Resolve(home)

	// Load the stamp layout
	layout, err := config.LoadLayout(cfg.CoordsFile)
	if err != nil {
		return fmt.Errorf("failed to load layout: %w", err)
	}

	// Discover input documents
	docs, err := fileutil.DiscoverPDFs(cfg.InputDir)
	if err != nil {
		return fmt.Errorf("failed to discover documents: %w", err)
	}

	// Display run configuration
	fmt.Fprintf(out, "Input: %s\n", cfg.InputDir)
	fmt.Fprintf(out, "Output: %s\n", cfg.OutputDir)
	fmt.Fprintf(out, "Layout: %s\n", layout.Summary())
	if configPath != "" {
		fmt.Fprintf(out, "Config: %s\n", configPath)
	}

	// Output of a previous run sitting in the input folder would be
	// numbered a second time
	if copies := display.NumberedCopies(docs, cfg.OutputSuffix); len(copies) > 0 {
		display.WarnNumberedCopies(copies).Display(out)
	}

	prompter := prompt.New(noInput)

	// Document selection: flags first, prompt otherwise
	var selected []models.Document
	switch {
	case allFiles:
		selected = docs
	case cmd.Flags().Changed("select"):
		if selectIndex < 1 || selectIndex > len(docs) {
			return fmt.Errorf("--select %d is out of range, found %d document(s)", selectIndex, len(docs))
		}
		selected = docs[selectIndex-1 : selectIndex]
	default:
		selected, err = prompter.SelectDocuments(docs)
		if err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "Selected %d of %d document(s).\n", len(selected), len(docs))

	// Warn about numbered copies this run will replace
	var clobbered []string
	for _, doc := range selected {
		outPath := filepath.Join(cfg.OutputDir, doc.OutputName(cfg.OutputSuffix))
		if _, statErr := os.Stat(outPath); statErr == nil {
			clobbered = append(clobbered, doc.OutputName(cfg.OutputSuffix))
		}
	}
	if len(clobbered) > 0 {
		display.WarnOverwrites(clobbered).Display(out)
	}

	// Numbering mode: flag, single-document shortcut, prompt
	var mode sequence.Mode
	switch {
	case cmd.Flags().Changed("mode"):
		mode, err = sequence.ParseMode(modeFlag)
		if err != nil {
			return fmt.Errorf("invalid mode %q: %w", modeFlag, err)
		}
	case len(selected) == 1:
		// A single document needs no mode, both behave the same
		mode = sequence.ModeReseed
	default:
		mode, err = prompter.SelectMode()
		if err != nil {
			return err
		}
	}

	// Open the run history store; the run proceeds without it on failure
	var store *history.Store
	if cfg.History.Enabled {
		store, err = history.NewStore(cfg.History.DBPath)
		if err != nil {
			fmt.Fprintf(cmd.OutOrStderr(), "Warning: run history disabled: %v\n", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	// Starting number: flag, else prompt with the stored continuation as
	// the default
	defaultStart := 1
	if store != nil && mode == sequence.ModeContinuous {
		if next, ok, histErr := store.LastNextNumber(cmd.Context()); histErr == nil && ok {
			defaultStart = next
			fmt.Fprintf(out, "The previous continuous run stopped before %d.\n", next)
		}
	}

	var start int
	if cmd.Flags().Changed("start") {
		if startFlag < 1 {
			return fmt.Errorf("--start must be a positive number, got %d", startFlag)
		}
		start = startFlag
	} else {
		start, err = prompter.StartNumber(defaultStart)
		if err != nil {
			return err
		}
	}

	// One run at a time per workspace
	lockDir := filepath.Join(home, ".pagemark")
	if err := config.EnsureDir(lockDir); err != nil {
		return fmt.Errorf("failed to create lock directory: %w", err)
	}
	lock := filelock.New(filepath.Join(lockDir, "run.lock"))
	held, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire run lock: %w", err)
	}
	if !held {
		return fmt.Errorf("another pagemark run is already active in this workspace (lock: %s)", lock.Path())
	}
	defer lock.Unlock()

	if err := config.EnsureDir(cfg.OutputDir); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	fmt.Fprintf(out, "\nStarting numbering...\n\n")

	// Determine log level: verbose flag overrides config
	logLevel := cfg.LogLevel
	if verbose {
		logLevel = "debug"
	}

	// Create console logger for real-time progress
	consoleLog := logger.NewConsoleLogger(out, logLevel)

	// Create file logger for the per-run log
	fileLog, err := logger.NewFileLoggerWithDirAndLevel(cfg.LogDir, logLevel)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	defer fileLog.Close()

	// Create multi-logger that writes to both console and file
	multiLog := &multiLogger{
		loggers: []executor.Logger{consoleLog, fileLog},
	}

	// Create the numbering engine and the batch runner
	engine := executor.NewPDFEngine(cfg.OutputDir, cfg.OutputSuffix, layout, multiLog)
	runner := executor.NewRunner(engine, multiLog)

	// Number the batch
	summary, runErr := runner.Run(cmd.Context(), selected, mode, start)

	// Record the run even when it was interrupted partway
	if store != nil && summary != nil {
		if histErr := recordRun(store, summary, mode, start, cfg); histErr != nil {
			fmt.Fprintf(cmd.OutOrStderr(), "Warning: failed to record run history: %v\n", histErr)
		}
	}

	if summary != nil {
		fmt.Fprintf(out, "\nLog written to: %s\n", fileLog.RunFile())
	}

	// Check for errors
	if runErr != nil {
		return fmt.Errorf("run interrupted: %w", runErr)
	}

	// Display completion message
	if summary.Failed > 0 {
		fmt.Fprintf(out, "\nNumbering completed with %d failed document(s).\n", summary.Failed)
		return fmt.Errorf("%d document(s) failed", summary.Failed)
	}

	fmt.Fprintf(out, "\nNumbering completed successfully!\n")
	return nil
}

// recordRun maps a finished batch onto history rows. The write happens on a
// fresh context so an interrupt that cancelled the run cannot also cancel
// the bookkeeping.
func recordRun(store *history.Store, summary *models.Summary, mode sequence.Mode, start int, cfg *config.Config) error {
	now := time.Now()
	run := &history.Run{
		StartedAt:   now.Add(-summary.Duration),
		FinishedAt:  now,
		Mode:        mode.String(),
		StartNumber: start,
		NextNumber:  summary.NextNumber,
		Documents:   summary.TotalDocuments,
		Succeeded:   summary.Succeeded,
		Failed:      summary.Failed,
		DurationMs:  summary.Duration.Milliseconds(),
		InputDir:    cfg.InputDir,
		OutputDir:   cfg.OutputDir,
	}

	docs := make([]history.RunDocument, 0, len(summary.Results))
	for _, result := range summary.Results {
		row := history.RunDocument{
			Name:       result.Document.Name,
			OutputPath: result.OutputPath,
			Pages:      result.Pages,
			FirstLabel: result.FirstLabel,
			LastLabel:  result.LastLabel,
			Status:     result.Status,
		}
		if result.Err != nil {
			row.Error = result.Err.Error()
		}
		docs = append(docs, row)
	}

	return store.RecordRun(context.Background(), run, docs)
}

// multiLogger implements executor.Logger by delegating to multiple loggers
type multiLogger struct {
	loggers []executor.Logger
}

// LogRunStart forwards to all loggers
func (ml *multiLogger) LogRunStart(mode string, start, documents int) {
	for _, logger := range ml.loggers {
		logger.LogRunStart(mode, start, documents)
	}
}

// LogDocumentStart forwards to all loggers
func (ml *multiLogger) LogDocumentStart(doc models.Document, index, total int) {
	for _, logger := range ml.loggers {
		logger.LogDocumentStart(doc, index, total)
	}
}

// LogPageNumbers forwards to all loggers
func (ml *multiLogger) LogPageNumbers(doc models.Document, page, first, second int) {
	for _, logger := range ml.loggers {
		logger.LogPageNumbers(doc, page, first, second)
	}
}

// LogDocumentComplete forwards to all loggers
func (ml *multiLogger) LogDocumentComplete(result models.DocumentResult) {
	for _, logger := range ml.loggers {
		logger.LogDocumentComplete(result)
	}
}

// LogDocumentFail forwards to all loggers
func (ml *multiLogger) LogDocumentFail(result models.DocumentResult) {
	for _, logger := range ml.loggers {
		logger.LogDocumentFail(result)
	}
}

// LogProgress forwards to all loggers
func (ml *multiLogger) LogProgress(results []models.DocumentResult, total int) {
	for _, logger := range ml.loggers {
		logger.LogProgress(results, total)
	}
}

// LogSummary forwards to all loggers
func (ml *multiLogger) LogSummary(summary models.Summary) {
	for _, logger := range ml.loggers {
		logger.LogSummary(summary)
	}
}
