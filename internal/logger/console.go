// Package logger provides logging implementations for pagemark runs.
//
// The logger package offers structured logging of numbering progress at the
// document and summary levels. Implementations are thread-safe and support
// various output destinations (console, file, etc.).
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/kessler/pagemark/internal/models"
)

// Log level constants for filtering
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// ConsoleLogger logs numbering progress to a writer with timestamps and thread safety.
// All output is prefixed with [HH:MM:SS] timestamps for tracking run flow.
// It supports log level filtering to control message verbosity.
// Color output is automatically enabled for terminal output (os.Stdout/os.Stderr).
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided io.Writer.
// If writer is nil, messages are silently discarded.
// logLevel determines the minimum log level for messages to be output.
// Valid levels: trace, debug, info, warn, error (case-insensitive).
// If logLevel is empty or invalid, defaults to "info".
// Color output is automatically enabled when writing to os.Stdout or os.Stderr with TTY support.
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	// Normalize and validate log level
	normalizedLevel := normalizeLogLevel(logLevel)

	// Detect if we should use color output
	useColor := isTerminal(writer)

	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizedLevel,
		mutex:       sync.Mutex{},
		colorOutput: useColor,
	}
}

// isTerminal checks if the writer is a terminal that supports colors.
// Returns true for os.Stdout and os.Stderr when they are TTYs.
func isTerminal(w io.Writer) bool {
	if w == nil {
		return false
	}

	// Check if writer is os.Stdout or os.Stderr
	if w == os.Stdout || w == os.Stderr {
		// Use color library's built-in TTY detection
		// This will return false if NO_COLOR env var is set
		return !color.NoColor
	}

	return false
}

// normalizeLogLevel converts a log level string to lowercase and validates it.
// Returns "info" as default for empty or invalid levels.
func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if validLevels[normalized] {
		return normalized
	}

	return "info" // Default level
}

// shouldLog checks if a message at the given level should be logged.
// Returns true if messageLevel >= configured logLevel.
func (cl *ConsoleLogger) shouldLog(messageLevel string) bool {
	configuredLevel := logLevelToInt(cl.logLevel)
	msgLevel := logLevelToInt(messageLevel)
	return msgLevel >= configuredLevel
}

// logLevelToInt converts a log level string to its numeric value.
func logLevelToInt(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "info":
		return levelInfo
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo // Default to info if unknown
	}
}

// LogTrace logs a trace-level message (most verbose).
// Format: "[HH:MM:SS] [TRACE] <message>"
func (cl *ConsoleLogger) LogTrace(message string) {
	cl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
// Format: "[HH:MM:SS] [DEBUG] <message>"
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
// Format: "[HH:MM:SS] [INFO] <message>"
func (cl *ConsoleLogger) LogInfo(message string) {
	cl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
// Format: "[HH:MM:SS] [WARN] <message>"
func (cl *ConsoleLogger) LogWarn(message string) {
	cl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
// Format: "[HH:MM:SS] [ERROR] <message>"
func (cl *ConsoleLogger) LogError(message string) {
	cl.logWithLevel("ERROR", message)
}

// logWithLevel is a helper that logs a message at the specified level if filtering allows it.
func (cl *ConsoleLogger) logWithLevel(level string, message string) {
	if cl.writer == nil {
		return
	}

	// Check if this level should be logged
	if !cl.shouldLog(strings.ToLower(level)) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	var formatted string

	if cl.colorOutput {
		// Format with colors
		formatted = cl.formatWithColor(ts, level, message)
	} else {
		// Plain text format
		formatted = fmt.Sprintf("[%s] [%s] %s\n", ts, level, message)
	}

	cl.writer.Write([]byte(formatted))
}

// formatWithColor formats a log message with ANSI color codes.
func (cl *ConsoleLogger) formatWithColor(ts, level, message string) string {
	var coloredLevel string

	switch strings.ToUpper(level) {
	case "TRACE":
		coloredLevel = color.New(color.FgHiBlack).Sprint(level)
	case "DEBUG":
		coloredLevel = color.New(color.FgCyan).Sprint(level)
	case "INFO":
		coloredLevel = color.New(color.FgBlue).Sprint(level)
	case "WARN":
		coloredLevel = color.New(color.FgYellow).Sprint(level)
	case "ERROR":
		coloredLevel = color.New(color.FgRed).Sprint(level)
	default:
		coloredLevel = level
	}

	return fmt.Sprintf("[%s] [%s] %s\n", ts, coloredLevel, message)
}

// LogRunStart logs the start of a numbering run at INFO level.
// Format: "[HH:MM:SS] Starting numbering run: <n> documents (mode: <mode>, first number: <start>)"
func (cl *ConsoleLogger) LogRunStart(mode string, start, documents int) {
	if cl.writer == nil {
		return
	}

	// Run logging is at INFO level
	if !cl.shouldLog("info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	docLabel := "documents"
	if documents == 1 {
		docLabel = "document"
	}

	var message string
	if cl.colorOutput {
		// Bold/bright for run headers
		title := color.New(color.Bold).Sprint("numbering run")
		message = fmt.Sprintf("[%s] Starting %s: %d %s (mode: %s, first number: %d)\n", ts, title, documents, docLabel, mode, start)
	} else {
		message = fmt.Sprintf("[%s] Starting numbering run: %d %s (mode: %s, first number: %d)\n", ts, documents, docLabel, mode, start)
	}

	cl.writer.Write([]byte(message))
}

// LogDocumentStart logs the start of a single document at INFO level.
// Format: "[HH:MM:SS] [i/N] Numbering <name>"
func (cl *ConsoleLogger) LogDocumentStart(doc models.Document, index, total int) {
	if cl.writer == nil {
		return
	}

	// Document logging is at INFO level
	if !cl.shouldLog("info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()

	var message string
	if cl.colorOutput {
		name := color.New(color.Bold).Sprint(doc.Name)
		message = fmt.Sprintf("[%s] [%d/%d] Numbering %s\n", ts, index, total, name)
	} else {
		message = fmt.Sprintf("[%s] [%d/%d] Numbering %s\n", ts, index, total, doc.Name)
	}

	cl.writer.Write([]byte(message))
}

// LogPageNumbers logs the pair of numbers placed on one page at DEBUG level.
// Format: "[HH:MM:SS] <name> page <p>: <first>, <second>"
func (cl *ConsoleLogger) LogPageNumbers(doc models.Document, page, first, second int) {
	if cl.writer == nil {
		return
	}

	// Per-page decisions are at DEBUG level
	if !cl.shouldLog("debug") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	message := fmt.Sprintf("[%s] %s page %d: %d, %d\n", timestamp(), doc.Name, page, first, second)
	cl.writer.Write([]byte(message))
}

// LogDocumentComplete logs a written numbered copy at INFO level.
// Format: "[HH:MM:SS] <name>: NUMBERED (<n> pages, numbers <first>-<last>, <duration>)"
func (cl *ConsoleLogger) LogDocumentComplete(result models.DocumentResult) {
	if cl.writer == nil {
		return
	}

	// Completion logging is at INFO level
	if !cl.shouldLog("info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	pageLabel := "pages"
	if result.Pages == 1 {
		pageLabel = "page"
	}
	detail := fmt.Sprintf("%d %s, numbers %d-%d, %s", result.Pages, pageLabel, result.FirstLabel, result.LastLabel, formatDuration(result.Duration))

	var message string
	if cl.colorOutput {
		// Green for a written copy
		statusText := color.New(color.FgGreen).Sprint(result.Status)
		message = fmt.Sprintf("[%s] %s: %s (%s)\n", ts, result.Document.Name, statusText, detail)
	} else {
		message = fmt.Sprintf("[%s] %s: %s (%s)\n", ts, result.Document.Name, result.Status, detail)
	}

	cl.writer.Write([]byte(message))
}

// LogDocumentFail logs a failed document at ERROR level so it is never filtered out.
// Format: "[HH:MM:SS] <name>: FAILED: <error>"
func (cl *ConsoleLogger) LogDocumentFail(result models.DocumentResult) {
	if cl.writer == nil {
		return
	}

	if !cl.shouldLog("error") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()

	var message string
	if cl.colorOutput {
		statusText := color.New(color.FgRed).Sprint(result.Status)
		message = fmt.Sprintf("[%s] %s: %s: %v\n", ts, result.Document.Name, statusText, result.Err)
	} else {
		message = fmt.Sprintf("[%s] %s: %s: %v\n", ts, result.Document.Name, result.Status, result.Err)
	}

	cl.writer.Write([]byte(message))
}

// LogProgress logs real-time batch progress with percentage, counts, and average duration.
// Format: "[HH:MM:SS] Progress: [====      ] 2/5 (40%) - Avg: 1s/document"
// Handles edge cases: zero documents, all completed, no duration data.
func (cl *ConsoleLogger) LogProgress(results []models.DocumentResult, total int) {
	if cl.writer == nil {
		return
	}

	// Progress logging is at INFO level
	if !cl.shouldLog("info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()

	// Skipped documents never ran, so they carry no duration
	attempted := 0
	failed := 0
	totalDuration := time.Duration(0)
	for _, result := range results {
		if result.Status == models.StatusSkipped {
			continue
		}
		if result.Status == models.StatusFailed {
			failed++
		}
		attempted++
		totalDuration += result.Duration
	}

	// Render progress bar over processed documents
	pb := NewProgressBar(len(results), failed, total, 10, cl.colorOutput)
	pbRender := pb.Render()

	// Calculate average duration per document
	var avgDurationStr string
	if attempted > 0 {
		avgDuration := totalDuration / time.Duration(attempted)
		avgDurationStr = fmt.Sprintf(" - Avg: %s/document", formatDuration(avgDuration))
	}

	output := fmt.Sprintf("[%s] Progress: %s%s\n", ts, pbRender, avgDurationStr)

	cl.writer.Write([]byte(output))
}

// LogSummary logs the run summary with completion statistics at INFO level.
// Format: "[HH:MM:SS] === Numbering Summary ===\n[HH:MM:SS] Total documents: <n>\n..."
func (cl *ConsoleLogger) LogSummary(summary models.Summary) {
	if cl.writer == nil {
		return
	}

	// Summary logging is at INFO level
	if !cl.shouldLog("info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	durationStr := formatDuration(summary.Duration)

	var output string

	if cl.colorOutput {
		// Colorized summary
		header := color.New(color.Bold).Sprint("=== Numbering Summary ===")
		output = fmt.Sprintf("[%s] %s\n", ts, header)
		output += fmt.Sprintf("[%s] Total documents: %d\n", ts, summary.TotalDocuments)

		// Green for numbered documents
		numberedText := color.New(color.FgGreen).Sprintf("Numbered: %d", summary.Succeeded)
		output += fmt.Sprintf("[%s] %s\n", ts, numberedText)

		// Red for failed documents if any, otherwise show in default color
		if summary.Failed > 0 {
			failedText := color.New(color.FgRed).Sprintf("Failed: %d", summary.Failed)
			output += fmt.Sprintf("[%s] %s\n", ts, failedText)
		} else {
			output += fmt.Sprintf("[%s] Failed: %d\n", ts, summary.Failed)
		}

		if summary.Skipped > 0 {
			output += fmt.Sprintf("[%s] Skipped: %d\n", ts, summary.Skipped)
		}

		output += fmt.Sprintf("[%s] Next number: %d\n", ts, summary.NextNumber)
		output += fmt.Sprintf("[%s] Duration: %s\n", ts, durationStr)

		if summary.Failed > 0 {
			failedHeader := color.New(color.FgRed).Sprint("Failed documents:")
			output += fmt.Sprintf("[%s] %s\n", ts, failedHeader)
			for _, failed := range summary.FailedResults() {
				name := color.New(color.FgRed).Sprint(failed.Document.Name)
				output += fmt.Sprintf("[%s]   - %s: %v\n", ts, name, failed.Err)
			}
		}
	} else {
		// Plain text summary
		output = fmt.Sprintf("[%s] === Numbering Summary ===\n", ts)
		output += fmt.Sprintf("[%s] Total documents: %d\n", ts, summary.TotalDocuments)
		output += fmt.Sprintf("[%s] Numbered: %d\n", ts, summary.Succeeded)
		output += fmt.Sprintf("[%s] Failed: %d\n", ts, summary.Failed)
		if summary.Skipped > 0 {
			output += fmt.Sprintf("[%s] Skipped: %d\n", ts, summary.Skipped)
		}
		output += fmt.Sprintf("[%s] Next number: %d\n", ts, summary.NextNumber)
		output += fmt.Sprintf("[%s] Duration: %s\n", ts, durationStr)

		if summary.Failed > 0 {
			output += fmt.Sprintf("[%s] Failed documents:\n", ts)
			for _, failed := range summary.FailedResults() {
				output += fmt.Sprintf("[%s]   - %s: %v\n", ts, failed.Document.Name, failed.Err)
			}
		}
	}

	cl.writer.Write([]byte(output))
}

// timestamp returns the current time formatted as "15:04:05" (HH:MM:SS).
func timestamp() string {
	return time.Now().Format("15:04:05")
}

// formatDuration converts a time.Duration to a human-readable string.
// Examples: "5s", "1m30s", "2h15m"
func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Hour:
		hours := d / time.Hour
		remainder := d % time.Hour
		if remainder == 0 {
			return fmt.Sprintf("%dh", hours)
		}
		minutes := remainder / time.Minute
		remainder = remainder % time.Minute
		if remainder == 0 {
			return fmt.Sprintf("%dh%dm", hours, minutes)
		}
		seconds := remainder / time.Second
		return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
	case d >= time.Minute:
		minutes := d / time.Minute
		remainder := d % time.Minute
		if remainder == 0 {
			return fmt.Sprintf("%dm", minutes)
		}
		seconds := remainder / time.Second
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", int64(d.Seconds()))
	}
}

// NoOpLogger is a Logger implementation that discards all log messages.
// Useful for testing or when logging is disabled.
type NoOpLogger struct{}

// NewNoOpLogger creates a NoOpLogger instance.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

// LogRunStart is a no-op implementation.
func (n *NoOpLogger) LogRunStart(mode string, start, documents int) {
}

// LogDocumentStart is a no-op implementation.
func (n *NoOpLogger) LogDocumentStart(doc models.Document, index, total int) {
}

// LogPageNumbers is a no-op implementation.
func (n *NoOpLogger) LogPageNumbers(doc models.Document, page, first, second int) {
}

// LogDocumentComplete is a no-op implementation.
func (n *NoOpLogger) LogDocumentComplete(result models.DocumentResult) {
}

// LogDocumentFail is a no-op implementation.
func (n *NoOpLogger) LogDocumentFail(result models.DocumentResult) {
}

// LogProgress is a no-op implementation.
func (n *NoOpLogger) LogProgress(results []models.DocumentResult, total int) {
}

// LogSummary is a no-op implementation.
func (n *NoOpLogger) LogSummary(summary models.Summary) {
}
