package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/kessler/pagemark/internal/models"
)

// FileLogger logs run events to files in the workspace log directory.
// It creates a timestamped log file per run and maintains a latest.log
// symlink pointing to the most recent one.
// It is thread-safe and implements the executor.Logger interface.
// It supports log level filtering to control message verbosity.
type FileLogger struct {
	logDir   string
	runLog   *os.File
	runFile  string
	logLevel string
	mu       sync.Mutex
}

// NewFileLogger creates a new FileLogger that writes to .pagemark/logs/.
// It creates the log directory if it doesn't exist, opens a timestamped
// run log file, and creates/updates the latest.log symlink.
// Uses default log level "info".
func NewFileLogger() (*FileLogger, error) {
	// Default log directory is .pagemark/logs/ in current working directory
	logDir := filepath.Join(".pagemark", "logs")
	return NewFileLoggerWithDirAndLevel(logDir, "info")
}

// NewFileLoggerWithDir creates a new FileLogger with a custom log directory.
// This is useful for testing or custom deployments.
// Uses default log level "info".
func NewFileLoggerWithDir(logDir string) (*FileLogger, error) {
	return NewFileLoggerWithDirAndLevel(logDir, "info")
}

// NewFileLoggerWithDirAndLevel creates a new FileLogger with a custom log directory and log level.
// This is useful for testing or custom deployments.
func NewFileLoggerWithDirAndLevel(logDir string, logLevel string) (*FileLogger, error) {
	// Create log directory if it doesn't exist
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// Generate timestamped filename: run-YYYYMMDD-HHMMSS.log
	timestamp := time.Now().Format("20060102-150405")
	runFile := filepath.Join(logDir, fmt.Sprintf("run-%s.log", timestamp))

	// Open run log file for writing
	file, err := os.OpenFile(runFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create run log file: %w", err)
	}

	// Create/update latest.log symlink
	symlinkPath := filepath.Join(logDir, "latest.log")

	// Remove existing symlink if it exists
	if _, err := os.Lstat(symlinkPath); err == nil {
		if err := os.Remove(symlinkPath); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to remove old symlink: %w", err)
		}
	}

	// Create new symlink pointing to current run log
	if err := os.Symlink(filepath.Base(runFile), symlinkPath); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to create symlink: %w", err)
	}

	// Normalize and validate log level
	normalizedLevel := normalizeLogLevel(logLevel)

	logger := &FileLogger{
		logDir:   logDir,
		runLog:   file,
		runFile:  runFile,
		logLevel: normalizedLevel,
		mu:       sync.Mutex{},
	}

	// Write header to run log
	logger.writeRunLog("=== Pagemark Run Log ===\n")
	logger.writeRunLog(fmt.Sprintf("Started at: %s\n\n", time.Now().Format(time.RFC3339)))

	return logger, nil
}

// RunFile returns the path of the log file backing this run.
func (fl *FileLogger) RunFile() string {
	return fl.runFile
}

// shouldLog checks if a message at the given level should be logged.
// Returns true if messageLevel >= configured logLevel.
func (fl *FileLogger) shouldLog(messageLevel string) bool {
	configuredLevel := logLevelToInt(fl.logLevel)
	msgLevel := logLevelToInt(messageLevel)
	return msgLevel >= configuredLevel
}

// LogTrace logs a trace-level message (most verbose).
func (fl *FileLogger) LogTrace(message string) {
	fl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (fl *FileLogger) LogDebug(message string) {
	fl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (fl *FileLogger) LogInfo(message string) {
	fl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (fl *FileLogger) LogWarn(message string) {
	fl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (fl *FileLogger) LogError(message string) {
	fl.logWithLevel("ERROR", message)
}

// logWithLevel is a helper that logs a message at the specified level if filtering allows it.
func (fl *FileLogger) logWithLevel(level string, message string) {
	// Check if this level should be logged
	levelLower := strings.ToLower(level)
	if !fl.shouldLog(levelLower) {
		return
	}

	formatted := fmt.Sprintf("[%s] [%s] %s\n", time.Now().Format("15:04:05"), level, message)
	fl.writeRunLog(formatted)
}

// LogRunStart logs the start of a numbering run at INFO level.
// It records the document count, numbering mode, and first number.
func (fl *FileLogger) LogRunStart(mode string, start, documents int) {
	// Run logging is at INFO level
	if !fl.shouldLog("info") {
		return
	}

	docLabel := "document"
	if documents != 1 {
		docLabel = "documents"
	}

	message := fmt.Sprintf(
		"[%s] Starting numbering run: %d %s (mode: %s, first number: %d)\n",
		time.Now().Format("15:04:05"),
		documents,
		docLabel,
		mode,
		start,
	)

	fl.writeRunLog(message)
}

// LogDocumentStart logs the start of a single document at INFO level.
func (fl *FileLogger) LogDocumentStart(doc models.Document, index, total int) {
	// Document logging is at INFO level
	if !fl.shouldLog("info") {
		return
	}

	message := fmt.Sprintf(
		"[%s] [%d/%d] Numbering %s\n",
		time.Now().Format("15:04:05"),
		index,
		total,
		doc.Name,
	)

	fl.writeRunLog(message)
}

// LogPageNumbers logs the pair of numbers placed on one page at DEBUG level.
// Format: "[HH:MM:SS] <name> page <p>: <first>, <second>"
func (fl *FileLogger) LogPageNumbers(doc models.Document, page, first, second int) {
	// Per-page decisions are at DEBUG level (more detailed)
	if !fl.shouldLog("debug") {
		return
	}

	message := fmt.Sprintf(
		"[%s] %s page %d: %d, %d\n",
		time.Now().Format("15:04:05"),
		doc.Name,
		page,
		first,
		second,
	)

	fl.writeRunLog(message)
}

// LogDocumentComplete logs a written numbered copy at INFO level.
// It records the consumed number range and where the copy was written.
func (fl *FileLogger) LogDocumentComplete(result models.DocumentResult) {
	// Completion logging is at INFO level
	if !fl.shouldLog("info") {
		return
	}

	message := fmt.Sprintf(
		"[%s] %s: %s (%d pages, numbers %d-%d, %.1fs) wrote %s\n",
		time.Now().Format("15:04:05"),
		result.Document.Name,
		result.Status,
		result.Pages,
		result.FirstLabel,
		result.LastLabel,
		result.Duration.Seconds(),
		result.OutputPath,
	)

	fl.writeRunLog(message)
}

// LogDocumentFail logs a failed document at ERROR level.
func (fl *FileLogger) LogDocumentFail(result models.DocumentResult) {
	if !fl.shouldLog("error") {
		return
	}

	message := fmt.Sprintf(
		"[%s] %s: %s: %v\n",
		time.Now().Format("15:04:05"),
		result.Document.Name,
		result.Status,
		result.Err,
	)

	fl.writeRunLog(message)
}

// LogProgress logs the current batch progress (no-op for file logger).
// Progress is displayed on console but not written to log files.
func (fl *FileLogger) LogProgress(results []models.DocumentResult, total int) {
	// No-op: progress bars are console-only
}

// LogSummary logs the run summary with final statistics at INFO level.
// It records totals, the next unused number, duration, and overall status.
func (fl *FileLogger) LogSummary(summary models.Summary) {
	// Summary logging is at INFO level
	if !fl.shouldLog("info") {
		return
	}

	timestamp := time.Now().Format("15:04:05")

	// Determine status
	status := "SUCCESS"
	if summary.Failed > 0 {
		if summary.Succeeded == 0 {
			status = "FAILED"
		} else {
			status = "PARTIAL"
		}
	}

	// Build summary output
	message := fmt.Sprintf(
		"\n[%s] === RUN SUMMARY ===\n"+
			"[%s] Total documents: %d\n"+
			"[%s] Numbered:        %d\n"+
			"[%s] Failed:          %d\n"+
			"[%s] Skipped:         %d\n"+
			"[%s] Next number:     %d\n"+
			"[%s] Total time:      %.1fs\n"+
			"[%s] Status:          %s (%d/%d documents numbered)\n"+
			"[%s] Completed at:    %s\n",
		timestamp,
		timestamp,
		summary.TotalDocuments,
		timestamp,
		summary.Succeeded,
		timestamp,
		summary.Failed,
		timestamp,
		summary.Skipped,
		timestamp,
		summary.NextNumber,
		timestamp,
		summary.Duration.Seconds(),
		timestamp,
		status,
		summary.Succeeded,
		summary.TotalDocuments,
		timestamp,
		time.Now().Format(time.RFC3339),
	)

	fl.writeRunLog(message)
}

// Close flushes and closes the run log file.
// It should be called when the logger is no longer needed.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		if err := fl.runLog.Sync(); err != nil {
			return fmt.Errorf("failed to sync run log: %w", err)
		}
		if err := fl.runLog.Close(); err != nil {
			return fmt.Errorf("failed to close run log: %w", err)
		}
		fl.runLog = nil
	}

	return nil
}

// writeRunLog is a thread-safe helper to write to the run log file.
func (fl *FileLogger) writeRunLog(message string) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		fl.runLog.WriteString(message)
		// Flush after each write for real-time logging
		fl.runLog.Sync()
	}
}
