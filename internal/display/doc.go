// Package display provides terminal UI utilities for displaying progress, warnings, and status messages.
//
// This package centralizes the terminal output formatting, ANSI color codes, and user-facing display
// logic shared by the pagemark commands. It provides three main categories of functionality:
//
// # Progress Indicators
//
// Use ProgressIndicator for multi-step operations such as the inspect listing:
//
//	progress := display.NewProgressIndicator(os.Stdout, len(docs))
//	progress.Start()
//	for _, doc := range docs {
//	    progress.Step(doc.Name)
//	    // ... read page count ...
//	}
//	progress.Complete()
//
// For single document operations:
//
//	display.DisplaySingleDocument(os.Stdout, filename)
//
// # Warning Messages
//
// Display warnings with optional components:
//
//	warning := display.Warning{
//	    Title:      "Configuration Issue",
//	    Message:    "Setting 'digits' is zero, numbers are not padded",
//	    Files:      []string{"coords.env"},
//	    Suggestion: "Set DIGITS to pad numbers to a fixed width",
//	}
//	warning.Display(os.Stderr)
//
// Or use the convenience factories for input hygiene warnings:
//
//	if names := display.NumberedCopies(docs, cfg.Suffix); len(names) > 0 {
//	    display.WarnNumberedCopies(names).Display(os.Stdout)
//	}
//
// # File Utilities
//
// Check if a file name already carries the numbered-copy suffix (e.g. "a_numbered.pdf"):
//
//	if display.IsNumberedCopy(filename, "_numbered") {
//	    // Handle already numbered copy
//	}
//
// # ANSI Colors
//
// The package uses ANSI escape codes for terminal colors:
//   - Cyan (\x1b[36m) for progress indicators
//   - Green (\x1b[32m) for success messages
//   - Yellow (\x1b[33m) for warnings
//   - Reset (\x1b[0m) after each colored section
//
// All functions accept io.Writer interfaces for testability and flexibility.
package display
