package executor

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DocumentError represents an error that occurred while numbering a document.
// It includes context about which document failed and when.
type DocumentError struct {
	Document  string    // Base name of the document that failed
	Message   string    // Human-readable error message
	Err       error     // Underlying error (optional)
	Timestamp time.Time // When the error occurred
}

// NewDocumentError creates a new DocumentError with the current timestamp.
func NewDocumentError(document, msg string, err error) *DocumentError {
	return &DocumentError{
		Document:  document,
		Message:   msg,
		Err:       err,
		Timestamp: time.Now(),
	}
}

// Error implements the error interface for DocumentError.
func (e *DocumentError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("document %s: %s", e.Document, e.Message))
	if e.Err != nil {
		sb.WriteString(fmt.Sprintf(": %v", e.Err))
	}
	return sb.String()
}

// Unwrap returns the underlying error for error wrapping support.
func (e *DocumentError) Unwrap() error {
	return e.Err
}

// PageError represents an error raised while numbering a specific page.
// It pins the failure to a page so the run log can point at the exact spot.
type PageError struct {
	Document  string    // Base name of the document being numbered
	Page      int       // 1-based index of the page that failed
	Message   string    // Human-readable error message
	Err       error     // Underlying error (optional)
	Timestamp time.Time // When the error occurred
}

// NewPageError creates a new PageError with the current timestamp.
func NewPageError(document string, page int, msg string, err error) *PageError {
	return &PageError{
		Document:  document,
		Page:      page,
		Message:   msg,
		Err:       err,
		Timestamp: time.Now(),
	}
}

// Error implements the error interface for PageError.
func (e *PageError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("document %s: page %d: %s", e.Document, e.Page, e.Message))
	if e.Err != nil {
		sb.WriteString(fmt.Sprintf(": %v", e.Err))
	}
	return sb.String()
}

// Unwrap returns the underlying error for error wrapping support.
func (e *PageError) Unwrap() error {
	return e.Err
}

// IsDocumentError checks if the error is or wraps a DocumentError.
func IsDocumentError(err error) bool {
	if err == nil {
		return false
	}
	var de *DocumentError
	return errors.As(err, &de)
}

// IsPageError checks if the error is or wraps a PageError.
func IsPageError(err error) bool {
	if err == nil {
		return false
	}
	var pe *PageError
	return errors.As(err, &pe)
}
