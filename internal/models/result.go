package models

import "time"

// Document processing status constants
const (
	StatusNumbered = "NUMBERED" // numbered copy written
	StatusFailed   = "FAILED"   // processing error, no output written
	StatusSkipped  = "SKIPPED"  // not attempted, run cancelled first
)

// DocumentResult records the outcome for one source PDF.
type DocumentResult struct {
	Document   Document      // the document that was processed
	Status     string        // Status: "NUMBERED", "FAILED", "SKIPPED"
	OutputPath string        // path of the numbered copy, empty unless numbered
	Pages      int           // pages stamped
	FirstLabel int           // first number placed on the first page
	LastLabel  int           // last number placed on the final page
	Err        error         // error if processing failed
	Duration   time.Duration // time taken for this document
}

// Succeeded returns true if the numbered copy was written.
func (r DocumentResult) Succeeded() bool {
	return r.Status == StatusNumbered
}

// Summary represents the aggregate result of a numbering run.
type Summary struct {
	TotalDocuments int              // documents selected for the run
	Succeeded      int              // numbered copies written
	Failed         int              // documents that errored
	Skipped        int              // documents never attempted
	NextNumber     int              // first unused number after the run
	Duration       time.Duration    // total run time
	Results        []DocumentResult // per-document outcomes, in processing order
}

// FailedResults returns the outcomes for documents that could not be
// processed.
func (s Summary) FailedResults() []DocumentResult {
	var failed []DocumentResult
	for _, r := range s.Results {
		if r.Status == StatusFailed {
			failed = append(failed, r)
		}
	}
	return failed
}
