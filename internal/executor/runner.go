// Package executor drives the document batch for pagemark.
package executor

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kessler/pagemark/internal/models"
	"github.com/kessler/pagemark/internal/sequence"
)

// Logger defines the interface for logging run progress and results.
type Logger interface {
	LogRunStart(mode string, start, documents int)
	LogDocumentStart(doc models.Document, index, total int)
	LogPageNumbers(doc models.Document, page, first, second int)
	LogDocumentComplete(result models.DocumentResult)
	LogDocumentFail(result models.DocumentResult)
	LogProgress(results []models.DocumentResult, total int)
	LogSummary(summary models.Summary)
}

// Engine defines the behavior required to number a single document. The
// counter is positioned at the document's first number; implementations
// consume one pair per page.
type Engine interface {
	Number(ctx context.Context, doc models.Document, counter *sequence.Counter) (models.DocumentResult, error)
}

// Runner drives a numbering run over the selected documents, handles
// graceful shutdown, and aggregates results.
type Runner struct {
	engine Engine
	logger Logger
}

// NewRunner creates a new Runner instance.
// The logger parameter is optional and can be nil.
func NewRunner(engine Engine, logger Logger) *Runner {
	if engine == nil {
		panic("engine cannot be nil")
	}

	return &Runner{
		engine: engine,
		logger: logger,
	}
}

// Run numbers the documents sequentially with graceful shutdown support.
// It handles SIGINT/SIGTERM signals, seeds each document's counter from the
// numbering mode, logs progress, and aggregates results into a Summary.
//
// A document failure never stops the batch: the result is recorded and the
// run continues with the next document. Cancellation is honored between
// documents; documents never attempted are recorded as skipped.
func (r *Runner) Run(ctx context.Context, docs []models.Document, mode sequence.Mode, start int) (*models.Summary, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("no documents to number")
	}

	// Set up context with cancellation for signal handling
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	// Start signal handler in background
	go func() {
		select {
		case <-sigChan:
			fmt.Println("\nReceived interrupt signal, stopping after the current document...")
			cancel()
		case <-ctx.Done():
			// Context already canceled
		}
	}()

	startTime := time.Now()

	if r.logger != nil {
		r.logger.LogRunStart(mode.String(), start, len(docs))
	}

	results := make([]models.DocumentResult, 0, len(docs))
	next := start

	for i, doc := range docs {
		if ctx.Err() != nil {
			results = append(results, models.DocumentResult{
				Document: doc,
				Status:   models.StatusSkipped,
			})
			continue
		}

		if r.logger != nil {
			r.logger.LogDocumentStart(doc, i+1, len(docs))
		}

		docStart := start
		if mode == sequence.ModeContinuous {
			docStart = next
		}
		counter := sequence.NewCounter(docStart)

		result, err := r.engine.Number(ctx, doc, counter)
		if result.Err == nil && err != nil {
			result.Err = err
		}
		if result.Status == "" {
			if result.Err != nil {
				result.Status = models.StatusFailed
			} else {
				result.Status = models.StatusNumbered
			}
		}

		switch result.Status {
		case models.StatusNumbered:
			// A failed document never advances the carried counter, so in
			// continuous mode the next document reuses its range.
			next = counter.Peek()
			if r.logger != nil {
				r.logger.LogDocumentComplete(result)
			}
		case models.StatusFailed:
			if r.logger != nil {
				r.logger.LogDocumentFail(result)
			}
		}

		results = append(results, result)

		if r.logger != nil {
			r.logger.LogProgress(results, len(docs))
		}
	}

	summary := r.aggregateResults(results, next, time.Since(startTime))

	if r.logger != nil {
		r.logger.LogSummary(*summary)
	}

	return summary, ctx.Err()
}

// aggregateResults folds per-document outcomes into a run Summary.
func (r *Runner) aggregateResults(results []models.DocumentResult, next int, duration time.Duration) *models.Summary {
	summary := &models.Summary{
		TotalDocuments: len(results),
		NextNumber:     next,
		Duration:       duration,
		Results:        results,
	}

	for _, result := range results {
		switch result.Status {
		case models.StatusNumbered:
			summary.Succeeded++
		case models.StatusFailed:
			summary.Failed++
		case models.StatusSkipped:
			summary.Skipped++
		}
	}

	return summary
}
