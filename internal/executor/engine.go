package executor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kessler/pagemark/internal/config"
	"github.com/kessler/pagemark/internal/models"
	"github.com/kessler/pagemark/internal/overlay"
	"github.com/kessler/pagemark/internal/sequence"
	"github.com/kessler/pagemark/internal/stamp"
)

// PDFEngine numbers one document at a time: it reads the page geometry,
// draws a label pair per page onto an overlay sized like the source, and
// stamps the overlay onto the original content.
type PDFEngine struct {
	outputDir string
	suffix    string
	layout    config.Layout
	logger    Logger
}

// NewPDFEngine constructs an engine writing numbered copies into outputDir
// under the given name suffix. The logger parameter is optional and can be
// nil; it only receives the per-page numbering events.
func NewPDFEngine(outputDir, suffix string, layout config.Layout, logger Logger) *PDFEngine {
	return &PDFEngine{
		outputDir: outputDir,
		suffix:    suffix,
		layout:    layout,
		logger:    logger,
	}
}

// Number stamps every page of doc with the next pairs from counter and
// writes the numbered copy. The copy appears under its final name only when
// complete; on failure the output directory is left as it was.
func (e *PDFEngine) Number(ctx context.Context, doc models.Document, counter *sequence.Counter) (models.DocumentResult, error) {
	result := models.DocumentResult{Document: doc}
	started := time.Now()

	if err := ctx.Err(); err != nil {
		result.Status = models.StatusSkipped
		return result, err
	}

	dims, err := stamp.PageDims(doc.Path)
	if err != nil {
		docErr := NewDocumentError(doc.Name, "failed to read page dimensions", err)
		result.Status = models.StatusFailed
		result.Err = docErr
		result.Duration = time.Since(started)
		return result, docErr
	}

	first := counter.Peek()
	pages := make([]overlay.PageSpec, 0, len(dims))
	for i, dim := range dims {
		if dim.Width <= 0 || dim.Height <= 0 {
			pageErr := NewPageError(doc.Name, i+1,
				fmt.Sprintf("invalid page size %.2f x %.2f pt", dim.Width, dim.Height), nil)
			result.Status = models.StatusFailed
			result.Err = pageErr
			result.Duration = time.Since(started)
			return result, pageErr
		}

		pair := counter.Next()
		if e.logger != nil {
			e.logger.LogPageNumbers(doc, i+1, pair.First, pair.Second)
		}
		pages = append(pages, overlay.PageSpec{
			Width:  dim.Width,
			Height: dim.Height,
			Labels: pair,
		})
	}
	last := counter.Peek() - 1

	outPath := filepath.Join(e.outputDir, doc.OutputName(e.suffix))
	if err := e.stampPages(doc, pages, outPath); err != nil {
		result.Status = models.StatusFailed
		result.Err = err
		result.Duration = time.Since(started)
		return result, err
	}

	result.Status = models.StatusNumbered
	result.OutputPath = outPath
	result.Pages = len(pages)
	result.FirstLabel = first
	result.LastLabel = last
	result.Duration = time.Since(started)
	return result, nil
}

// stampPages renders the overlay for pages into a scratch file and
// composites it onto the source document.
func (e *PDFEngine) stampPages(doc models.Document, pages []overlay.PageSpec, outPath string) error {
	tmp, err := os.CreateTemp("", "pagemark-overlay-*.pdf")
	if err != nil {
		return NewDocumentError(doc.Name, "failed to create overlay file", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := overlay.Render(tmp, pages, e.layout); err != nil {
		tmp.Close()
		return NewDocumentError(doc.Name, "failed to render overlay", err)
	}
	if err := tmp.Close(); err != nil {
		return NewDocumentError(doc.Name, "failed to close overlay file", err)
	}

	if err := stamp.Apply(doc.Path, tmpPath, outPath); err != nil {
		return NewDocumentError(doc.Name, "failed to stamp numbers", err)
	}
	return nil
}
