// Package stamp merges rendered overlay pages onto source documents using
// pdfcpu. The overlay is applied as a multistamp, page i of the overlay onto
// page i of the source, so each page receives its own pair of numbers.
package stamp

import (
	"fmt"
	"io"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/kessler/pagemark/internal/filelock"
)

// overlayDesc pins the stamp placement. The overlay page matches the source
// page size exactly, so centering it unscaled aligns both coordinate systems.
const overlayDesc = "position:c, scalefactor:1 abs, rotation:0"

// PageDims returns the media box of every page in points, in page order.
func PageDims(path string) ([]types.Dim, error) {
	dims, err := api.PageDimsFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read page dimensions from %s: %w", path, err)
	}
	if len(dims) == 0 {
		return nil, fmt.Errorf("document %s has no pages", path)
	}
	return dims, nil
}

// PageCount opens and validates the document and returns its page count.
func PageCount(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return ctx.PageCount, nil
}

// Apply stamps overlayPath on top of srcPath and writes the merged document
// to outPath. The output appears atomically: a partial result never lands
// under the final name.
func Apply(srcPath, overlayPath, outPath string) error {
	// A plain file name without a page suffix selects multistamp mode.
	wm, err := api.PDFWatermark(overlayPath, overlayDesc, true, false, types.POINTS)
	if err != nil {
		return fmt.Errorf("failed to configure overlay stamp: %w", err)
	}

	src, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", srcPath, err)
	}
	defer src.Close()

	conf := model.NewDefaultConfiguration()
	if err := filelock.AtomicWriteFunc(outPath, func(w io.Writer) error {
		return api.AddWatermarks(src, w, nil, wm, conf)
	}); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	return nil
}
