// Package overlay renders the transparent numbering layer that gets stamped
// onto source documents. Each overlay page matches its source page size
// exactly and carries two labels, optionally boxed or circled.
package overlay

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/kessler/pagemark/internal/config"
	"github.com/kessler/pagemark/internal/sequence"
)

const (
	labelFontFamily = "Helvetica"
	labelFontStyle  = "B"
	labelFontSize   = 12
)

// PageSpec describes one overlay page: the source page dimensions in points
// and the label pair stamped onto it.
type PageSpec struct {
	Width  float64
	Height float64
	Labels sequence.Pair
}

// Render writes a PDF to w whose i-th page carries the labels for pages[i],
// placed according to layout. Page sizes are taken verbatim from each
// PageSpec so the stamped layer lines up with the source document.
func Render(w io.Writer, pages []PageSpec, layout config.Layout) error {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.SetLineWidth(1)
	pdf.SetFont(labelFontFamily, labelFontStyle, labelFontSize)

	for _, page := range pages {
		pdf.AddPageFormat("P", fpdf.SizeType{Wd: page.Width, Ht: page.Height})

		drawLabel(pdf, layout, float64(layout.X1), float64(layout.Y1), page.Height,
			sequence.Format(page.Labels.First, layout.Digits))
		drawLabel(pdf, layout, float64(layout.X2), float64(layout.Y2), page.Height,
			sequence.Format(page.Labels.Second, layout.Digits))
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to render overlay: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write overlay: %w", err)
	}
	return nil
}

// drawLabel draws one label with its decoration at baseline position (x, y)
// in page coordinates. The decoration is drawn first so the text ends up on
// top; a box wins over a circle when both are configured.
func drawLabel(pdf *fpdf.Fpdf, layout config.Layout, x, y, pageH float64, text string) {
	w := pdf.GetStringWidth(text)
	h := float64(labelFontSize)
	pad := float64(layout.Pad)

	switch {
	case layout.DrawBox:
		box := labelBox(x, y, w, h, pad, pageH)
		pdf.Rect(box.x, box.y, box.w, box.h, "D")
	case layout.DrawCircle:
		cx, cy, r := labelCircle(x, y, w, h, pad, pageH)
		pdf.Circle(cx, cy, r, "D")
	}

	tx, ty := textOrigin(x, y, pageH)
	pdf.Text(tx, ty, text)
}
