package logger

import (
	"fmt"
	"strings"
)

// ProgressBar renders the batch position as an ASCII bar. Documents are
// numbered one at a time, so the bar is a plain value built fresh for each
// progress line rather than a shared counter.
type ProgressBar struct {
	done        int
	failed      int
	total       int
	width       int
	enableColor bool
}

// NewProgressBar returns a bar for done of total documents, failed of which
// ended in an error. Width is the character count between the brackets;
// anything below 1 falls back to 10.
func NewProgressBar(done, failed, total, width int, enableColor bool) ProgressBar {
	if width < 1 {
		width = 10
	}
	return ProgressBar{
		done:        done,
		failed:      failed,
		total:       total,
		width:       width,
		enableColor: enableColor,
	}
}

// Percentage returns the processed share of the batch, clamped to 0-100.
func (pb ProgressBar) Percentage() int {
	if pb.total == 0 {
		return 0
	}

	perc := (pb.done * 100) / pb.total
	if perc > 100 {
		return 100
	}
	if perc < 0 {
		return 0
	}
	return perc
}

// Render produces the bar string, for example "[====      ] 2/5 (40%)".
// With color enabled the bar is cyan while documents remain, green once the
// batch finished clean, and red as soon as any document failed.
func (pb ProgressBar) Render() string {
	perc := pb.Percentage()

	filled := (perc * pb.width) / 100
	if filled > pb.width {
		filled = pb.width
	}
	if filled < 0 {
		filled = 0
	}

	bar := "[" + strings.Repeat("=", filled) + strings.Repeat(" ", pb.width-filled) + "]"
	result := fmt.Sprintf("%s %d/%d (%d%%)", bar, pb.done, pb.total, perc)

	if !pb.enableColor {
		return result
	}

	switch {
	case pb.failed > 0:
		return fmt.Sprintf("\033[31m%s\033[0m", result)
	case perc == 100:
		return fmt.Sprintf("\033[32m%s\033[0m", result)
	default:
		return fmt.Sprintf("\033[36m%s\033[0m", result)
	}
}
