// Package sequence implements the page numbering arithmetic. Every page
// receives a pair of consecutive numbers, so the counter advances by two per
// page.
package sequence

import (
	"fmt"
	"strconv"
	"strings"
)

// Mode selects how the counter carries across documents in a run.
type Mode int

const (
	// ModeReseed restarts every document at the run's start number.
	ModeReseed Mode = iota + 1
	// ModeContinuous carries the counter from one document into the next.
	ModeContinuous
)

// String returns the stable name used in flags, logs and run history.
func (m Mode) String() string {
	switch m {
	case ModeReseed:
		return "reseed"
	case ModeContinuous:
		return "continuous"
	default:
		return "unknown"
	}
}

// ParseMode accepts the menu digits ("1", "2") as well as the flag names.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "reseed":
		return ModeReseed, nil
	case "2", "continuous":
		return ModeContinuous, nil
	default:
		return 0, fmt.Errorf("invalid numbering mode %q (want reseed or continuous)", s)
	}
}

// Pair is the two labels stamped on a single page.
type Pair struct {
	First  int
	Second int
}

// Advance returns the pair stamped on a page whose counter value is n, and
// the counter value for the page after it.
func Advance(n int) (Pair, int) {
	return Pair{First: n, Second: n + 1}, n + 2
}

// Counter hands out page pairs from a running value.
type Counter struct {
	next int
}

// NewCounter returns a counter whose first pair starts at start.
func NewCounter(start int) *Counter {
	return &Counter{next: start}
}

// Next returns the pair for the current page and advances the counter.
func (c *Counter) Next() Pair {
	pair, next := Advance(c.next)
	c.next = next
	return pair
}

// Peek returns the first number the counter has not handed out yet.
func (c *Counter) Peek() int {
	return c.next
}

// Format renders n zero padded to width digits. Numbers wider than the
// requested width keep all their digits; widths below two leave the number
// unpadded.
func Format(n, digits int) string {
	if digits <= 1 {
		return strconv.Itoa(n)
	}
	return fmt.Sprintf("%0*d", digits, n)
}

// Range returns the first and last numbers stamped when pages pages are
// numbered starting at start. For a zero page document last is start-1,
// meaning nothing was consumed.
func Range(start, pages int) (first, last int) {
	return start, start + 2*pages - 1
}
