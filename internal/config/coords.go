package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ErrCoordsMissing is returned when the coordinates file does not exist.
// Unlike the YAML config there is no sensible default placement, so a
// missing file aborts the run.
var ErrCoordsMissing = errors.New("coordinates file not found")

// Layout describes where the two labels go on every page and how they are
// decorated. Coordinates are PDF points with the origin at the bottom left
// corner of the page.
type Layout struct {
	X1, Y1 int // first label position
	X2, Y2 int // second label position

	// Digits is the zero padding width for rendered numbers. 0 disables
	// padding.
	Digits int

	// Pad widens the box or circle around each label, in points.
	Pad int

	// DrawBox draws a rectangle around each label. Takes precedence over
	// DrawCircle when both are set.
	DrawBox bool

	// DrawCircle draws a circle around each label.
	DrawCircle bool
}

// layoutIntKeys are the coordinate file keys parsed as integers. Values that
// do not parse fall back to 0 rather than failing the run.
var layoutIntKeys = map[string]bool{
	"X1": true, "Y1": true, "X2": true, "Y2": true,
	"DIGITS": true, "PAD": true,
}

// LoadLayout reads a coordinates file of KEY=VALUE lines. Blank lines and
// lines starting with '#' are skipped, unknown keys are ignored and missing
// keys default to zero. Only the first '=' separates key from value.
func LoadLayout(path string) (Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Layout{}, fmt.Errorf("%w: %s", ErrCoordsMissing, path)
		}
		return Layout{}, fmt.Errorf("failed to open coordinates file: %w", err)
	}
	defer f.Close()

	values := map[string]int{}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)

		switch {
		case layoutIntKeys[key]:
			n, err := strconv.Atoi(value)
			if err != nil {
				n = 0
			}
			values[key] = n
		case key == "DRAW_BOX" || key == "DRAW_CIRCLE":
			if value == "1" {
				values[key] = 1
			} else {
				values[key] = 0
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return Layout{}, fmt.Errorf("failed to read coordinates file: %w", err)
	}

	return Layout{
		X1:         values["X1"],
		Y1:         values["Y1"],
		X2:         values["X2"],
		Y2:         values["Y2"],
		Digits:     values["DIGITS"],
		Pad:        values["PAD"],
		DrawBox:    values["DRAW_BOX"] == 1,
		DrawCircle: values["DRAW_CIRCLE"] == 1,
	}, nil
}

// Summary returns a one line description of the layout for logs and the
// pre-run configuration echo.
func (l Layout) Summary() string {
	return fmt.Sprintf("digits=%d pos1=(%d, %d) pos2=(%d, %d) box=%v circle=%v pad=%d",
		l.Digits, l.X1, l.Y1, l.X2, l.Y2, l.DrawBox, l.DrawCircle, l.Pad)
}
