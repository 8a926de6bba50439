package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextOrigin(t *testing.T) {
	// A baseline 50pt above the bottom of an 800pt page sits 750pt below
	// the top.
	tx, ty := textOrigin(500, 50, 800)
	assert.Equal(t, 500.0, tx)
	assert.Equal(t, 750.0, ty)
}

func TestLabelBox(t *testing.T) {
	tests := []struct {
		name              string
		x, y, w, h, pad   float64
		pageH             float64
		want              rect
	}{
		{
			name: "padded box",
			x:    500, y: 50, w: 20, h: 12, pad: 4, pageH: 800,
			// Lower left (496, 46), 28x20, top edge at 66 from the bottom.
			want: rect{x: 496, y: 734, w: 28, h: 20},
		},
		{
			name: "zero pad hugs the label",
			x:    100, y: 100, w: 30, h: 12, pad: 0, pageH: 600,
			want: rect{x: 100, y: 488, w: 30, h: 12},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := labelBox(tt.x, tt.y, tt.w, tt.h, tt.pad, tt.pageH)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLabelCircle(t *testing.T) {
	t.Run("wide label drives the radius", func(t *testing.T) {
		cx, cy, r := labelCircle(500, 50, 20, 12, 4, 800)
		assert.Equal(t, 510.0, cx)
		assert.Equal(t, 744.0, cy)
		assert.Equal(t, 14.0, r) // max(20, 12)/2 + 4
	})

	t.Run("tall label drives the radius", func(t *testing.T) {
		_, _, r := labelCircle(0, 0, 8, 12, 2, 400)
		assert.Equal(t, 8.0, r) // max(8, 12)/2 + 2
	})
}
