package stamp

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kessler/pagemark/internal/config"
	"github.com/kessler/pagemark/internal/overlay"
	"github.com/kessler/pagemark/internal/sequence"
)

// renderFixture builds a real PDF with the overlay renderer so the merge
// path is exercised against documents pdfcpu has to parse for real.
func renderFixture(t *testing.T, dir, name string, pages int) string {
	t.Helper()

	layout := config.Layout{X1: 40, Y1: 40, X2: 500, Y2: 40, Digits: 3}
	counter := sequence.NewCounter(1)

	specs := make([]overlay.PageSpec, 0, pages)
	for i := 0; i < pages; i++ {
		specs = append(specs, overlay.PageSpec{Width: 595.28, Height: 841.89, Labels: counter.Next()})
	}

	var buf bytes.Buffer
	require.NoError(t, overlay.Render(&buf, specs, layout))

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}

func TestPageDims(t *testing.T) {
	dir := t.TempDir()
	path := renderFixture(t, dir, "doc.pdf", 2)

	dims, err := PageDims(path)
	require.NoError(t, err)
	require.Len(t, dims, 2)

	for _, dim := range dims {
		assert.InDelta(t, 595.28, dim.Width, 0.01)
		assert.InDelta(t, 841.89, dim.Height, 0.01)
	}
}

func TestPageDimsMissingFile(t *testing.T) {
	_, err := PageDims(filepath.Join(t.TempDir(), "absent.pdf"))
	require.Error(t, err)
}

func TestPageCount(t *testing.T) {
	dir := t.TempDir()
	path := renderFixture(t, dir, "doc.pdf", 3)

	count, err := PageCount(path)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestPageCountMissingFile(t *testing.T) {
	_, err := PageCount(filepath.Join(t.TempDir(), "absent.pdf"))
	require.Error(t, err)
}

func TestApplyMergesEveryPage(t *testing.T) {
	dir := t.TempDir()
	src := renderFixture(t, dir, "src.pdf", 2)
	ovl := renderFixture(t, dir, "overlay.pdf", 2)
	out := filepath.Join(dir, "out", "src_numbered.pdf")

	require.NoError(t, Apply(src, ovl, out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")), "output should be a PDF")

	count, err := PageCount(out)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestApplyMissingSource(t *testing.T) {
	dir := t.TempDir()
	ovl := renderFixture(t, dir, "overlay.pdf", 1)
	out := filepath.Join(dir, "out.pdf")

	err := Apply(filepath.Join(dir, "absent.pdf"), ovl, out)
	require.Error(t, err)
}

func TestApplyFailureLeavesNoOutput(t *testing.T) {
	dir := t.TempDir()
	src := renderFixture(t, dir, "src.pdf", 1)
	out := filepath.Join(dir, "out.pdf")

	err := Apply(src, filepath.Join(dir, "absent-overlay.pdf"), out)
	require.Error(t, err)

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "failed merge must not leave an output file")
}
