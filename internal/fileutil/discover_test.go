package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("%PDF-1.4\n"), 0644); err != nil {
		t.Fatalf("failed to create %s: %v", name, err)
	}
}

// TestDiscoverPDFsOrdering verifies prefix ordering across all three ranks
func TestDiscoverPDFsOrdering(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"b_doc.pdf",
		"20250102_report.pdf",
		"a-notes.pdf",
		"_draft.pdf",
		"9_summary.pdf",
	} {
		touch(t, dir, name)
	}

	docs, err := DiscoverPDFs(dir)
	if err != nil {
		t.Fatalf("DiscoverPDFs() error = %v", err)
	}

	want := []string{
		"9_summary.pdf",
		"20250102_report.pdf",
		"a-notes.pdf",
		"b_doc.pdf",
		"_draft.pdf",
	}
	if len(docs) != len(want) {
		t.Fatalf("DiscoverPDFs() returned %d documents, want %d", len(docs), len(want))
	}
	for i, name := range want {
		if docs[i].Name != name {
			t.Errorf("position %d = %q, want %q", i, docs[i].Name, name)
		}
	}
}

// TestDiscoverPDFsFiltersNonPDF verifies only PDF files are considered
func TestDiscoverPDFsFiltersNonPDF(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "keep.pdf")
	touch(t, dir, "UPPER.PDF")
	touch(t, dir, "notes.txt")
	touch(t, dir, "pdfish.pdf.bak")
	if err := os.Mkdir(filepath.Join(dir, "folder.pdf"), 0755); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}

	docs, err := DiscoverPDFs(dir)
	if err != nil {
		t.Fatalf("DiscoverPDFs() error = %v", err)
	}

	if len(docs) != 2 {
		t.Fatalf("DiscoverPDFs() returned %d documents, want 2", len(docs))
	}
	if docs[0].Name != "keep.pdf" || docs[1].Name != "UPPER.PDF" {
		t.Errorf("documents = [%q, %q], want [keep.pdf, UPPER.PDF]", docs[0].Name, docs[1].Name)
	}
}

// TestDiscoverPDFsAbsolutePaths verifies discovered paths are absolute
func TestDiscoverPDFsAbsolutePaths(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.pdf")

	docs, err := DiscoverPDFs(dir)
	if err != nil {
		t.Fatalf("DiscoverPDFs() error = %v", err)
	}
	if !filepath.IsAbs(docs[0].Path) {
		t.Errorf("Path = %q, want absolute", docs[0].Path)
	}
}

// TestDiscoverPDFsMissingDir verifies the sentinel for a missing directory
func TestDiscoverPDFsMissingDir(t *testing.T) {
	_, err := DiscoverPDFs(filepath.Join(t.TempDir(), "nope"))
	if !errors.Is(err, ErrInputDirMissing) {
		t.Errorf("error = %v, want ErrInputDirMissing", err)
	}
}

// TestDiscoverPDFsEmptyDir verifies the sentinel for a directory without PDFs
func TestDiscoverPDFsEmptyDir(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "readme.md")

	_, err := DiscoverPDFs(dir)
	if !errors.Is(err, ErrNoDocuments) {
		t.Errorf("error = %v, want ErrNoDocuments", err)
	}
}

// TestDiscoverPDFsFileNotDir verifies a file path is rejected
func TestDiscoverPDFsFileNotDir(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.pdf")

	_, err := DiscoverPDFs(filepath.Join(dir, "a.pdf"))
	if err == nil {
		t.Error("DiscoverPDFs() expected error for non-directory path, got nil")
	}
}
