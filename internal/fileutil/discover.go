package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kessler/pagemark/internal/models"
)

// ErrInputDirMissing is returned when the input directory does not exist.
var ErrInputDirMissing = errors.New("input directory not found")

// ErrNoDocuments is returned when the input directory contains no PDF files.
var ErrNoDocuments = errors.New("no PDF files in input directory")

// DiscoverPDFs lists the PDF files directly inside dir, ordered by file name
// prefix (see the package documentation). Subdirectories are not descended
// into and the extension match is case-insensitive.
func DiscoverPDFs(dir string) ([]models.Document, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrInputDirMissing, dir)
		}
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var docs []models.Document
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}

		absPath, err := filepath.Abs(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to resolve path %s: %w", entry.Name(), err)
		}
		docs = append(docs, models.NewDocument(absPath))
	}

	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoDocuments, dir)
	}

	models.SortDocuments(docs)
	return docs, nil
}
