package display

import (
	"path/filepath"
	"strings"

	"github.com/kessler/pagemark/internal/models"
)

// IsNumberedCopy checks if a file name carries the numbered-copy suffix,
// e.g. "minutes_numbered.pdf" for suffix "_numbered". The extension match
// is case-insensitive, the suffix match is exact.
func IsNumberedCopy(name, suffix string) bool {
	if suffix == "" {
		return false
	}
	if !strings.EqualFold(filepath.Ext(name), ".pdf") {
		return false
	}
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	return strings.HasSuffix(stem, suffix)
}

// NumberedCopies returns the names of discovered documents that already
// carry the numbered-copy suffix. Such files are usually output of a
// previous run placed back in the input folder; numbering them again
// stacks a second pair of numbers on every page.
func NumberedCopies(docs []models.Document, suffix string) []string {
	var names []string
	for _, doc := range docs {
		if IsNumberedCopy(doc.Name, suffix) {
			names = append(names, doc.Name)
		}
	}
	return names
}
