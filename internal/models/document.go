package models

import (
	"math"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Sort ranks for document ordering. Purely numeric prefixes (dates, scan
// counters) sort first, prefixes starting with a letter second, everything
// else last.
const (
	RankNumeric = 0
	RankAlpha   = 1
	RankOther   = 2
)

// Document is a single source PDF queued for numbering.
type Document struct {
	Path string  // absolute path to the source file
	Name string  // base name, e.g. "20251031_minutes.pdf"
	Key  SortKey // derived ordering key
}

// NewDocument builds a Document for the given path, deriving Name and Key.
func NewDocument(path string) Document {
	name := filepath.Base(path)
	return Document{
		Path: path,
		Name: name,
		Key:  ParseSortKey(name),
	}
}

// Stem returns the file name without its extension.
func (d Document) Stem() string {
	return strings.TrimSuffix(d.Name, filepath.Ext(d.Name))
}

// OutputName returns the name the numbered copy is written under,
// e.g. "20251031_minutes" + suffix + ".pdf".
func (d Document) OutputName(suffix string) string {
	return d.Stem() + suffix + ".pdf"
}

// SortKey orders documents by file name prefix. The prefix is the stem up to
// the first underscore or hyphen. Within RankNumeric documents compare by
// Num, within the other ranks by Text.
type SortKey struct {
	Rank int    // RankNumeric, RankAlpha or RankOther
	Num  int    // numeric prefix value, meaningful for RankNumeric only
	Text string // lowercased prefix, meaningful for RankAlpha and RankOther
}

// ParseSortKey derives the ordering key for a file name.
func ParseSortKey(name string) SortKey {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	prefix := stem
	if i := strings.IndexAny(stem, "_-"); i >= 0 {
		prefix = stem[:i]
	}

	if isASCIIDigits(prefix) {
		n, err := strconv.Atoi(prefix)
		if err != nil {
			// Prefix wider than an int. Ties fall through to the name.
			n = math.MaxInt
		}
		return SortKey{Rank: RankNumeric, Num: n}
	}

	if r, _ := utf8.DecodeRuneInString(prefix); prefix != "" && unicode.IsLetter(r) {
		return SortKey{Rank: RankAlpha, Text: strings.ToLower(prefix)}
	}

	return SortKey{Rank: RankOther, Text: strings.ToLower(prefix)}
}

// Less reports whether a sorts before b. Equal keys fall back to the file
// name so the order is deterministic regardless of directory read order.
func Less(a, b Document) bool {
	if a.Key.Rank != b.Key.Rank {
		return a.Key.Rank < b.Key.Rank
	}
	if a.Key.Rank == RankNumeric && a.Key.Num != b.Key.Num {
		return a.Key.Num < b.Key.Num
	}
	if a.Key.Text != b.Key.Text {
		return a.Key.Text < b.Key.Text
	}
	return a.Name < b.Name
}

// SortDocuments orders documents in place by prefix rank, key and name.
func SortDocuments(docs []Document) {
	sort.SliceStable(docs, func(i, j int) bool {
		return Less(docs[i], docs[j])
	})
}

func isASCIIDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
