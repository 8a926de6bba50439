// Package fileutil discovers the source PDFs for a numbering run.
//
// The package serves as the single source of truth for which documents a run
// sees and in which order, so the interactive menu, the dry run listing and
// the actual processing all agree.
//
// # Ordering
//
// Documents are ordered by file name prefix, where the prefix is the stem up
// to the first underscore or hyphen:
//
//   - purely numeric prefixes come first and compare numerically
//     (9_a.pdf before 20250102_b.pdf)
//   - prefixes starting with a letter come second and compare
//     case-insensitively
//   - everything else comes last
//
// Ties fall back to the plain file name, so the order is deterministic
// regardless of how the operating system returns directory entries.
//
// # Errors
//
// DiscoverPDFs distinguishes two caller-visible failures with sentinel
// errors: ErrInputDirMissing when the input directory does not exist and
// ErrNoDocuments when it contains no PDF files. Both abort a run before any
// output is written.
package fileutil
