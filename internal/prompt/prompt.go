// Package prompt implements the interactive pre-run questions: which
// documents to number, which numbering mode to use and where to start
// counting. Every question degrades to its default when stdin is not a
// terminal, so the tool stays usable in scripts and cron jobs.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/kessler/pagemark/internal/models"
	"github.com/kessler/pagemark/internal/sequence"
)

// ErrCancelled is returned when the user quits out of a prompt.
var ErrCancelled = errors.New("cancelled by user")

// Reader defines interface for reading user input (for testing)
type Reader interface {
	ReadString(delim byte) (string, error)
}

// DefaultReader wraps bufio.Reader
type DefaultReader struct {
	reader *bufio.Reader
}

func (d *DefaultReader) ReadString(delim byte) (string, error) {
	return d.reader.ReadString(delim)
}

// Prompter asks the pre-run questions on a terminal.
type Prompter struct {
	reader      Reader
	out         io.Writer
	interactive bool
}

// New returns a Prompter on stdin/stdout. With assumeDefaults set, or when
// stdin is not a terminal, every question resolves to its default without
// blocking.
func New(assumeDefaults bool) *Prompter {
	interactive := !assumeDefaults &&
		(isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()))
	return &Prompter{
		reader:      &DefaultReader{reader: bufio.NewReader(os.Stdin)},
		out:         os.Stdout,
		interactive: interactive,
	}
}

// NewWithReader allows injection of reader and writer for testing.
func NewWithReader(reader Reader, out io.Writer, interactive bool) *Prompter {
	return &Prompter{reader: reader, out: out, interactive: interactive}
}

// SelectDocuments shows the numbered file menu and returns the documents to
// process. A single discovered file is selected without asking. Empty input
// or "all" selects everything; anything unparseable falls back to everything
// with a warning rather than aborting the run.
func (p *Prompter) SelectDocuments(docs []models.Document) ([]models.Document, error) {
	if len(docs) == 1 {
		fmt.Fprintf(p.out, "\nFound 1 PDF: %s\n", docs[0].Name)
		return docs, nil
	}

	fmt.Fprintf(p.out, "\nFound %d PDFs:\n", len(docs))
	for i, doc := range docs {
		fmt.Fprintf(p.out, "  %2d) %s\n", i+1, doc.Name)
	}
	fmt.Fprintln(p.out)

	if !p.interactive {
		fmt.Fprintln(p.out, "No terminal detected, processing all files.")
		return docs, nil
	}

	color.New(color.FgCyan).Fprintf(p.out, "Select a file number (or ALL for every file): ")
	input, err := p.readLine()
	if err != nil {
		return nil, err
	}

	choice := strings.ToUpper(strings.TrimSpace(input))
	if choice == "" || choice == "ALL" {
		return docs, nil
	}
	if choice == "Q" {
		return nil, ErrCancelled
	}

	n, err := strconv.Atoi(choice)
	if err != nil || n < 1 || n > len(docs) {
		color.New(color.FgYellow).Fprintf(p.out, "Invalid selection %q, processing all files.\n", strings.TrimSpace(input))
		return docs, nil
	}
	return docs[n-1 : n], nil
}

// SelectMode asks for the numbering mode. Empty or invalid input picks
// ModeReseed, matching the menu's advertised default.
func (p *Prompter) SelectMode() (sequence.Mode, error) {
	fmt.Fprintln(p.out, "Numbering mode:")
	fmt.Fprintln(p.out, "  1) every file starts at the same number (default)")
	fmt.Fprintln(p.out, "  2) continuous numbering across files")

	if !p.interactive {
		fmt.Fprintln(p.out, "No terminal detected, using mode 1.")
		return sequence.ModeReseed, nil
	}

	color.New(color.FgCyan).Fprint(p.out, "Choose 1 or 2 (default 1): ")
	input, err := p.readLine()
	if err != nil {
		return 0, err
	}

	choice := strings.TrimSpace(input)
	if choice == "" {
		return sequence.ModeReseed, nil
	}
	if strings.EqualFold(choice, "q") {
		return 0, ErrCancelled
	}

	mode, err := sequence.ParseMode(choice)
	if err != nil {
		fmt.Fprintln(p.out, "Using default mode: every file starts at the same number.")
		return sequence.ModeReseed, nil
	}
	return mode, nil
}

// StartNumber asks for the starting number and re-asks until it gets a
// positive integer or an empty line, which picks defaultStart.
func (p *Prompter) StartNumber(defaultStart int) (int, error) {
	if !p.interactive {
		fmt.Fprintf(p.out, "No terminal detected, starting at %d.\n", defaultStart)
		return defaultStart, nil
	}

	for {
		color.New(color.FgCyan).Fprintf(p.out, "Starting number (default %d): ", defaultStart)
		input, err := p.readLine()
		if err != nil {
			return 0, err
		}

		choice := strings.TrimSpace(input)
		if choice == "" {
			return defaultStart, nil
		}
		if strings.EqualFold(choice, "q") {
			return 0, ErrCancelled
		}

		n, err := strconv.Atoi(choice)
		if err != nil {
			fmt.Fprintln(p.out, "Please enter a whole number.")
			continue
		}
		if n < 1 {
			fmt.Fprintln(p.out, "The starting number must be greater than zero.")
			continue
		}
		return n, nil
	}
}

// readLine reads one line of input. EOF with no pending input behaves like
// an empty line so piped input that runs out falls back to defaults.
func (p *Prompter) readLine() (string, error) {
	input, err := p.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return input, nil
}
