// Package definitions reads the desired-package list: a text file with one
// name@version per line.
package definitions

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/ajxudir/pkgsync/pkg/errors"
	"github.com/ajxudir/pkgsync/pkg/packages"
	"github.com/ajxudir/pkgsync/pkg/verbose"
)

// maxLineLength bounds a single definitions line. Longer lines are skipped
// with a diagnostic.
const maxLineLength = 64 * 1024

// previewLength is how much of an oversized line a diagnostic keeps.
const previewLength = 40

// ReadLines returns the raw lines of the definitions file at path.
//
// Line terminators are removed; CR before LF is left for the parser to
// trim. A missing final newline is fine. A line longer than maxLineLength
// is returned as "" so later line numbers stay correct, and is reported in
// the diagnostics instead.
//
// Parameters:
//   - path: The definitions file
//
// Returns:
//   - []string: Lines in file order
//   - []packages.Diagnostic: One entry per oversized line
//   - error: When the file cannot be opened or read
func ReadLines(path string) ([]string, []packages.Diagnostic, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open definitions file: %w", err)
	}
	defer func() { _ = f.Close() }()

	lines, diags, err := readLines(f)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read definitions file %s: %w", path, err)
	}
	return lines, diags, nil
}

func readLines(r io.Reader) ([]string, []packages.Diagnostic, error) {
	br := bufio.NewReader(r)

	var (
		lines    []string
		diags    []packages.Diagnostic
		buf      []byte
		preview  string
		overflow bool
	)
	for {
		chunk, err := br.ReadSlice('\n')
		if !overflow {
			buf = append(buf, chunk...)
			if len(bytes.TrimSuffix(buf, []byte("\n"))) > maxLineLength {
				preview = strings.ToValidUTF8(string(buf[:previewLength]), "") + "..."
				overflow = true
				buf = buf[:0]
			}
		}
		if err == bufio.ErrBufferFull {
			continue
		}
		if err != nil && err != io.EOF {
			return nil, nil, err
		}

		if overflow {
			lines = append(lines, "")
			diags = append(diags, packages.Diagnostic{
				Line: len(lines),
				Text: preview,
				Err:  errors.NewSkippedLineError(preview, "line too long", nil),
			})
			verbose.Printf("Definitions line %d exceeds %d bytes, skipping", len(lines), maxLineLength)
		} else if len(buf) > 0 {
			lines = append(lines, string(bytes.TrimSuffix(buf, []byte("\n"))))
		}
		buf, preview, overflow = buf[:0], "", false

		if err == io.EOF {
			return lines, diags, nil
		}
	}
}

// Result is a parsed definitions file.
//
// Fields:
//   - Packages: Desired packages in file order
//   - Diagnostics: One entry per skipped malformed line
type Result struct {
	Packages    []packages.Package
	Diagnostics []packages.Diagnostic
}

// Load reads and parses the definitions file at path.
//
// Malformed lines never fail the load; they are returned as diagnostics
// for the caller to report.
//
// Parameters:
//   - path: The definitions file
//
// Returns:
//   - *Result: Packages and diagnostics
//   - error: Only when the file cannot be read
func Load(path string) (*Result, error) {
	lines, diags, err := ReadLines(path)
	if err != nil {
		return nil, err
	}

	pkgs, parsed := packages.ParseLines(lines)
	diags = append(diags, parsed...)
	slices.SortFunc(diags, func(a, b packages.Diagnostic) int { return a.Line - b.Line })
	verbose.Printf("Loaded %d desired package(s) from %s (%d line(s), %d skipped)", len(pkgs), path, len(lines), len(diags))
	return &Result{Packages: pkgs, Diagnostics: diags}, nil
}
