// Package packages defines the package record shared by the definitions
// loader, the installed-package scanner, the reconciler and the installer.
package packages

import (
	"fmt"
	"strings"

	"github.com/ajxudir/pkgsync/pkg/errors"
	"github.com/ajxudir/pkgsync/pkg/version"
)

// Separator splits a package name from its version in a definitions line.
const Separator = "@"

// commentPrefix starts a definitions line that is ignored like a blank one.
const commentPrefix = "#"

// Package is an immutable name and version pair.
//
// Reconciliation matches packages by Name only; two packages with the same
// name but different versions describe different desired states.
type Package struct {
	Name    string          `json:"name"`
	Version version.Version `json:"version"`
}

// New returns a package after checking the name invariant.
//
// Parameters:
//   - name: Package name; must be non-empty and must not contain "@"
//   - v: Package version
//
// Returns:
//   - Package: The package
//   - error: When the name is empty or contains the separator
func New(name string, v version.Version) (Package, error) {
	if name == "" {
		return Package{}, fmt.Errorf("package name is empty")
	}
	if strings.Contains(name, Separator) {
		return Package{}, fmt.Errorf("package name %q contains %q", name, Separator)
	}
	return Package{Name: name, Version: v}, nil
}

// ParseLine parses a single "name@version" definitions line.
//
// It performs the following operations:
//   - Step 1: Trims surrounding whitespace (including a trailing CR)
//   - Step 2: Treats blank lines and "#" comments as skipped without diagnostic
//   - Step 3: Splits on "@"; name is segment 0 verbatim
//   - Step 4: Parses segment 1 with version.Parse; later segments are ignored
//
// Parameters:
//   - text: One line from a definitions source
//
// Returns:
//   - Package: The parsed package when err is nil
//   - error: errors.ErrBlankLine for blank or comment lines; *errors.SkippedLineError
//     for lines without the name@version shape or with a malformed version
func ParseLine(text string) (Package, error) {
	line := strings.TrimSpace(text)
	if line == "" || strings.HasPrefix(line, commentPrefix) {
		return Package{}, errors.ErrBlankLine
	}

	segments := strings.SplitN(line, Separator, 3)
	if len(segments) < 2 {
		return Package{}, errors.NewSkippedLineError(line, "expected name@version", nil)
	}
	name, rawVersion := segments[0], segments[1]
	if name == "" {
		return Package{}, errors.NewSkippedLineError(line, "missing package name", nil)
	}

	v, err := version.Parse(rawVersion)
	if err != nil {
		return Package{}, errors.NewSkippedLineError(line, "invalid version", err)
	}

	return Package{Name: name, Version: v}, nil
}

// Diagnostic describes one definitions line that was skipped.
//
// Fields:
//   - Line: 1-based line number in the source
//   - Text: The raw line
//   - Err: The *errors.SkippedLineError explaining the skip
type Diagnostic struct {
	Line int
	Text string
	Err  error
}

// String renders the diagnostic as "line N: <reason>".
func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %v", d.Line, d.Err)
}

// ParseLines parses every line and separates packages from diagnostics.
//
// Blank and comment lines produce neither. Package order follows line order.
//
// Parameters:
//   - lines: Raw definitions lines in source order
//
// Returns:
//   - []Package: Parsed packages (never nil)
//   - []Diagnostic: One entry per malformed line, in source order
func ParseLines(lines []string) ([]Package, []Diagnostic) {
	pkgs := make([]Package, 0, len(lines))
	var diags []Diagnostic

	for i, line := range lines {
		p, err := ParseLine(line)
		switch {
		case err == nil:
			pkgs = append(pkgs, p)
		case err == errors.ErrBlankLine:
			continue
		default:
			diags = append(diags, Diagnostic{Line: i + 1, Text: line, Err: err})
		}
	}

	return pkgs, diags
}

// String returns "name@version".
func (p Package) String() string {
	return p.Name + Separator + p.Version.String()
}

// CompareVersions orders a and b by version alone.
//
// Callers are responsible for matching names first.
//
// Returns:
//   - int: -1, 0 or +1 as version.Compare
func CompareVersions(a, b Package) int {
	return a.Version.Compare(b.Version)
}
