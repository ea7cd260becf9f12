// Package version implements the numeric MAJOR.MINOR.PATCH version model
// used to decide whether a desired package is newer than the installed one.
//
// Pre-release and build metadata are not part of the model; Normalize strips
// them from manifest versions before parsing.
package version

import (
	"strconv"
	"strings"

	"github.com/ajxudir/pkgsync/pkg/errors"
	"golang.org/x/mod/semver"
)

// segments is the number of dot-separated fields that carry meaning.
const segments = 3

// Version is an immutable (major, minor, patch) triple.
type Version struct {
	Major uint64
	Minor uint64
	Patch uint64
}

// New returns the version major.minor.patch.
func New(major, minor, patch uint64) Version {
	return Version{Major: major, Minor: minor, Patch: patch}
}

// Parse parses a dot-separated version.
//
// It performs the following operations:
//   - Step 1: Splits text on "." and keeps at most the first three segments
//   - Step 2: Parses each present segment as a non-negative integer
//   - Step 3: Leaves absent trailing segments at 0 ("1.2" is 1.2.0)
//
// Parameters:
//   - text: Version text such as "1", "1.2" or "1.2.3"; extra segments are ignored
//
// Returns:
//   - Version: The parsed version
//   - error: *errors.MalformedVersionError when a present segment is empty,
//     signed or non-numeric
func Parse(text string) (Version, error) {
	parts := strings.Split(text, ".")
	if len(parts) > segments {
		parts = parts[:segments]
	}

	var fields [segments]uint64
	for i, part := range parts {
		n, err := parseSegment(text, part)
		if err != nil {
			return Version{}, err
		}
		fields[i] = n
	}

	return Version{Major: fields[0], Minor: fields[1], Patch: fields[2]}, nil
}

// MustParse is like Parse but panics on malformed input. Intended for tests
// and literals.
func MustParse(text string) Version {
	v, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return v
}

// parseSegment converts one segment, rejecting signs so "+1" and "-1" are
// both malformed.
func parseSegment(text, part string) (uint64, error) {
	if part == "" {
		return 0, errors.NewMalformedVersionError(text, part, nil)
	}
	if part[0] == '+' || part[0] == '-' {
		return 0, errors.NewMalformedVersionError(text, part, nil)
	}
	n, err := strconv.ParseUint(part, 10, 64)
	if err != nil {
		return 0, errors.NewMalformedVersionError(text, part, err)
	}
	return n, nil
}

// String returns the canonical "major.minor.patch" form.
func (v Version) String() string {
	var b strings.Builder
	b.WriteString(strconv.FormatUint(v.Major, 10))
	b.WriteByte('.')
	b.WriteString(strconv.FormatUint(v.Minor, 10))
	b.WriteByte('.')
	b.WriteString(strconv.FormatUint(v.Patch, 10))
	return b.String()
}

// Compare orders a and b by major, then minor, then patch.
//
// Returns:
//   - int: -1 if a < b, 0 if a == b, +1 if a > b
func Compare(a, b Version) int {
	if c := compareField(a.Major, b.Major); c != 0 {
		return c
	}
	if c := compareField(a.Minor, b.Minor); c != 0 {
		return c
	}
	return compareField(a.Patch, b.Patch)
}

func compareField(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Compare is shorthand for Compare(v, o).
func (v Version) Compare(o Version) int {
	return Compare(v, o)
}

// Normalize reduces a manifest version to its numeric core.
//
// It performs the following operations:
//   - Step 1: Trims whitespace and adds the "v" prefix semver expects
//   - Step 2: When the result is valid semver, drops pre-release and build
//     suffixes via semver.Canonical (so "1.2" becomes "1.2.0")
//   - Step 3: Otherwise returns the trimmed input without a leading "v",
//     leaving Parse to decide whether it is acceptable
//
// Parameters:
//   - text: Version as written in a package manifest (e.g. "v1.2.3-beta.1")
//
// Returns:
//   - string: Numeric version text suitable for Parse
func Normalize(text string) string {
	trimmed := strings.TrimSpace(text)
	candidate := trimmed
	if !strings.HasPrefix(candidate, "v") {
		candidate = "v" + candidate
	}

	if semver.IsValid(candidate) {
		canonical := semver.Canonical(candidate)
		if pre := semver.Prerelease(canonical); pre != "" {
			canonical = strings.TrimSuffix(canonical, pre)
		}
		return strings.TrimPrefix(canonical, "v")
	}

	return strings.TrimPrefix(trimmed, "v")
}

// MarshalText encodes the version as "major.minor.patch".
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}
