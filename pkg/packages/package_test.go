package packages

import (
	"encoding/json"
	stderrors "errors"
	"testing"

	"github.com/ajxudir/pkgsync/pkg/errors"
	"github.com/ajxudir/pkgsync/pkg/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseLine tests parsing of well-formed definitions lines.
//
// It verifies:
//   - Name is the text before the first "@"
//   - Anything after a second "@" is ignored
//   - Short versions are padded with zeros
//   - Surrounding whitespace and CR line endings are ignored
func TestParseLine(t *testing.T) {
	tests := []struct {
		line    string
		name    string
		version string
	}{
		{"ide-rust@0.21.0", "ide-rust", "0.21.0"},
		{"slime@3.4.0", "slime", "3.4.0"},
		{"minimap@4", "minimap", "4.0.0"},
		{"  linter@2.3  ", "linter", "2.3.0"},
		{"file-icons@2.1.47\r", "file-icons", "2.1.47"},
		{"pkg with space@1.0.0", "pkg with space", "1.0.0"},
		{"foo@1.2.3@extra", "foo", "1.2.3"},
		{"foo@2@", "foo", "2.0.0"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			p, err := ParseLine(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.name, p.Name)
			assert.Equal(t, tt.version, p.Version.String())
		})
	}
}

// TestParseLineSkipped tests lines that must be skipped.
//
// It verifies:
//   - Blank and comment lines return ErrBlankLine
//   - Lines without "@" or without a name return a SkippedLineError
//   - Malformed versions return a SkippedLineError wrapping ErrMalformedVersion
func TestParseLineSkipped(t *testing.T) {
	t.Run("blank", func(t *testing.T) {
		for _, line := range []string{"", "   ", "\t", "# comment", "  #slime@1.0.0"} {
			_, err := ParseLine(line)
			assert.Equal(t, errors.ErrBlankLine, err, "line %q", line)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		tests := []struct {
			line      string
			reason    string
			versionEr bool
		}{
			{"slime", "expected name@version", false},
			{"@1.0.0", "missing package name", false},
			{"slime@", "invalid version", true},
			{"slime@latest", "invalid version", true},
			{"slime@1.x", "invalid version", true},
			{"slime@@1.0.0", "invalid version", true},
		}

		for _, tt := range tests {
			t.Run(tt.line, func(t *testing.T) {
				_, err := ParseLine(tt.line)
				sle, ok := errors.IsSkippedLine(err)
				require.True(t, ok, "expected SkippedLineError, got %v", err)
				assert.Equal(t, tt.reason, sle.Reason)
				assert.Equal(t, tt.versionEr, stderrors.Is(err, errors.ErrMalformedVersion))
			})
		}
	})
}

// TestParseLines tests aggregation of packages and diagnostics.
//
// It verifies:
//   - Package order follows line order
//   - Blank lines produce neither packages nor diagnostics
//   - Diagnostics carry 1-based line numbers and the raw text
func TestParseLines(t *testing.T) {
	lines := []string{
		"ide-rust@0.21.0",
		"",
		"broken",
		"# pinned",
		"slime@3.4.0",
		"bad@x.y",
	}

	pkgs, diags := ParseLines(lines)

	require.Len(t, pkgs, 2)
	assert.Equal(t, "ide-rust@0.21.0", pkgs[0].String())
	assert.Equal(t, "slime@3.4.0", pkgs[1].String())

	require.Len(t, diags, 2)
	assert.Equal(t, 3, diags[0].Line)
	assert.Equal(t, "broken", diags[0].Text)
	assert.Equal(t, 6, diags[1].Line)
	assert.Contains(t, diags[1].String(), "line 6:")
	assert.True(t, stderrors.Is(diags[1].Err, errors.ErrMalformedVersion))
}

// TestParseLinesEmpty tests that an empty source yields an empty, non-nil slice.
func TestParseLinesEmpty(t *testing.T) {
	pkgs, diags := ParseLines(nil)
	assert.NotNil(t, pkgs)
	assert.Empty(t, pkgs)
	assert.Empty(t, diags)
}

// TestNew tests the name invariant enforced by New.
func TestNew(t *testing.T) {
	p, err := New("slime", version.New(3, 4, 0))
	require.NoError(t, err)
	assert.Equal(t, "slime@3.4.0", p.String())

	_, err = New("", version.New(1, 0, 0))
	assert.Error(t, err)

	_, err = New("a@b", version.New(1, 0, 0))
	assert.Error(t, err)
}

// TestCompareVersions tests version-only comparison of packages.
//
// It verifies:
//   - Names are ignored
//   - The result matches version.Compare
func TestCompareVersions(t *testing.T) {
	a := Package{Name: "a", Version: version.MustParse("1.2.0")}
	b := Package{Name: "b", Version: version.MustParse("1.3.0")}

	assert.Equal(t, -1, CompareVersions(a, b))
	assert.Equal(t, 1, CompareVersions(b, a))
	assert.Equal(t, 0, CompareVersions(a, Package{Name: "z", Version: version.MustParse("1.2")}))
}

// TestPackageJSON tests that packages encode with a string version.
func TestPackageJSON(t *testing.T) {
	data, err := json.Marshal(Package{Name: "slime", Version: version.New(3, 4, 0)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"slime","version":"3.4.0"}`, string(data))

	var p Package
	require.NoError(t, json.Unmarshal([]byte(`{"name":"ide-rust","version":"0.19.2"}`), &p))
	assert.Equal(t, "ide-rust@0.19.2", p.String())
}
