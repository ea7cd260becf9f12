package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/ajxudir/pkgsync/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRunInstalled tests the behavior of the installed command.
//
// It verifies:
//   - Installed packages are listed by directory name
//   - A missing packages directory lists nothing
//   - JSON output carries the directory and total
func TestRunInstalled(t *testing.T) {
	t.Run("table", func(t *testing.T) {
		resetCommandState(t)
		f := newFixture(t, nil, "zeta@1.0.0", "alpha@0.2.0")

		out, err := runCommand(t, "installed")
		require.NoError(t, err)
		assert.Less(t, strings.Index(out, "alpha"), strings.Index(out, "zeta"))
		assert.Contains(t, out, "2 package(s) in "+f.packages)
	})

	t.Run("missing directory", func(t *testing.T) {
		resetCommandState(t)
		dir := missingPath(t)
		useConfig(t, testutil.NewConfig().WithPackagesDir(dir).Build())

		out, err := runCommand(t, "installed")
		require.NoError(t, err)
		assert.Contains(t, out, "No packages installed in "+dir)
	})

	t.Run("json", func(t *testing.T) {
		resetCommandState(t)
		f := newFixture(t, nil, "alpha@1.2.3")

		out, err := runCommand(t, "installed", "-o", "json")
		require.NoError(t, err)

		var report struct {
			Directory string `json:"directory"`
			Total     int    `json:"total_packages"`
			Packages  []struct {
				Name    string `json:"name"`
				Version string `json:"version"`
			} `json:"packages"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &report))
		assert.Equal(t, f.packages, report.Directory)
		assert.Equal(t, 1, report.Total)
		assert.Equal(t, "1.2.3", report.Packages[0].Version)
	})
}
