package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteDefinitions writes lines as a definitions file under dir.
//
// Parameters:
//   - t: Testing instance; fails the test on error
//   - dir: Directory to write into
//   - lines: File lines, joined with newlines
//
// Returns:
//   - string: Path of the written file
func WriteDefinitions(t *testing.T, dir string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, "packages.list")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return path
}

// WriteInstalledPackage creates dir/subdir/package.json with the given name
// and version.
//
// Parameters:
//   - t: Testing instance; fails the test on error
//   - dir: The packages directory
//   - subdir: Package directory name, usually the package name
//   - name: Value of the "name" field
//   - version: Value of the "version" field
//
// Returns:
//   - string: Path of the package directory
func WriteInstalledPackage(t *testing.T, dir, subdir, name, version string) string {
	t.Helper()
	data, err := json.MarshalIndent(map[string]string{"name": name, "version": version}, "", "  ")
	require.NoError(t, err)
	return WriteManifest(t, dir, subdir, string(data))
}

// WriteManifest writes raw package.json content into dir/subdir.
func WriteManifest(t *testing.T, dir, subdir, content string) string {
	t.Helper()
	pkgDir := filepath.Join(dir, subdir)
	require.NoError(t, os.MkdirAll(pkgDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(pkgDir, "package.json"), []byte(content), 0o644))
	return pkgDir
}

// NewPackagesDir creates an empty packages directory under t.TempDir and
// fills it with name@version pairs.
//
// Parameters:
//   - t: Testing instance
//   - specs: name@version strings; each becomes <name>/package.json
//
// Returns:
//   - string: The packages directory
func NewPackagesDir(t *testing.T, specs ...string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "packages")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for _, spec := range specs {
		name, ver, ok := strings.Cut(spec, "@")
		require.True(t, ok, "fixture spec %q needs name@version", spec)
		WriteInstalledPackage(t, dir, name, name, ver)
	}
	return dir
}
