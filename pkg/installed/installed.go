// Package installed discovers packages already present in a packages
// directory. Each immediate subdirectory holding a package.json with a name
// and a version counts as one installed package.
package installed

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/ajxudir/pkgsync/pkg/packages"
	"github.com/ajxudir/pkgsync/pkg/verbose"
	"github.com/ajxudir/pkgsync/pkg/version"
)

// ManifestName is the per-package metadata file.
const ManifestName = "package.json"

// manifest holds the package.json fields pkgsync reads.
type manifest struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Scan lists the packages installed under dir.
//
// It performs the following operations:
//   - Step 1: Reads the immediate entries of dir, sorted by name
//   - Step 2: Decodes <entry>/package.json for every directory entry
//   - Step 3: Drops entries that are unreadable, undecodable, nameless or
//     carry an unparsable version, logging the reason when verbose
//
// Manifest versions such as "v1.2.3" or "1.2.3-beta.1" are reduced to their
// numeric core before parsing.
//
// Parameters:
//   - dir: The packages directory
//
// Returns:
//   - []packages.Package: Installed packages ordered by directory name (never nil)
//   - error: Only when dir itself cannot be read
func Scan(dir string) ([]packages.Package, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read packages directory: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	result := make([]packages.Package, 0, len(entries))
	for _, entry := range entries {
		if !isDir(dir, entry) {
			continue
		}
		p, err := readPackage(filepath.Join(dir, entry.Name()))
		if err != nil {
			verbose.PackageSkipped(entry.Name(), err.Error())
			continue
		}
		result = append(result, p)
	}

	verbose.Printf("Found %d installed package(s) in %s", len(result), dir)
	return result, nil
}

// isDir reports whether entry is a directory, following symlinks as apm
// links local packages into the packages directory that way.
func isDir(dir string, entry os.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(dir, entry.Name()))
	return err == nil && info.IsDir()
}

// readPackage reads one package directory.
func readPackage(pkgDir string) (packages.Package, error) {
	data, err := os.ReadFile(filepath.Join(pkgDir, ManifestName))
	if err != nil {
		return packages.Package{}, err
	}

	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return packages.Package{}, fmt.Errorf("invalid %s: %w", ManifestName, err)
	}

	v, err := version.Parse(version.Normalize(m.Version))
	if err != nil {
		return packages.Package{}, err
	}
	return packages.New(m.Name, v)
}
