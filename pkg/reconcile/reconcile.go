// Package reconcile computes which desired packages still need installing.
//
// The diff is asymmetric: packages that are only installed are never
// reported, and an installed version equal to or newer than the desired one
// satisfies the definition (there is no downgrade path).
package reconcile

import (
	"github.com/ajxudir/pkgsync/pkg/packages"
	"github.com/ajxudir/pkgsync/pkg/verbose"
	"github.com/ajxudir/pkgsync/pkg/version"
)

// Action is the outcome of comparing one desired package with the installed set.
type Action string

const (
	// ActionInstall means no installed package has the desired name.
	ActionInstall Action = "install"
	// ActionUpgrade means the installed version is older than desired.
	ActionUpgrade Action = "upgrade"
	// ActionSatisfied means the installed version equals the desired one.
	ActionSatisfied Action = "satisfied"
	// ActionNewer means the installed version is newer than desired.
	// The package is left alone.
	ActionNewer Action = "newer"
)

// NeedsInstall reports whether the action requires running the installer.
func (a Action) NeedsInstall() bool {
	return a == ActionInstall || a == ActionUpgrade
}

// Decision records what happens to one desired package.
//
// Fields:
//   - Package: The desired package
//   - Installed: The installed version matched by name, nil when absent
//   - Action: What the reconciler decided
type Decision struct {
	Package   packages.Package `json:"package"`
	Installed *version.Version `json:"installed,omitempty"`
	Action    Action           `json:"action"`
}

// Plan classifies every desired package against the installed set.
//
// It performs the following operations:
//   - Step 1: Indexes installed packages by name; the first entry for a name wins
//   - Step 2: Walks desired in order and compares versions of name matches
//
// Parameters:
//   - desired: Desired packages in definitions order
//   - installed: Installed packages in any order
//
// Returns:
//   - []Decision: One decision per desired package, in desired order
func Plan(desired, installed []packages.Package) []Decision {
	index := indexByName(installed)
	decisions := make([]Decision, 0, len(desired))

	for _, d := range desired {
		current, ok := index[d.Name]
		if !ok {
			decisions = append(decisions, Decision{Package: d, Action: ActionInstall})
			continue
		}

		v := current.Version
		decision := Decision{Package: d, Installed: &v}
		switch packages.CompareVersions(d, current) {
		case 1:
			decision.Action = ActionUpgrade
		case 0:
			decision.Action = ActionSatisfied
		default:
			decision.Action = ActionNewer
		}
		verbose.Decision(d.String(), v.String(), string(decision.Action))
		decisions = append(decisions, decision)
	}

	return decisions
}

// Reconcile returns the desired packages that must be installed or upgraded.
//
// A desired package is kept when no installed package has its name, or when
// its version is strictly greater than the first installed match. Output
// preserves desired order. Neither input is modified.
//
// Parameters:
//   - desired: Desired packages in definitions order
//   - installed: Installed packages in any order
//
// Returns:
//   - []packages.Package: Packages to install (never nil)
func Reconcile(desired, installed []packages.Package) []packages.Package {
	return ToInstall(Plan(desired, installed))
}

// ToInstall extracts the packages whose decision needs the installer.
func ToInstall(decisions []Decision) []packages.Package {
	out := make([]packages.Package, 0, len(decisions))
	for _, d := range decisions {
		if d.Action.NeedsInstall() {
			out = append(out, d.Package)
		}
	}
	return out
}

// Counts tallies decisions by action.
func Counts(decisions []Decision) map[Action]int {
	counts := make(map[Action]int, 4)
	for _, d := range decisions {
		counts[d.Action]++
	}
	return counts
}

// indexByName maps each name to its first installed package.
func indexByName(installed []packages.Package) map[string]packages.Package {
	index := make(map[string]packages.Package, len(installed))
	for _, p := range installed {
		if _, seen := index[p.Name]; seen {
			verbose.Printf("Duplicate installed package %q ignored (keeping first at %s)", p.Name, index[p.Name].Version)
			continue
		}
		index[p.Name] = p
	}
	return index
}
