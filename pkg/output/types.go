package output

import (
	"encoding/xml"

	"github.com/ajxudir/pkgsync/pkg/constants"
	"github.com/ajxudir/pkgsync/pkg/reconcile"
	"github.com/iancoleman/orderedmap"
)

// Action names as they appear in reports.
const (
	ActionInstall   = string(reconcile.ActionInstall)
	ActionUpgrade   = string(reconcile.ActionUpgrade)
	ActionSatisfied = string(reconcile.ActionSatisfied)
	ActionNewer     = string(reconcile.ActionNewer)
)

// Per-package sync statuses.
const (
	StatusInstalled = constants.StatusInstalled
	StatusFailed    = constants.StatusFailed
	StatusPlanned   = constants.StatusPlanned
	StatusUpToDate  = constants.StatusUpToDate
)

// actionOrder fixes the key order of the actions summary.
var actionOrder = []reconcile.Action{
	reconcile.ActionInstall,
	reconcile.ActionUpgrade,
	reconcile.ActionSatisfied,
	reconcile.ActionNewer,
}

// ActionCounts tallies decisions per action.
//
// JSON output uses Ordered so keys follow install, upgrade, satisfied,
// newer instead of alphabetical order; XML and CSV use the plain fields.
type ActionCounts struct {
	Install   int `json:"-" xml:"install"`
	Upgrade   int `json:"-" xml:"upgrade"`
	Satisfied int `json:"-" xml:"satisfied"`
	Newer     int `json:"-" xml:"newer"`

	Ordered *orderedmap.OrderedMap `json:"actions" xml:"-"`
}

// PlanResult is the report of the plan command.
//
// Fields:
//   - XMLName: XML root element name
//   - Summary: Totals per action
//   - Packages: One entry per desired package, in definitions order
//   - Warnings: Skipped definitions lines
type PlanResult struct {
	XMLName  xml.Name    `json:"-" xml:"planResult"`
	Summary  PlanSummary `json:"summary" xml:"summary"`
	Packages []PlanEntry `json:"packages" xml:"packages>package"`
	Warnings []string    `json:"warnings,omitempty" xml:"warnings>warning,omitempty"`
}

// PlanSummary holds plan totals.
type PlanSummary struct {
	TotalPackages int `json:"total_packages" xml:"totalPackages"`
	ToInstall     int `json:"to_install" xml:"toInstall"`
	ActionCounts
}

// PlanEntry is one reconciler decision.
//
// Fields:
//   - Name: Package name
//   - Version: Desired version
//   - Installed: Installed version, "" when absent
//   - Action: install, upgrade, satisfied or newer
type PlanEntry struct {
	Name      string `json:"name" xml:"name"`
	Version   string `json:"version" xml:"version"`
	Installed string `json:"installed,omitempty" xml:"installed,omitempty"`
	Action    string `json:"action" xml:"action"`
}

// SyncResult is the report of the sync command.
//
// Fields:
//   - XMLName: XML root element name
//   - RunID: Unique identifier of this run, for correlating logs
//   - StartedAt: RFC 3339 start time
//   - FinishedAt: RFC 3339 end time
//   - DryRun: Whether installs were skipped
//   - Summary: Totals per action and per install status
//   - Packages: One entry per desired package, in definitions order
//   - Warnings: Skipped definitions lines
//   - Errors: One message per failed install
type SyncResult struct {
	XMLName    xml.Name    `json:"-" xml:"syncResult"`
	RunID      string      `json:"run_id" xml:"runId,attr"`
	StartedAt  string      `json:"started_at" xml:"startedAt"`
	FinishedAt string      `json:"finished_at" xml:"finishedAt"`
	DryRun     bool        `json:"dry_run" xml:"dryRun"`
	Summary    SyncSummary `json:"summary" xml:"summary"`
	Packages   []SyncEntry `json:"packages" xml:"packages>package"`
	Warnings   []string    `json:"warnings,omitempty" xml:"warnings>warning,omitempty"`
	Errors     []string    `json:"errors,omitempty" xml:"errors>error,omitempty"`
}

// SyncSummary holds sync totals.
type SyncSummary struct {
	TotalPackages     int `json:"total_packages" xml:"totalPackages"`
	InstalledPackages int `json:"installed_packages" xml:"installedPackages"`
	FailedPackages    int `json:"failed_packages" xml:"failedPackages"`
	UpToDatePackages  int `json:"uptodate_packages" xml:"uptodatePackages"`
	ActionCounts
}

// SyncEntry is the result for one desired package.
//
// Fields:
//   - Name: Package name
//   - Version: Desired version
//   - Installed: Version installed before the run, "" when absent
//   - Action: The reconciler decision
//   - Status: installed, failed, planned or up-to-date
//   - DurationMs: Time spent in the install command
//   - Output: Install command output on success
//   - Error: Failure reason
type SyncEntry struct {
	Name       string `json:"name" xml:"name"`
	Version    string `json:"version" xml:"version"`
	Installed  string `json:"installed,omitempty" xml:"installed,omitempty"`
	Action     string `json:"action" xml:"action"`
	Status     string `json:"status" xml:"status"`
	DurationMs int64  `json:"duration_ms,omitempty" xml:"durationMs,omitempty"`
	Output     string `json:"output,omitempty" xml:"output,omitempty"`
	Error      string `json:"error,omitempty" xml:"error,omitempty"`
}

// InstalledResult is the report of the installed command.
type InstalledResult struct {
	XMLName   xml.Name         `json:"-" xml:"installedResult"`
	Directory string           `json:"directory" xml:"directory"`
	Total     int              `json:"total_packages" xml:"totalPackages"`
	Packages  []InstalledEntry `json:"packages" xml:"packages>package"`
}

// InstalledEntry is one installed package.
type InstalledEntry struct {
	Name    string `json:"name" xml:"name"`
	Version string `json:"version" xml:"version"`
}
