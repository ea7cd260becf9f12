package output

import (
	"time"

	"github.com/ajxudir/pkgsync/pkg/batch"
	"github.com/ajxudir/pkgsync/pkg/errors"
	"github.com/ajxudir/pkgsync/pkg/packages"
	"github.com/ajxudir/pkgsync/pkg/reconcile"
	"github.com/google/uuid"
	"github.com/iancoleman/orderedmap"
)

// NewRunID returns a fresh identifier for a sync run.
func NewRunID() string {
	return uuid.NewString()
}

// newActionCounts tallies decisions into both the plain and ordered forms.
func newActionCounts(decisions []reconcile.Decision) ActionCounts {
	counts := reconcile.Counts(decisions)

	ordered := orderedmap.New()
	ordered.SetEscapeHTML(false)
	for _, a := range actionOrder {
		ordered.Set(string(a), counts[a])
	}

	return ActionCounts{
		Install:   counts[reconcile.ActionInstall],
		Upgrade:   counts[reconcile.ActionUpgrade],
		Satisfied: counts[reconcile.ActionSatisfied],
		Newer:     counts[reconcile.ActionNewer],
		Ordered:   ordered,
	}
}

func installedString(d reconcile.Decision) string {
	if d.Installed == nil {
		return ""
	}
	return d.Installed.String()
}

// diagnosticWarnings renders skipped definitions lines.
func diagnosticWarnings(diags []packages.Diagnostic) []string {
	if len(diags) == 0 {
		return nil
	}
	out := make([]string, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.String())
	}
	return out
}

// NewPlanResult builds the plan report.
//
// Parameters:
//   - decisions: Reconciler output in definitions order
//   - diags: Skipped definitions lines
//
// Returns:
//   - *PlanResult: The report
func NewPlanResult(decisions []reconcile.Decision, diags []packages.Diagnostic) *PlanResult {
	result := &PlanResult{
		Packages: make([]PlanEntry, 0, len(decisions)),
		Warnings: diagnosticWarnings(diags),
	}
	for _, d := range decisions {
		result.Packages = append(result.Packages, PlanEntry{
			Name:      d.Package.Name,
			Version:   d.Package.Version.String(),
			Installed: installedString(d),
			Action:    string(d.Action),
		})
	}
	result.Summary = PlanSummary{
		TotalPackages: len(decisions),
		ToInstall:     len(reconcile.ToInstall(decisions)),
		ActionCounts:  newActionCounts(decisions),
	}
	return result
}

// SyncRun is the input to NewSyncResult.
//
// Fields:
//   - RunID: Identifier from NewRunID
//   - Started, Finished: Wall-clock bounds of the run
//   - DryRun: Whether installs were skipped
//   - Decisions: Reconciler output in definitions order
//   - Outcomes: Batch outcomes in any order; nil for a dry run
//   - Diagnostics: Skipped definitions lines
type SyncRun struct {
	RunID       string
	Started     time.Time
	Finished    time.Time
	DryRun      bool
	Decisions   []reconcile.Decision
	Outcomes    []batch.Outcome
	Diagnostics []packages.Diagnostic
}

// NewSyncResult builds the sync report.
//
// Outcomes arrive in completion order; they are matched back to decisions
// by name@version so the report follows definitions order. A spec listed
// twice consumes one outcome per occurrence.
//
// Parameters:
//   - run: Everything known about the run
//
// Returns:
//   - *SyncResult: The report
func NewSyncResult(run SyncRun) *SyncResult {
	pending := make(map[string][]batch.Outcome, len(run.Outcomes))
	for _, o := range run.Outcomes {
		key := o.Package.String()
		pending[key] = append(pending[key], o)
	}

	result := &SyncResult{
		RunID:      run.RunID,
		StartedAt:  run.Started.Format(time.RFC3339),
		FinishedAt: run.Finished.Format(time.RFC3339),
		DryRun:     run.DryRun,
		Packages:   make([]SyncEntry, 0, len(run.Decisions)),
		Warnings:   diagnosticWarnings(run.Diagnostics),
	}

	summary := SyncSummary{
		TotalPackages: len(run.Decisions),
		ActionCounts:  newActionCounts(run.Decisions),
	}

	for _, d := range run.Decisions {
		entry := SyncEntry{
			Name:      d.Package.Name,
			Version:   d.Package.Version.String(),
			Installed: installedString(d),
			Action:    string(d.Action),
		}

		switch {
		case !d.Action.NeedsInstall():
			entry.Status = StatusUpToDate
			summary.UpToDatePackages++
		case run.DryRun:
			entry.Status = StatusPlanned
		default:
			key := d.Package.String()
			queue := pending[key]
			if len(queue) == 0 {
				entry.Status = StatusFailed
				entry.Error = "no install result recorded"
				summary.FailedPackages++
				result.Errors = append(result.Errors, key+": "+entry.Error)
				break
			}
			o := queue[0]
			pending[key] = queue[1:]

			entry.DurationMs = o.Duration.Milliseconds()
			if o.Succeeded() {
				entry.Status = StatusInstalled
				entry.Output = o.Output
				summary.InstalledPackages++
			} else {
				entry.Status = StatusFailed
				entry.Error = o.Err.Error()
				if af, ok := errors.IsActionFailure(o.Err); ok {
					entry.Error = af.Reason
				}
				summary.FailedPackages++
				result.Errors = append(result.Errors, o.Err.Error())
			}
		}

		result.Packages = append(result.Packages, entry)
	}

	result.Summary = summary
	return result
}

// NewInstalledResult builds the installed-packages report.
func NewInstalledResult(dir string, pkgs []packages.Package) *InstalledResult {
	result := &InstalledResult{
		Directory: dir,
		Total:     len(pkgs),
		Packages:  make([]InstalledEntry, 0, len(pkgs)),
	}
	for _, p := range pkgs {
		result.Packages = append(result.Packages, InstalledEntry{Name: p.Name, Version: p.Version.String()})
	}
	return result
}
