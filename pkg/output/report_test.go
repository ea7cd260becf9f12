package output

import (
	stderrors "errors"
	"testing"
	"time"

	"github.com/ajxudir/pkgsync/pkg/batch"
	"github.com/ajxudir/pkgsync/pkg/errors"
	"github.com/ajxudir/pkgsync/pkg/packages"
	"github.com/ajxudir/pkgsync/pkg/reconcile"
	"github.com/ajxudir/pkgsync/pkg/version"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pkg(name, v string) packages.Package {
	return packages.Package{Name: name, Version: version.MustParse(v)}
}

// sampleDecisions covers every action once.
func sampleDecisions() []reconcile.Decision {
	desired := []packages.Package{
		pkg("ide-rust", "0.21.0"),
		pkg("slime", "3.4.0"),
		pkg("minimap", "4.0.0"),
		pkg("linter", "1.0.0"),
	}
	installed := []packages.Package{
		pkg("ide-rust", "0.20.0"),
		pkg("minimap", "4.0.0"),
		pkg("linter", "2.0.0"),
	}
	return reconcile.Plan(desired, installed)
}

// TestNewRunID tests that run IDs are unique UUIDs.
func TestNewRunID(t *testing.T) {
	a, b := NewRunID(), NewRunID()
	assert.NotEqual(t, a, b)
	_, err := uuid.Parse(a)
	assert.NoError(t, err)
}

// TestNewPlanResult tests the plan report.
//
// It verifies:
//   - Entries follow definitions order with installed versions
//   - Totals and per-action counts are correct
//   - Ordered action keys follow install, upgrade, satisfied, newer
//   - Diagnostics become warnings
func TestNewPlanResult(t *testing.T) {
	diags := []packages.Diagnostic{{Line: 3, Text: "bad", Err: stderrors.New("skipping line \"bad\": expected name@version")}}
	r := NewPlanResult(sampleDecisions(), diags)

	require.Len(t, r.Packages, 4)
	assert.Equal(t, PlanEntry{Name: "ide-rust", Version: "0.21.0", Installed: "0.20.0", Action: ActionUpgrade}, r.Packages[0])
	assert.Equal(t, PlanEntry{Name: "slime", Version: "3.4.0", Action: ActionInstall}, r.Packages[1])
	assert.Equal(t, ActionSatisfied, r.Packages[2].Action)
	assert.Equal(t, ActionNewer, r.Packages[3].Action)

	assert.Equal(t, 4, r.Summary.TotalPackages)
	assert.Equal(t, 2, r.Summary.ToInstall)
	assert.Equal(t, 1, r.Summary.Install)
	assert.Equal(t, 1, r.Summary.Upgrade)
	assert.Equal(t, 1, r.Summary.Satisfied)
	assert.Equal(t, 1, r.Summary.Newer)
	assert.Equal(t, []string{"install", "upgrade", "satisfied", "newer"}, r.Summary.Ordered.Keys())

	assert.Equal(t, []string{`line 3: skipping line "bad": expected name@version`}, r.Warnings)
}

// TestNewSyncResult tests the sync report.
//
// It verifies:
//   - Outcomes in completion order are matched back to definitions order
//   - Successes carry output and duration, failures carry the install reason
//   - Packages needing no install are up-to-date
//   - Run metadata is formatted as RFC 3339
func TestNewSyncResult(t *testing.T) {
	decisions := sampleDecisions()
	started := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

	outcomes := []batch.Outcome{
		{Package: pkg("slime", "3.4.0"), Err: errors.NewActionFailure("slime@3.4.0", stderrors.New("exit status 1: not found"))},
		{Package: pkg("ide-rust", "0.21.0"), Output: "Installing ide-rust@0.21.0 done\n", Duration: 1500 * time.Millisecond},
	}

	r := NewSyncResult(SyncRun{
		RunID:     "run-1",
		Started:   started,
		Finished:  started.Add(2 * time.Second),
		Decisions: decisions,
		Outcomes:  outcomes,
	})

	assert.Equal(t, "run-1", r.RunID)
	assert.Equal(t, "2026-10-17T09:00:00Z", r.StartedAt)
	assert.Equal(t, "2026-10-17T09:00:02Z", r.FinishedAt)
	assert.False(t, r.DryRun)

	require.Len(t, r.Packages, 4)
	assert.Equal(t, SyncEntry{
		Name: "ide-rust", Version: "0.21.0", Installed: "0.20.0", Action: ActionUpgrade,
		Status: StatusInstalled, DurationMs: 1500, Output: "Installing ide-rust@0.21.0 done\n",
	}, r.Packages[0])
	assert.Equal(t, StatusFailed, r.Packages[1].Status)
	assert.Equal(t, "exit status 1: not found", r.Packages[1].Error)
	assert.Equal(t, StatusUpToDate, r.Packages[2].Status)
	assert.Equal(t, StatusUpToDate, r.Packages[3].Status)

	assert.Equal(t, 1, r.Summary.InstalledPackages)
	assert.Equal(t, 1, r.Summary.FailedPackages)
	assert.Equal(t, 2, r.Summary.UpToDatePackages)
	assert.Equal(t, []string{"slime@3.4.0: install failed: exit status 1: not found"}, r.Errors)
}

// TestNewSyncResultDryRun tests that a dry run marks installs as planned.
func TestNewSyncResultDryRun(t *testing.T) {
	r := NewSyncResult(SyncRun{RunID: "x", DryRun: true, Decisions: sampleDecisions()})
	assert.True(t, r.DryRun)
	assert.Equal(t, StatusPlanned, r.Packages[0].Status)
	assert.Equal(t, StatusPlanned, r.Packages[1].Status)
	assert.Zero(t, r.Summary.FailedPackages)
	assert.Empty(t, r.Errors)
}

// TestNewSyncResultDuplicateSpecs tests one outcome per repeated definition.
func TestNewSyncResultDuplicateSpecs(t *testing.T) {
	decisions := reconcile.Plan([]packages.Package{pkg("a", "1.0.0"), pkg("a", "1.0.0")}, nil)
	r := NewSyncResult(SyncRun{
		Decisions: decisions,
		Outcomes: []batch.Outcome{
			{Package: pkg("a", "1.0.0"), Output: "first"},
			{Package: pkg("a", "1.0.0"), Err: stderrors.New("second failed")},
		},
	})

	assert.Equal(t, StatusInstalled, r.Packages[0].Status)
	assert.Equal(t, StatusFailed, r.Packages[1].Status)
}

// TestNewSyncResultMissingOutcome tests a decision without an outcome.
func TestNewSyncResultMissingOutcome(t *testing.T) {
	decisions := reconcile.Plan([]packages.Package{pkg("a", "1.0.0")}, nil)
	r := NewSyncResult(SyncRun{Decisions: decisions})
	assert.Equal(t, StatusFailed, r.Packages[0].Status)
	assert.Equal(t, "no install result recorded", r.Packages[0].Error)
	assert.Equal(t, 1, r.Summary.FailedPackages)
}

// TestNewInstalledResult tests the installed report.
func TestNewInstalledResult(t *testing.T) {
	r := NewInstalledResult("/pkgs", []packages.Package{pkg("slime", "3.4.0")})
	assert.Equal(t, "/pkgs", r.Directory)
	assert.Equal(t, 1, r.Total)
	assert.Equal(t, []InstalledEntry{{Name: "slime", Version: "3.4.0"}}, r.Packages)

	empty := NewInstalledResult("/pkgs", nil)
	assert.NotNil(t, empty.Packages)
}
