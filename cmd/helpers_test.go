package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/ajxudir/pkgsync/pkg/batch"
	"github.com/ajxudir/pkgsync/pkg/config"
	"github.com/ajxudir/pkgsync/pkg/packages"
	"github.com/ajxudir/pkgsync/pkg/testutil"
	"github.com/ajxudir/pkgsync/pkg/verbose"
	"github.com/ajxudir/pkgsync/pkg/warnings"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// resetCommandState restores every flag, hook and cobra "changed" marker
// when the test ends, so commands can be executed repeatedly.
func resetCommandState(t *testing.T) {
	t.Helper()

	oldLoad := loadConfigFunc
	oldWrite := writeFileFunc
	oldGetwd := getwdFunc
	oldInstaller := newInstaller
	oldExit := exitFunc
	oldTerminal := stderrIsTerminal

	clearFlags()
	t.Cleanup(func() {
		loadConfigFunc = oldLoad
		writeFileFunc = oldWrite
		getwdFunc = oldGetwd
		newInstaller = oldInstaller
		exitFunc = oldExit
		stderrIsTerminal = oldTerminal
		clearFlags()
		verbose.Disable()
		rootCmd.SetArgs(nil)
	})
}

func clearFlags() {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	var walk func(c *cobra.Command)
	walk = func(c *cobra.Command) {
		c.Flags().VisitAll(reset)
		c.PersistentFlags().VisitAll(reset)
		for _, sub := range c.Commands() {
			walk(sub)
		}
	}
	walk(rootCmd)
}

// fixture is a definitions file and packages directory under one temp dir.
type fixture struct {
	dir         string
	definitions string
	packages    string
}

// newFixture writes the definitions lines and installed name@version specs
// and points loadConfigFunc at them.
func newFixture(t *testing.T, lines []string, installedSpecs ...string) *fixture {
	t.Helper()
	dir := t.TempDir()
	f := &fixture{
		dir:         dir,
		definitions: testutil.WriteDefinitions(t, dir, lines...),
		packages:    testutil.NewPackagesDir(t, installedSpecs...),
	}
	useConfig(t, testutil.NewConfig().
		WithDefinitions(f.definitions).
		WithPackagesDir(f.packages).
		Build())
	return f
}

// useConfig makes loadEffectiveConfig start from cfg.
func useConfig(t *testing.T, cfg *config.Config) {
	t.Helper()
	loadConfigFunc = func(string, string) (*config.Config, error) {
		c := *cfg
		return &c, nil
	}
}

// runCommand executes rootCmd with args and returns captured stdout.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	rootCmd.SetArgs(append([]string{"--skip-build-checks"}, args...))
	var err error
	out := testutil.CaptureStdout(t, func() {
		err = ExecuteTest()
	})
	return out, err
}

// collectWarnings routes warnings to a buffer for the rest of the test.
func collectWarnings(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	restore := warnings.SetWarningWriter(&buf)
	t.Cleanup(restore)
	return &buf
}

// recordingInstaller records every install and fails the packages named in fail.
type recordingInstaller struct {
	mu    sync.Mutex
	seen  []string
	limit int
	fail  map[string]bool
}

func (r *recordingInstaller) Install(_ context.Context, p packages.Package) (string, error) {
	r.mu.Lock()
	r.seen = append(r.seen, p.String())
	r.mu.Unlock()
	if r.fail[p.Name] {
		return "", assertErr(p.Name + ": install exited with status 1")
	}
	return "installed " + p.String(), nil
}

func (r *recordingInstaller) calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.seen...)
}

type assertErr string

func (e assertErr) Error() string { return string(e) }

// useInstaller replaces the sync installer and records the concurrency it was given.
func useInstaller(t *testing.T, fail ...string) *recordingInstaller {
	t.Helper()
	r := &recordingInstaller{fail: map[string]bool{}}
	for _, name := range fail {
		r.fail[name] = true
	}
	newInstaller = func(cfg *config.Config) batch.Installer {
		r.limit = cfg.Concurrency
		return r
	}
	return r
}

// captureVerbose routes verbose output to a buffer for the rest of the test.
func captureVerbose(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	verbose.SetWriter(&buf)
	t.Cleanup(func() { verbose.SetWriter(os.Stderr) })
	return &buf
}

func missingPath(t *testing.T) string {
	return filepath.Join(t.TempDir(), "does-not-exist")
}
