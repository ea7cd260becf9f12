package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ajxudir/pkgsync/pkg/batch"
	"github.com/ajxudir/pkgsync/pkg/cmdexec"
	"github.com/ajxudir/pkgsync/pkg/config"
	"github.com/ajxudir/pkgsync/pkg/constants"
	"github.com/ajxudir/pkgsync/pkg/errors"
	"github.com/ajxudir/pkgsync/pkg/output"
	"github.com/ajxudir/pkgsync/pkg/preflight"
	"github.com/ajxudir/pkgsync/pkg/reconcile"
	"github.com/ajxudir/pkgsync/pkg/verbose"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	syncDryRunFlag      bool
	syncConcurrencyFlag int
	syncOutputFlag      string
	syncNoProgressFlag  bool
	syncSkipPreflight   bool
)

// newInstaller builds the install action for a sync run.
var newInstaller = func(cfg *config.Config) batch.Installer {
	return &cmdexec.Runner{
		Command: cfg.Install.Command,
		Env:     cfg.Install.Env,
		Dir:     cfg.Install.Dir,
		Timeout: cfg.Install.Timeout(),
	}
}

// stderrIsTerminal reports whether the progress line would reach a terminal.
var stderrIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Install missing and outdated packages",
	Long: `Install every defined package that is missing or older than its
definition. Installs run concurrently, bounded by --concurrency.

Exit codes:
  0  every install succeeded, or nothing needed installing
  1  some installs failed
  2  every install failed
  3  configuration error`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&syncDryRunFlag, "dry-run", false, "Show what would be installed without installing")
	syncCmd.Flags().IntVarP(&syncConcurrencyFlag, "concurrency", "j", 0, "Maximum concurrent installs (default from config)")
	syncCmd.Flags().StringVarP(&syncOutputFlag, "output", "o", "", "Output format: table, json, csv, xml")
	syncCmd.Flags().BoolVar(&syncNoProgressFlag, "no-progress", false, "Disable the progress line")
	syncCmd.Flags().BoolVar(&syncSkipPreflight, "skip-preflight", false, "Skip checking that the install command's programs exist")
}

// runSync installs every package the reconciler selects.
//
// It performs the following operations:
//   - Step 1: Loads config, applying --concurrency when given
//   - Step 2: Loads definitions and installed packages and plans
//   - Step 3: Checks the install command's programs exist
//   - Step 4: Runs the batch unless --dry-run, cancelling on SIGINT/SIGTERM
//   - Step 5: Writes the report and maps failures to the exit code
//
// Returns:
//   - error: nil, a config error, or a *errors.PartialSuccessError
func runSync(cmd *cobra.Command, args []string) error {
	format, err := parseOutputFormat(syncOutputFlag)
	if err != nil {
		return err
	}

	cfg, err := loadEffectiveConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency = syncConcurrencyFlag
	}

	ws, err := loadWorkspace(cfg)
	if err != nil {
		return err
	}

	run := output.SyncRun{
		RunID:       output.NewRunID(),
		Started:     time.Now(),
		DryRun:      syncDryRunFlag,
		Decisions:   ws.decisions,
		Diagnostics: ws.diagnostics,
	}
	verbose.Infof("Sync run %s", run.RunID)

	var summary batch.Summary
	if !syncDryRunFlag {
		pending := reconcile.ToInstall(ws.decisions)
		if len(pending) > 0 && !syncSkipPreflight {
			if validation := preflight.CheckInstallCommand(cfg.Install.Command); validation.HasErrors() {
				verbose.WithTopic("install", fmt.Sprintf("Exit code %d (config error): pre-flight validation failed", errors.ExitConfigError))
				return errors.NewExitError(errors.ExitConfigError, fmt.Errorf("%s  %s Use --skip-preflight if the command is available through other means",
					validation.ErrorMessage(), constants.IconLightbulb))
			}
		}

		ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
		defer stop()

		progress := output.NewProgress(os.Stderr, len(pending), "Installing")
		progress.SetEnabled(!syncNoProgressFlag && !verbose.IsEnabled() && !output.IsStructuredFormat(format) && stderrIsTerminal())

		run.Outcomes, err = batch.Run(ctx, pending, cfg.Concurrency, newInstaller(cfg),
			batch.WithObserver(func(o batch.Outcome) { progress.Step(o.Package.String()) }))
		progress.Clear()
		if err != nil {
			return err
		}
		summary = batch.Summarize(run.Outcomes)
	}
	run.Finished = time.Now()

	if err := output.WriteSyncResult(os.Stdout, format, output.NewSyncResult(run)); err != nil {
		return err
	}
	return summary.Err()
}

// commandContext returns the command's context, or Background when the
// command was invoked without Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
