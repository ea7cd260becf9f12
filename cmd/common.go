package cmd

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ajxudir/pkgsync/pkg/config"
	"github.com/ajxudir/pkgsync/pkg/constants"
	"github.com/ajxudir/pkgsync/pkg/definitions"
	"github.com/ajxudir/pkgsync/pkg/errors"
	"github.com/ajxudir/pkgsync/pkg/installed"
	"github.com/ajxudir/pkgsync/pkg/output"
	"github.com/ajxudir/pkgsync/pkg/packages"
	"github.com/ajxudir/pkgsync/pkg/reconcile"
	"github.com/ajxudir/pkgsync/pkg/verbose"
	"github.com/ajxudir/pkgsync/pkg/warnings"
)

var (
	loadConfigFunc = config.LoadConfig
	writeFileFunc  = os.WriteFile
	getwdFunc      = os.Getwd
)

// workspace is everything a command needs after loading its inputs.
type workspace struct {
	cfg         *config.Config
	decisions   []reconcile.Decision
	diagnostics []packages.Diagnostic
}

// loadEffectiveConfig loads the config file and applies the global path flags.
//
// Returns:
//   - *config.Config: The configuration, not yet validated
//   - error: An ExitError with ExitConfigError when loading fails
func loadEffectiveConfig() (*config.Config, error) {
	workDir, err := getwdFunc()
	if err != nil {
		return nil, fmt.Errorf("failed to determine working directory: %w", err)
	}

	cfg, err := loadConfigFunc(configFileFlag, workDir)
	if err != nil {
		verbose.Infof("Exit code %d (config error): %v", errors.ExitConfigError, err)
		return nil, errors.NewExitError(errors.ExitConfigError, fmt.Errorf("failed to load config: %w", err))
	}

	if definitionsFlag != "" {
		if cfg.DefinitionsFile, err = config.ResolvePath(definitionsFlag, workDir); err != nil {
			return nil, errors.NewExitError(errors.ExitConfigError, err)
		}
	}
	if packagesDirFlag != "" {
		if cfg.PackagesDir, err = config.ResolvePath(packagesDirFlag, workDir); err != nil {
			return nil, errors.NewExitError(errors.ExitConfigError, err)
		}
	}
	return cfg, nil
}

// scanInstalled lists installed packages. A missing directory means
// nothing is installed yet.
func scanInstalled(dir string) ([]packages.Package, error) {
	pkgs, err := installed.Scan(dir)
	if stderrors.Is(err, fs.ErrNotExist) {
		verbose.Infof("Packages directory %s does not exist, treating as empty", dir)
		return []packages.Package{}, nil
	}
	return pkgs, err
}

// loadWorkspace reads the definitions and installed packages and reconciles them.
//
// It performs the following operations:
//   - Step 1: Validates cfg
//   - Step 2: Loads the definitions file, warning about skipped lines
//   - Step 3: Scans the packages directory
//   - Step 4: Plans one decision per definition
//
// Parameters:
//   - cfg: Effective configuration
//
// Returns:
//   - *workspace: Decisions and diagnostics
//   - error: Validation, definitions or scan failures
func loadWorkspace(cfg *config.Config) (*workspace, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	defs, err := definitions.Load(cfg.DefinitionsFile)
	if err != nil {
		return nil, errors.NewExitError(errors.ExitConfigError, err)
	}
	for _, d := range defs.Diagnostics {
		warnings.Warnf("%s  Skipping %s\n", constants.IconWarn, d.String())
	}
	if len(defs.Diagnostics) > 0 {
		verbose.WithTopic("definitions", fmt.Sprintf("%d line(s) of %s skipped", len(defs.Diagnostics), cfg.DefinitionsFile))
	}

	current, err := scanInstalled(cfg.PackagesDir)
	if err != nil {
		return nil, err
	}
	verbose.Infof("Found %d definition(s) and %d installed package(s)", len(defs.Packages), len(current))

	return &workspace{
		cfg:         cfg,
		decisions:   reconcile.Plan(defs.Packages, current),
		diagnostics: defs.Diagnostics,
	}, nil
}

// parseOutputFormat wraps output.ParseFormat as a config error.
func parseOutputFormat(flag string) (output.Format, error) {
	format, err := output.ParseFormat(flag)
	if err != nil {
		return "", errors.NewExitError(errors.ExitConfigError, err)
	}
	return format, nil
}
