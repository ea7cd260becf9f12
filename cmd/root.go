// Package cmd implements the command-line interface for pkgsync.
// It provides commands for planning and applying a package definitions
// list against the locally installed packages.
package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/ajxudir/pkgsync/pkg/errors"
	"github.com/ajxudir/pkgsync/pkg/verbose"
	"github.com/spf13/cobra"
)

var exitFunc = os.Exit
var verboseFlag bool
var versionFlag bool
var skipBuildChecksFlag bool

var (
	configFileFlag  string
	definitionsFlag string
	packagesDirFlag string
)

var rootCmd = &cobra.Command{
	Use:   "pkgsync",
	Short: "Install the packages a definitions list asks for",
	Long: `Compare a list of name@version definitions with the installed packages
and install every package that is missing or older than defined.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verboseFlag {
			verbose.Enable()
		}
		if !skipBuildChecksFlag {
			if warnings := GetBuildWarnings(); warnings != "" {
				fmt.Fprint(os.Stderr, warnings)
				fmt.Fprintln(os.Stderr)
			}
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		if versionFlag {
			runVersion(cmd, args)
			return
		}
		_ = cmd.Help()
	},
}

// Execute runs the root command and exits with appropriate code:
//   - 0: Success
//   - 1: Partial failure (some installs failed)
//   - 2: Complete failure
//   - 3: Configuration or validation error
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		errors.PrintErrorWithHints(os.Stderr, []error{err}, verboseFlag)
		code := errors.GetExitCode(err)
		verbose.Infof("Exit code %d: %v", code, err)
		exitFunc(code)
	}
}

// ExecuteTest runs the root command for testing (returns error instead of exiting).
//
// Returns:
//   - error: Command execution error, or nil on success
func ExecuteTest() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Enable verbose debug output")
	rootCmd.PersistentFlags().BoolVar(&skipBuildChecksFlag, "skip-build-checks", false, "Skip build validation warnings (dev build, arch mismatch)")
	rootCmd.PersistentFlags().StringVarP(&configFileFlag, "config", "c", "", "Config file (default: .pkgsync.yml in the current directory)")
	rootCmd.PersistentFlags().StringVarP(&definitionsFlag, "definitions", "f", "", "Definitions file, overrides definitions_file")
	rootCmd.PersistentFlags().StringVarP(&packagesDirFlag, "packages-dir", "d", "", "Installed packages directory, overrides packages_dir")

	rootCmd.Flags().BoolVarP(&versionFlag, "version", "v", false, "Show version information")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(installedCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(syncCmd)
}

// printRuntime prints the runtime line when it differs from the build target.
func printRuntime(buildOS, buildArch string) {
	if buildOS != runtime.GOOS || buildArch != runtime.GOARCH {
		fmt.Printf("  Runtime: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	}
}
