package cmd

import (
	"os"

	"github.com/ajxudir/pkgsync/pkg/output"
	"github.com/spf13/cobra"
)

var installedOutputFlag string

var installedCmd = &cobra.Command{
	Use:   "installed",
	Short: "List installed packages",
	Long:  `List the packages found in the packages directory, sorted by directory name.`,
	Args:  cobra.NoArgs,
	RunE:  runInstalled,
}

func init() {
	installedCmd.Flags().StringVarP(&installedOutputFlag, "output", "o", "", "Output format: table, json, csv, xml")
}

func runInstalled(cmd *cobra.Command, args []string) error {
	format, err := parseOutputFormat(installedOutputFlag)
	if err != nil {
		return err
	}

	cfg, err := loadEffectiveConfig()
	if err != nil {
		return err
	}

	pkgs, err := scanInstalled(cfg.PackagesDir)
	if err != nil {
		return err
	}
	return output.WriteInstalledResult(os.Stdout, format, output.NewInstalledResult(cfg.PackagesDir, pkgs))
}
