package cmd

import (
	"os"

	"github.com/ajxudir/pkgsync/pkg/output"
	"github.com/spf13/cobra"
)

var planOutputFlag string

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show what sync would install",
	Long: `Compare the definitions list with the installed packages and show one
decision per definition: install, upgrade, satisfied or newer.`,
	Args: cobra.NoArgs,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringVarP(&planOutputFlag, "output", "o", "", "Output format: table, json, csv, xml")
}

// runPlan loads the workspace and prints the decisions without installing anything.
func runPlan(cmd *cobra.Command, args []string) error {
	format, err := parseOutputFormat(planOutputFlag)
	if err != nil {
		return err
	}

	cfg, err := loadEffectiveConfig()
	if err != nil {
		return err
	}
	ws, err := loadWorkspace(cfg)
	if err != nil {
		return err
	}

	return output.WritePlanResult(os.Stdout, format, output.NewPlanResult(ws.decisions, ws.diagnostics))
}
