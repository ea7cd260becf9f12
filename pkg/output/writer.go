package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/ajxudir/pkgsync/pkg/constants"
)

// detailWidth bounds the DETAIL column of the sync table.
const detailWidth = 60

func orDash(s string) string {
	if s == "" {
		return constants.PlaceholderNone
	}
	return s
}

// WritePlanResult writes the plan report in the requested format.
//
// Parameters:
//   - w: Destination writer
//   - format: Any supported format
//   - result: The plan report
//
// Returns:
//   - error: Write or encoding failures, or an unsupported format
func WritePlanResult(w io.Writer, format Format, result *PlanResult) error {
	f := NewFormatter(w)
	switch format {
	case FormatTable:
		return writePlanTable(w, result)
	case FormatJSON:
		return f.WriteJSON(result)
	case FormatXML:
		return f.WriteXML(result)
	case FormatCSV:
		rows := make([][]string, 0, len(result.Packages))
		for _, p := range result.Packages {
			rows = append(rows, []string{p.Name, p.Version, p.Installed, p.Action})
		}
		return f.WriteCSV([]string{"NAME", "VERSION", "INSTALLED", "ACTION"}, rows)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func writePlanTable(w io.Writer, result *PlanResult) error {
	if len(result.Packages) == 0 {
		_, err := fmt.Fprintln(w, "No packages defined.")
		return err
	}

	table := NewTable("NAME", "VERSION", "INSTALLED", "ACTION").WithStatusColumn(3)
	for _, p := range result.Packages {
		table.AddRow(p.Name, p.Version, orDash(p.Installed), p.Action)
	}
	if err := table.Render(w); err != nil {
		return err
	}

	s := result.Summary
	_, err := fmt.Fprintf(w, "\n%d package(s): %d to install, %d to upgrade, %d satisfied, %d newer than defined\n",
		s.TotalPackages, s.Install, s.Upgrade, s.Satisfied, s.Newer)
	return err
}

// WriteSyncResult writes the sync report in the requested format.
//
// Parameters:
//   - w: Destination writer
//   - format: Any supported format
//   - result: The sync report
//
// Returns:
//   - error: Write or encoding failures, or an unsupported format
func WriteSyncResult(w io.Writer, format Format, result *SyncResult) error {
	f := NewFormatter(w)
	switch format {
	case FormatTable:
		return writeSyncTable(w, result)
	case FormatJSON:
		return f.WriteJSON(result)
	case FormatXML:
		return f.WriteXML(result)
	case FormatCSV:
		rows := make([][]string, 0, len(result.Packages))
		for _, p := range result.Packages {
			rows = append(rows, []string{
				p.Name, p.Version, p.Installed, p.Action, p.Status,
				strconv.FormatInt(p.DurationMs, 10), p.Error,
			})
		}
		return f.WriteCSV([]string{"NAME", "VERSION", "INSTALLED", "ACTION", "STATUS", "DURATION_MS", "ERROR"}, rows)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func writeSyncTable(w io.Writer, result *SyncResult) error {
	if len(result.Packages) == 0 {
		_, err := fmt.Fprintln(w, "No packages defined.")
		return err
	}

	table := NewTable("NAME", "VERSION", "INSTALLED", "ACTION", "STATUS", "DETAIL").WithStatusColumn(4)
	for _, p := range result.Packages {
		detail := p.Error
		if detail == "" {
			detail = p.Output
		}
		table.AddRow(p.Name, p.Version, orDash(p.Installed), p.Action, p.Status, Truncate(FirstLine(detail), detailWidth))
	}
	if err := table.Render(w); err != nil {
		return err
	}

	s := result.Summary
	if result.DryRun {
		_, err := fmt.Fprintf(w, "\nDry run: %d to install, %d to upgrade, %d up-to-date\n", s.Install, s.Upgrade, s.UpToDatePackages)
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d installed, %d failed, %d up-to-date (run %s)\n",
		s.InstalledPackages, s.FailedPackages, s.UpToDatePackages, result.RunID)
	return err
}

// WriteInstalledResult writes the installed-packages report.
func WriteInstalledResult(w io.Writer, format Format, result *InstalledResult) error {
	f := NewFormatter(w)
	switch format {
	case FormatTable:
		if len(result.Packages) == 0 {
			_, err := fmt.Fprintf(w, "No packages installed in %s.\n", result.Directory)
			return err
		}
		table := NewTable("NAME", "VERSION")
		for _, p := range result.Packages {
			table.AddRow(p.Name, p.Version)
		}
		if err := table.Render(w); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "\n%d package(s) in %s\n", result.Total, result.Directory)
		return err
	case FormatJSON:
		return f.WriteJSON(result)
	case FormatXML:
		return f.WriteXML(result)
	case FormatCSV:
		rows := make([][]string, 0, len(result.Packages))
		for _, p := range result.Packages {
			rows = append(rows, []string{p.Name, p.Version})
		}
		return f.WriteCSV([]string{"NAME", "VERSION"}, rows)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}
