// Package constants provides the status strings and icons shared by the
// report renderer and the CLI.
package constants

// Sync status constants describe what happened to one desired package.
const (
	// StatusInstalled indicates the install command succeeded.
	StatusInstalled = "installed"

	// StatusFailed indicates the install command failed.
	StatusFailed = "failed"

	// StatusPlanned indicates the package would be installed (dry run).
	StatusPlanned = "planned"

	// StatusUpToDate indicates no install was needed.
	StatusUpToDate = "up-to-date"
)

// PlaceholderNone is shown in tables when a value is absent.
const PlaceholderNone = "-"

// Icon constants for CLI messages.
const (
	// IconSuccess marks a successful state.
	IconSuccess = "🟢"

	// IconPending marks a planned state.
	IconPending = "🟡"

	// IconError marks a failed state.
	IconError = "❌"

	// IconWarn prefixes warning messages.
	IconWarn = "⚠️"

	// IconCheckmarkBox marks a successful validation.
	IconCheckmarkBox = "✅"

	// IconLightbulb prefixes hints.
	IconLightbulb = "💡"
)

// StatusIcon returns the icon for a sync status, "" for unknown statuses.
func StatusIcon(status string) string {
	switch status {
	case StatusInstalled, StatusUpToDate:
		return IconSuccess
	case StatusPlanned:
		return IconPending
	case StatusFailed:
		return IconError
	default:
		return ""
	}
}
