package cmd

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/ajxudir/pkgsync/pkg/constants"
	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"
)

// Version information set at build time via ldflags.
// Example: go build -ldflags="-X github.com/ajxudir/pkgsync/cmd.Version=1.0.0"
var (
	// Version is the semantic version of the build.
	Version = "dev"
	// BuildTime is the timestamp of the build.
	BuildTime = ""
	// GitCommit is the git commit hash of the build.
	GitCommit = ""
	// BuildOS is the target OS the binary was built for.
	BuildOS = ""
	// BuildArch is the target architecture the binary was built for.
	BuildArch = ""
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and build information",
	Run:   runVersion,
}

// runVersion prints the build target, Go version, build date, commit and version.
func runVersion(cmd *cobra.Command, args []string) {
	buildOS, buildArch := getBuildTarget()
	fmt.Printf("  Build:   %s/%s\n", buildOS, buildArch)
	printRuntime(buildOS, buildArch)

	fmt.Printf("  Go:      %s\n", runtime.Version())
	if BuildTime != "" {
		fmt.Printf("  Date:    %s\n", BuildTime)
	}
	if GitCommit != "" {
		fmt.Printf("  Git:     %s\n", GitCommit)
	}
	fmt.Printf("  Version: %s\n", Version)
}

// getBuildTarget returns the OS and architecture the binary was built for.
//
// Dev builds without ldflags fall back to the runtime values.
//
// Returns:
//   - string: Target operating system
//   - string: Target architecture
func getBuildTarget() (string, string) {
	buildOS, buildArch := BuildOS, BuildArch
	if buildOS == "" {
		buildOS = runtime.GOOS
	}
	if buildArch == "" {
		buildArch = runtime.GOARCH
	}
	return buildOS, buildArch
}

// HasArchMismatch reports whether the binary was built for another platform.
func HasArchMismatch() bool {
	if BuildOS == "" && BuildArch == "" {
		return false
	}
	buildOS, buildArch := getBuildTarget()
	return buildOS != runtime.GOOS || buildArch != runtime.GOARCH
}

// IsDevBuild reports whether Version is the untagged "dev" default.
func IsDevBuild() bool {
	return Version == "dev"
}

// IsPrerelease reports whether Version carries a semver prerelease suffix,
// such as 1.4.0-rc.1.
func IsPrerelease() bool {
	v := Version
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return semver.IsValid(v) && semver.Prerelease(v) != ""
}

// GetBuildWarnings returns every build-related warning, one block per problem.
//
// Returns:
//   - string: Combined warning text; empty when the build looks like a release
func GetBuildWarnings() string {
	var b strings.Builder

	if HasArchMismatch() {
		buildOS, buildArch := getBuildTarget()
		fmt.Fprintf(&b, "%s  Architecture mismatch: binary built for %s/%s but running on %s/%s\n"+
			"   Download the binary for this platform.\n",
			constants.IconWarn, buildOS, buildArch, runtime.GOOS, runtime.GOARCH)
	}
	if IsDevBuild() {
		b.WriteString(constants.IconWarn + "  Development build: this version has no release tag.\n")
	}
	if IsPrerelease() {
		b.WriteString(constants.IconWarn + "  Prerelease build: " + Version + "\n" +
			"   Install a stable release for production machines.\n")
	}

	return b.String()
}
