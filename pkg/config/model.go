package config

import "time"

// Config is the resolved pkgsync configuration.
//
// Fields:
//   - DefinitionsFile: The desired-package list, one name@version per line
//   - PackagesDir: Directory whose subdirectories hold installed packages
//   - Concurrency: Maximum number of installs running at once
//   - Install: How a single package is installed
type Config struct {
	DefinitionsFile string     `yaml:"definitions_file,omitempty" toml:"definitions_file,omitempty" validate:"nonblank"`
	PackagesDir     string     `yaml:"packages_dir,omitempty" toml:"packages_dir,omitempty" validate:"nonblank"`
	Concurrency     int        `yaml:"concurrency,omitempty" toml:"concurrency,omitempty" validate:"min=1"`
	Install         InstallCfg `yaml:"install,omitempty" toml:"install,omitempty"`

	// Source is the file the config was read from, "" for built-in defaults.
	Source string `yaml:"-" toml:"-"`
}

// InstallCfg configures the install command.
//
// Fields:
//   - Command: Shell template; {{package}}, {{version}} and {{spec}} are replaced
//   - Env: Extra environment variables for the command
//   - Dir: Working directory for the command
//   - TimeoutSeconds: Per-package limit, 0 for none
type InstallCfg struct {
	Command        string            `yaml:"command,omitempty" toml:"command,omitempty" validate:"nonblank"`
	Env            map[string]string `yaml:"env,omitempty" toml:"env,omitempty"`
	Dir            string            `yaml:"dir,omitempty" toml:"dir,omitempty"`
	TimeoutSeconds int               `yaml:"timeout_seconds,omitempty" toml:"timeout_seconds,omitempty" validate:"min=0"`
}

// Timeout returns TimeoutSeconds as a duration.
func (c InstallCfg) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
