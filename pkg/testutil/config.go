package testutil

import (
	"github.com/ajxudir/pkgsync/pkg/config"
)

// ConfigBuilder provides a fluent API for building test configurations.
type ConfigBuilder struct {
	cfg *config.Config
}

// NewConfig returns a builder seeded with a valid config whose install
// command only echoes the package spec.
//
// Returns:
//   - *ConfigBuilder: A new builder
func NewConfig() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: &config.Config{
			DefinitionsFile: "packages.list",
			PackagesDir:     "packages",
			Concurrency:     2,
			Install:         config.InstallCfg{Command: "echo installed {{spec}}"},
		},
	}
}

// WithDefinitions sets the definitions file.
func (b *ConfigBuilder) WithDefinitions(path string) *ConfigBuilder {
	b.cfg.DefinitionsFile = path
	return b
}

// WithPackagesDir sets the packages directory.
func (b *ConfigBuilder) WithPackagesDir(dir string) *ConfigBuilder {
	b.cfg.PackagesDir = dir
	return b
}

// WithConcurrency sets the install concurrency.
func (b *ConfigBuilder) WithConcurrency(n int) *ConfigBuilder {
	b.cfg.Concurrency = n
	return b
}

// WithCommand sets the install command template.
func (b *ConfigBuilder) WithCommand(cmd string) *ConfigBuilder {
	b.cfg.Install.Command = cmd
	return b
}

// WithTimeout sets the install timeout in seconds.
func (b *ConfigBuilder) WithTimeout(seconds int) *ConfigBuilder {
	b.cfg.Install.TimeoutSeconds = seconds
	return b
}

// Build returns the configured config.
func (b *ConfigBuilder) Build() *config.Config {
	return b.cfg
}
