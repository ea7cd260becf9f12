package config

import (
	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed default.yml
var defaultConfigYAML string

//go:embed template.yml
var templateConfigYAML string

// fallbackConfig is used only if the embedded defaults fail to parse.
var fallbackConfig = Config{
	DefinitionsFile: "~/.atom/packages.list",
	PackagesDir:     "~/.atom/packages",
	Concurrency:     4,
	Install:         InstallCfg{Command: "apm install {{spec}}"},
}

// loadDefaultConfig parses the embedded default configuration.
//
// Returns:
//   - *Config: The defaults, with paths not yet expanded
func loadDefaultConfig() *Config {
	var cfg Config
	if err := yaml.Unmarshal([]byte(defaultConfigYAML), &cfg); err != nil {
		fb := fallbackConfig
		return &fb
	}
	return &cfg
}

// GetDefaultConfig returns the embedded default configuration as YAML.
func GetDefaultConfig() string {
	return defaultConfigYAML
}

// GetTemplateConfig returns a commented starter configuration.
func GetTemplateConfig() string {
	return templateConfigYAML
}
