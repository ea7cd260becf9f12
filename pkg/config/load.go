// Package config loads pkgsync configuration from YAML or TOML files.
//
// A config file only needs the keys it changes; everything else keeps the
// built-in default. Unknown keys are rejected so typos surface early.
package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ajxudir/pkgsync/pkg/verbose"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DefaultMaxConfigFileSize caps config files at 1 MiB.
const DefaultMaxConfigFileSize int64 = 1 << 20

// LocalConfigNames are searched in the working directory, in order, when no
// config path is given.
var LocalConfigNames = []string{".pkgsync.yml", ".pkgsync.yaml", ".pkgsync.toml"}

// LoadConfig loads configuration from the specified path or defaults.
//
// It performs the following operations:
//   - Step 1: Starts from the embedded defaults
//   - Step 2: Overlays configPath, or the first LocalConfigNames entry found in workDir
//   - Step 3: Expands ~ and resolves relative paths against the config file
//
// Parameters:
//   - configPath: Explicit config file, "" to search workDir
//   - workDir: Directory searched for a local config
//
// Returns:
//   - *Config: The resolved configuration; not yet validated
//   - error: Read, size or decode failures
func LoadConfig(configPath, workDir string) (*Config, error) {
	cfg := loadDefaultConfig()

	path := configPath
	if path == "" {
		path = findLocalConfig(workDir)
	}

	baseDir := ""
	if path != "" {
		verbose.Infof("Loading config from: %s", path)
		if err := loadConfigFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		cfg.Source = path
		baseDir = filepath.Dir(path)
	}

	if err := cfg.resolvePaths(baseDir); err != nil {
		return nil, err
	}
	verbose.ConfigLoaded(cfg.Source)
	return cfg, nil
}

// findLocalConfig returns the first local config file present in workDir.
func findLocalConfig(workDir string) string {
	if workDir == "" {
		workDir = "."
	}
	for _, name := range LocalConfigNames {
		candidate := filepath.Join(workDir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

// loadConfigFile decodes path over cfg, choosing the format by extension.
//
// Parameters:
//   - path: Config file; .toml selects TOML, anything else YAML
//   - cfg: Destination; keys missing from the file keep their value
//
// Returns:
//   - error: When the file is missing, too large or invalid
func loadConfigFile(path string, cfg *Config) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Size() > DefaultMaxConfigFileSize {
		return fmt.Errorf("config file too large: %d bytes (max %d bytes)", info.Size(), DefaultMaxConfigFileSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return decodeTOML(data, cfg)
	}
	return decodeYAML(data, cfg)
}

// decodeYAML decodes data strictly; an empty document changes nothing.
func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !stderrors.Is(err, io.EOF) {
		return fmt.Errorf("invalid YAML: %w", err)
	}
	return nil
}

// decodeTOML decodes data strictly.
func decodeTOML(data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if stderrors.As(err, &strict) {
			return fmt.Errorf("invalid TOML: %s", strings.TrimSpace(strict.String()))
		}
		return fmt.Errorf("invalid TOML: %w", err)
	}
	return nil
}

// resolvePaths expands ~ in every path field and makes relative paths
// relative to baseDir. An empty baseDir leaves relative paths alone.
func (c *Config) resolvePaths(baseDir string) error {
	for _, p := range []*string{&c.DefinitionsFile, &c.PackagesDir, &c.Install.Dir} {
		resolved, err := ResolvePath(*p, baseDir)
		if err != nil {
			return err
		}
		*p = resolved
	}
	return nil
}

// ResolvePath expands a leading ~ and joins relative paths onto baseDir.
//
// Parameters:
//   - path: Path as written by the user; "" is returned unchanged
//   - baseDir: Directory relative paths are resolved against, "" for none
//
// Returns:
//   - string: The resolved path
//   - error: When the home directory cannot be determined
func ResolvePath(path, baseDir string) (string, error) {
	if path == "" {
		return "", nil
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("failed to expand %q: %w", path, err)
	}
	if baseDir != "" && !filepath.IsAbs(expanded) {
		expanded = filepath.Join(baseDir, expanded)
	}
	return expanded, nil
}
