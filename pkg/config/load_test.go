package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// TestLoadConfigDefaults tests LoadConfig without any config file.
//
// It verifies:
//   - Built-in defaults point at the Atom home directory
//   - ~ is expanded to the user's home directory
//   - Source is empty
func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("", t.TempDir())
	require.NoError(t, err)

	home, err := homedir.Dir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".atom", "packages.list"), cfg.DefinitionsFile)
	assert.Equal(t, filepath.Join(home, ".atom", "packages"), cfg.PackagesDir)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, "apm install {{spec}}", cfg.Install.Command)
	assert.Equal(t, 300, cfg.Install.TimeoutSeconds)
	assert.Empty(t, cfg.Source)
	assert.NoError(t, cfg.Validate())
}

// TestLoadConfigLocalFiles tests discovery of local config files.
//
// It verifies:
//   - .pkgsync.yml, .pkgsync.yaml and .pkgsync.toml are each found
//   - .pkgsync.yml wins when several exist
//   - Keys absent from the file keep their defaults
//   - Relative paths resolve against the config file's directory
func TestLoadConfigLocalFiles(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"yml", ".pkgsync.yml", "concurrency: 8\npackages_dir: pkgs\n"},
		{"yaml", ".pkgsync.yaml", "concurrency: 8\npackages_dir: pkgs\n"},
		{"toml", ".pkgsync.toml", "concurrency = 8\npackages_dir = \"pkgs\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, tt.file), tt.content)

			cfg, err := LoadConfig("", dir)
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, tt.file), cfg.Source)
			assert.Equal(t, 8, cfg.Concurrency)
			assert.Equal(t, filepath.Join(dir, "pkgs"), cfg.PackagesDir)
			assert.Equal(t, "apm install {{spec}}", cfg.Install.Command)
		})
	}

	t.Run("yml preferred", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, ".pkgsync.yml"), "concurrency: 2\n")
		writeFile(t, filepath.Join(dir, ".pkgsync.toml"), "concurrency = 9\n")

		cfg, err := LoadConfig("", dir)
		require.NoError(t, err)
		assert.Equal(t, 2, cfg.Concurrency)
	})
}

// TestLoadConfigExplicitPath tests LoadConfig with a config path.
//
// It verifies:
//   - Nested install settings are decoded, including env
//   - Absolute paths are kept as is
//   - A missing file is an error
func TestLoadConfigExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yml")
	writeFile(t, path, `definitions_file: /etc/pkgsync/list
install:
  command: echo {{package}}
  timeout_seconds: 0
  env:
    ATOM_HOME: /tmp/atom
`)

	cfg, err := LoadConfig(path, "")
	require.NoError(t, err)
	assert.Equal(t, "/etc/pkgsync/list", cfg.DefinitionsFile)
	assert.Equal(t, "echo {{package}}", cfg.Install.Command)
	assert.Equal(t, 0, cfg.Install.TimeoutSeconds)
	assert.Equal(t, map[string]string{"ATOM_HOME": "/tmp/atom"}, cfg.Install.Env)
	assert.Zero(t, cfg.Install.Timeout())

	_, err = LoadConfig(filepath.Join(dir, "missing.yml"), "")
	assert.Error(t, err)
}

// TestLoadConfigTOML tests TOML-specific decoding.
func TestLoadConfigTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pkgsync.toml")
	writeFile(t, path, `concurrency = 2

[install]
command = "apm install {{spec}} --no-color"
timeout_seconds = 60

[install.env]
ATOM_HOME = "/opt/atom"
`)

	cfg, err := LoadConfig(path, "")
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Concurrency)
	assert.Equal(t, "apm install {{spec}} --no-color", cfg.Install.Command)
	assert.Equal(t, 60, cfg.Install.TimeoutSeconds)
	assert.Equal(t, "/opt/atom", cfg.Install.Env["ATOM_HOME"])
}

// TestLoadConfigInvalid tests rejection of bad config files.
//
// It verifies:
//   - Malformed YAML and TOML are reported with their format
//   - Unknown keys are rejected in both formats
//   - Files over the size cap are rejected before parsing
//   - An empty YAML file is accepted and keeps defaults
func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{"bad yaml", "c.yml", "concurrency: [", "invalid YAML"},
		{"unknown yaml key", "c.yml", "concurency: 3\n", "invalid YAML"},
		{"bad toml", "c.toml", "concurrency = ", "invalid TOML"},
		{"unknown toml key", "c.toml", "concurency = 3\n", "invalid TOML"},
		{"too large", "c.yml", "# " + strings.Repeat("x", int(DefaultMaxConfigFileSize)), "config file too large"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			writeFile(t, path, tt.content)

			cfg, err := LoadConfig(path, "")
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	t.Run("empty yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "c.yml")
		writeFile(t, path, "")
		cfg, err := LoadConfig(path, "")
		require.NoError(t, err)
		assert.Equal(t, 4, cfg.Concurrency)
	})
}

// TestResolvePath tests ResolvePath.
//
// It verifies:
//   - Empty paths stay empty
//   - ~ expands to the home directory
//   - Relative paths join onto baseDir only when one is given
func TestResolvePath(t *testing.T) {
	home, err := homedir.Dir()
	require.NoError(t, err)

	tests := []struct {
		path, base, want string
	}{
		{"", "/base", ""},
		{"~/x", "/base", filepath.Join(home, "x")},
		{"rel", "/base", filepath.Join("/base", "rel")},
		{"rel", "", "rel"},
		{"/abs", "/base", "/abs"},
	}
	for _, tt := range tests {
		got, err := ResolvePath(tt.path, tt.base)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "ResolvePath(%q, %q)", tt.path, tt.base)
	}
}
