package config

import (
	stderrors "errors"
	"testing"

	"github.com/ajxudir/pkgsync/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		DefinitionsFile: "/tmp/packages.list",
		PackagesDir:     "/tmp/packages",
		Concurrency:     2,
		Install:         InstallCfg{Command: "apm install {{spec}}"},
	}
}

// TestValidate tests Config.Validate.
//
// It verifies:
//   - A complete config is valid
//   - Concurrency below 1 alone yields InvalidConcurrencyError
//   - Other problems yield an ExitError with the config exit code
//   - Every problem is listed, not just the first
func TestValidate(t *testing.T) {
	assert.NoError(t, validConfig().Validate())

	t.Run("concurrency", func(t *testing.T) {
		for _, n := range []int{0, -3} {
			cfg := validConfig()
			cfg.Concurrency = n
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, stderrors.Is(err, errors.ErrInvalidConcurrency))
			assert.Equal(t, errors.ExitConfigError, errors.GetExitCode(err))
		}
	})

	t.Run("many problems", func(t *testing.T) {
		cfg := validConfig()
		cfg.DefinitionsFile = " "
		cfg.Install.Command = ""
		cfg.Install.TimeoutSeconds = -1
		cfg.Concurrency = 0

		err := cfg.Validate()
		require.Error(t, err)
		assert.Equal(t, errors.ExitConfigError, errors.GetExitCode(err))
		assert.Contains(t, err.Error(), "definitions_file: must not be empty")
		assert.Contains(t, err.Error(), "install.command: must not be empty")
		assert.Contains(t, err.Error(), "install.timeout_seconds: must not be negative, got -1")
		assert.Contains(t, err.Error(), "concurrency: must be at least 1, got 0")
	})
}

// TestCheck tests the collected validation result.
func TestCheck(t *testing.T) {
	r := validConfig().Check()
	assert.False(t, r.HasErrors())
	assert.Empty(t, r.ErrorMessages())

	cfg := validConfig()
	cfg.PackagesDir = ""
	r = cfg.Check()
	require.True(t, r.HasErrors())
	assert.Equal(t, []ValidationError{{Field: "packages_dir", Message: "must not be empty"}}, r.Errors)
	assert.Equal(t, "Configuration validation failed:\n  - packages_dir: must not be empty", r.ErrorMessages())
}
