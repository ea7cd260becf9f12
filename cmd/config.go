package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/ajxudir/pkgsync/pkg/config"
	"github.com/ajxudir/pkgsync/pkg/constants"
	"github.com/ajxudir/pkgsync/pkg/errors"
	"github.com/ajxudir/pkgsync/pkg/verbose"
	"github.com/spf13/cobra"
)

var (
	configShowDefaultsFlag  bool
	configShowEffectiveFlag bool
	configInitFlag          bool
	configValidateFlag      bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show, create or validate configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&configShowDefaultsFlag, "show-defaults", false, "Show default configuration")
	configCmd.Flags().BoolVar(&configShowEffectiveFlag, "show-effective", false, "Show effective configuration after flags and config file")
	configCmd.Flags().BoolVar(&configInitFlag, "init", false, "Create a .pkgsync.yml template in the current directory")
	configCmd.Flags().BoolVar(&configValidateFlag, "validate", false, "Validate the effective configuration")
}

// runConfig executes the config command with the specified flags.
//
// Behavior depends on flags:
//   - --init: Creates a .pkgsync.yml template file
//   - --validate: Loads and checks the effective configuration
//   - --show-defaults: Displays the embedded defaults
//   - --show-effective: Displays the configuration commands would use
func runConfig(cmd *cobra.Command, args []string) error {
	switch {
	case configInitFlag:
		return createConfigTemplate()
	case configValidateFlag:
		return validateEffectiveConfig()
	case configShowDefaultsFlag:
		fmt.Println("Default configuration:")
		fmt.Println()
		fmt.Println(config.GetDefaultConfig())
		return nil
	case configShowEffectiveFlag:
		cfg, err := loadEffectiveConfig()
		if err != nil {
			return err
		}
		printEffectiveConfig(cfg)
		return nil
	}
	return cmd.Help()
}

func printEffectiveConfig(cfg *config.Config) {
	source := cfg.Source
	if source == "" {
		source = "(built-in defaults)"
	}

	fmt.Println("Effective configuration:")
	fmt.Println()
	fmt.Printf("Source:           %s\n", source)
	fmt.Printf("Definitions file: %s\n", cfg.DefinitionsFile)
	fmt.Printf("Packages dir:     %s\n", cfg.PackagesDir)
	fmt.Printf("Concurrency:      %d\n", cfg.Concurrency)
	fmt.Printf("Install command:  %s\n", cfg.Install.Command)
	if cfg.Install.Dir != "" {
		fmt.Printf("Install dir:      %s\n", cfg.Install.Dir)
	}
	fmt.Printf("Install timeout:  %s\n", cfg.Install.Timeout())

	if len(cfg.Install.Env) > 0 {
		keys := make([]string, 0, len(cfg.Install.Env))
		for k := range cfg.Install.Env {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fmt.Println("Install env:")
		for _, k := range keys {
			fmt.Printf("  %s=%s\n", k, cfg.Install.Env[k])
		}
	}
}

// validateEffectiveConfig loads the configuration and reports every problem.
//
// Returns:
//   - error: ExitError with ExitConfigError when loading or validation fails
func validateEffectiveConfig() error {
	cfg, err := loadEffectiveConfig()
	if err != nil {
		fmt.Printf("%s %v\n", constants.IconError, err)
		return err
	}

	source := cfg.Source
	if source == "" {
		source = "built-in defaults"
	}

	result := cfg.Check()
	if result.HasErrors() {
		fmt.Printf("%s Configuration validation failed for: %s\n\n", constants.IconError, source)
		for _, e := range result.Errors {
			fmt.Printf("  ERROR: %s\n", e.Error())
		}
		fmt.Println()
		fmt.Printf("%s Run 'pkgsync config --show-defaults' to see valid settings\n", constants.IconLightbulb)
		verbose.WithTopic("config", fmt.Sprintf("Exit code %d (config error): configuration validation failed for %s", errors.ExitConfigError, source))
		return errors.NewExitErrorf(errors.ExitConfigError, "configuration validation failed")
	}

	fmt.Printf("%s Configuration valid: %s\n", constants.IconCheckmarkBox, source)
	return nil
}

// createConfigTemplate writes the embedded template to .pkgsync.yml in the
// current directory, refusing to overwrite an existing file.
func createConfigTemplate() error {
	configPath := config.LocalConfigNames[0]
	if _, err := os.Stat(configPath); err == nil {
		return errors.NewExitErrorf(errors.ExitConfigError, "config file already exists: %s", configPath)
	}

	// 0600: the install env may carry tokens.
	if err := writeFileFunc(configPath, []byte(config.GetTemplateConfig()), 0600); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	fmt.Printf("Created configuration template: %s\n", configPath)
	return nil
}
