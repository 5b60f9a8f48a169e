package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Aman-CERP/snipkit/internal/config"
	snipErrors "github.com/Aman-CERP/snipkit/internal/errors"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long: `Inspect and create snipkit configuration.

Configuration precedence (lowest to highest):
  1. Hardcoded defaults
  2. User config (~/.config/snipkit/config.yaml)
  3. Project config (.snipkit.yaml)
  4. Environment variables (SNIPKIT_*)`,
		Example: `  # Show effective configuration
  snipkit config show

  # Write the defaults to .snipkit.yaml in the project root
  snipkit config init

  # Print user config file path
  snipkit config path`,
	}

	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigPathCmd())

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	var (
		jsonOutput bool
		source     string
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var cfg *config.Config
			switch source {
			case "merged":
				loaded, err := loadConfig()
				if err != nil {
					return err
				}
				cfg = loaded
			case "defaults":
				cfg = config.NewConfig()
			default:
				return snipErrors.ValidationError(fmt.Sprintf("unknown source %q", source), nil).
					WithSuggestion("Use --source merged or --source defaults")
			}

			out := newOutput(cmd)
			if jsonOutput {
				return out.JSON(cfg)
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return snipErrors.InternalError("failed to encode config", err)
			}
			out.Header(fmt.Sprintf("# source: %s", source))
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().StringVar(&source, "source", "merged", "Config source: merged, defaults")

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		force bool
		user  bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with the defaults",
		Long: `Write the default configuration to .snipkit.yaml in the project root, or to
the user config file with --user. Existing files are kept unless --force.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var path string
			if user {
				path = config.GetUserConfigPath()
				if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
					return snipErrors.IOError("failed to create config directory", err).
						WithDetail("path", filepath.Dir(path))
				}
			} else {
				cwd, err := os.Getwd()
				if err != nil {
					return snipErrors.InternalError("failed to get current directory", err)
				}
				root, err := config.FindProjectRoot(cwd)
				if err != nil {
					root = cwd
				}
				path = filepath.Join(root, config.ProjectConfigYAML)
			}

			out := newOutput(cmd)
			if _, err := os.Stat(path); err == nil && !force {
				out.Warningf("Configuration already exists: %s", path)
				out.Line("  Use --force to overwrite it with the defaults")
				return nil
			}

			if err := config.NewConfig().WriteYAML(path); err != nil {
				return err
			}
			out.Successf("Created %s", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	cmd.Flags().BoolVar(&user, "user", false, "Write the user config instead of the project config")

	return cmd
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print user config file path",
		RunE: func(cmd *cobra.Command, _ []string) error {
			newOutput(cmd).Line(config.GetUserConfigPath())
			return nil
		},
	}
}
