package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/rileyhilliard/netwatch/internal/config"
	"github.com/rileyhilliard/netwatch/internal/errors"
	"github.com/rileyhilliard/netwatch/pkg/sshutil"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Init command flags
var (
	initForce          bool
	initNonInteractive bool
)

// initCmd creates a new .netwatch.yaml configuration.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .netwatch.yaml configuration",
	Long: `Initialize a new netwatch configuration file.

Creates a .netwatch.yaml file in the current directory with sensible
defaults and walks you through the device file location and SSH
credentials with interactive prompts.

Examples:
  netwatch init
  netwatch init --force
  netwatch init --yes`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initCommand(initForce, initNonInteractive)
	},
}

// initCommand writes a starter config, prompting unless nonInteractive.
func initCommand(force, nonInteractive bool) error {
	configPath := filepath.Join(".", config.ConfigFileName)

	if _, err := os.Stat(configPath); err == nil && !force {
		if nonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", configPath),
				"Use --force to overwrite")
		}

		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", config.ConfigFileName)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	cfg := config.DefaultConfig()

	deviceFile := cfg.DeviceFile
	username := "admin"
	passwords := ""

	if !nonInteractive {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Device file").
					Description("Text file with one device per line (IP or hostname)").
					Placeholder("devices.txt").
					Value(&deviceFile),
			),
			huh.NewGroup(
				huh.NewInput().
					Title("SSH username").
					Description("Account used to log in to the devices").
					Value(&username).
					Validate(func(s string) error {
						if strings.TrimSpace(s) == "" {
							return fmt.Errorf("username is required")
						}
						return nil
					}),
				huh.NewInput().
					Title("SSH passwords").
					Description("Comma-separated, tried in order").
					Placeholder("cisco, Admin123").
					Value(&passwords),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --yes for a non-interactive starter config")
		}
	}

	if strings.TrimSpace(deviceFile) != "" {
		cfg.DeviceFile = strings.TrimSpace(deviceFile)
	}
	cfg.Credentials = []sshutil.Credential{{
		Username:  strings.TrimSpace(username),
		Passwords: splitPasswords(passwords),
	}}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to serialize config",
			"This is a bug - please report it")
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to write "+configPath,
			"Check directory permissions")
	}

	fmt.Printf("Created %s\n", configPath)
	fmt.Printf("Next: list your devices in %s and run 'netwatch'\n", cfg.DeviceFile)
	return nil
}

// splitPasswords parses the comma-separated password prompt answer.
// An empty answer falls back to a placeholder the user must replace.
func splitPasswords(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		out = []string{"changeme"}
	}
	return out
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing config")
	initCmd.Flags().BoolVarP(&initNonInteractive, "yes", "y", false, "skip prompts, write defaults")

	rootCmd.AddCommand(initCmd)
}
