package config

import (
	"os"
	"path/filepath"

	"github.com/rileyhilliard/netwatch/internal/errors"
	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the default config file name.
	ConfigFileName = ".netwatch.yaml"
	// GlobalConfigDir is the directory for global config.
	GlobalConfigDir = ".config/netwatch"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
)

// Load reads config from the specified path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found",
				"Run 'netwatch init' to create a config file, or specify one with --config")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML")
	}

	return parseConfig(v, path)
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. .netwatch.yaml in current directory
// 3. ~/.config/netwatch/config.yaml (global defaults)
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	localConfig := filepath.Join(cwd, ConfigFileName)
	if _, err := os.Stat(localConfig); err == nil {
		return localConfig, nil
	}

	if home, err := os.UserHomeDir(); err == nil && home != "" {
		globalConfig := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(globalConfig); err == nil {
			return globalConfig, nil
		}
	}

	return "", nil
}

// LoadOrDefault loads config from the found path, or returns defaults if
// not found. Commands like 'netwatch init' work without an existing config.
func LoadOrDefault(explicit string) (*Config, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, err
	}

	if path == "" {
		return DefaultConfig(), nil
	}

	return Load(path)
}

// parseConfig converts viper config to our Config struct with defaults merged in.
func parseConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()

	setDefaults(v)

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setDefaults registers defaults that viper merges under absent keys.
// Duration fields accept strings like "90s" or "5m".
func setDefaults(v *viper.Viper) {
	v.SetDefault("device_file", "devices.txt")
	v.SetDefault("poll.interval", "1s")
	v.SetDefault("poll.reload_interval", "10s")
	v.SetDefault("poll.blink_interval", "1s")
	v.SetDefault("probe.timeout", "1s")
	v.SetDefault("probe.max_workers", 32)
	v.SetDefault("fetch.session_timeout", "3s")
	v.SetDefault("fetch.command_timeout", "3s")
	v.SetDefault("fetch.max_workers", 16)
	v.SetDefault("fetch.hostname_ttl", "2m")
	v.SetDefault("fetch.model_ttl", "5m")
	v.SetDefault("dns.ttl", "5m")
	v.SetDefault("display.color", "auto")
}
