package config

import (
	"time"

	"github.com/rileyhilliard/netwatch/pkg/sshutil"
)

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config represents the complete .netwatch.yaml configuration file.
type Config struct {
	Version     int                  `yaml:"version" mapstructure:"version"`
	DeviceFile  string               `yaml:"device_file" mapstructure:"device_file"`
	Credentials []sshutil.Credential `yaml:"credentials" mapstructure:"credentials"`
	Poll        PollConfig           `yaml:"poll" mapstructure:"poll"`
	Probe       ProbeConfig          `yaml:"probe" mapstructure:"probe"`
	Fetch       FetchConfig          `yaml:"fetch" mapstructure:"fetch"`
	DNS         DNSConfig            `yaml:"dns" mapstructure:"dns"`
	Display     DisplayConfig        `yaml:"display" mapstructure:"display"`
}

// PollConfig controls the cycle cadence.
type PollConfig struct {
	// Interval between polling cycles.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`

	// ReloadInterval is how often the device file is re-read.
	ReloadInterval time.Duration `yaml:"reload_interval" mapstructure:"reload_interval"`

	// BlinkInterval is the DOWN-indicator blink period.
	BlinkInterval time.Duration `yaml:"blink_interval" mapstructure:"blink_interval"`
}

// ProbeConfig controls ICMP reachability checks.
type ProbeConfig struct {
	// Timeout per echo round-trip.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// MaxWorkers caps concurrent pings.
	MaxWorkers int `yaml:"max_workers" mapstructure:"max_workers"`
}

// FetchConfig controls SSH metadata collection.
type FetchConfig struct {
	// SessionTimeout bounds the SSH handshake.
	SessionTimeout time.Duration `yaml:"session_timeout" mapstructure:"session_timeout"`

	// CommandTimeout bounds each remote command.
	CommandTimeout time.Duration `yaml:"command_timeout" mapstructure:"command_timeout"`

	// MaxWorkers caps concurrent SSH sessions.
	MaxWorkers int `yaml:"max_workers" mapstructure:"max_workers"`

	// HostnameTTL is how long a fetched hostname stays fresh.
	HostnameTTL time.Duration `yaml:"hostname_ttl" mapstructure:"hostname_ttl"`

	// ModelTTL is how long a fetched model stays fresh.
	ModelTTL time.Duration `yaml:"model_ttl" mapstructure:"model_ttl"`
}

// DNSConfig controls name resolution caching.
type DNSConfig struct {
	// TTL for both forward and reverse lookup results, hits and misses.
	TTL time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// DisplayConfig controls rendering.
type DisplayConfig struct {
	// StripSuffixes are domain suffixes removed from display names.
	StripSuffixes []string `yaml:"strip_suffixes" mapstructure:"strip_suffixes"`

	// Color mode: "auto", "always", or "never".
	// "auto" disables color when output is piped.
	Color string `yaml:"color" mapstructure:"color"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version:    CurrentConfigVersion,
		DeviceFile: "devices.txt",
		Poll: PollConfig{
			Interval:       1 * time.Second,
			ReloadInterval: 10 * time.Second,
			BlinkInterval:  1 * time.Second,
		},
		Probe: ProbeConfig{
			Timeout:    1 * time.Second,
			MaxWorkers: 32,
		},
		Fetch: FetchConfig{
			SessionTimeout: 3 * time.Second,
			CommandTimeout: 3 * time.Second,
			MaxWorkers:     16,
			HostnameTTL:    2 * time.Minute,
			ModelTTL:       5 * time.Minute,
		},
		DNS: DNSConfig{
			TTL: 5 * time.Minute,
		},
		Display: DisplayConfig{
			Color: "auto",
		},
	}
}
