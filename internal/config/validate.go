package config

import (
	"fmt"
	"strings"

	"github.com/rileyhilliard/netwatch/internal/errors"
)

// validColorModes are the accepted display.color values.
var validColorModes = map[string]bool{
	"auto":   true,
	"always": true,
	"never":  true,
}

// Validate checks the config for errors and returns structured error messages.
func (c *Config) Validate() error {
	if c.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but netwatch only knows up to %d)", c.Version, CurrentConfigVersion),
			"Grab the latest netwatch: https://github.com/rileyhilliard/netwatch/releases")
	}

	if strings.TrimSpace(c.DeviceFile) == "" {
		return errors.New(errors.ErrConfig,
			"device_file must not be empty",
			"Point device_file at a text file with one device per line")
	}

	for i, cred := range c.Credentials {
		if strings.TrimSpace(cred.Username) == "" {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("credentials[%d] has an empty username", i),
				"Every credential entry needs a username")
		}
		if len(cred.Passwords) == 0 {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("credentials[%d] (%s) has no passwords", i, cred.Username),
				"List at least one password per credential entry")
		}
	}

	if c.Poll.Interval < 0 || c.Poll.ReloadInterval < 0 || c.Poll.BlinkInterval < 0 {
		return errors.New(errors.ErrConfig,
			"poll intervals must not be negative",
			"Use durations like '1s' or '10s' in the 'poll' section")
	}

	if c.Probe.Timeout < 0 {
		return errors.New(errors.ErrConfig,
			"probe.timeout must not be negative",
			"Use a duration like '1s'")
	}
	if c.Probe.MaxWorkers < 0 {
		return errors.New(errors.ErrConfig,
			"probe.max_workers must not be negative",
			"Use a positive worker count, or omit it for the default")
	}

	if c.Fetch.SessionTimeout < 0 || c.Fetch.CommandTimeout < 0 {
		return errors.New(errors.ErrConfig,
			"fetch timeouts must not be negative",
			"Use durations like '3s' in the 'fetch' section")
	}
	if c.Fetch.MaxWorkers < 0 {
		return errors.New(errors.ErrConfig,
			"fetch.max_workers must not be negative",
			"Use a positive worker count, or omit it for the default")
	}

	if c.Display.Color != "" && !validColorModes[c.Display.Color] {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Invalid display.color: %q", c.Display.Color),
			"Use 'auto', 'always', or 'never'")
	}

	return nil
}
