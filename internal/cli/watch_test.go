package cli

import (
	"testing"
	"time"

	"github.com/rileyhilliard/netwatch/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetWatchFlags() {
	watchDevicesFlag = ""
	watchIntervalFlag = ""
	watchPlainFlag = false
}

func TestApplyWatchFlagsDevicesOverride(t *testing.T) {
	defer resetWatchFlags()
	watchDevicesFlag = "lab-devices.txt"

	cfg := config.DefaultConfig()
	require.NoError(t, applyWatchFlags(cfg))
	assert.Equal(t, "lab-devices.txt", cfg.DeviceFile)
}

func TestApplyWatchFlagsInterval(t *testing.T) {
	defer resetWatchFlags()
	watchIntervalFlag = "5s"

	cfg := config.DefaultConfig()
	require.NoError(t, applyWatchFlags(cfg))
	assert.Equal(t, 5*time.Second, cfg.Poll.Interval)
}

func TestApplyWatchFlagsInvalidInterval(t *testing.T) {
	defer resetWatchFlags()
	watchIntervalFlag = "soon"

	assert.Error(t, applyWatchFlags(config.DefaultConfig()))
}

func TestApplyWatchFlagsIntervalTooShort(t *testing.T) {
	defer resetWatchFlags()
	watchIntervalFlag = "10ms"

	assert.Error(t, applyWatchFlags(config.DefaultConfig()))
}

func TestApplyWatchFlagsNoFlagsKeepsConfig(t *testing.T) {
	defer resetWatchFlags()

	cfg := config.DefaultConfig()
	require.NoError(t, applyWatchFlags(cfg))
	assert.Equal(t, *config.DefaultConfig(), *cfg)
}

func TestColorEnabledExplicitModes(t *testing.T) {
	assert.True(t, colorEnabled("always"))
	assert.False(t, colorEnabled("never"))
}
