package engine

import (
	"time"

	"github.com/rileyhilliard/netwatch/internal/devices"
)

// Entry is the composed per-device state for one cycle.
type Entry struct {
	Spec      devices.Spec
	Reachable bool
	Hostname  string
	Model     string
	Blink     bool
}

// Snapshot is the complete, ordered output of one polling cycle.
// Entries preserve device-list order. It is immutable once emitted and is
// handed to the renderer exactly once.
type Snapshot struct {
	Taken   time.Time
	Entries []Entry
}
