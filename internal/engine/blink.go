package engine

import "time"

// DefaultBlinkInterval is the cadence of the unreachable-device blink.
const DefaultBlinkInterval = 1 * time.Second

// BlinkClock flips a boolean phase on a fixed interval. Unreachable
// devices render dim on one phase and full on the other. The clock is
// advanced once per engine tick by comparing wall-clock time; it flips at
// most once per check, so a long tick loses blinks rather than bursting
// them. Cosmetic only.
type BlinkClock struct {
	interval time.Duration
	phase    bool
	last     time.Time
	now      func() time.Time
}

// NewBlinkClock creates a clock starting in the "full" phase.
func NewBlinkClock(interval time.Duration) *BlinkClock {
	if interval <= 0 {
		interval = DefaultBlinkInterval
	}
	return &BlinkClock{
		interval: interval,
		phase:    true,
		now:      time.Now,
	}
}

// Advance flips the phase if at least one interval elapsed since the last
// flip, and returns the current phase.
func (b *BlinkClock) Advance() bool {
	now := b.now()
	if b.last.IsZero() {
		b.last = now
		return b.phase
	}
	if now.Sub(b.last) >= b.interval {
		b.phase = !b.phase
		b.last = now
	}
	return b.phase
}

// Phase returns the current phase without advancing.
func (b *BlinkClock) Phase() bool {
	return b.phase
}
