package probe

import (
	"context"
	"net/netip"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rileyhilliard/netwatch/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProber(ping PingFunc, opts ...Option) *Prober {
	opts = append([]Option{WithPingFunc(ping), WithLogger(logger.Noop())}, opts...)
	return New(opts...)
}

func TestProbeAllEmpty(t *testing.T) {
	p := newTestProber(func(context.Context, netip.Addr, time.Duration) bool { return true })

	results := p.ProbeAll(context.Background(), nil)
	assert.Empty(t, results)
}

func TestProbeAllMixedResults(t *testing.T) {
	up := map[string]bool{"10.0.0.1": true, "10.0.0.3": true}
	p := newTestProber(func(_ context.Context, addr netip.Addr, _ time.Duration) bool {
		return up[addr.String()]
	})

	results := p.ProbeAll(context.Background(), []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"})

	require.Len(t, results, 3)
	assert.True(t, results["10.0.0.1"])
	assert.False(t, results["10.0.0.2"])
	assert.True(t, results["10.0.0.3"])
}

func TestProbeAllNonAddressTargetsAreDown(t *testing.T) {
	var calls atomic.Int64
	p := newTestProber(func(context.Context, netip.Addr, time.Duration) bool {
		calls.Add(1)
		return true
	})

	results := p.ProbeAll(context.Background(), []string{"bogus.invalid", "not an ip", "::1"})

	assert.False(t, results["bogus.invalid"])
	assert.False(t, results["not an ip"])
	assert.False(t, results["::1"], "IPv6 is out of scope for the echo probe")
	assert.Equal(t, int64(0), calls.Load(), "non-address targets must not hit the network")
}

func TestProbeAllDedupes(t *testing.T) {
	var calls atomic.Int64
	p := newTestProber(func(context.Context, netip.Addr, time.Duration) bool {
		calls.Add(1)
		return true
	})

	results := p.ProbeAll(context.Background(), []string{"10.0.0.1", "10.0.0.1", "10.0.0.1"})

	assert.Len(t, results, 1)
	assert.Equal(t, int64(1), calls.Load())
}

func TestProbeAllIsolation(t *testing.T) {
	// One target panicking at the transport level is modelled as a probe
	// that just returns false; a slow one must not change its peers.
	p := newTestProber(func(_ context.Context, addr netip.Addr, _ time.Duration) bool {
		if addr.String() == "10.0.0.2" {
			time.Sleep(20 * time.Millisecond)
			return false
		}
		return true
	}, WithMaxWorkers(2))

	results := p.ProbeAll(context.Background(), []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"})

	assert.True(t, results["10.0.0.1"])
	assert.False(t, results["10.0.0.2"])
	assert.True(t, results["10.0.0.3"])
}

func TestProbeAllRespectsWorkerCap(t *testing.T) {
	var inFlight, peak atomic.Int64
	var mu sync.Mutex

	p := newTestProber(func(context.Context, netip.Addr, time.Duration) bool {
		cur := inFlight.Add(1)
		mu.Lock()
		if cur > peak.Load() {
			peak.Store(cur)
		}
		mu.Unlock()
		time.Sleep(5 * time.Millisecond)
		inFlight.Add(-1)
		return true
	}, WithMaxWorkers(3))

	targets := make([]string, 0, 12)
	for i := 1; i <= 12; i++ {
		targets = append(targets, netip.AddrFrom4([4]byte{10, 0, 0, byte(i)}).String())
	}

	results := p.ProbeAll(context.Background(), targets)

	assert.Len(t, results, 12)
	assert.LessOrEqual(t, peak.Load(), int64(3))
}

func TestProbeAllCompletesBeforeReturn(t *testing.T) {
	var done atomic.Int64
	p := newTestProber(func(context.Context, netip.Addr, time.Duration) bool {
		time.Sleep(time.Millisecond)
		done.Add(1)
		return true
	})

	p.ProbeAll(context.Background(), []string{"10.0.0.1", "10.0.0.2"})
	assert.Equal(t, int64(2), done.Load(), "ProbeAll must join all probes before returning")
}
