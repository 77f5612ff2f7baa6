package engine

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rileyhilliard/netwatch/internal/fetch"
	"github.com/rileyhilliard/netwatch/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeResolver resolves from a fixed table and counts lookups.
type fakeResolver struct {
	mu    sync.Mutex
	table map[string][2]string // entry -> (address, canonical)
	calls int
}

func (f *fakeResolver) Resolve(_ context.Context, entry string) (string, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	res := f.table[entry]
	return res[0], res[1]
}

// fakeProber reports reachability from a mutable map.
type fakeProber struct {
	mu    sync.Mutex
	up    map[string]bool
	calls int
}

func (f *fakeProber) ProbeAll(_ context.Context, targets []string) map[string]bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	results := make(map[string]bool, len(targets))
	for _, t := range targets {
		results[t] = f.up[t]
	}
	return results
}

func (f *fakeProber) setUp(target string, up bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.up[target] = up
}

// fakeFetcher serves canned metadata and records every request.
type fakeFetcher struct {
	mu        sync.Mutex
	hostnames map[string]string
	models    map[string]string
	requests  []fetch.Request
}

func (f *fakeFetcher) FetchAll(_ context.Context, reqs []fetch.Request) []fetch.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, reqs...)

	results := make([]fetch.Result, len(reqs))
	for i, req := range reqs {
		results[i] = fetch.Result{Addr: req.Addr}
		if req.Hostname {
			results[i].Hostname = valueOr(f.hostnames, req.Addr)
		}
		if req.Model {
			results[i].Model = valueOr(f.models, req.Addr)
		}
	}
	return results
}

func valueOr(m map[string]string, key string) string {
	if v, ok := m[key]; ok {
		return v
	}
	return fetch.Unknown
}

func (f *fakeFetcher) requestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

// captureRenderer records every emitted snapshot.
type captureRenderer struct {
	mu    sync.Mutex
	snaps []Snapshot
}

func (r *captureRenderer) Render(s Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snaps = append(r.snaps, s)
}

func (r *captureRenderer) last(t *testing.T) Snapshot {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.snaps)
	return r.snaps[len(r.snaps)-1]
}

type testRig struct {
	engine   *Engine
	resolver *fakeResolver
	prober   *fakeProber
	fetcher  *fakeFetcher
	renderer *captureRenderer
	file     string
}

func newRig(t *testing.T, deviceLines string) *testRig {
	t.Helper()

	file := filepath.Join(t.TempDir(), "devices.txt")
	if deviceLines != "" {
		require.NoError(t, os.WriteFile(file, []byte(deviceLines), 0644))
	}

	rig := &testRig{
		resolver: &fakeResolver{table: map[string][2]string{
			"10.0.0.1":  {"10.0.0.1", "edge-rtr.example.net"},
			"core-sw-1": {"10.0.0.5", "core-sw-1.example.net"},
			// bogus.invalid is absent: resolves to ("", "")
		}},
		prober:   &fakeProber{up: make(map[string]bool)},
		fetcher:  &fakeFetcher{hostnames: map[string]string{}, models: map[string]string{}},
		renderer: &captureRenderer{},
		file:     file,
	}

	cfg := Config{
		DeviceFile:     file,
		ReloadInterval: time.Nanosecond, // reload every cycle in tests
	}
	rig.engine = New(cfg, rig.resolver, rig.prober, rig.fetcher, rig.renderer,
		WithLogger(logger.Noop()))
	return rig
}

func TestCycleMixedReachability(t *testing.T) {
	rig := newRig(t, "10.0.0.1\nbogus.invalid\n")
	rig.prober.setUp("10.0.0.1", true)
	rig.fetcher.hostnames["10.0.0.1"] = "EDGE-RTR"
	rig.fetcher.models["10.0.0.1"] = "C9300-48P"

	rig.engine.runCycle(context.Background())

	snap := rig.renderer.last(t)
	require.Len(t, snap.Entries, 2)

	assert.Equal(t, "10.0.0.1", snap.Entries[0].Spec.Original)
	assert.True(t, snap.Entries[0].Reachable)
	assert.Equal(t, "EDGE-RTR", snap.Entries[0].Hostname)
	assert.Equal(t, "C9300-48P", snap.Entries[0].Model)

	assert.Equal(t, "bogus.invalid", snap.Entries[1].Spec.Original)
	assert.False(t, snap.Entries[1].Reachable)
	assert.Equal(t, fetch.Unknown, snap.Entries[1].Hostname)
	assert.Equal(t, fetch.Unknown, snap.Entries[1].Model)
}

func TestUnresolvedNeverFetched(t *testing.T) {
	rig := newRig(t, "bogus.invalid\n")

	for i := 0; i < 3; i++ {
		rig.engine.runCycle(context.Background())
	}

	assert.Equal(t, 0, rig.fetcher.requestCount(),
		"an entry with no address must never get a session")
}

func TestFreezeWhileDown(t *testing.T) {
	rig := newRig(t, "10.0.0.1\n")
	rig.prober.setUp("10.0.0.1", true)
	rig.fetcher.hostnames["10.0.0.1"] = "SW1"
	rig.fetcher.models["10.0.0.1"] = "N9K-C93180YC-EX"

	// Cycle 1: device is up, metadata fetched.
	rig.engine.runCycle(context.Background())
	require.Equal(t, "SW1", rig.renderer.last(t).Entries[0].Hostname)

	// Device goes down; even if a fetch happened it would return unknown.
	rig.prober.setUp("10.0.0.1", false)
	rig.fetcher.hostnames["10.0.0.1"] = fetch.Unknown

	// Force staleness so only the freeze rule protects the value.
	past := time.Now().Add(-time.Hour)
	rig.engine.store.hostnames.SetClock(func() time.Time { return past })
	rig.engine.store.hostnames.Put("10.0.0.1", "SW1")
	rig.engine.store.hostnames.SetClock(time.Now)

	before := rig.fetcher.requestCount()
	rig.engine.runCycle(context.Background())

	snap := rig.renderer.last(t)
	assert.False(t, snap.Entries[0].Reachable)
	assert.Equal(t, "SW1", snap.Entries[0].Hostname,
		"last-known hostname must survive the outage")
	assert.Equal(t, before, rig.fetcher.requestCount(),
		"unreachable devices must not be fetched")
}

func TestTTLRespected(t *testing.T) {
	rig := newRig(t, "10.0.0.1\n")
	rig.prober.setUp("10.0.0.1", true)
	rig.fetcher.hostnames["10.0.0.1"] = "SW1"
	rig.fetcher.models["10.0.0.1"] = "C9300-48P"

	for i := 0; i < 5; i++ {
		rig.engine.runCycle(context.Background())
	}

	assert.Equal(t, 1, rig.fetcher.requestCount(),
		"fresh cache must suppress redundant fetches across cycles")
}

func TestOrderPreserved(t *testing.T) {
	rig := newRig(t, "core-sw-1\n10.0.0.1\nbogus.invalid\n")
	rig.prober.setUp("10.0.0.5", true)

	rig.engine.runCycle(context.Background())

	snap := rig.renderer.last(t)
	require.Len(t, snap.Entries, 3)
	assert.Equal(t, "core-sw-1", snap.Entries[0].Spec.Original)
	assert.Equal(t, "10.0.0.1", snap.Entries[1].Spec.Original)
	assert.Equal(t, "bogus.invalid", snap.Entries[2].Spec.Original)
}

func TestMissingDeviceFileIsEmptySet(t *testing.T) {
	buf := logger.NewBufferLogger()
	rig := newRig(t, "")
	rig.engine.log = buf

	rig.engine.runCycle(context.Background())
	rig.engine.runCycle(context.Background())

	snap := rig.renderer.last(t)
	assert.Empty(t, snap.Entries)

	// The missing file is reported once, not every cycle.
	warns := 0
	for _, m := range buf.Messages {
		if m.Level == "warn" {
			warns++
		}
	}
	assert.Equal(t, 1, warns)
}

func TestReloadReplacesListOnChange(t *testing.T) {
	rig := newRig(t, "10.0.0.1\n")

	rig.engine.runCycle(context.Background())
	require.Len(t, rig.renderer.last(t).Entries, 1)

	require.NoError(t, os.WriteFile(rig.file, []byte("10.0.0.1\ncore-sw-1\n"), 0644))
	rig.engine.runCycle(context.Background())

	snap := rig.renderer.last(t)
	require.Len(t, snap.Entries, 2)
	assert.Equal(t, "10.0.0.5", snap.Entries[1].Spec.Address)
}

func TestReloadUnchangedListSkipsResolve(t *testing.T) {
	rig := newRig(t, "10.0.0.1\n")

	rig.engine.runCycle(context.Background())
	after := rig.resolver.calls

	rig.engine.runCycle(context.Background())
	rig.engine.runCycle(context.Background())

	assert.Equal(t, after, rig.resolver.calls,
		"identical file content must not rebuild the spec list")
}

func TestDuplicateAddressFetchedOnce(t *testing.T) {
	rig := newRig(t, "10.0.0.1\n10.0.0.1\n")
	rig.prober.setUp("10.0.0.1", true)
	rig.fetcher.hostnames["10.0.0.1"] = "SW1"

	rig.engine.runCycle(context.Background())

	assert.Equal(t, 1, rig.fetcher.requestCount())

	snap := rig.renderer.last(t)
	require.Len(t, snap.Entries, 2)
	assert.Equal(t, "SW1", snap.Entries[0].Hostname)
	assert.Equal(t, "SW1", snap.Entries[1].Hostname)
}

func TestRunStopsOnCancel(t *testing.T) {
	rig := newRig(t, "10.0.0.1\n")
	rig.engine.cfg.PollInterval = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- rig.engine.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("engine did not stop after cancellation")
	}

	rig.renderer.mu.Lock()
	cycles := len(rig.renderer.snaps)
	rig.renderer.mu.Unlock()
	assert.Greater(t, cycles, 0, "engine should have completed cycles before the stop")
}
