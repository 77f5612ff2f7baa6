// Package engine drives the polling loop: reload the device list, resolve
// new entries, probe everything concurrently, refresh stale metadata for
// reachable devices, compose an ordered snapshot and hand it to the
// renderer. Phases run with strict barriers inside a cycle; nothing in the
// engine is fatal, every failure degrades to cached-or-unknown values.
package engine

import (
	"context"
	"time"

	"github.com/rileyhilliard/netwatch/internal/devices"
	"github.com/rileyhilliard/netwatch/internal/fetch"
	"github.com/rileyhilliard/netwatch/internal/logger"
)

const (
	// DefaultPollInterval is the cycle cadence.
	DefaultPollInterval = 1 * time.Second

	// DefaultReloadInterval is how often the device file is re-read.
	DefaultReloadInterval = 10 * time.Second
)

// Resolver turns a raw device entry into an address and display name.
type Resolver interface {
	Resolve(ctx context.Context, entry string) (address, canonical string)
}

// Prober checks reachability for a batch of targets.
type Prober interface {
	ProbeAll(ctx context.Context, targets []string) map[string]bool
}

// Fetcher retrieves metadata for a batch of reachable devices.
type Fetcher interface {
	FetchAll(ctx context.Context, reqs []fetch.Request) []fetch.Result
}

// Renderer consumes one snapshot per cycle. It has no write access back
// into the engine.
type Renderer interface {
	Render(Snapshot)
}

// Config holds engine timing and the device file location.
type Config struct {
	DeviceFile     string
	PollInterval   time.Duration
	ReloadInterval time.Duration
	BlinkInterval  time.Duration
	HostnameTTL    time.Duration
	ModelTTL       time.Duration
}

// Engine owns the device list, the metadata store and the blink clock, and
// runs cycles until its context is cancelled.
type Engine struct {
	cfg      Config
	resolver Resolver
	prober   Prober
	fetcher  Fetcher
	renderer Renderer
	store    *MetadataStore
	blink    *BlinkClock
	log      logger.Logger

	rawEntries    []string
	specs         []devices.Spec
	lastReload    time.Time
	loadedOnce    bool
	missingLogged bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger overrides the logger.
func WithLogger(log logger.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// New creates an Engine. Zero durations in cfg fall back to defaults.
func New(cfg Config, resolver Resolver, prober Prober, fetcher Fetcher, renderer Renderer, opts ...Option) *Engine {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.ReloadInterval <= 0 {
		cfg.ReloadInterval = DefaultReloadInterval
	}

	e := &Engine{
		cfg:      cfg,
		resolver: resolver,
		prober:   prober,
		fetcher:  fetcher,
		renderer: renderer,
		store:    NewMetadataStore(cfg.HostnameTTL, cfg.ModelTTL),
		blink:    NewBlinkClock(cfg.BlinkInterval),
		log:      logger.NewEnvLogger("[engine]"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run polls until ctx is cancelled. Cancellation stops the loop before the
// next cycle; in-flight probes and fetches are abandoned to their own
// timeouts. Always returns nil or ctx.Err().
func (e *Engine) Run(ctx context.Context) error {
	ticker := time.NewTicker(e.cfg.PollInterval)
	defer ticker.Stop()

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		e.runCycle(ctx)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// runCycle executes one reload→resolve→probe→fetch→compose→emit pass.
func (e *Engine) runCycle(ctx context.Context) {
	e.maybeReload(ctx)
	blink := e.blink.Advance()

	// Probe every device this cycle; reachability is never cached.
	targets := make([]string, len(e.specs))
	for i, spec := range e.specs {
		targets[i] = spec.Target()
	}
	up := e.prober.ProbeAll(ctx, targets)

	e.refreshMetadata(ctx, up)

	snapshot := e.compose(up, blink)
	e.renderer.Render(snapshot)
}

// maybeReload re-reads the device file on its interval and replaces the
// spec list when the content changed. Caches are keyed by entry/address,
// so specs that survive a reload keep their cached state.
func (e *Engine) maybeReload(ctx context.Context) {
	now := time.Now()
	if e.loadedOnce && now.Sub(e.lastReload) < e.cfg.ReloadInterval {
		return
	}
	e.lastReload = now

	entries, ok := devices.ReadFile(e.cfg.DeviceFile)
	if !ok {
		if !e.missingLogged {
			e.log.Warn("device file %s not readable; watching an empty set", e.cfg.DeviceFile)
			e.missingLogged = true
		}
	} else {
		e.missingLogged = false
	}

	if e.loadedOnce && devices.Equal(entries, e.rawEntries) {
		return
	}

	e.rawEntries = entries
	e.specs = e.resolveAll(ctx, entries)
	e.loadedOnce = true
	e.log.Debug("device list loaded: %d entries", len(entries))
}

// resolveAll builds fresh specs for the whole list. The resolver caches by
// entry, so unchanged entries cost nothing.
func (e *Engine) resolveAll(ctx context.Context, entries []string) []devices.Spec {
	specs := make([]devices.Spec, len(entries))
	for i, entry := range entries {
		addr, canonical := e.resolver.Resolve(ctx, entry)
		specs[i] = devices.Spec{
			Original:        entry,
			Address:         addr,
			DisplayNameHint: canonical,
		}
	}
	return specs
}

// refreshMetadata batch-fetches hostname/model for reachable devices whose
// cache is stale, and records the results. Unreachable devices are never
// fetched and never overwritten.
func (e *Engine) refreshMetadata(ctx context.Context, up map[string]bool) {
	var reqs []fetch.Request
	seen := make(map[string]bool)

	for _, spec := range e.specs {
		addr := spec.Address
		if addr == "" || seen[addr] || !up[spec.Target()] {
			continue
		}
		req := fetch.Request{
			Addr:     addr,
			Hostname: e.store.HostnameStale(addr),
			Model:    e.store.ModelStale(addr),
		}
		if !req.Hostname && !req.Model {
			continue
		}
		seen[addr] = true
		reqs = append(reqs, req)
	}

	if len(reqs) == 0 {
		return
	}

	results := e.fetcher.FetchAll(ctx, reqs)
	for i, req := range reqs {
		if i >= len(results) {
			break
		}
		if req.Hostname {
			e.store.SetHostname(req.Addr, results[i].Hostname)
		}
		if req.Model {
			e.store.SetModel(req.Addr, results[i].Model)
		}
	}
}

// compose assembles the snapshot in device-list order.
func (e *Engine) compose(up map[string]bool, blink bool) Snapshot {
	entries := make([]Entry, len(e.specs))
	for i, spec := range e.specs {
		entry := Entry{
			Spec:      spec,
			Reachable: up[spec.Target()],
			Hostname:  fetch.Unknown,
			Model:     fetch.Unknown,
			Blink:     blink,
		}
		if spec.Address != "" {
			entry.Hostname = e.store.Hostname(spec.Address)
			entry.Model = e.store.Model(spec.Address)
		}
		entries[i] = entry
	}
	return Snapshot{Taken: time.Now(), Entries: entries}
}
