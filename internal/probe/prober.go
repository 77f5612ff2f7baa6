// Package probe answers one question per device per cycle: did it respond
// to a single ICMP echo within the timeout. There are no retries and no
// distinction between timeout and refusal; both read as unreachable.
package probe

import (
	"context"
	"net/netip"
	"sync"
	"time"

	"github.com/rileyhilliard/netwatch/internal/logger"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultTimeout bounds a single echo round trip.
	DefaultTimeout = 1 * time.Second

	// DefaultMaxWorkers caps concurrent in-flight probes.
	DefaultMaxWorkers = 32
)

// PingFunc sends one echo request and reports whether a reply arrived in
// time. Implementations must never panic or block past the timeout.
type PingFunc func(ctx context.Context, addr netip.Addr, timeout time.Duration) bool

// Prober runs reachability checks over a batch of targets.
type Prober struct {
	timeout    time.Duration
	maxWorkers int
	ping       PingFunc
	log        logger.Logger
}

// Option configures a Prober.
type Option func(*Prober)

// WithTimeout overrides the per-probe timeout.
func WithTimeout(d time.Duration) Option {
	return func(p *Prober) { p.timeout = d }
}

// WithMaxWorkers overrides the concurrency cap. Non-positive values keep
// the default.
func WithMaxWorkers(n int) Option {
	return func(p *Prober) {
		if n > 0 {
			p.maxWorkers = n
		}
	}
}

// WithPingFunc overrides the echo implementation. For tests.
func WithPingFunc(fn PingFunc) Option {
	return func(p *Prober) { p.ping = fn }
}

// WithLogger overrides the logger.
func WithLogger(log logger.Logger) Option {
	return func(p *Prober) { p.log = log }
}

// New creates a Prober that sends real ICMP echoes.
func New(opts ...Option) *Prober {
	p := &Prober{
		timeout:    DefaultTimeout,
		maxWorkers: DefaultMaxWorkers,
		ping:       icmpPing,
		log:        logger.NewEnvLogger("[probe]"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ProbeAll probes every unique target concurrently and returns a map of
// target -> reachable. It returns only after every probe has completed.
// Targets that are not IPv4 literals are unreachable without a network
// call: the resolver already had its chance, a raw hostname here means
// resolution failed. A failure for one target never affects another.
func (p *Prober) ProbeAll(ctx context.Context, targets []string) map[string]bool {
	results := make(map[string]bool, len(targets))
	if len(targets) == 0 {
		return results
	}

	// Dedupe: a target listed twice needs one probe.
	type job struct {
		target string
		addr   netip.Addr
	}
	var jobs []job
	for _, t := range targets {
		if _, seen := results[t]; seen {
			continue
		}
		results[t] = false

		addr, err := netip.ParseAddr(t)
		if err != nil || !addr.Is4() {
			p.log.Debug("skipping non-address target %q", t)
			continue
		}
		jobs = append(jobs, job{target: t, addr: addr})
	}

	if len(jobs) == 0 {
		return results
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(p.maxWorkers, len(jobs)))

	for _, j := range jobs {
		g.Go(func() error {
			up := p.ping(gctx, j.addr, p.timeout)
			mu.Lock()
			results[j.target] = up
			mu.Unlock()
			// Probe failures are results, not errors: returning one
			// would cancel the sibling probes.
			return nil
		})
	}
	_ = g.Wait()

	return results
}
