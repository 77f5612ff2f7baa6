// Package resolve turns raw device entries (hostnames or IP literals) into
// probe addresses and display names, with a TTL cache in front of DNS so a
// tight polling loop does not hammer the resolver.
package resolve

import (
	"context"
	"net"
	"net/netip"
	"strings"
	"time"

	"github.com/rileyhilliard/netwatch/internal/cache"
	"github.com/rileyhilliard/netwatch/internal/logger"
)

// DefaultTTL is how long forward and reverse lookups are reused.
const DefaultTTL = 5 * time.Minute

// defaultLookupTimeout bounds a single DNS round trip.
const defaultLookupTimeout = 2 * time.Second

// Lookuper is the subset of net.Resolver used here.
// *net.Resolver satisfies it; tests inject fakes.
type Lookuper interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
	LookupAddr(ctx context.Context, addr string) ([]string, error)
}

// Resolution is a cached forward-lookup result.
// Both fields may be empty when the entry never resolved.
type Resolution struct {
	Address   string
	Canonical string
}

// Resolver resolves device entries with per-entry TTL caching.
// Resolution failures are not errors: an unresolvable entry yields empty
// strings and the device is probed by its raw name, which will read as
// unreachable.
type Resolver struct {
	lookup  Lookuper
	ttl     time.Duration
	timeout time.Duration
	forward *cache.TTLMap[Resolution]
	reverse *cache.TTLMap[string]
	log     logger.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithTTL overrides the cache TTL.
func WithTTL(ttl time.Duration) Option {
	return func(r *Resolver) { r.ttl = ttl }
}

// WithLookuper overrides the DNS backend. For tests.
func WithLookuper(l Lookuper) Option {
	return func(r *Resolver) { r.lookup = l }
}

// WithLogger overrides the logger.
func WithLogger(log logger.Logger) Option {
	return func(r *Resolver) { r.log = log }
}

// New creates a Resolver backed by the system DNS resolver.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		lookup:  systemResolver(),
		ttl:     DefaultTTL,
		timeout: defaultLookupTimeout,
		forward: cache.New[Resolution](),
		reverse: cache.New[string](),
		log:     logger.NewEnvLogger("[resolve]"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the probe address and canonical display name for entry.
// Results are cached for the configured TTL keyed by the raw entry; a cache
// hit skips all lookups. Never returns an error: failures yield ("", "").
func (r *Resolver) Resolve(ctx context.Context, entry string) (address, canonical string) {
	if res, ok := r.forward.Fresh(entry, r.ttl); ok {
		return res.Address, res.Canonical
	}

	res := r.resolveUncached(ctx, entry)
	r.forward.Put(entry, res)
	return res.Address, res.Canonical
}

func (r *Resolver) resolveUncached(ctx context.Context, entry string) Resolution {
	if _, err := netip.ParseAddr(entry); err == nil {
		// Literal address: the entry is the address, reverse lookup
		// supplies the name if the PTR record exists.
		return Resolution{Address: entry, Canonical: r.reverseName(ctx, entry)}
	}

	lctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	addrs, err := r.lookup.LookupHost(lctx, entry)
	if err != nil || len(addrs) == 0 {
		r.log.Debug("forward lookup failed for %q: %v", entry, err)
		return Resolution{}
	}

	addr := addrs[0]
	canonical := r.reverseName(ctx, addr)
	if canonical == "" {
		canonical = entry
	}
	return Resolution{Address: addr, Canonical: canonical}
}

// systemResolver returns the process-wide DNS resolver.
func systemResolver() Lookuper {
	return net.DefaultResolver
}

// reverseName does a cached PTR lookup. Empty string on failure.
func (r *Resolver) reverseName(ctx context.Context, addr string) string {
	if name, ok := r.reverse.Fresh(addr, r.ttl); ok {
		return name
	}

	lctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	name := ""
	if names, err := r.lookup.LookupAddr(lctx, addr); err == nil && len(names) > 0 {
		name = strings.TrimSuffix(names[0], ".")
	}
	r.reverse.Put(addr, name)
	return name
}
