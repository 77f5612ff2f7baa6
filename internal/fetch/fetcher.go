// Package fetch retrieves identity metadata (hostname, model) from
// reachable devices over short-lived SSH sessions. It is a pure
// fetch-or-fail primitive: no caching, no reachability policy. Callers
// decide when a fetch is warranted.
package fetch

import (
	"context"
	"time"

	"github.com/rileyhilliard/netwatch/internal/logger"
	"github.com/rileyhilliard/netwatch/pkg/sshutil"
	"golang.org/x/sync/errgroup"
)

// Unknown is returned whenever a value cannot be obtained.
const Unknown = "unknown"

const (
	// DefaultSessionTimeout covers connect, banner and auth per
	// credential attempt.
	DefaultSessionTimeout = 3 * time.Second

	// DefaultCommandTimeout bounds a single remote command.
	DefaultCommandTimeout = 3 * time.Second

	// DefaultMaxWorkers caps concurrent device fetches in a batch.
	DefaultMaxWorkers = 16
)

// Fetcher runs dialect command chains against devices.
type Fetcher struct {
	creds          []sshutil.Credential
	dial           sshutil.Dialer
	sessionTimeout time.Duration
	commandTimeout time.Duration
	maxWorkers     int
	log            logger.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithDialer overrides the SSH dialer. For tests.
func WithDialer(d sshutil.Dialer) Option {
	return func(f *Fetcher) { f.dial = d }
}

// WithSessionTimeout overrides the per-credential session timeout.
func WithSessionTimeout(d time.Duration) Option {
	return func(f *Fetcher) { f.sessionTimeout = d }
}

// WithCommandTimeout overrides the per-command timeout.
func WithCommandTimeout(d time.Duration) Option {
	return func(f *Fetcher) { f.commandTimeout = d }
}

// WithMaxWorkers overrides the batch concurrency cap. Non-positive values
// keep the default.
func WithMaxWorkers(n int) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxWorkers = n
		}
	}
}

// WithLogger overrides the logger.
func WithLogger(log logger.Logger) Option {
	return func(f *Fetcher) { f.log = log }
}

// New creates a Fetcher using the given credential list.
func New(creds []sshutil.Credential, opts ...Option) *Fetcher {
	f := &Fetcher{
		creds:          creds,
		dial:           sshutil.DefaultDialer,
		sessionTimeout: DefaultSessionTimeout,
		commandTimeout: DefaultCommandTimeout,
		maxWorkers:     DefaultMaxWorkers,
		log:            logger.NewEnvLogger("[fetch]"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchHostname returns the device hostname, or Unknown on any failure.
func (f *Fetcher) FetchHostname(ctx context.Context, addr string) string {
	res := f.fetchOne(ctx, Request{Addr: addr, Hostname: true})
	return res.Hostname
}

// FetchModel returns the device model, or Unknown on any failure.
func (f *Fetcher) FetchModel(ctx context.Context, addr string) string {
	res := f.fetchOne(ctx, Request{Addr: addr, Model: true})
	return res.Model
}

// Request names a device and which fields to fetch for it.
type Request struct {
	Addr     string
	Hostname bool
	Model    bool
}

// Result carries fetched values. A requested field that could not be
// obtained is Unknown; an unrequested field is empty.
type Result struct {
	Addr     string
	Hostname string
	Model    string
}

// FetchAll runs the requests concurrently, one SSH session per device,
// bounded by the worker cap. A failure for one device never affects
// another; the returned slice always has one result per request.
func (f *Fetcher) FetchAll(ctx context.Context, reqs []Request) []Result {
	results := make([]Result, len(reqs))
	if len(reqs) == 0 {
		return results
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(f.maxWorkers, len(reqs)))

	for i, req := range reqs {
		g.Go(func() error {
			results[i] = f.fetchOne(gctx, req)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// fetchOne opens one session and walks the requested chains.
// The session is closed on every path.
func (f *Fetcher) fetchOne(ctx context.Context, req Request) Result {
	res := Result{Addr: req.Addr}
	if req.Hostname {
		res.Hostname = Unknown
	}
	if req.Model {
		res.Model = Unknown
	}

	session, err := f.dial(ctx, req.Addr, f.creds, f.sessionTimeout)
	if err != nil {
		f.log.Debug("session to %s failed: %v", req.Addr, err)
		return res
	}
	defer session.Close()

	if req.Hostname {
		if v := f.firstMatch(ctx, session, hostnameChain); v != "" {
			res.Hostname = v
		}
	}
	if req.Model {
		if v := f.firstMatch(ctx, session, modelChain); v != "" {
			res.Model = v
		}
	}
	return res
}

// firstMatch walks a command chain and returns the first non-empty parse.
// Command errors and unparseable output both fall through to the next
// command; an exhausted chain yields "".
func (f *Fetcher) firstMatch(ctx context.Context, session sshutil.Session, chain []command) string {
	for _, c := range chain {
		if ctx.Err() != nil {
			return ""
		}

		cctx, cancel := context.WithTimeout(ctx, f.commandTimeout)
		out, err := session.Output(cctx, c.cmd)
		cancel()
		if err != nil {
			f.log.Debug("command %q failed: %v", c.cmd, err)
			continue
		}
		if v := c.parse(string(out)); v != "" {
			return v
		}
	}
	return ""
}
