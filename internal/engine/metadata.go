package engine

import (
	"time"

	"github.com/rileyhilliard/netwatch/internal/cache"
	"github.com/rileyhilliard/netwatch/internal/fetch"
)

const (
	// DefaultHostnameTTL is how long a fetched hostname stays fresh.
	DefaultHostnameTTL = 2 * time.Minute

	// DefaultModelTTL is how long a fetched model stays fresh. Models
	// change less often than hostnames, so the window is wider.
	DefaultModelTTL = 5 * time.Minute
)

// MetadataStore holds last-known hostname and model per device address,
// each with its own TTL. Values survive past their TTL: staleness only
// marks them eligible for refresh, and the engine refreshes a device only
// while it is reachable. A device that goes down keeps its last-known
// values indefinitely, so the display never flaps to "unknown" during an
// outage.
type MetadataStore struct {
	hostnames   *cache.TTLMap[string]
	models      *cache.TTLMap[string]
	hostnameTTL time.Duration
	modelTTL    time.Duration
}

// NewMetadataStore creates a store with the given TTLs.
func NewMetadataStore(hostnameTTL, modelTTL time.Duration) *MetadataStore {
	if hostnameTTL <= 0 {
		hostnameTTL = DefaultHostnameTTL
	}
	if modelTTL <= 0 {
		modelTTL = DefaultModelTTL
	}
	return &MetadataStore{
		hostnames:   cache.New[string](),
		models:      cache.New[string](),
		hostnameTTL: hostnameTTL,
		modelTTL:    modelTTL,
	}
}

// Hostname returns the last-known hostname for addr, fresh or not.
func (s *MetadataStore) Hostname(addr string) string {
	if v, ok := s.hostnames.Get(addr); ok {
		return v
	}
	return fetch.Unknown
}

// Model returns the last-known model for addr, fresh or not.
func (s *MetadataStore) Model(addr string) string {
	if v, ok := s.models.Get(addr); ok {
		return v
	}
	return fetch.Unknown
}

// HostnameStale reports whether addr's hostname needs a refresh.
func (s *MetadataStore) HostnameStale(addr string) bool {
	return s.hostnames.Stale(addr, s.hostnameTTL)
}

// ModelStale reports whether addr's model needs a refresh.
func (s *MetadataStore) ModelStale(addr string) bool {
	return s.models.Stale(addr, s.modelTTL)
}

// SetHostname records a fetched hostname. Only call for devices that were
// reachable this cycle; that is what keeps the freeze-while-down rule.
func (s *MetadataStore) SetHostname(addr, hostname string) {
	s.hostnames.Put(addr, hostname)
}

// SetModel records a fetched model. Same reachability caveat as SetHostname.
func (s *MetadataStore) SetModel(addr, model string) {
	s.models.Put(addr, model)
}
