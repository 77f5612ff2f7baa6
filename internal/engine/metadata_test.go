package engine

import (
	"testing"
	"time"

	"github.com/rileyhilliard/netwatch/internal/fetch"
	"github.com/stretchr/testify/assert"
)

func TestMetadataStoreUnknownWhenNeverFetched(t *testing.T) {
	s := NewMetadataStore(0, 0)

	assert.Equal(t, fetch.Unknown, s.Hostname("10.0.0.1"))
	assert.Equal(t, fetch.Unknown, s.Model("10.0.0.1"))
	assert.True(t, s.HostnameStale("10.0.0.1"))
	assert.True(t, s.ModelStale("10.0.0.1"))
}

func TestMetadataStoreFreshAfterSet(t *testing.T) {
	s := NewMetadataStore(0, 0)
	s.SetHostname("10.0.0.1", "SW1")
	s.SetModel("10.0.0.1", "N9K-C93180YC-EX")

	assert.Equal(t, "SW1", s.Hostname("10.0.0.1"))
	assert.Equal(t, "N9K-C93180YC-EX", s.Model("10.0.0.1"))
	assert.False(t, s.HostnameStale("10.0.0.1"))
	assert.False(t, s.ModelStale("10.0.0.1"))
}

func TestMetadataStoreIndependentTTLs(t *testing.T) {
	s := NewMetadataStore(2*time.Minute, 5*time.Minute)

	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	now := func() time.Time { return clock }
	s.hostnames.SetClock(now)
	s.models.SetClock(now)

	s.SetHostname("10.0.0.1", "SW1")
	s.SetModel("10.0.0.1", "C9300-48P")

	clock = clock.Add(3 * time.Minute)

	assert.True(t, s.HostnameStale("10.0.0.1"), "hostname stale after 3m with 2m TTL")
	assert.False(t, s.ModelStale("10.0.0.1"), "model still fresh after 3m with 5m TTL")

	// Stale values remain readable: staleness marks refresh eligibility,
	// it never erases.
	assert.Equal(t, "SW1", s.Hostname("10.0.0.1"))
}
