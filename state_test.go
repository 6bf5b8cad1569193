package ddns

import (
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestState(t *testing.T, names ...string) *State {
	t.Helper()
	domains, err := ParseDomains(names)
	require.NoError(t, err)
	return NewState(domains)
}

func TestStateStartsStale(t *testing.T) {
	s := newTestState(t, "a.example.com", "b.example.com")
	assert.False(t, s.Current().IsValid())
	for _, d := range s.Domains() {
		assert.True(t, s.IsStale(d))
	}
}

func TestStateObserve(t *testing.T) {
	s := newTestState(t, "a.example.com", "b.example.com")
	ip1 := netip.MustParseAddr("203.0.113.5")
	ip2 := netip.MustParseAddr("203.0.113.6")

	assert.True(t, s.Observe(ip1), "first observation is a change")
	for _, d := range s.Domains() {
		s.MarkFresh(d, ip1)
		assert.False(t, s.IsStale(d))
	}

	assert.False(t, s.Observe(ip1))
	for _, d := range s.Domains() {
		assert.False(t, s.IsStale(d), "same IP keeps domains fresh")
	}

	assert.True(t, s.Observe(ip2))
	assert.Equal(t, ip2, s.Current())
	for _, d := range s.Domains() {
		assert.True(t, s.IsStale(d), "new IP marks every domain stale")
		assert.False(t, d.LastPublished.IsValid())
	}
}

func TestStatePublishedAnotherIP(t *testing.T) {
	s := newTestState(t, "a.example.com")
	d := s.Domains()[0]
	s.Observe(netip.MustParseAddr("203.0.113.5"))
	s.MarkFresh(d, netip.MustParseAddr("198.51.100.1"))
	assert.True(t, s.IsStale(d))
}

func TestStatePending(t *testing.T) {
	s := newTestState(t, "a.example.com", "b.example.com", "c.example.com")
	ip := netip.MustParseAddr("203.0.113.5")
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.Observe(ip)

	a, b, c := s.Domains()[0], s.Domains()[1], s.Domains()[2]
	s.MarkFresh(a, ip)
	b.unmatched = true
	c.notBefore = now.Add(time.Minute)

	assert.Empty(t, s.Pending(now))
	assert.Equal(t, []*Domain{c}, s.Pending(now.Add(time.Minute)))
}
