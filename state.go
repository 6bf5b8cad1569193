package ddns

import (
	"net/netip"
	"time"
)

// State is the process-wide view of the public IP and of every managed domain.
// It is owned by a single Client and is not safe for concurrent use on its own;
// the Client serialises passes.
type State struct {
	current netip.Addr
	domains []*Domain

	// retryBase is the first delay applied after a failed upsert.
	// Zero disables per-domain backoff.
	retryBase time.Duration
	retryMax  time.Duration
}

// NewState returns a State tracking domains. No IP is known yet.
func NewState(domains []*Domain) *State {
	return &State{domains: domains}
}

// Current returns the last observed public IP, or the zero Addr before the first resolution.
func (s *State) Current() netip.Addr { return s.current }

// Domains returns the tracked domains in configuration order.
func (s *State) Domains() []*Domain { return s.domains }

// Observe records a freshly resolved IP. It reports whether the IP differs from
// the previous one; the first observation always counts as a change.
// On change every domain is marked stale.
func (s *State) Observe(ip netip.Addr) bool {
	if s.current.IsValid() && s.current == ip {
		return false
	}
	s.current = ip
	s.MarkAllStale()
	return true
}

// MarkAllStale forgets what was published for every domain.
// Pending retries are dropped too, so every domain is due on the next pass.
func (s *State) MarkAllStale() {
	for _, d := range s.domains {
		d.LastPublished = netip.Addr{}
		d.notBefore = time.Time{}
		d.retry = nil
	}
}

// IsStale reports whether d still needs to be published with the current IP.
func (s *State) IsStale(d *Domain) bool {
	return !d.LastPublished.IsValid() || d.LastPublished != s.current
}

// MarkFresh records a confirmed upsert of ip for d.
func (s *State) MarkFresh(d *Domain, ip netip.Addr) {
	d.LastPublished = ip
	d.notBefore = time.Time{}
	d.retry = nil
}

// Pending returns the stale domains that a pass starting at now should work on:
// domains whose zone matching already failed and domains still backing off are left out.
func (s *State) Pending(now time.Time) []*Domain {
	var pending []*Domain
	for _, d := range s.domains {
		if d.unmatched || !s.IsStale(d) || now.Before(d.notBefore) {
			continue
		}
		pending = append(pending, d)
	}
	return pending
}
