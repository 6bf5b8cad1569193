package ddns

//go:generate go tool mockgen -destination ddnsmock/api_mock.go -package ddnsmock . Resolver,Provider

import (
	"context"
	"net/netip"
)

// Resolver looks up the current public IPv4 address.
type Resolver interface {
	Resolve(context.Context) (netip.Addr, error)
}

// ResolverFunc adapts an ordinary function to the Resolver interface.
type ResolverFunc func(context.Context) (netip.Addr, error)

// Resolve implements ddns.Resolver.
func (f ResolverFunc) Resolve(ctx context.Context) (netip.Addr, error) {
	return f(ctx)
}

// HostedZone is a snapshot of one hosted zone as reported by the DNS provider.
type HostedZone struct {
	ID      string
	Name    string // may carry a trailing dot
	Private bool
}

// ZoneDirectory lists every hosted zone visible to the provider credentials.
type ZoneDirectory interface {
	ListHostedZones(ctx context.Context) ([]HostedZone, error)
}

// RecordUpserter creates or replaces the A record for name in the given zone.
// Implementations must be idempotent for identical arguments.
type RecordUpserter interface {
	UpsertA(ctx context.Context, zoneID, name string, ip netip.Addr) error
}

// Provider is a DNS provider that can both list zones and write records.
type Provider interface {
	ZoneDirectory
	RecordUpserter
}
