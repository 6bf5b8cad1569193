package ddns

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
	"time"

	"github.com/miekg/dns"
)

const (
	// DefaultOpenDNSServer answers A queries for myip.opendns.com with the source address of the query.
	DefaultOpenDNSServer = "resolver1.opendns.com:53"

	openDNSMyIP = "myip.opendns.com."
)

// OpenDNSResolver constructs a resolver that asks an OpenDNS server for the
// address the query arrived from. An empty server uses DefaultOpenDNSServer.
func OpenDNSResolver(server string) Resolver {
	if server == "" {
		server = DefaultOpenDNSServer
	}
	return &dnsResolver{
		server: server,
		name:   openDNSMyIP,
		client: &dns.Client{Net: "udp", Timeout: 5 * time.Second},
	}
}

type dnsResolver struct {
	server string
	name   string
	client *dns.Client
}

// Resolve implements ddns.Resolver.
func (r *dnsResolver) Resolve(ctx context.Context) (netip.Addr, error) {
	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(r.name), dns.TypeA)
	m.RecursionDesired = false

	in, _, err := r.client.ExchangeContext(ctx, m, r.server)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("querying %s for %s: %w", r.server, r.name, err)
	}
	if in.Rcode != dns.RcodeSuccess {
		return netip.Addr{}, fmt.Errorf("querying %s for %s: got rcode %s", r.server, r.name, dns.RcodeToString[in.Rcode])
	}
	for _, rr := range in.Answer {
		a, ok := rr.(*dns.A)
		if !ok {
			continue
		}
		ip, ok := netip.AddrFromSlice(a.A)
		if !ok {
			continue
		}
		if ip = ip.Unmap(); ip.Is4() {
			return ip, nil
		}
	}
	return netip.Addr{}, errors.New("no A record in answer from " + r.server)
}
