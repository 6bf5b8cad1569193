package ddns

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"
)

// InterfaceResolver constructs a resolver that returns the first public IPv4 address
// assigned to the given interfaces, for hosts that hold their public address directly.
// If no interfaces are provided then all interfaces are searched.
// Loopback, link-local, private (RFC 1918) and carrier-grade NAT (RFC 6598) addresses are skipped.
func InterfaceResolver(iface ...string) Resolver {
	return interfaceResolver{ifaces: iface}
}

type interfaceResolver struct {
	ifaces []string
}

func (r interfaceResolver) Resolve(ctx context.Context) (netip.Addr, error) {
	addrs, err := r.addrs()
	for _, a := range addrs {
		ip, perr := netip.ParsePrefix(a.String())
		if perr != nil {
			err = errors.Join(err, fmt.Errorf("error parsing local ip %s: %w", a.String(), perr))
			continue
		}
		if isPublicIPv4(ip.Addr()) {
			return ip.Addr().Unmap(), nil
		}
	}
	if err != nil {
		return netip.Addr{}, fmt.Errorf("no public IPv4 address found: %w", err)
	}
	return netip.Addr{}, errors.New("no public IPv4 address found on any interface")
}

func (r interfaceResolver) addrs() ([]net.Addr, error) {
	if len(r.ifaces) == 0 {
		adds, err := net.InterfaceAddrs()
		if err != nil {
			return nil, fmt.Errorf("error getting addresses for interface: %w", err)
		}
		return adds, nil
	}
	var errs []error
	var addrs []net.Addr
	for _, ifs := range r.ifaces {
		iface, err := net.InterfaceByName(ifs)
		if err != nil {
			errs = append(errs, fmt.Errorf("error getting interface %s by name: %w", ifs, err))
			continue
		}
		a, err := iface.Addrs()
		if err != nil {
			errs = append(errs, fmt.Errorf("error looking up addresses for interface %s: %w", ifs, err))
			continue
		}
		addrs = append(addrs, a...)
	}
	return addrs, errors.Join(errs...)
}

// sharedAddressSpace is the carrier-grade NAT range from RFC 6598.
var sharedAddressSpace = netip.MustParsePrefix("100.64.0.0/10")

func isPublicIPv4(ip netip.Addr) bool {
	ip = ip.Unmap()
	return ip.Is4() && ip.IsGlobalUnicast() && !ip.IsPrivate() && !sharedAddressSpace.Contains(ip)
}
