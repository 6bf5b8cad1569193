package ddns

import (
	"errors"
	"net/netip"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/miekg/dns"
)

// Domain is one fully-qualified name whose A record is kept in sync with the public IP.
//
// ZoneID and LastPublished are only written by the reconciliation loop after a
// successful operation.
type Domain struct {
	Name          string
	ZoneID        string
	LastPublished netip.Addr

	// unmatched is set once zone matching failed; the domain is skipped for the
	// lifetime of the process.
	unmatched bool

	retry     *backoff.ExponentialBackOff
	notBefore time.Time
}

// Unmatched reports whether zone matching already failed for d.
func (d *Domain) Unmatched() bool { return d.unmatched }

// ValidateDomainName checks a configured name.
// A name must contain at least one dot, be at least three characters long,
// and be a syntactically valid DNS name.
func ValidateDomainName(name string) error {
	switch {
	case name == "":
		return &ConfigError{Name: name, Reason: "domain cannot be empty"}
	case len(name) < 3:
		return &ConfigError{Name: name, Reason: "domain must be at least 3 characters"}
	case !strings.Contains(name, "."):
		return &ConfigError{Name: name, Reason: "domain must have at least one dot"}
	}
	if _, ok := dns.IsDomainName(name); !ok {
		return &ConfigError{Name: name, Reason: "not a valid DNS name"}
	}
	if strings.HasPrefix(name, ".") {
		return &ConfigError{Name: name, Reason: "domain cannot start with a dot"}
	}
	return nil
}

// ParseDomains validates names and returns one Domain per distinct name, in input order.
// Names are lower-cased and stripped of a trailing dot.
// Every invalid name is reported; the returned error wraps one *ConfigError per name.
func ParseDomains(names []string) ([]*Domain, error) {
	var errs []error
	seen := map[string]bool{}
	var domains []*Domain
	for _, n := range names {
		if err := ValidateDomainName(n); err != nil {
			errs = append(errs, err)
			continue
		}
		n = normalizeName(n)
		if seen[n] {
			continue
		}
		seen[n] = true
		domains = append(domains, &Domain{Name: n})
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	if len(domains) == 0 {
		return nil, &ConfigError{Reason: "at least one domain is required"}
	}
	return domains, nil
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSuffix(name, "."))
}
