package ddns

import (
	"fmt"
	"strings"
)

// MatchZone selects the hosted zone responsible for name.
//
// A zone qualifies when name equals the zone name or ends with "." followed by it,
// so "example.com" matches "www.example.com" but never "notexample.com".
// The longest qualifying zone wins. When a public and a private zone share
// the same name the public one is preferred, otherwise the first listed wins.
func MatchZone(name string, zones []HostedZone) (HostedZone, error) {
	name = normalizeName(name)

	var best HostedZone
	longest := 0
	for _, z := range zones {
		zn := normalizeName(z.Name)
		if zn == "" || !isSubdomain(name, zn) {
			continue
		}
		if len(zn) > longest || (len(zn) == longest && best.Private && !z.Private) {
			longest, best = len(zn), z
		}
	}
	if longest == 0 {
		return HostedZone{}, fmt.Errorf("%w %q", ErrZoneNotFound, name)
	}
	return best, nil
}

func isSubdomain(name, zone string) bool {
	return name == zone || strings.HasSuffix(name, "."+zone)
}
