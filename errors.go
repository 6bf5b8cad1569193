package ddns

import (
	"errors"
	"fmt"
)

var (
	ErrResolveIP    = errors.New("unable to resolve public IP")
	ErrListZones    = errors.New("unable to list hosted zones")
	ErrZoneNotFound = errors.New("no hosted zone matches domain")
	ErrUpsert       = errors.New("unable to upsert A record")
)

// ConfigError reports a domain name that was rejected before any network activity.
type ConfigError struct {
	Name   string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid domain %q: %s", e.Name, e.Reason)
}

// DomainError ties a failed step to the domain it was running for.
type DomainError struct {
	Domain string
	Err    error
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Domain, e.Err)
}

func (e *DomainError) Unwrap() error { return e.Err }
