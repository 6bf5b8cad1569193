package ddns

import (
	"time"

	"github.com/cenkalti/backoff/v4"
)

const defaultRetryMax = 1 * time.Hour

// deferRetry schedules the next attempt for d after a failed upsert and returns the delay.
// The first failure is retried on the very next pass; consecutive failures back off
// exponentially up to retryMax. Zero is returned when no delay applies.
func (s *State) deferRetry(d *Domain, now time.Time) time.Duration {
	if s.retryBase <= 0 {
		return 0
	}
	if d.retry == nil {
		d.retry = s.newBackOff()
		return 0
	}
	wait := d.retry.NextBackOff()
	if wait == backoff.Stop {
		wait = d.retry.MaxInterval
	}
	d.notBefore = now.Add(wait)
	return wait
}

func (s *State) newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.retryBase
	b.MaxInterval = s.retryMax
	if b.MaxInterval < b.InitialInterval {
		b.MaxInterval = b.InitialInterval
	}
	b.RandomizationFactor = 0.2
	b.Multiplier = 2
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}
