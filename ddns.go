package ddns

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/netip"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/route53"
	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/semaphore"
)

const (
	// DefaultInterval is the pause between two passes in daemon mode.
	DefaultInterval = 5 * time.Minute

	// RecordTTL is the TTL, in seconds, of every A record written.
	RecordTTL = 300

	tracerName = "github.com/Travis-Britz/ddns/v2"
)

// DefaultResolver asks several public IP services and requires two of them to agree.
var DefaultResolver = WebResolver(DefaultIPServices...)

// New returns a Client managing the A records of domains.
//
// Every domain name is validated first; invalid names produce an error wrapping
// one *ConfigError each, and nothing else is done.
// A Provider must be registered, e.g. with UsingRoute53 or UsingProvider.
func New(domains []string, options ...Option) (*Client, error) {
	parsed, err := ParseDomains(domains)
	if err != nil {
		return nil, fmt.Errorf("ddns.New: %w", err)
	}
	c := &Client{
		Resolver: DefaultResolver,
		state:    NewState(parsed),
		logger:   logr.Discard(),
		interval: DefaultInterval,
		now:      time.Now,
		sem:      semaphore.NewWeighted(1),
		tracer:   otel.Tracer(tracerName),
	}
	for i, opt := range options {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("ddns.New: option %d returned an error: %w", i, err)
		}
	}

	if c.Provider == nil {
		return nil, errors.New("ddns.New: no DNS provider was registered and there is no default option - use ddns.UsingRoute53 or similar")
	}

	c.state.retryBase = c.interval
	c.state.retryMax = defaultRetryMax

	// propagate the logger to dependencies registered after WithLogger
	withLogger(c.logger)(c)
	return c, nil
}

// Option configures a Client in New.
type Option func(*Client) error

// UsingRoute53 registers Amazon Route 53 as the DNS provider.
func UsingRoute53(cfg aws.Config, options ...func(*Route53Provider)) Option {
	return func(c *Client) error {
		c.Provider = NewRoute53Provider(route53.NewFromConfig(cfg), options...)
		return nil
	}
}

// UsingProvider registers any Provider implementation.
func UsingProvider(p Provider) Option {
	return func(c *Client) error {
		if p == nil {
			return errors.New("provider cannot be nil")
		}
		c.Provider = p
		return nil
	}
}

func UsingResolver(resolver Resolver) Option {
	return func(c *Client) error {
		if resolver == nil {
			resolver = DefaultResolver
		}
		c.Resolver = resolver
		return nil
	}
}

func UsingWebResolver(serviceURL ...string) Option {
	return func(c *Client) error {
		r, err := NewWebResolver(serviceURL...)
		if err != nil {
			return err
		}
		c.Resolver = r
		return nil
	}
}

func withLogger(logger logr.Logger) Option {
	return func(c *Client) error {
		type setLogger interface {
			SetLogger(logr.Logger)
		}

		switch p := c.Provider.(type) {
		case *Route53Provider:
			p.logger = logger.WithName("route53")
		case setLogger:
			p.SetLogger(logger)
		}

		if r, ok := c.Resolver.(setLogger); ok {
			r.SetLogger(logger)
		}

		return nil
	}
}

// WithLogger sets the logger used by the client and by the dependencies that accept one.
func WithLogger(logger logr.Logger) Option {
	return func(c *Client) error {
		c.logger = logger
		return nil
	}
}

func UsingHTTPClient(httpclient *http.Client) Option {
	return func(c *Client) error {
		if httpclient == nil {
			httpclient = http.DefaultClient
		}
		type setHTTPClient interface {
			SetHTTPClient(*http.Client)
		}
		switch hc := c.Resolver.(type) {
		case *webResolver:
			hc.httpClient = httpclient
		case setHTTPClient:
			hc.SetHTTPClient(httpclient)
		}
		return nil
	}
}

// WithInterval overrides DefaultInterval. It also sets the first per-domain retry delay.
func WithInterval(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("interval must be positive; got %s", d)
		}
		c.interval = d
		return nil
	}
}

// WithProviderTimeout bounds every individual provider call. Zero means no extra timeout.
// A provider that waits for its changes to propagate gets its own sync timeout on top.
func WithProviderTimeout(d time.Duration) Option {
	return func(c *Client) error {
		c.providerTimeout = d
		return nil
	}
}

func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) error {
		if tp != nil {
			c.tracer = tp.Tracer(tracerName)
		}
		return nil
	}
}

// Client reconciles the A records of a fixed set of domains with the public IP.
// Passes never overlap, even when RunOnce is called from several goroutines.
type Client struct {
	Resolver
	Provider

	state           *State
	logger          logr.Logger
	interval        time.Duration
	providerTimeout time.Duration
	now             func() time.Time
	sem             *semaphore.Weighted
	tracer          trace.Tracer
}

// State exposes the tracked domains and the last known public IP.
func (c *Client) State() *State { return c.state }

// RunOnce runs a single pass in which every domain must succeed.
// All failures of the pass are returned joined.
func (c *Client) RunOnce(ctx context.Context) error {
	return c.pass(ctx, true)
}

// RunDaemon runs passes until ctx is done, pausing the configured interval between them.
// Failures are logged and retried on later passes; the returned error is always ctx.Err().
func (c *Client) RunDaemon(ctx context.Context) error {
	c.logger.Info("starting daemon", "interval", c.interval.String(), "domains", len(c.state.Domains()))
	timer := time.NewTimer(0)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := c.pass(ctx, false); err != nil && ctx.Err() == nil {
			c.logger.V(1).Info("pass finished with errors", "error", err.Error())
		}
		timer.Reset(c.interval)
	}
}

func (c *Client) pass(ctx context.Context, oneShot bool) (err error) {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer c.sem.Release(1)

	passID := uuid.NewString()
	log := c.logger.WithValues("pass", passID)
	ctx, span := c.tracer.Start(ctx, "ddns.pass", trace.WithAttributes(
		attribute.String("ddns.pass_id", passID),
		attribute.Bool("ddns.one_shot", oneShot),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "pass failed")
		}
		span.End()
	}()

	ip, err := c.resolve(ctx)
	if err != nil {
		log.Error(err, "skipping pass")
		return err
	}
	if c.state.Observe(ip) {
		log.Info("public IP changed", "ip", ip.String())
	} else {
		log.V(1).Info("public IP unchanged", "ip", ip.String())
	}

	pending := c.state.Pending(c.now())
	if len(pending) == 0 {
		log.V(1).Info("all domains are up to date")
		return nil
	}

	zones, err := c.listZones(ctx)
	if err != nil {
		log.Error(err, "abandoning DNS updates for this pass")
		return err
	}
	log.V(1).Info("listed hosted zones", "count", len(zones))

	var errs []error
	for _, d := range pending {
		if d.ZoneID != "" {
			continue
		}
		z, err := MatchZone(d.Name, zones)
		if err != nil {
			d.unmatched = true
			log.Error(err, "domain will be skipped until restart", "domain", d.Name)
			errs = append(errs, &DomainError{Domain: d.Name, Err: ErrZoneNotFound})
			continue
		}
		d.ZoneID = z.ID
		log.Info("matched hosted zone", "domain", d.Name, "zone", z.Name, "zoneID", z.ID)
	}

	for _, d := range pending {
		if d.ZoneID == "" {
			continue
		}
		if err := c.publish(ctx, d, ip); err != nil {
			errs = append(errs, &DomainError{Domain: d.Name, Err: err})
			if oneShot {
				log.Error(err, "upsert failed", "domain", d.Name, "zoneID", d.ZoneID)
				continue
			}
			wait := c.state.deferRetry(d, c.now())
			log.Error(err, "upsert failed; domain stays stale", "domain", d.Name, "zoneID", d.ZoneID, "retryIn", wait.String())
			continue
		}
		log.Info("published A record", "domain", d.Name, "zoneID", d.ZoneID, "ip", ip.String())
	}

	return errors.Join(errs...)
}

func (c *Client) resolve(ctx context.Context) (netip.Addr, error) {
	ip, err := c.Resolve(ctx)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("%w: %w", ErrResolveIP, err)
	}
	ip = ip.Unmap()
	if !ip.Is4() {
		return netip.Addr{}, fmt.Errorf("%w: resolver returned %q, which is not an IPv4 address", ErrResolveIP, ip)
	}
	return ip, nil
}

func (c *Client) listZones(ctx context.Context) ([]HostedZone, error) {
	ctx, cancel := c.providerContext(ctx, 0)
	defer cancel()
	zones, err := c.ListHostedZones(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrListZones, err)
	}
	return zones, nil
}

func (c *Client) publish(ctx context.Context, d *Domain, ip netip.Addr) (err error) {
	ctx, span := c.tracer.Start(ctx, "ddns.upsert", trace.WithAttributes(
		attribute.String("ddns.domain", d.Name),
		attribute.String("ddns.zone_id", d.ZoneID),
		attribute.String("ddns.ip", ip.String()),
	))
	defer span.End()

	// the upsert deadline also covers any wait for the change to propagate
	var wait time.Duration
	if s, ok := c.Provider.(interface{ SyncTimeout() time.Duration }); ok {
		wait = s.SyncTimeout()
	}
	ctx, cancel := c.providerContext(ctx, wait)
	defer cancel()
	if err := c.UpsertA(ctx, d.ZoneID, d.Name, ip); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "upsert failed")
		return fmt.Errorf("%w: %w", ErrUpsert, err)
	}
	c.state.MarkFresh(d, ip)
	return nil
}

// providerContext bounds one provider call by the provider timeout plus extra.
func (c *Client) providerContext(ctx context.Context, extra time.Duration) (context.Context, context.CancelFunc) {
	if c.providerTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.providerTimeout+extra)
}
