package ddns

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/route53"
	"github.com/aws/aws-sdk-go-v2/service/route53/types"
	"github.com/aws/smithy-go"
	"github.com/go-logr/logr"
)

type route53API interface {
	route53.ListHostedZonesAPIClient
	route53.GetChangeAPIClient
	ChangeResourceRecordSets(ctx context.Context, params *route53.ChangeResourceRecordSetsInput, optFns ...func(*route53.Options)) (*route53.ChangeResourceRecordSetsOutput, error)
}

// NewRoute53Provider wraps a Route 53 client.
// Credentials and region come from the client configuration.
func NewRoute53Provider(api route53API, options ...func(*Route53Provider)) *Route53Provider {
	p := &Route53Provider{
		api:     api,
		logger:  logr.Discard(),
		comment: "managed by ddns",
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// WaitForSync makes every upsert block until Route 53 reports the change as INSYNC,
// or until timeout elapses.
func WaitForSync(timeout time.Duration) func(*Route53Provider) {
	return func(p *Route53Provider) {
		p.syncTimeout = timeout
	}
}

// SyncPollInterval sets the delay between two GetChange polls while waiting for INSYNC.
// Zero keeps the SDK default.
func SyncPollInterval(d time.Duration) func(*Route53Provider) {
	return func(p *Route53Provider) {
		p.syncPoll = d
	}
}

// WithComment sets the change batch comment attached to each upsert.
func WithComment(comment string) func(*Route53Provider) {
	return func(p *Route53Provider) {
		p.comment = comment
	}
}

// Route53Provider implements ddns.Provider for Amazon Route 53.
type Route53Provider struct {
	api         route53API
	logger      logr.Logger
	comment     string
	syncTimeout time.Duration // zero: do not wait for INSYNC
	syncPoll    time.Duration
}

func (p *Route53Provider) SetLogger(logger logr.Logger) { p.logger = logger }

// SyncTimeout reports how long UpsertA may wait for a change to reach INSYNC
// after the change itself was accepted.
func (p *Route53Provider) SyncTimeout() time.Duration { return p.syncTimeout }

// ListHostedZones implements ddns.ZoneDirectory. All pages are fetched.
func (p *Route53Provider) ListHostedZones(ctx context.Context) ([]HostedZone, error) {
	var zones []HostedZone
	pages := route53.NewListHostedZonesPaginator(p.api, &route53.ListHostedZonesInput{})
	for pages.HasMorePages() {
		page, err := pages.NextPage(ctx)
		if err != nil {
			return nil, describeAPIError("ListHostedZones", err)
		}
		for _, z := range page.HostedZones {
			zone := HostedZone{
				ID:   strings.TrimPrefix(aws.ToString(z.Id), "/hostedzone/"),
				Name: aws.ToString(z.Name),
			}
			if z.Config != nil {
				zone.Private = z.Config.PrivateZone
			}
			p.logger.V(1).Info("found hosted zone", "zoneID", zone.ID, "zone", zone.Name, "private", zone.Private)
			zones = append(zones, zone)
		}
	}
	return zones, nil
}

// UpsertA implements ddns.RecordUpserter.
// The change is always an UPSERT of a single A record with TTL RecordTTL.
func (p *Route53Provider) UpsertA(ctx context.Context, zoneID, name string, ip netip.Addr) error {
	if !ip.Is4() {
		return fmt.Errorf("refusing to write A record for non-IPv4 address %s", ip)
	}
	in := &route53.ChangeResourceRecordSetsInput{
		HostedZoneId: aws.String(zoneID),
		ChangeBatch: &types.ChangeBatch{
			Comment: aws.String(p.comment),
			Changes: []types.Change{{
				Action: types.ChangeActionUpsert,
				ResourceRecordSet: &types.ResourceRecordSet{
					Name: aws.String(name),
					Type: types.RRTypeA,
					TTL:  aws.Int64(RecordTTL),
					ResourceRecords: []types.ResourceRecord{
						{Value: aws.String(ip.String())},
					},
				},
			}},
		},
	}
	p.logger.V(1).Info("upserting A record", "zoneID", zoneID, "domain", name, "ip", ip.String())
	out, err := p.api.ChangeResourceRecordSets(ctx, in)
	if err != nil {
		return describeAPIError("ChangeResourceRecordSets", err)
	}

	if p.syncTimeout <= 0 || out.ChangeInfo == nil {
		return nil
	}
	p.logger.V(1).Info("waiting for change to propagate", "change", aws.ToString(out.ChangeInfo.Id))
	w := route53.NewResourceRecordSetsChangedWaiter(p.api, func(o *route53.ResourceRecordSetsChangedWaiterOptions) {
		if p.syncPoll > 0 {
			o.MinDelay, o.MaxDelay = p.syncPoll, p.syncPoll
		}
	})
	if err := w.Wait(ctx, &route53.GetChangeInput{Id: out.ChangeInfo.Id}, p.syncTimeout); err != nil {
		return fmt.Errorf("change %s did not reach INSYNC: %w", aws.ToString(out.ChangeInfo.Id), err)
	}
	return nil
}

func describeAPIError(op string, err error) error {
	var ae smithy.APIError
	if errors.As(err, &ae) {
		return fmt.Errorf("route53 %s failed with %s: %w", op, ae.ErrorCode(), err)
	}
	return fmt.Errorf("route53 %s failed: %w", op, err)
}
