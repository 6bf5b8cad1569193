package ddns

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/netip"
	"net/url"
	"strings"
	"sync"
	"time"
)

// DefaultIPServices are the public IP services used by DefaultResolver.
// Each returns the caller's IPv4 address as plain text.
var DefaultIPServices = []string{
	"https://api.ipify.org",
	"https://checkip.amazonaws.com/",
	"https://ipv4.icanhazip.com/",
}

// DefaultLookupTimeout bounds a single request to an IP service.
const DefaultLookupTimeout = 15 * time.Second

// WebResolver constructs a resolver which uses external web services to look up the public IPv4 address.
//
// Each serviceURL must speak http and return status "200 OK",
// with a valid IPv4 address as the first line of the response body.
// All other responses, including IPv6 addresses, are considered an error.
//
// If only one serviceURL is given,
// then the resolver will simply return the response.
// If multiple are given,
// then the resolver will request from up to three of them and only return successfully if the first two non-error responses agreed on the IP.
// This approach is taken due to the sensitive nature of having control over DNS records.
//
// A serviceURL that does not parse makes every call to Resolve fail; use NewWebResolver to catch that early.
func WebResolver(serviceURL ...string) Resolver {
	r, err := NewWebResolver(serviceURL...)
	if err != nil {
		return &webResolver{err: err}
	}
	return r
}

// NewWebResolver is WebResolver with eager URL validation.
func NewWebResolver(serviceURL ...string) (Resolver, error) {
	var URLs []*url.URL
	for _, u := range serviceURL {
		pu, err := url.Parse(u)
		if err != nil {
			return nil, fmt.Errorf("error parsing URL: %w", err)
		}
		if pu.Scheme != "http" && pu.Scheme != "https" {
			return nil, fmt.Errorf("unsupported scheme in IP service URL %q", u)
		}
		URLs = append(URLs, pu)
	}
	return &webResolver{serviceURLs: URLs}, nil
}

type webResolver struct {
	httpClient  *http.Client
	serviceURLs []*url.URL
	timeout     time.Duration
	err         error
}

// SetHTTPClient implements the hook used by ddns.UsingHTTPClient.
func (wr *webResolver) SetHTTPClient(c *http.Client) { wr.httpClient = c }

// SetTimeout overrides DefaultLookupTimeout for each request.
func (wr *webResolver) SetTimeout(d time.Duration) { wr.timeout = d }

// Resolve implements ddns.Resolver.
func (wr *webResolver) Resolve(ctx context.Context) (netip.Addr, error) {
	// Up to three lookups run concurrently; the result is only trusted once two
	// successful responses agree.
	if wr.err != nil {
		return netip.Addr{}, wr.err
	}
	if len(wr.serviceURLs) == 0 {
		return netip.Addr{}, errors.New("no external IP lookup services were provided")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type result struct {
		addr netip.Addr
		err  error
	}

	resolvercount := len(wr.serviceURLs)
	useCount := 3
	if resolvercount < useCount {
		useCount = resolvercount
	}
	need := 2
	if useCount == 1 {
		need = 1
	}

	results := make(chan result, useCount)
	var wg sync.WaitGroup
	wg.Add(useCount)
	for i := 0; i < useCount; i++ {
		u := wr.serviceURLs[i]
		go func() {
			defer wg.Done()
			r := result{}
			r.addr, r.err = wr.lookup(ctx, u)
			results <- r
		}()
	}
	go func() { wg.Wait(); close(results) }()

	resultCount := 0
	var errs []error
	var ip netip.Addr
	for r := range results {
		if r.err != nil {
			errs = append(errs, r.err)
			continue
		}
		resultCount++ // don't increase the result count for errors
		if !ip.IsValid() {
			ip = r.addr
			if need == 1 {
				return ip, nil
			}
			continue
		}
		if ip == r.addr {
			return ip, nil
		}
		return netip.Addr{}, fmt.Errorf("IP resolvers did not agree on our IP: got %s and %s", ip, r.addr)
	}
	if resultCount < need {
		return netip.Addr{}, fmt.Errorf("not enough resolvers responded without errors: %w", errors.Join(errs...))
	}

	return netip.Addr{}, errors.New("IP resolvers did not agree on our IP")
}

func (wr *webResolver) lookup(ctx context.Context, url *url.URL) (netip.Addr, error) {
	// the timeout ensures every call eventually completes even with context.Background
	// and http.DefaultClient (which has no timeout).
	timeout := wr.timeout
	if timeout <= 0 {
		timeout = DefaultLookupTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url.String(), nil)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-cache")

	httpclient := wr.httpClient
	if httpclient == nil {
		httpclient = http.DefaultClient
	}

	resp, err := httpclient.Do(req)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return netip.Addr{}, fmt.Errorf("http request to %s returned %s", url.Host, resp.Status)
	}

	scanner := bufio.NewReader(resp.Body)
	ipstring, _ := scanner.ReadString('\n')
	ip, err := parseIPv4(strings.TrimSpace(ipstring))
	if err != nil {
		return netip.Addr{}, fmt.Errorf("error parsing IP address from %s response body: %w", url.Host, err)
	}
	return ip, nil
}

func parseIPv4(s string) (netip.Addr, error) {
	ip, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}, err
	}
	ip = ip.Unmap()
	if !ip.Is4() {
		return netip.Addr{}, fmt.Errorf("%s is not an IPv4 address", ip)
	}
	return ip, nil
}
