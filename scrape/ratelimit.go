package scrape

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"github.com/fwojciec/medialinks"
	"golang.org/x/time/rate"
)

var _ medialinks.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter spaces page requests that go to the same host. Each host
// (including its port) has its own token bucket with a burst of one, so the
// first page on a host is fetched at once and pages on other hosts never wait.
type DomainLimiter struct {
	limit rate.Limit

	mu    sync.Mutex
	hosts map[string]*rate.Limiter
}

// NewDomainLimiter returns a DomainLimiter allowing rps pages per second on
// each host. A non-positive rps disables limiting.
func NewDomainLimiter(rps float64) *DomainLimiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	return &DomainLimiter{
		limit: limit,
		hosts: make(map[string]*rate.Limiter),
	}
}

// Wait blocks until the host of pageURL may be requested again.
// Pages whose URL has no host are limited by the raw URL string.
func (d *DomainLimiter) Wait(ctx context.Context, pageURL string) error {
	return d.bucket(hostKey(pageURL)).Wait(ctx)
}

func (d *DomainLimiter) bucket(host string) *rate.Limiter {
	d.mu.Lock()
	defer d.mu.Unlock()
	l, ok := d.hosts[host]
	if !ok {
		l = rate.NewLimiter(d.limit, 1)
		d.hosts[host] = l
	}
	return l
}

// hostKey returns the lowercased host and port of pageURL.
func hostKey(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		return pageURL
	}
	return strings.ToLower(u.Host)
}
