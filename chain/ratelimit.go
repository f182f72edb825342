package chain

import (
	"context"
	"net"
	"strings"
	"sync"

	"github.com/fwojciec/casefiles"
	"golang.org/x/time/rate"
)

var _ casefiles.DomainLimiter = (*DomainLimiter)(nil)

// siteAliases maps the hosts of one platform to a shared bucket key.
// www, old and oauth reddit and the redd.it short links draw from the
// same API allowance.
var siteAliases = []string{"reddit.com", "redd.it"}

// DomainLimiter spaces out requests per site using token buckets with a
// burst of 1.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
}

// NewDomainLimiter returns a limiter allowing rps requests per second to
// each site. A non-positive rps disables limiting.
func NewDomainLimiter(rps float64) *DomainLimiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
	}
}

// Wait blocks until a request to domain is allowed or ctx is done.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	key := siteKey(domain)

	d.mu.Lock()
	limiter, ok := d.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(d.limit, 1)
		d.limiters[key] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}

// siteKey reduces a host to the key of the bucket it draws from.
func siteKey(host string) string {
	host = strings.ToLower(host)
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	for _, site := range siteAliases {
		if host == site || strings.HasSuffix(host, "."+site) {
			return "reddit"
		}
	}
	return host
}
