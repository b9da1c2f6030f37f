package mock

import (
	"context"

	"github.com/crawlhog/crawlhog"
)

var _ crawlhog.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of crawlhog.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return d.WaitFn(ctx, domain)
}
