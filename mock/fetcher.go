package mock

import (
	"context"

	"github.com/fwojciec/medialinks"
)

var _ medialinks.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of medialinks.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ medialinks.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of medialinks.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, pageURL string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, pageURL string) error {
	return l.WaitFn(ctx, pageURL)
}
