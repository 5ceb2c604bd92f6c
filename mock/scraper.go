package mock

import (
	"context"

	"github.com/fwojciec/medialinks"
)

var _ medialinks.Scraper = (*Scraper)(nil)

// Scraper is a mock implementation of medialinks.Scraper.
type Scraper struct {
	ScrapeFn func(ctx context.Context, pageURL string) (*medialinks.ScrapeResult, error)
}

func (s *Scraper) Scrape(ctx context.Context, pageURL string) (*medialinks.ScrapeResult, error) {
	return s.ScrapeFn(ctx, pageURL)
}
