// Package scrape runs the fetch and extraction pipeline for one or many
// pages. Each page is an independent pipeline with its own fetch, document
// and result set.
package scrape

import (
	"context"
	"time"

	"github.com/fwojciec/medialinks"
)

var _ medialinks.Scraper = (*Scraper)(nil)

// Scraper fetches a page and extracts its media links.
type Scraper struct {
	Fetcher   medialinks.Fetcher
	Extractor medialinks.MediaExtractor

	// RetryDelays are the waits between fetch attempts. Nil means a
	// single attempt.
	RetryDelays []time.Duration
}

// Scrape fetches pageURL and extracts its media links, resolving relative
// links against pageURL. Every fetch or extraction failure is reported as
// EUNAVAILABLE with medialinks.ScrapeFailedMessage.
func (s *Scraper) Scrape(ctx context.Context, pageURL string) (*medialinks.ScrapeResult, error) {
	html, err := FetchWithRetryDelays(ctx, pageURL, s.Fetcher.Fetch, s.RetryDelays)
	if err != nil {
		return nil, failed()
	}

	links, err := s.Extractor.ExtractMedia(html, pageURL)
	if err != nil {
		return nil, failed()
	}
	if links == nil {
		links = []medialinks.MediaLink{}
	}

	return &medialinks.ScrapeResult{
		PageURL: pageURL,
		Links:   links,
	}, nil
}

func failed() error {
	return medialinks.Errorf(medialinks.EUNAVAILABLE, medialinks.ScrapeFailedMessage)
}
