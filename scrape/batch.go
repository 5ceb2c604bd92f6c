package scrape

import (
	"context"
	"sync"

	"github.com/fwojciec/medialinks"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of pages scraped at once when
// Batch.Concurrency is not set.
const DefaultConcurrency = 3

// Batch scrapes several pages concurrently.
type Batch struct {
	Scraper     medialinks.Scraper
	Limiter     medialinks.DomainLimiter
	Concurrency int
}

// BatchResult holds the outcome for one input URL.
// Exactly one of Result and Err is set.
type BatchResult struct {
	PageURL string
	Result  *medialinks.ScrapeResult
	Err     error
}

// ProgressEvent reports progress during a batch.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
// Calls are serialized.
type ProgressFunc func(event ProgressEvent)

// ScrapeAll scrapes every URL and returns the results in input order.
// A failed page never stops the others.
func (b *Batch) ScrapeAll(ctx context.Context, urls []string, progress ProgressFunc) []BatchResult {
	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	var mu sync.Mutex
	completed := 0
	total := len(urls)
	notify := func(event ProgressEvent) {
		if progress == nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		if event.Type == ProgressCompleted || event.Type == ProgressFailed {
			completed++
			event.Completed = completed
		}
		event.Total = total
		progress(event)
	}

	notify(ProgressEvent{Type: ProgressStarted})

	results := make([]BatchResult, len(urls))
	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, pageURL := range urls {
		g.Go(func() error {
			result, err := b.scrape(ctx, pageURL)
			results[i] = BatchResult{PageURL: pageURL, Result: result, Err: err}
			if err != nil {
				notify(ProgressEvent{Type: ProgressFailed, URL: pageURL, Error: err})
			} else {
				notify(ProgressEvent{Type: ProgressCompleted, URL: pageURL})
			}
			return nil
		})
	}
	_ = g.Wait()

	notify(ProgressEvent{Type: ProgressFinished, Completed: total})

	return results
}

func (b *Batch) scrape(ctx context.Context, pageURL string) (*medialinks.ScrapeResult, error) {
	if b.Limiter != nil {
		if err := b.Limiter.Wait(ctx, pageURL); err != nil {
			return nil, failed()
		}
	}
	return b.Scraper.Scrape(ctx, pageURL)
}
