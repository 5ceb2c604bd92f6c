package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/medialinks"
)

// Ensure LoggingScraper implements medialinks.Scraper.
var _ medialinks.Scraper = (*LoggingScraper)(nil)

// LoggingScraper wraps a Scraper with logging.
type LoggingScraper struct {
	next   medialinks.Scraper
	logger *slog.Logger
}

// NewLoggingScraper creates a new LoggingScraper.
func NewLoggingScraper(next medialinks.Scraper, logger *slog.Logger) *LoggingScraper {
	return &LoggingScraper{next: next, logger: logger}
}

// Scrape delegates to the wrapped scraper and logs the outcome.
func (s *LoggingScraper) Scrape(ctx context.Context, pageURL string) (result *medialinks.ScrapeResult, err error) {
	defer func(begin time.Time) {
		count := 0
		if result != nil {
			count = len(result.Links)
		}
		FromContext(ctx, s.logger).Info("scrape",
			"url", pageURL,
			"count", count,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Scrape(ctx, pageURL)
}
