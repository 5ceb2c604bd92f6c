package scrape

import (
	"context"
	"log/slog"

	"github.com/fwojciec/medialinks"
)

var _ medialinks.Scraper = (*RecordingScraper)(nil)

// RecordingScraper stores a history record for every scrape it delegates.
type RecordingScraper struct {
	Scraper medialinks.Scraper
	Records medialinks.ScrapeRecordService
	Logger  *slog.Logger
}

// Scrape delegates to the wrapped scraper and records the outcome.
// Recording failures are logged and do not affect the returned values.
func (s *RecordingScraper) Scrape(ctx context.Context, pageURL string) (*medialinks.ScrapeResult, error) {
	result, err := s.Scraper.Scrape(ctx, pageURL)

	record := &medialinks.ScrapeRecord{
		PageURL: pageURL,
		Failed:  err != nil,
	}
	var links []medialinks.MediaLink
	if result != nil {
		links = result.Links
		record.LinkCount = len(links)
	}

	if rerr := s.Records.CreateScrapeRecord(context.WithoutCancel(ctx), record, links); rerr != nil {
		s.logger().Warn("record scrape", "url", pageURL, "err", rerr)
	}

	return result, err
}

func (s *RecordingScraper) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
