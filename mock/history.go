package mock

import (
	"context"

	"github.com/fwojciec/medialinks"
)

var _ medialinks.ScrapeRecordService = (*ScrapeRecordService)(nil)

// ScrapeRecordService is a mock implementation of medialinks.ScrapeRecordService.
type ScrapeRecordService struct {
	CreateScrapeRecordFn func(ctx context.Context, record *medialinks.ScrapeRecord, links []medialinks.MediaLink) error
	FindScrapeRecordsFn  func(ctx context.Context, filter medialinks.ScrapeRecordFilter) ([]*medialinks.ScrapeRecord, error)
}

func (s *ScrapeRecordService) CreateScrapeRecord(ctx context.Context, record *medialinks.ScrapeRecord, links []medialinks.MediaLink) error {
	return s.CreateScrapeRecordFn(ctx, record, links)
}

func (s *ScrapeRecordService) FindScrapeRecords(ctx context.Context, filter medialinks.ScrapeRecordFilter) ([]*medialinks.ScrapeRecord, error) {
	return s.FindScrapeRecordsFn(ctx, filter)
}
