package medialinks

import (
	"context"
	"time"
)

// ScrapeRecord describes one completed scrape. It records the outcome,
// not the links, so no result set outlives its request.
type ScrapeRecord struct {
	ID        string    `json:"id"`
	PageURL   string    `json:"pageUrl"`
	LinkCount int       `json:"linkCount"`
	LinksHash string    `json:"linksHash"`
	Failed    bool      `json:"failed"`
	ScrapedAt time.Time `json:"scrapedAt"`
}

// Validate returns an error if the record contains invalid fields.
func (r *ScrapeRecord) Validate() error {
	if r.PageURL == "" {
		return Errorf(EINVALID, "scrape record page URL required")
	}
	if r.LinkCount < 0 {
		return Errorf(EINVALID, "scrape record link count must not be negative")
	}
	return nil
}

// ScrapeRecordService represents a service for managing scrape history.
type ScrapeRecordService interface {
	// CreateScrapeRecord stores a new record. ID, ScrapedAt and LinksHash
	// are assigned by the implementation when empty.
	CreateScrapeRecord(ctx context.Context, record *ScrapeRecord, links []MediaLink) error

	// FindScrapeRecords retrieves records matching the filter, newest first.
	FindScrapeRecords(ctx context.Context, filter ScrapeRecordFilter) ([]*ScrapeRecord, error)
}

// ScrapeRecordFilter represents a filter for FindScrapeRecords.
type ScrapeRecordFilter struct {
	PageURL *string `json:"pageUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
