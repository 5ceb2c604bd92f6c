package sqlite

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/medialinks"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ medialinks.ScrapeRecordService = (*ScrapeRecordService)(nil)

// ScrapeRecordService implements medialinks.ScrapeRecordService using SQLite.
type ScrapeRecordService struct {
	db *DB
}

// NewScrapeRecordService creates a new ScrapeRecordService.
func NewScrapeRecordService(db *DB) *ScrapeRecordService {
	return &ScrapeRecordService{db: db}
}

// HashLinks computes the xxHash of the link URLs in order and returns it
// as a hex string. Two scrapes that found the same links in the same order
// share a hash.
func HashLinks(links []medialinks.MediaLink) string {
	d := xxhash.New()
	for _, link := range links {
		_, _ = d.WriteString(link.URL)
		_, _ = d.WriteString("\n")
	}
	return hex.EncodeToString(binary.BigEndian.AppendUint64(nil, d.Sum64()))
}

// CreateScrapeRecord stores a new record, filling in ID, ScrapedAt and,
// for successful scrapes, LinksHash.
func (s *ScrapeRecordService) CreateScrapeRecord(ctx context.Context, record *medialinks.ScrapeRecord, links []medialinks.MediaLink) error {
	if err := record.Validate(); err != nil {
		return err
	}

	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.ScrapedAt.IsZero() {
		record.ScrapedAt = time.Now().UTC()
	}
	if record.LinksHash == "" && !record.Failed {
		record.LinksHash = HashLinks(links)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO scrape_records (id, page_url, link_count, links_hash, failed, scraped_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, record.ID, record.PageURL, record.LinkCount, record.LinksHash, record.Failed,
		record.ScrapedAt.UTC().Format(time.RFC3339))

	return err
}

// FindScrapeRecords retrieves records matching the filter, newest first.
func (s *ScrapeRecordService) FindScrapeRecords(ctx context.Context, filter medialinks.ScrapeRecordFilter) ([]*medialinks.ScrapeRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, page_url, link_count, links_hash, failed, scraped_at FROM scrape_records WHERE 1=1")

	if filter.PageURL != nil {
		query.WriteString(" AND page_url = ?")
		args = append(args, *filter.PageURL)
	}

	query.WriteString(" ORDER BY scraped_at DESC, rowid DESC")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []*medialinks.ScrapeRecord{}
	for rows.Next() {
		var r medialinks.ScrapeRecord
		var scrapedAt string

		if err := rows.Scan(&r.ID, &r.PageURL, &r.LinkCount, &r.LinksHash, &r.Failed, &scrapedAt); err != nil {
			return nil, err
		}

		if r.ScrapedAt, err = parseRFC3339(scrapedAt, "scraped_at"); err != nil {
			return nil, err
		}

		records = append(records, &r)
	}

	return records, rows.Err()
}
