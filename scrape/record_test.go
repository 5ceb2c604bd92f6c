package scrape_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/medialinks"
	"github.com/fwojciec/medialinks/mock"
	"github.com/fwojciec/medialinks/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordingScraper_Scrape(t *testing.T) {
	t.Parallel()

	t.Run("records a successful scrape", func(t *testing.T) {
		t.Parallel()

		links := []medialinks.MediaLink{
			{Name: "a.mp3", URL: "https://s.test/a.mp3"},
			{Name: "b.mp4", URL: "https://s.test/b.mp4"},
		}
		inner := &mock.Scraper{
			ScrapeFn: func(ctx context.Context, pageURL string) (*medialinks.ScrapeResult, error) {
				return &medialinks.ScrapeResult{PageURL: pageURL, Links: links}, nil
			},
		}
		var gotRecord *medialinks.ScrapeRecord
		var gotLinks []medialinks.MediaLink
		records := &mock.ScrapeRecordService{
			CreateScrapeRecordFn: func(ctx context.Context, record *medialinks.ScrapeRecord, links []medialinks.MediaLink) error {
				gotRecord = record
				gotLinks = links
				return nil
			},
		}
		s := &scrape.RecordingScraper{Scraper: inner, Records: records}

		result, err := s.Scrape(context.Background(), "https://s.test")

		require.NoError(t, err)
		assert.Equal(t, links, result.Links)
		require.NotNil(t, gotRecord)
		assert.Equal(t, "https://s.test", gotRecord.PageURL)
		assert.Equal(t, 2, gotRecord.LinkCount)
		assert.False(t, gotRecord.Failed)
		assert.Equal(t, links, gotLinks)
	})

	t.Run("records a failed scrape and returns its error", func(t *testing.T) {
		t.Parallel()

		scrapeErr := medialinks.Errorf(medialinks.EUNAVAILABLE, medialinks.ScrapeFailedMessage)
		inner := &mock.Scraper{
			ScrapeFn: func(ctx context.Context, pageURL string) (*medialinks.ScrapeResult, error) {
				return nil, scrapeErr
			},
		}
		var gotRecord *medialinks.ScrapeRecord
		records := &mock.ScrapeRecordService{
			CreateScrapeRecordFn: func(ctx context.Context, record *medialinks.ScrapeRecord, links []medialinks.MediaLink) error {
				gotRecord = record
				return nil
			},
		}
		s := &scrape.RecordingScraper{Scraper: inner, Records: records}

		result, err := s.Scrape(context.Background(), "https://s.test")

		assert.Nil(t, result)
		assert.Same(t, scrapeErr, err)
		require.NotNil(t, gotRecord)
		assert.True(t, gotRecord.Failed)
		assert.Equal(t, 0, gotRecord.LinkCount)
	})

	t.Run("logs recording errors without failing the scrape", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Scraper{
			ScrapeFn: func(ctx context.Context, pageURL string) (*medialinks.ScrapeResult, error) {
				return &medialinks.ScrapeResult{PageURL: pageURL, Links: []medialinks.MediaLink{}}, nil
			},
		}
		records := &mock.ScrapeRecordService{
			CreateScrapeRecordFn: func(ctx context.Context, record *medialinks.ScrapeRecord, links []medialinks.MediaLink) error {
				return errors.New("disk full")
			},
		}
		s := &scrape.RecordingScraper{
			Scraper: inner,
			Records: records,
			Logger:  slog.New(slog.NewTextHandler(&buf, nil)),
		}

		result, err := s.Scrape(context.Background(), "https://s.test")

		require.NoError(t, err)
		assert.NotNil(t, result)
		assert.Contains(t, buf.String(), "record scrape")
		assert.Contains(t, buf.String(), `err="disk full"`)
	})

	t.Run("records even when the request context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		inner := &mock.Scraper{
			ScrapeFn: func(ctx context.Context, pageURL string) (*medialinks.ScrapeResult, error) {
				cancel()
				return nil, ctx.Err()
			},
		}
		var recordCtxErr error
		records := &mock.ScrapeRecordService{
			CreateScrapeRecordFn: func(ctx context.Context, record *medialinks.ScrapeRecord, links []medialinks.MediaLink) error {
				recordCtxErr = ctx.Err()
				return nil
			},
		}
		s := &scrape.RecordingScraper{Scraper: inner, Records: records}

		_, err := s.Scrape(ctx, "https://s.test")

		require.Error(t, err)
		assert.NoError(t, recordCtxErr)
	})
}
