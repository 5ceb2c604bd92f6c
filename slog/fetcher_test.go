package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/medialinks"
	"github.com/fwojciec/medialinks/mock"
	mlslog "github.com/fwojciec/medialinks/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mediaPage = `<video src="intro.mp4"></video>`

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("passes the page through and logs its size", func(t *testing.T) {
		t.Parallel()

		var logs bytes.Buffer
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return mediaPage, nil
			},
		}

		f := mlslog.NewLoggingFetcher(inner, slog.New(slog.NewTextHandler(&logs, nil)))
		html, err := f.Fetch(context.Background(), "https://s.test/videos")

		require.NoError(t, err)
		assert.Equal(t, mediaPage, html)
		assert.Contains(t, logs.String(), "level=INFO msg=fetch url=https://s.test/videos bytes=31 duration=")
		assert.Contains(t, logs.String(), "err=<nil>")
	})

	t.Run("records the cause that the generic failure hides", func(t *testing.T) {
		t.Parallel()

		var logs bytes.Buffer
		cause := medialinks.Errorf(medialinks.EUNAVAILABLE, "HTTP 403 for https://s.test/videos")
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", cause
			},
		}

		f := mlslog.NewLoggingFetcher(inner, slog.New(slog.NewTextHandler(&logs, nil)))
		_, err := f.Fetch(context.Background(), "https://s.test/videos")

		assert.Same(t, cause, err)
		assert.Contains(t, logs.String(), `err="medialinks error: code=unavailable message=HTTP 403 for https://s.test/videos"`)
		assert.Contains(t, logs.String(), "bytes=0")
	})

	t.Run("logs to the request-scoped logger when one is set", func(t *testing.T) {
		t.Parallel()

		var base, scoped bytes.Buffer
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", errors.New("dial tcp: connection refused")
			},
		}
		ctx := mlslog.WithLogger(context.Background(),
			slog.New(slog.NewTextHandler(&scoped, nil)).With("request_id", "r-1"))

		f := mlslog.NewLoggingFetcher(inner, slog.New(slog.NewTextHandler(&base, nil)))
		_, err := f.Fetch(ctx, "https://s.test/videos")

		require.Error(t, err)
		assert.Empty(t, base.String())
		assert.Contains(t, scoped.String(), "request_id=r-1")
		assert.Contains(t, scoped.String(), "connection refused")
	})
}

func TestLoggingFetcher_Close(t *testing.T) {
	t.Parallel()

	closeErr := errors.New("browser already gone")
	inner := &mock.Fetcher{
		CloseFn: func() error { return closeErr },
	}

	f := mlslog.NewLoggingFetcher(inner, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	assert.ErrorIs(t, f.Close(), closeErr)
}
