package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/medialinks"
)

// Ensure LoggingExtractor implements medialinks.MediaExtractor.
var _ medialinks.MediaExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a MediaExtractor with debug logging.
type LoggingExtractor struct {
	next   medialinks.MediaExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next medialinks.MediaExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// ExtractMedia delegates to the wrapped extractor and logs the link count.
func (e *LoggingExtractor) ExtractMedia(html string, baseURL string) (links []medialinks.MediaLink, err error) {
	defer func(begin time.Time) {
		e.logger.Debug("extract",
			"url", baseURL,
			"bytes", len(html),
			"count", len(links),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractMedia(html, baseURL)
}
