package mock

import "github.com/fwojciec/medialinks"

var _ medialinks.MediaExtractor = (*MediaExtractor)(nil)

// MediaExtractor is a mock implementation of medialinks.MediaExtractor.
type MediaExtractor struct {
	ExtractMediaFn func(html string, baseURL string) ([]medialinks.MediaLink, error)
}

func (e *MediaExtractor) ExtractMedia(html string, baseURL string) ([]medialinks.MediaLink, error) {
	return e.ExtractMediaFn(html, baseURL)
}

var _ medialinks.MimeTable = (*MimeTable)(nil)

// MimeTable is a mock implementation of medialinks.MimeTable.
type MimeTable struct {
	LookupFn func(ext string) (medialinks.MimeType, bool)
}

func (t *MimeTable) Lookup(ext string) (medialinks.MimeType, bool) {
	return t.LookupFn(ext)
}
