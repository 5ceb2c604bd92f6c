package goquery

import (
	"iter"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/medialinks"
)

// Ensure MediaSelector implements medialinks.MediaExtractor at compile time.
var _ medialinks.MediaExtractor = (*MediaSelector)(nil)

// MediaSelector extracts media links from HTML. It selects audio, video,
// source, track and anchor elements, classifies their src/href values
// through a MIME table and deduplicates the survivors in document order.
// MediaSelector holds no per-document state and is safe for concurrent use.
type MediaSelector struct {
	table medialinks.MimeTable
}

// NewMediaSelector creates a new MediaSelector that classifies links with table.
func NewMediaSelector(table medialinks.MimeTable) *MediaSelector {
	return &MediaSelector{table: table}
}

// Name returns the selector's identifier.
func (s *MediaSelector) Name() string {
	return "media"
}

// ExtractMedia parses html and returns the distinct media links in document order.
// Relative links are resolved against baseURL, which is used as given.
func (s *MediaSelector) ExtractMedia(html string, baseURL string) ([]medialinks.MediaLink, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, medialinks.Errorf(medialinks.EINVALID, "failed to parse HTML: %v", err)
	}
	return medialinks.CollectMedia(Candidates(doc), baseURL, s.table), nil
}

// Candidates yields one candidate per matched element that carries its
// link attribute. Elements without the attribute are skipped.
func Candidates(doc *goquery.Document) iter.Seq[medialinks.Candidate] {
	return func(yield func(medialinks.Candidate) bool) {
		doc.Find(medialinks.CandidateSelector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			tag := goquery.NodeName(sel)
			value, exists := sel.Attr(medialinks.CandidateAttr(tag))
			if !exists {
				return true
			}
			return yield(medialinks.Candidate{Tag: tag, Value: value})
		})
	}
}
