package medialinks

import "iter"

// MediaLink is a playable media resource found on a page.
type MediaLink struct {
	// Name is the last path segment of the link with the query string removed.
	Name string `json:"name"`

	// URL is the absolute form of the link.
	URL string `json:"url"`
}

// Candidate is a raw attribute value taken from one matched element,
// before it has been classified or resolved.
type Candidate struct {
	Tag   string
	Value string
}

// CandidateSelector matches every element that may reference a media resource.
// Other elements (img, object, embed) and srcset lists are never inspected.
const CandidateSelector = "audio, video, source, track, a"

// CandidateAttr returns the attribute that carries the link for a tag,
// or "" for tags that are not candidates.
func CandidateAttr(tag string) string {
	switch tag {
	case "audio", "video", "source", "track":
		return "src"
	case "a":
		return "href"
	default:
		return ""
	}
}

// ResultSet is an insertion-ordered set of media links.
// The zero value is ready to use. A ResultSet is not safe for concurrent use.
type ResultSet struct {
	links []MediaLink
	seen  map[MediaLink]struct{}
}

// NewResultSet returns an empty ResultSet.
func NewResultSet() *ResultSet {
	return &ResultSet{}
}

// Add appends the link unless an identical (Name, URL) pair is already present.
// Returns true if the link was appended.
func (s *ResultSet) Add(link MediaLink) bool {
	if s.seen == nil {
		s.seen = make(map[MediaLink]struct{})
	}
	if _, ok := s.seen[link]; ok {
		return false
	}
	s.seen[link] = struct{}{}
	s.links = append(s.links, link)
	return true
}

// Contains reports whether the exact link has been added.
func (s *ResultSet) Contains(link MediaLink) bool {
	_, ok := s.seen[link]
	return ok
}

// Len returns the number of distinct links.
func (s *ResultSet) Len() int {
	return len(s.links)
}

// Links returns the links in first-occurrence order.
// The returned slice is never nil.
func (s *ResultSet) Links() []MediaLink {
	links := make([]MediaLink, len(s.links))
	copy(links, s.links)
	return links
}

// CollectMedia classifies every candidate against baseURL and returns the
// distinct media links in the order the candidates were yielded.
func CollectMedia(candidates iter.Seq[Candidate], baseURL string, table MimeTable) []MediaLink {
	set := NewResultSet()
	for c := range candidates {
		if link, ok := Classify(c.Value, baseURL, table); ok {
			set.Add(link)
		}
	}
	return set.Links()
}

// MediaExtractor extracts media links from a fetched HTML document.
type MediaExtractor interface {
	// ExtractMedia parses html and returns the distinct media links in
	// document order. Relative links are resolved against baseURL.
	ExtractMedia(html string, baseURL string) ([]MediaLink, error)
}
