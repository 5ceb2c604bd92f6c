package medialinks

import "context"

// ScrapeFailedMessage is the only failure message users ever see. Fetch
// errors, non-2xx responses and undecodable bodies all collapse into it.
const ScrapeFailedMessage = "Cannot scrape media from this website"

// ScrapeResult holds the media links found on one page.
type ScrapeResult struct {
	// PageURL is the page URL exactly as requested. It doubles as the
	// base URL for resolving relative links.
	PageURL string `json:"url"`

	// Links are the distinct media links in document order.
	// Empty, never nil, when the page has no media.
	Links []MediaLink `json:"links"`
}

// Scraper runs the fetch and extraction pipeline for a single page.
type Scraper interface {
	// Scrape fetches pageURL and extracts its media links.
	// Any failure to obtain the document returns EUNAVAILABLE with
	// ScrapeFailedMessage; no partial result is returned.
	Scrape(ctx context.Context, pageURL string) (*ScrapeResult, error)
}
