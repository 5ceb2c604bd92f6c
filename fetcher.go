package medialinks

import "context"

// Fetcher retrieves the HTML document at a URL.
type Fetcher interface {
	// Fetch requests the URL and returns the document body as text.
	// Transport failures, non-2xx responses and bodies that cannot be
	// decoded as text are all reported as errors.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// DomainLimiter spaces requests to the same host.
type DomainLimiter interface {
	// Wait blocks until a request for pageURL is allowed by the limit on
	// its host. Returns an error if the context is canceled.
	Wait(ctx context.Context, pageURL string) error
}
