// Package http provides the HTTP side of medialinks: a Fetcher that loads
// pages over plain HTTP and a Server exposing the scrape endpoint.
package http

import (
	"context"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/medialinks"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
// Kept consistent with rod.DefaultFetchTimeout (10s).
const DefaultFetchTimeout = 10 * time.Second

// DefaultMaxBodySize caps how much of a response body is read (10 MiB).
const DefaultMaxBodySize = 10 << 20

// DefaultUserAgent identifies the fetcher to remote servers.
const DefaultUserAgent = "medialinks/1.0"

// Ensure Fetcher implements medialinks.Fetcher at compile time.
var _ medialinks.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using HTTP requests.
// Unlike rod.Fetcher, this does not execute JavaScript.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	maxBody   int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodySize sets the largest body Fetch accepts, in bytes.
// Larger bodies fail the fetch.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		f.maxBody = n
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
		maxBody:   DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the document at url and returns it as UTF-8 text.
// Any 2xx status is accepted. The body is decoded using the charset named
// in the Content-Type header; without one it must already be valid UTF-8.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return "", medialinks.Errorf(medialinks.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody+1))
	if err != nil {
		return "", err
	}
	if int64(len(body)) > f.maxBody {
		return "", medialinks.Errorf(medialinks.EINVALID, "body of %s exceeds %d bytes", url, f.maxBody)
	}

	return decodeBody(body, resp.Header.Get("Content-Type"))
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

// decodeBody converts body to a UTF-8 string according to the charset
// parameter of contentType.
func decodeBody(body []byte, contentType string) (string, error) {
	label := ""
	if _, params, err := mime.ParseMediaType(contentType); err == nil {
		label = strings.TrimSpace(params["charset"])
	}

	if label != "" {
		enc, name := charset.Lookup(label)
		if enc == nil {
			return "", medialinks.Errorf(medialinks.EINVALID, "unsupported charset %q", label)
		}
		if name != "utf-8" {
			decoded, err := enc.NewDecoder().Bytes(body)
			if err != nil {
				return "", medialinks.Errorf(medialinks.EINVALID, "cannot decode body as %s: %v", name, err)
			}
			return string(decoded), nil
		}
	}

	if !utf8.Valid(body) {
		return "", medialinks.Errorf(medialinks.EINVALID, "body is not valid UTF-8")
	}
	return string(body), nil
}
