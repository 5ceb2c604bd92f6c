// Package rod fetches pages with a headless Chrome browser so that media
// elements inserted by JavaScript are visible to the extractor.
package rod

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fwojciec/medialinks"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Fetcher defaults.
const (
	DefaultFetchTimeout = 10 * time.Second
	DefaultMaxPages     = 75
)

// Ensure Fetcher implements medialinks.Fetcher at compile time.
var _ medialinks.Fetcher = (*Fetcher)(nil)

// serializeJS returns the rendered document including open shadow roots,
// falling back to outerHTML where Element.getHTML is unavailable.
const serializeJS = `() => {
	const roots = [];
	const walk = (node) => {
		for (const el of node.querySelectorAll('*')) {
			if (el.shadowRoot) {
				roots.push(el.shadowRoot);
				walk(el.shadowRoot);
			}
		}
	};
	walk(document);
	const root = document.documentElement;
	const doctype = document.doctype ? '<!DOCTYPE ' + document.doctype.name + '>' : '';
	if (typeof root.getHTML !== 'function') {
		return doctype + root.outerHTML;
	}
	return doctype + '<html>' + root.getHTML({shadowRoots: roots}) + '</html>';
}`

// Fetcher retrieves rendered HTML using Chrome browser automation.
// The browser is relaunched after a fixed number of pages because Chrome's
// memory baseline only grows under load.
//
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	mu        sync.Mutex
	browser   *rod.Browser
	launcher  *launcher.Launcher
	pageCount int
	closed    bool

	fetchTimeout time.Duration
	maxPages     int
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the per-page timeout. Defaults to DefaultFetchTimeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.fetchTimeout = d
	}
}

// WithMaxPages sets how many pages are rendered before the browser is
// relaunched. Defaults to DefaultMaxPages.
func WithMaxPages(n int) Option {
	return func(f *Fetcher) {
		f.maxPages = n
	}
}

// NewFetcher launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		fetchTimeout: DefaultFetchTimeout,
		maxPages:     DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(f)
	}

	if err := f.launch(); err != nil {
		return nil, err
	}
	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
// The HTTP status of the document is not available through the browser,
// so error pages are returned like any other page.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	browser, err := f.acquire()
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.fetchTimeout)
	defer cancel()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	obj, err := page.Eval(serializeJS)
	if err != nil {
		return "", err
	}
	return obj.Value.Str(), nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil
	}
	f.closed = true
	return f.shutdown()
}

// LauncherPID returns the process ID of the browser launcher, or 0 when
// no browser is running.
func (f *Fetcher) LauncherPID() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.launcher == nil {
		return 0
	}
	return f.launcher.PID()
}

// acquire returns the current browser, relaunching it first when the page
// budget is spent. A failed relaunch keeps the old browser.
func (f *Fetcher) acquire() (*rod.Browser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil, medialinks.Errorf(medialinks.EINVALID, "fetcher closed")
	}

	if f.maxPages > 0 && f.pageCount >= f.maxPages {
		oldBrowser, oldLauncher := f.browser, f.launcher
		if err := f.launch(); err == nil {
			_ = oldBrowser.Close()
			oldLauncher.Kill()
		}
	}

	f.pageCount++
	return f.browser, nil
}

// launch starts a browser with stability flags. On success it replaces
// the current browser and resets the page count. Must be called with mu
// held or before f is shared.
func (f *Fetcher) launch() error {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	f.browser = browser
	f.launcher = l
	f.pageCount = 0
	return nil
}

// shutdown closes the browser and kills its process. Must be called with mu held.
func (f *Fetcher) shutdown() error {
	var err error
	if f.browser != nil {
		err = f.browser.Close()
		f.browser = nil
	}
	if f.launcher != nil {
		f.launcher.Kill()
		f.launcher = nil
	}
	return err
}
