// Package fs writes scrape results to files.
package fs

import (
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/fwojciec/medialinks"
)

// ResultPath converts a page URL to a relative file path for its result.
// Example: https://example.com/music/live, "m3u" → example.com/music/live.m3u
func ResultPath(pageURL, ext string) (string, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return "", medialinks.Errorf(medialinks.EINVALID, "invalid page URL %q", pageURL)
	}
	if u.Host == "" {
		return "", medialinks.Errorf(medialinks.EINVALID, "page URL %q has no host", pageURL)
	}

	p := u.Path
	trailing := strings.HasSuffix(p, "/")

	// Cleaning against "/" keeps ".." segments inside the host directory.
	p = strings.TrimPrefix(path.Clean("/"+p), "/")

	// Root or trailing slash → index
	if p == "" || trailing {
		p = path.Join(p, "index")
	}

	return path.Join(u.Host, p) + "." + ext, nil
}

// Writer writes one result file per page under a base directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteResult writes content, the result rendered in format, to the path
// derived from the result's page URL. The file is replaced atomically.
// Returns the path written.
func (w *Writer) WriteResult(result *medialinks.ScrapeResult, format medialinks.Format, content []byte) (string, error) {
	relPath, err := ResultPath(result.PageURL, format.Extension())
	if err != nil {
		return "", err
	}

	fullPath := filepath.Join(w.baseDir, filepath.FromSlash(relPath))

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(dir, ".medialinks-*")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}

	if err := os.Rename(tmp.Name(), fullPath); err != nil {
		return "", err
	}
	return fullPath, nil
}
