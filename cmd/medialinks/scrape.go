package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/fwojciec/medialinks"
	"github.com/fwojciec/medialinks/bulma"
	"github.com/fwojciec/medialinks/etree"
	"github.com/fwojciec/medialinks/fs"
	"github.com/fwojciec/medialinks/scrape"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	format, err := medialinks.ParseFormat(c.Format)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", medialinks.ErrorMessage(err))
		return err
	}

	batch := &scrape.Batch{
		Scraper:     deps.Scraper,
		Limiter:     deps.Limiter,
		Concurrency: c.Concurrency,
	}
	results := batch.ScrapeAll(deps.Ctx, c.URLs, func(e scrape.ProgressEvent) {
		if e.Type == scrape.ProgressCompleted || e.Type == scrape.ProgressFailed {
			deps.Logger.Debug("progress", "completed", e.Completed, "total", e.Total, "url", e.URL)
		}
	})

	var writer *fs.Writer
	if c.Out != "" {
		writer = fs.NewWriter(c.Out)
	}

	var failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", r.PageURL, medialinks.ErrorMessage(r.Err))
			continue
		}

		content, err := renderResult(format, r.Result, deps.Renderer)
		if err != nil {
			return fmt.Errorf("render %s: %w", r.PageURL, err)
		}

		if writer == nil {
			if _, err := deps.Stdout.Write(content); err != nil {
				return err
			}
			continue
		}

		path, err := writer.WriteResult(r.Result, format, content)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", r.PageURL, err)
			failed++
			continue
		}
		fmt.Fprintln(deps.Stdout, path)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d pages failed", failed, len(results))
	}
	return nil
}

// renderResult formats one result. JSON results end with a newline so
// several pages print as one object per line.
func renderResult(format medialinks.Format, result *medialinks.ScrapeResult, renderer *bulma.Renderer) ([]byte, error) {
	switch format {
	case medialinks.TextFormat:
		return []byte(medialinks.FormatText(result)), nil
	case medialinks.M3UFormat:
		return []byte(medialinks.FormatM3U(result)), nil
	case medialinks.XSPFFormat:
		s, err := etree.FormatXSPF(result)
		return []byte(s), err
	case medialinks.JSONFormat:
		b, err := json.Marshal(result)
		if err != nil {
			return nil, err
		}
		return append(b, '\n'), nil
	case medialinks.HTMLFormat:
		var buf bytes.Buffer
		if err := renderer.RenderLinks(&buf, result); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, medialinks.Errorf(medialinks.EINVALID, "unknown format %q", format)
	}
}
