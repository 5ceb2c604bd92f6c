package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/medialinks"
	"github.com/fwojciec/medialinks/bulma"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Scraper  medialinks.Scraper
	Limiter  medialinks.DomainLimiter
	Records  medialinks.ScrapeRecordService
	Renderer *bulma.Renderer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB        string `name:"db" env:"MEDIALINKS_DB" help:"SQLite database for scrape history (disabled when empty)"`
	LogLevel  string `default:"info" env:"LOG_LEVEL" enum:"debug,info,warn,error" help:"Log level (${enum})"`
	LogFormat string `default:"text" env:"LOG_FORMAT" enum:"text,json" help:"Log format (${enum})"`

	Scrape  ScrapeCmd  `cmd:"" help:"Print the media links found on one or more pages"`
	Serve   ServeCmd   `cmd:"" help:"Serve the scrape endpoint and web front-end"`
	History HistoryCmd `cmd:"" help:"List recorded scrapes"`
}

// FetchFlags configure how pages are downloaded.
type FetchFlags struct {
	Timeout   time.Duration `short:"t" default:"10s" env:"MEDIALINKS_TIMEOUT" help:"Per-page fetch timeout"`
	UserAgent string        `name:"user-agent" default:"medialinks/1.0" env:"MEDIALINKS_USER_AGENT" help:"User-Agent sent by the HTTP fetcher"`
	Render    bool          `help:"Render pages in headless Chrome before extracting"`
	Retries   int           `default:"0" help:"Fetch retries with exponential backoff"`
}

func (f *FetchFlags) validate() error {
	if f.Retries < 0 {
		return medialinks.Errorf(medialinks.EINVALID, "--retries must not be negative")
	}
	return nil
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URLs        []string `arg:"" name:"url" help:"Page URLs to scrape"`
	Format      string   `short:"f" default:"text" enum:"text,json,m3u,xspf,html" help:"Output format (${enum})"`
	Concurrency int      `short:"c" default:"3" help:"Pages scraped at once"`
	RPS         float64  `name:"rps" default:"1" help:"Requests per second per host"`
	Out         string   `short:"o" type:"path" help:"Write one file per page under this directory"`

	FetchFlags `embed:""`
}

// Validate rejects flag values the batch cannot run with.
func (c *ScrapeCmd) Validate() error {
	if c.RPS <= 0 {
		return medialinks.Errorf(medialinks.EINVALID, "--rps must be greater than zero")
	}
	if c.Concurrency < 0 {
		return medialinks.Errorf(medialinks.EINVALID, "--concurrency must not be negative")
	}
	return c.FetchFlags.validate()
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr        string `default:":8080" env:"MEDIALINKS_ADDR" help:"Listen address"`
	AllowOrigin string `name:"allow-origin" env:"ACCESS_CONTROL_ALLOW_ORIGIN" help:"Access-Control-Allow-Origin for the scrape endpoint"`

	FetchFlags `embed:""`
}

// Validate rejects invalid fetch flags.
func (c *ServeCmd) Validate() error {
	return c.FetchFlags.validate()
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	URL   string `help:"Only show scrapes of this page URL"`
	Limit int    `short:"n" default:"20" help:"Maximum records to show"`
}
