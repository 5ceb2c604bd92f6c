package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/medialinks"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	if deps.Records == nil {
		err := medialinks.Errorf(medialinks.EINVALID, "history requires --db or MEDIALINKS_DB")
		fmt.Fprintf(deps.Stderr, "error: %s\n", medialinks.ErrorMessage(err))
		return err
	}

	filter := medialinks.ScrapeRecordFilter{Limit: c.Limit}
	if c.URL != "" {
		filter.PageURL = &c.URL
	}

	records, err := deps.Records.FindScrapeRecords(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", medialinks.ErrorMessage(err))
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(deps.Stdout, "No scrapes recorded.")
		return nil
	}

	for _, r := range records {
		status := "ok"
		if r.Failed {
			status = "failed"
		}
		fmt.Fprintf(deps.Stdout, "%s  %-6s  %3d  %-16s  %s\n",
			r.ScrapedAt.UTC().Format(time.RFC3339), status, r.LinkCount, r.LinksHash, r.PageURL)
	}

	return nil
}
