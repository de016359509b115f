package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/fwojciec/readmode"
	"github.com/fwojciec/readmode/batch"
)

// Run executes the compare command.
func (c *CompareCmd) Run(deps *Dependencies) error {
	html, pageURL, err := readSource(deps, c.Source)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}
	if c.URL != "" {
		pageURL = c.URL
	}

	results := batch.Compare(html, pageURL, readmode.Engines(), deps.Extractors(c.Extended))

	tw := tabwriter.NewWriter(deps.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ENGINE\tCONTENT\tTEXT\tTITLE")
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(tw, "%s\t-\t-\terror: %s\n", r.Engine, errorText(r.Err))
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", r.Engine, batch.Size(r.ContentBytes), r.TextRunes, r.Title)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for i := 1; i < len(results); i++ {
		if batch.ContentDiffers(results[0], results[i]) {
			fmt.Fprintf(deps.Stdout, "\n%s and %s disagree on the article content\n", results[0].Engine, results[i].Engine)
		}
	}

	return nil
}
