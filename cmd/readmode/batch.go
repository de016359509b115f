package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/readmode"
	"github.com/fwojciec/readmode/batch"
	"github.com/fwojciec/readmode/fs"
)

// Run executes the batch command.
func (c *BatchCmd) Run(deps *Dependencies) error {
	urls, err := c.collectURLs(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}
	if len(urls) == 0 {
		fmt.Fprintln(deps.Stderr, "error: no URLs to process. Pass a URL file or --sitemap.")
		return readmode.Errorf(readmode.EINVALID, "no URLs to process")
	}

	var writers []readmode.ArticleWriter
	if deps.Articles != nil {
		writers = append(writers, deps.Articles)
	}

	var store *fs.FileStore
	if c.Out != "" {
		store = fs.NewFileStore(filepath.Dir(c.Out), filepath.Base(c.Out), deps.Converter)
		writers = append(writers, store)
	}

	if len(writers) == 0 {
		fmt.Fprintln(deps.Stderr, "error: nothing to write to. Drop --no-store or set --out.")
		return readmode.Errorf(readmode.EINVALID, "no article destination")
	}

	engine := readmode.Engine(c.Engine)
	extractor, ok := deps.Extractors(c.Extended)[engine]
	if !ok {
		return readmode.Errorf(readmode.EINVALID, "unknown engine %q", c.Engine)
	}

	runner := &batch.Runner{
		Fetcher:     deps.Fetcher,
		Extractor:   extractor,
		Engine:      engine,
		Articles:    batch.MultiWriter(writers...),
		Limiter:     batch.NewHostLimiter(c.RPS),
		Concurrency: c.Concurrency,
		Logger:      deps.Logger,
	}

	progress := func(event batch.ProgressEvent) {
		switch event.Type {
		case batch.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Processing %d URLs\n", event.Total)
		case batch.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  fail %s: %s\n", batch.ShortURL(event.URL, 60), errorText(event.Error))
		case batch.ProgressSkipped:
			if event.Error != nil {
				fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", event.URL, errorText(event.Error))
			} else {
				fmt.Fprintf(deps.Stderr, "  skip %s: duplicate\n", event.URL)
			}
		}
	}

	result, err := runner.Run(deps.Ctx, urls, progress)
	if err != nil {
		if store != nil {
			_ = store.Abort()
		}
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	if store != nil {
		if err := store.Commit(); err != nil {
			fmt.Fprintf(deps.Stderr, "error committing %s: %v\n", c.Out, err)
			return err
		}
	}

	fmt.Fprintln(deps.Stdout, result)

	return nil
}

// collectURLs gathers URLs from the list file and the sitemap, file
// entries first.
func (c *BatchCmd) collectURLs(deps *Dependencies) ([]string, error) {
	var urls []string

	switch c.File {
	case "":
	case "-":
		list, err := readURLList(deps.Stdin)
		if err != nil {
			return nil, err
		}
		urls = append(urls, list...)
	default:
		f, err := os.Open(c.File)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, readmode.Errorf(readmode.ENOTFOUND, "file %q not found", c.File)
			}
			return nil, err
		}
		defer f.Close()
		list, err := readURLList(f)
		if err != nil {
			return nil, err
		}
		urls = append(urls, list...)
	}

	if c.Sitemap != "" {
		filter, err := readmode.NewURLFilter(c.Include, c.Exclude)
		if err != nil {
			return nil, err
		}
		discovered, err := deps.Sitemaps.DiscoverURLs(deps.Ctx, c.Sitemap, filter)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(deps.Stdout, "Found %d URLs in sitemap\n", len(discovered))
		urls = append(urls, discovered...)
	}

	return urls, nil
}
