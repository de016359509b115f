// Package batch extracts and stores articles for a list of URLs.
// It coordinates deduplication, rate-limited fetching with retries,
// extraction, and ordered storage.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/readmode"
	"github.com/fwojciec/readmode/bloom"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of URLs processed at once when
// Runner.Concurrency is not set.
const DefaultConcurrency = 4

// dedupeFalsePositiveRate is the acceptable rate at which a new URL is
// mistaken for a duplicate.
const dedupeFalsePositiveRate = 0.0001

// Runner processes batches of article URLs.
type Runner struct {
	Fetcher   readmode.Fetcher
	Extractor readmode.Extractor
	Engine    readmode.Engine
	Articles  readmode.ArticleWriter

	// Limiter is optional; when nil requests are not rate limited.
	Limiter readmode.HostLimiter

	Concurrency int
	RetryDelays []time.Duration
	Logger      *slog.Logger

	// Now returns the extraction timestamp. Defaults to time.Now.
	Now func() time.Time
}

// Result holds the outcome of a batch.
type Result struct {
	Saved   int
	Failed  int
	Skipped int
	Bytes   Size
}

// ProgressEvent reports progress during a batch.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressSkipped
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

// itemResult holds the outcome of processing a single URL.
type itemResult struct {
	position int
	url      string
	article  *readmode.Article
	err      error
}

// Run extracts every URL in urls and stores the articles in input order.
// Invalid and duplicate URLs are skipped. A failing URL is counted and
// reported through progress but never stops the batch; Run only returns
// an error when ctx is canceled.
func (r *Runner) Run(ctx context.Context, urls []string, progress ProgressFunc) (*Result, error) {
	if progress == nil {
		progress = func(ProgressEvent) {}
	}
	logger := r.logger()

	var result Result
	queue := r.dedupe(urls, &result, progress)
	total := len(queue)

	progress(ProgressEvent{Type: ProgressStarted, Total: total})

	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	resultCh := make(chan itemResult, total)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, u := range queue {
			g.Go(func() error {
				resultCh <- r.process(gctx, i, u)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	now := r.Now
	if now == nil {
		now = time.Now
	}

	// Store results in input order as soon as every earlier URL is done.
	// Progress reports an item once it is stored or has failed.
	results := make([]*itemResult, total)
	next := 0
	for item := range resultCh {
		results[item.position] = &item
		for ctx.Err() == nil && next < total && results[next] != nil {
			done := results[next]
			next++
			if err := r.store(ctx, done, &result, now); err != nil {
				result.Failed++
				logger.Warn("article failed", "url", done.url, "err", err)
				progress(ProgressEvent{Type: ProgressFailed, Completed: next, Total: total, URL: done.url, Error: err})
				continue
			}
			progress(ProgressEvent{Type: ProgressCompleted, Completed: next, Total: total, URL: done.url})
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})

	return &result, nil
}

// store saves a successfully extracted item. It returns the item's
// extraction error or the storage error.
func (r *Runner) store(ctx context.Context, item *itemResult, result *Result, now func() time.Time) error {
	if item.err != nil {
		return item.err
	}

	stored := &readmode.StoredArticle{
		SourceURL:   item.url,
		Engine:      r.Engine,
		Title:       item.article.Title,
		ContentHTML: item.article.ContentHTML,
		TextContent: item.article.TextContent,
		ExtractedAt: now().UTC(),
	}
	if err := r.Articles.CreateArticle(ctx, stored); err != nil {
		return fmt.Errorf("storing article: %w", err)
	}

	result.Saved++
	result.Bytes += Size(len(item.article.ContentHTML))
	return nil
}

// dedupe drops invalid and repeated URLs, keeping first occurrences in
// order.
func (r *Runner) dedupe(urls []string, result *Result, progress ProgressFunc) []string {
	seen := bloom.NewURLSet(uint(max(len(urls), 1)), dedupeFalsePositiveRate)
	queue := make([]string, 0, len(urls))
	for _, raw := range urls {
		raw = strings.TrimSpace(raw)
		if err := validateURL(raw); err != nil {
			result.Skipped++
			progress(ProgressEvent{Type: ProgressSkipped, URL: raw, Error: err})
			continue
		}
		if seen.Seen(raw) {
			result.Skipped++
			progress(ProgressEvent{Type: ProgressSkipped, URL: raw})
			continue
		}
		queue = append(queue, raw)
	}
	return queue
}

// process fetches and extracts a single URL.
func (r *Runner) process(ctx context.Context, position int, rawURL string) itemResult {
	item := itemResult{position: position, url: rawURL}

	delays := r.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	fetch := func(ctx context.Context, u string) (string, error) {
		if r.Limiter != nil {
			parsed, _ := url.Parse(u)
			if err := r.Limiter.Wait(ctx, parsed.Host); err != nil {
				return "", err
			}
		}
		return r.Fetcher.Fetch(ctx, u)
	}

	html, err := FetchWithRetry(ctx, rawURL, fetch, r.logger(), delays)
	if err != nil {
		item.err = err
		return item
	}

	article, err := r.Extractor.Extract(html, rawURL)
	if err != nil {
		item.err = err
		return item
	}
	item.article = article
	return item
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.Logger
}

// validateURL accepts absolute http and https URLs only.
func validateURL(raw string) error {
	if raw == "" {
		return readmode.Errorf(readmode.EINVALID, "empty URL")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return readmode.Errorf(readmode.EINVALID, "invalid URL %q: %v", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return readmode.Errorf(readmode.EINVALID, "unsupported URL scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return readmode.Errorf(readmode.EINVALID, "URL %q has no host", raw)
	}
	return nil
}

// MultiWriter returns an ArticleWriter that writes every article to each
// writer in turn, stopping at the first error.
func MultiWriter(writers ...readmode.ArticleWriter) readmode.ArticleWriter {
	return multiWriter(writers)
}

type multiWriter []readmode.ArticleWriter

func (w multiWriter) CreateArticle(ctx context.Context, article *readmode.StoredArticle) error {
	for _, next := range w {
		if err := next.CreateArticle(ctx, article); err != nil {
			return err
		}
	}
	return nil
}
