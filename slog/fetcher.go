// Package slog provides log/slog decorators for readmode services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/readmode"
)

// Ensure LoggingFetcher implements readmode.Fetcher.
var _ readmode.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher and logs every request.
type LoggingFetcher struct {
	next   readmode.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next readmode.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher. Pages are logged at debug level;
// failures are warnings carrying the error code, so a 404 reads not_found.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		attrs := []any{"url", url, "duration", time.Since(begin)}
		if err != nil {
			f.logger.WarnContext(ctx, "fetch", append(attrs, "code", readmode.ErrorCode(err), "err", err)...)
			return
		}
		f.logger.DebugContext(ctx, "fetch", append(attrs, "bytes", len(html))...)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
