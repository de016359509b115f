package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/readmode"
)

// Ensure LoggingSitemapService implements readmode.SitemapService.
var _ readmode.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService wraps a SitemapService and logs each discovery
// together with the filter that narrowed it.
type LoggingSitemapService struct {
	next   readmode.SitemapService
	logger *slog.Logger
}

// NewLoggingSitemapService creates a new LoggingSitemapService.
func NewLoggingSitemapService(next readmode.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

// DiscoverURLs delegates to the wrapped service. Failures are logged as
// warnings carrying the error code.
func (s *LoggingSitemapService) DiscoverURLs(ctx context.Context, siteURL string, filter *readmode.URLFilter) (urls []string, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"site", siteURL,
			"duration", time.Since(begin),
		}
		if filter != nil {
			attrs = append(attrs, "include", len(filter.Include), "exclude", len(filter.Exclude))
		}
		if err != nil {
			s.logger.WarnContext(ctx, "discover", append(attrs, "code", readmode.ErrorCode(err), "err", err)...)
			return
		}
		s.logger.InfoContext(ctx, "discover", append(attrs, "article_urls", len(urls))...)
	}(time.Now())
	return s.next.DiscoverURLs(ctx, siteURL, filter)
}
