package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/readmode"
)

// Ensure LoggingExtractor implements readmode.Extractor.
var _ readmode.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor and logs every extraction.
type LoggingExtractor struct {
	next   readmode.Extractor
	engine readmode.Engine
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor. engine labels the
// log records.
func NewLoggingExtractor(next readmode.Extractor, engine readmode.Engine, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, engine: engine, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the outcome.
func (e *LoggingExtractor) Extract(html, pageURL string) (article *readmode.Article, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"engine", e.engine,
			"url", pageURL,
			"input_bytes", len(html),
			"duration", time.Since(begin),
		}
		if err != nil {
			e.logger.Warn("extract", append(attrs, "code", readmode.ErrorCode(err), "err", err)...)
			return
		}
		e.logger.Debug("extract", append(attrs,
			"title", article.Title,
			"content_bytes", len(article.ContentHTML),
			"warnings", len(article.Warnings),
		)...)
	}(time.Now())
	return e.next.Extract(html, pageURL)
}
