package slog_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/fwojciec/readmode"
	"github.com/fwojciec/readmode/mock"
	rmslog "github.com/fwojciec/readmode/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("logs title and sizes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		inner := &mock.Extractor{
			ExtractFn: func(html, pageURL string) (*readmode.Article, error) {
				return &readmode.Article{Title: "Hello", ContentHTML: "<p>hi</p>", Warnings: []string{"w"}}, nil
			},
		}

		ext := rmslog.NewLoggingExtractor(inner, readmode.EngineNative, logger)
		article, err := ext.Extract("<html><p>hi</p></html>", "https://example.com/a")

		require.NoError(t, err)
		assert.Equal(t, "Hello", article.Title)
		output := buf.String()
		assert.Contains(t, output, "msg=extract")
		assert.Contains(t, output, "engine=native")
		assert.Contains(t, output, "url=https://example.com/a")
		assert.Contains(t, output, "input_bytes=22")
		assert.Contains(t, output, "title=Hello")
		assert.Contains(t, output, "content_bytes=9")
		assert.Contains(t, output, "warnings=1")
	})

	t.Run("logs error code on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractFn: func(html, pageURL string) (*readmode.Article, error) {
				return nil, readmode.Errorf(readmode.EEMPTY, "document body has no elements")
			},
		}

		ext := rmslog.NewLoggingExtractor(inner, readmode.EngineReadability, logger)
		_, err := ext.Extract("<html></html>", "")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "level=WARN")
		assert.Contains(t, output, "engine=readability")
		assert.Contains(t, output, "code=empty")
	})
}
