package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/readmode"
	"github.com/fwojciec/readmode/mock"
	rmslog "github.com/fwojciec/readmode/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pageFetcher(page string, err error) *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			return page, err
		},
	}
}

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("records page size at debug", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		page := "<html><body><article><p>Rents rose again.</p></article></body></html>"

		html, err := rmslog.NewLoggingFetcher(pageFetcher(page, nil), logger).
			Fetch(context.Background(), "https://news.example.com/2024/rent-report")

		require.NoError(t, err)
		assert.Equal(t, page, html)
		output := buf.String()
		assert.Contains(t, output, "level=DEBUG msg=fetch")
		assert.Contains(t, output, "url=https://news.example.com/2024/rent-report")
		assert.Contains(t, output, "bytes=69")
		assert.NotContains(t, output, "err=")
	})

	t.Run("stays quiet at info when pages load", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		_, err := rmslog.NewLoggingFetcher(pageFetcher("<p>x</p>", nil), logger).
			Fetch(context.Background(), "https://news.example.com/")

		require.NoError(t, err)
		assert.Empty(t, buf.String())
	})

	t.Run("warns with the error code of a missing page", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		gone := readmode.Errorf(readmode.ENOTFOUND, "HTTP 410 for https://news.example.com/old")

		_, err := rmslog.NewLoggingFetcher(pageFetcher("", gone), logger).
			Fetch(context.Background(), "https://news.example.com/old")

		require.ErrorIs(t, err, gone)
		output := buf.String()
		assert.Contains(t, output, "level=WARN msg=fetch")
		assert.Contains(t, output, "code="+readmode.ENOTFOUND)
		assert.NotContains(t, output, "bytes=")
	})

	t.Run("labels transport failures as internal", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		_, err := rmslog.NewLoggingFetcher(pageFetcher("", errors.New("connection reset")), logger).
			Fetch(context.Background(), "https://news.example.com/")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "code="+readmode.EINTERNAL)
		assert.Contains(t, buf.String(), `err="connection reset"`)
	})
}

func TestLoggingFetcher_Close(t *testing.T) {
	t.Parallel()

	closed := false
	inner := &mock.Fetcher{
		CloseFn: func() error {
			closed = true
			return nil
		},
	}

	err := rmslog.NewLoggingFetcher(inner, slog.New(slog.DiscardHandler)).Close()

	require.NoError(t, err)
	assert.True(t, closed)
}
