package main_test

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	main "github.com/fwojciec/readmode/cmd/readmode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMain(t *testing.T, stdin string) *main.Main {
	t.Helper()
	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "readmode.db")
	m.Stdin = strings.NewReader(stdin)
	return m
}

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("no arguments prints help and fails", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := newTestMain(t, "").Run(context.Background(), nil, stdout, stderr)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no command specified")
		assert.Contains(t, stdout.String(), "extract")
	})

	t.Run("help succeeds", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := newTestMain(t, "").Run(context.Background(), []string{"--help"}, stdout, stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "batch")
	})

	t.Run("rejects unknown engine", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := newTestMain(t, "").Run(context.Background(), []string{"extract", "-", "--engine", "magic"}, stdout, stderr)

		require.Error(t, err)
	})

	t.Run("extracts from stdin with the native engine", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := newTestMain(t, articlePage).Run(context.Background(), []string{"extract", "-"}, stdout, stderr)

		require.NoError(t, err)
		assert.Equal(t, "<div><p>Sentence one, two, three.</p><p>Another paragraph.</p></div>\n", stdout.String())
	})

	t.Run("extracts text from a file", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "page.html", articlePage)
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := newTestMain(t, "").Run(context.Background(), []string{"extract", path, "--format", "text"}, stdout, stderr)

		require.NoError(t, err)
		assert.Equal(t, "T\n\nSentence one, two, three.Another paragraph.\n", stdout.String())
	})

	t.Run("saves, lists, shows and deletes", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t, articlePage)
		ctx := context.Background()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		err := m.Run(ctx, []string{"extract", "-", "--url", "https://example.com/post", "--save"}, stdout, stderr)
		require.NoError(t, err)
		require.Contains(t, stderr.String(), "Saved article ")
		id := strings.TrimSpace(strings.TrimPrefix(stderr.String(), "Saved article "))

		stdout.Reset()
		stderr.Reset()
		require.NoError(t, m.Run(ctx, []string{"list"}, stdout, stderr))
		assert.Contains(t, stdout.String(), id)
		assert.Contains(t, stdout.String(), "native")

		stdout.Reset()
		require.NoError(t, m.Run(ctx, []string{"show", id, "--format", "text"}, stdout, stderr))
		assert.Contains(t, stdout.String(), "source: https://example.com/post")
		assert.Contains(t, stdout.String(), "Sentence one, two, three.")

		stdout.Reset()
		require.NoError(t, m.Run(ctx, []string{"delete", id, "--force"}, stdout, stderr))
		assert.Contains(t, stdout.String(), "Deleted article "+id)

		stdout.Reset()
		require.NoError(t, m.Run(ctx, []string{"list"}, stdout, stderr))
		assert.Contains(t, stdout.String(), "No articles found")
	})
}
