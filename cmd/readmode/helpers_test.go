package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/readmode"
	main "github.com/fwojciec/readmode/cmd/readmode"
	"github.com/fwojciec/readmode/mock"
	"github.com/stretchr/testify/require"
)

const articlePage = `<html><head><title>T</title></head><body>` +
	`<div class="content"><p>Sentence one, two, three.</p><p>Another paragraph.</p></div>` +
	`<div class="sidebar ad">Buy now</div>` +
	`</body></html>`

// testDeps returns dependencies writing to fresh buffers, with every
// engine served by ext.
func testDeps(ext readmode.Extractor) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	deps := &main.Dependencies{
		Ctx:    context.Background(),
		Stdin:  strings.NewReader(""),
		Stdout: stdout,
		Stderr: stderr,
		Extractors: func(bool) map[readmode.Engine]readmode.Extractor {
			m := make(map[readmode.Engine]readmode.Extractor)
			for _, e := range readmode.Engines() {
				m[e] = ext
			}
			return m
		},
	}
	return deps, stdout, stderr
}

// staticExtractor returns the same article for every input.
func staticExtractor(article *readmode.Article) *mock.Extractor {
	return &mock.Extractor{
		ExtractFn: func(html, pageURL string) (*readmode.Article, error) {
			return article, nil
		},
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
