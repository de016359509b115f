package main_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/fwojciec/readmode"
	main "github.com/fwojciec/readmode/cmd/readmode"
	"github.com/fwojciec/readmode/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func batchExtractor() *mock.Extractor {
	return &mock.Extractor{
		ExtractFn: func(html, pageURL string) (*readmode.Article, error) {
			return &readmode.Article{Title: pageURL, ContentHTML: html, TextContent: html}, nil
		},
	}
}

func echoFetcher() *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			if strings.HasSuffix(url, "/broken") {
				return "", readmode.Errorf(readmode.ENOTFOUND, "HTTP 404 for %s", url)
			}
			return "<p>" + url + "</p>", nil
		},
	}
}

type articleRecorder struct {
	mu   sync.Mutex
	urls []string
}

func (r *articleRecorder) service() *mock.ArticleService {
	return &mock.ArticleService{
		CreateArticleFn: func(ctx context.Context, a *readmode.StoredArticle) error {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.urls = append(r.urls, a.SourceURL)
			return nil
		},
	}
}

func TestBatchCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("processes a URL file in order", func(t *testing.T) {
		t.Parallel()

		list := writeFile(t, "urls.txt", "# reading list\n"+
			"https://example.com/a\n"+
			"\n"+
			"https://example.com/b\n"+
			"https://example.com/a\n"+
			"ftp://example.com/c\n"+
			"https://example.com/broken\n")

		rec := &articleRecorder{}
		deps, stdout, stderr := testDeps(batchExtractor())
		deps.Fetcher = echoFetcher()
		deps.Articles = rec.service()

		cmd := &main.BatchCmd{File: list, Engine: "native", Concurrency: 2}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/a", "https://example.com/b"}, rec.urls)
		assert.Contains(t, stdout.String(), "Processing 3 URLs")
		assert.Contains(t, stdout.String(), "Saved 2 articles")
		assert.Contains(t, stdout.String(), "1 failed, 2 skipped")
		assert.Contains(t, stderr.String(), "skip https://example.com/a: duplicate")
		assert.Contains(t, stderr.String(), "skip ftp://example.com/c")
		assert.Contains(t, stderr.String(), "fail example.com/broken")
	})

	t.Run("discovers URLs from a sitemap with filters", func(t *testing.T) {
		t.Parallel()

		rec := &articleRecorder{}
		deps, stdout, _ := testDeps(batchExtractor())
		deps.Fetcher = echoFetcher()
		deps.Articles = rec.service()
		deps.Sitemaps = &mock.SitemapService{
			DiscoverURLsFn: func(ctx context.Context, siteURL string, filter *readmode.URLFilter) ([]string, error) {
				assert.Equal(t, "https://example.com", siteURL)
				var out []string
				for _, u := range []string{"https://example.com/blog/one", "https://example.com/tag/go", "https://example.com/blog/two"} {
					if filter.Match(u) {
						out = append(out, u)
					}
				}
				return out, nil
			},
		}

		cmd := &main.BatchCmd{
			Sitemap:     "https://example.com",
			Include:     []string{"/blog/"},
			Exclude:     []string{"/two$"},
			Engine:      "native",
			Concurrency: 1,
		}
		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, []string{"https://example.com/blog/one"}, rec.urls)
		assert.Contains(t, stdout.String(), "Found 1 URLs in sitemap")
	})

	t.Run("writes markdown files atomically", func(t *testing.T) {
		t.Parallel()

		out := filepath.Join(t.TempDir(), "articles")
		deps, _, _ := testDeps(batchExtractor())
		deps.Fetcher = echoFetcher()
		deps.Stdin = strings.NewReader("https://example.com/blog/post\n")
		deps.Converter = &mock.Converter{
			ConvertFn: func(html, pageURL string) (string, error) {
				return "converted", nil
			},
		}

		cmd := &main.BatchCmd{File: "-", Engine: "readability", Out: out, NoStore: true}
		require.NoError(t, cmd.Run(deps))

		content, err := os.ReadFile(filepath.Join(out, "example.com", "blog", "post.md"))
		require.NoError(t, err)
		assert.Contains(t, string(content), "engine: readability")
		assert.True(t, strings.HasSuffix(string(content), "\n\nconverted"))

		_, err = os.Stat(out + ".tmp")
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("aborts file output when canceled", func(t *testing.T) {
		t.Parallel()

		out := filepath.Join(t.TempDir(), "articles")
		ctx, cancel := context.WithCancel(context.Background())
		deps, _, _ := testDeps(batchExtractor())
		deps.Ctx = ctx
		deps.Fetcher = &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				cancel()
				return "", ctx.Err()
			},
		}
		deps.Stdin = strings.NewReader("https://example.com/post\n")

		cmd := &main.BatchCmd{File: "-", Engine: "native", Out: out, NoStore: true}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled))
		_, statErr := os.Stat(out)
		assert.True(t, os.IsNotExist(statErr))
		_, statErr = os.Stat(out + ".tmp")
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := testDeps(batchExtractor())
		deps.Articles = &mock.ArticleService{}
		deps.Stdin = strings.NewReader("# nothing here\n")

		cmd := &main.BatchCmd{File: "-", Engine: "native"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, readmode.EINVALID, readmode.ErrorCode(err))
		assert.Contains(t, stderr.String(), "no URLs to process")
	})

	t.Run("rejects invalid filter pattern", func(t *testing.T) {
		t.Parallel()

		deps, _, _ := testDeps(batchExtractor())
		deps.Sitemaps = &mock.SitemapService{}

		cmd := &main.BatchCmd{Sitemap: "https://example.com", Include: []string{"("}, Engine: "native"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, readmode.EINVALID, readmode.ErrorCode(err))
	})

	t.Run("requires a destination", func(t *testing.T) {
		t.Parallel()

		deps, _, _ := testDeps(batchExtractor())
		deps.Stdin = strings.NewReader("https://example.com/a\n")

		cmd := &main.BatchCmd{File: "-", Engine: "native", NoStore: true}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, readmode.EINVALID, readmode.ErrorCode(err))
	})
}
