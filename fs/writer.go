// Package fs provides file-based storage for extracted articles.
package fs

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/readmode"
	"gopkg.in/yaml.v3"
)

// URLToPath converts an article URL to a relative file path under a
// directory named after its host. A query string adds a short hash to the
// file name so pages differing only by query get separate files.
// Example: https://example.com/blog/2024/post → example.com/blog/2024/post.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", readmode.Errorf(readmode.EINVALID, "invalid article URL: %v", err)
	}

	path := u.Path

	for _, seg := range strings.Split(path, "/") {
		if seg == ".." {
			return "", readmode.Errorf(readmode.EINVALID, "path traversal in article URL: %s", rawURL)
		}
	}

	path = strings.TrimPrefix(path, "/")

	// Root or trailing slash → index.md
	if path == "" || strings.HasSuffix(path, "/") {
		path += "index"
	} else {
		// Pages served as .html keep their name with a markdown extension.
		path = strings.TrimSuffix(path, ".html")
		path = strings.TrimSuffix(path, ".htm")
	}

	if u.RawQuery != "" {
		path += fmt.Sprintf("-%08x", uint32(xxhash.Sum64String(u.RawQuery)))
	}

	return filepath.Join(hostDir(u.Host), filepath.FromSlash(path+".md")), nil
}

// hostDir turns a URL host into a directory name. Ports keep their number
// behind an underscore.
func hostDir(host string) string {
	host = strings.ToLower(host)
	host = strings.NewReplacer("[", "", "]", "", ":", "_").Replace(host)
	if host == "" || host == "." {
		return "_"
	}
	return host
}

type frontMatter struct {
	ID        string `yaml:"id,omitempty"`
	Source    string `yaml:"source"`
	Title     string `yaml:"title"`
	Engine    string `yaml:"engine"`
	Extracted string `yaml:"extracted"`
}

// FormatArticle formats an article with YAML frontmatter. body is written
// after the frontmatter as is.
func FormatArticle(article *readmode.StoredArticle, body string) (string, error) {
	meta, err := yaml.Marshal(frontMatter{
		ID:        article.ID,
		Source:    article.SourceURL,
		Title:     article.Title,
		Engine:    string(article.Engine),
		Extracted: article.ExtractedAt.Format("2006-01-02"),
	})
	if err != nil {
		return "", fmt.Errorf("encoding frontmatter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(meta)
	b.WriteString("---\n\n")
	b.WriteString(body)
	return b.String(), nil
}

// Ensure Writer implements readmode.ArticleWriter at compile time.
var _ readmode.ArticleWriter = (*Writer)(nil)

// Writer writes articles as markdown files to a directory.
type Writer struct {
	baseDir string

	// Converter turns the article HTML into Markdown. When nil the
	// cleaned HTML is written unchanged; Markdown renderers display it.
	Converter readmode.Converter
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string, conv readmode.Converter) *Writer {
	return &Writer{baseDir: baseDir, Converter: conv}
}

// CreateArticle writes an article to disk as a markdown file.
func (w *Writer) CreateArticle(ctx context.Context, article *readmode.StoredArticle) error {
	if err := article.Validate(); err != nil {
		return err
	}

	relPath, err := URLToPath(article.SourceURL)
	if err != nil {
		return err
	}

	body := article.ContentHTML
	if w.Converter != nil {
		body, err = w.Converter.Convert(article.ContentHTML, article.SourceURL)
		if err != nil {
			return err
		}
	}

	fullPath := filepath.Join(w.baseDir, relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	content, err := FormatArticle(article, body)
	if err != nil {
		return err
	}

	return os.WriteFile(fullPath, []byte(content), 0644)
}
