package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/readmode"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements readmode.Extractor at compile time.
var _ readmode.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes decoded HTML and returns the main content.
func (e *Extractor) Extract(rawHTML, pageURL string) (*readmode.Article, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, readmode.Errorf(readmode.EINVALID, "empty HTML input")
	}

	var base *url.URL
	if pageURL != "" {
		u, err := url.Parse(pageURL)
		if err != nil {
			return nil, readmode.Errorf(readmode.EINVALID, "invalid source URL: %v", err)
		}
		base = u
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), base)
	if err != nil {
		return nil, err
	}

	return &readmode.Article{
		Title:       strings.TrimSpace(article.Title),
		ContentHTML: article.Content,
		TextContent: strings.TrimSpace(article.TextContent),
	}, nil
}
