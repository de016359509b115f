package goquery

import (
	"strings"

	"github.com/fwojciec/readmode"
)

// Ensure Extractor implements readmode.Extractor at compile time.
var _ readmode.Extractor = (*Extractor)(nil)

// Extractor runs a Readability session per document.
type Extractor struct {
	opts []Option
}

// NewExtractor creates a new Extractor. The options apply to every
// session; the URL passed to Extract takes precedence over WithURL.
func NewExtractor(opts ...Option) *Extractor {
	return &Extractor{opts: opts}
}

// Extract processes decoded HTML and returns the main content.
func (e *Extractor) Extract(rawHTML, pageURL string) (*readmode.Article, error) {
	opts := append([]Option(nil), e.opts...)
	if pageURL != "" {
		opts = append(opts, WithURL(pageURL))
	}

	r, err := NewReadability(rawHTML, opts...)
	if err != nil {
		return nil, err
	}

	contentHTML, err := r.HTML()
	if err != nil {
		return nil, err
	}

	article := &readmode.Article{
		Title:       r.Title(),
		ContentHTML: contentHTML,
		TextContent: strings.TrimSpace(NormalizeSpaces(r.Text())),
	}
	for _, w := range r.Warnings() {
		article.Warnings = append(article.Warnings, w.String())
	}
	return article, nil
}
