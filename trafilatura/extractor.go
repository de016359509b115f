package trafilatura

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/fwojciec/readmode"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements readmode.Extractor at compile time.
var _ readmode.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct {
	// Fallback enables go-trafilatura's readability and dom-distiller
	// fallbacks when its own heuristics find too little text.
	Fallback bool
}

// NewExtractor creates a new Extractor with fallbacks enabled.
func NewExtractor() *Extractor {
	return &Extractor{Fallback: true}
}

// Extract processes decoded HTML and returns the main content.
func (e *Extractor) Extract(rawHTML, pageURL string) (*readmode.Article, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, readmode.Errorf(readmode.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: e.Fallback,
	}
	if pageURL != "" {
		u, err := url.Parse(pageURL)
		if err != nil {
			return nil, readmode.Errorf(readmode.EINVALID, "invalid source URL: %v", err)
		}
		opts.OriginalURL = u
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, readmode.Errorf(readmode.EEMPTY, "no content extracted: %v", err)
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &readmode.Article{
		Title:       strings.TrimSpace(result.Metadata.Title),
		ContentHTML: contentHTML,
		TextContent: strings.TrimSpace(result.ContentText),
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
