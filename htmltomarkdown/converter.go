package htmltomarkdown

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/readmode"
)

// Ensure Converter implements readmode.Converter at compile time.
var _ readmode.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to render extracted articles as Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms an article fragment into Markdown. When pageURL is
// set, relative links and image sources are made absolute against its
// scheme and host.
func (c *Converter) Convert(html, pageURL string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", readmode.Errorf(readmode.EINVALID, "empty HTML input")
	}

	if pageURL == "" {
		result, err := c.conv.ConvertString(html)
		if err != nil {
			return "", fmt.Errorf("converting to markdown: %w", err)
		}
		return strings.TrimSpace(result), nil
	}

	u, err := url.Parse(pageURL)
	if err != nil {
		return "", readmode.Errorf(readmode.EINVALID, "invalid page URL: %v", err)
	}

	result, err := c.conv.ConvertString(html, converter.WithDomain(u.Scheme+"://"+u.Host))
	if err != nil {
		return "", fmt.Errorf("converting to markdown: %w", err)
	}

	return strings.TrimSpace(result), nil
}
