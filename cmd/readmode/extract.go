package main

import (
	"fmt"

	"github.com/fwojciec/readmode"
	"github.com/yosssi/gohtml"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	html, pageURL, err := readSource(deps, c.Source)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}
	if c.URL != "" {
		pageURL = c.URL
	}

	engine := readmode.Engine(c.Engine)
	extractor, ok := deps.Extractors(c.Extended)[engine]
	if !ok {
		return readmode.Errorf(readmode.EINVALID, "unknown engine %q", c.Engine)
	}

	article, err := extractor.Extract(html, pageURL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	out, err := render(deps, article.Title, article.ContentHTML, article.TextContent, pageURL, c.Format, c.Pretty)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}
	fmt.Fprintln(deps.Stdout, out)

	for _, w := range article.Warnings {
		fmt.Fprintf(deps.Stderr, "warning: %s\n", w)
	}

	if c.Save {
		stored := &readmode.StoredArticle{
			SourceURL:   pageURL,
			Engine:      engine,
			Title:       article.Title,
			ContentHTML: article.ContentHTML,
			TextContent: article.TextContent,
		}
		if stored.SourceURL == "" {
			stored.SourceURL = c.Source
		}
		if err := deps.Articles.CreateArticle(deps.Ctx, stored); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
			return err
		}
		fmt.Fprintf(deps.Stderr, "Saved article %s\n", stored.ID)
	}

	return nil
}

// render formats article content for output. Text and Markdown carry the
// title as a heading; HTML is the bare fragment.
func render(deps *Dependencies, title, contentHTML, text, pageURL, format string, pretty bool) (string, error) {
	switch format {
	case "text":
		if title == "" {
			return text, nil
		}
		return title + "\n\n" + text, nil

	case "markdown":
		md, err := deps.Converter.Convert(contentHTML, pageURL)
		if err != nil {
			return "", err
		}
		if title == "" {
			return md, nil
		}
		return "# " + title + "\n\n" + md, nil

	default:
		if pretty {
			return gohtml.Format(contentHTML), nil
		}
		return contentHTML, nil
	}
}
