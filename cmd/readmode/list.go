package main

import (
	"fmt"

	"github.com/fwojciec/readmode"
	"github.com/fwojciec/readmode/fs"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := readmode.ArticleFilter{Limit: c.Limit, Offset: c.Offset}
	if c.Engine != "" {
		engine := readmode.Engine(c.Engine)
		filter.Engine = &engine
	}
	if c.URL != "" {
		filter.SourceURL = &c.URL
	}

	articles, err := deps.Articles.FindArticles(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	if len(articles) == 0 {
		fmt.Fprintln(deps.Stdout, "No articles found. Use 'readmode batch' or 'readmode extract --save' to store some.")
		return nil
	}

	for _, a := range articles {
		title := a.Title
		if title == "" {
			title = a.SourceURL
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %-11s  %s\n", a.ID, a.ExtractedAt.Format("2006-01-02"), a.Engine, title)
	}

	return nil
}

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	article, err := deps.Articles.FindArticleByID(deps.Ctx, c.ID)
	if err != nil {
		if readmode.ErrorCode(err) == readmode.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: article %q not found. Use 'readmode list' to see stored articles.\n", c.ID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	// The title is already in the frontmatter.
	body, err := render(deps, "", article.ContentHTML, article.TextContent, article.SourceURL, c.Format, false)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	out, err := fs.FormatArticle(article, body)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, out)
	return nil
}

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return readmode.Errorf(readmode.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Articles.DeleteArticle(deps.Ctx, c.ID); err != nil {
		if readmode.ErrorCode(err) == readmode.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: article %q not found. Use 'readmode list' to see stored articles.\n", c.ID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted article %s\n", c.ID)
	return nil
}
