package batch

import (
	"unicode/utf8"

	"github.com/fwojciec/readmode"
)

// Comparison is the outcome of one engine on one document.
type Comparison struct {
	Engine       readmode.Engine
	Title        string
	ContentBytes int
	TextRunes    int
	Warnings     int
	Err          error
}

// Compare runs every extractor on the same document, in the order of
// engines. Extractors missing from the map are skipped. Errors are
// recorded per engine rather than returned.
func Compare(rawHTML, pageURL string, engines []readmode.Engine, extractors map[readmode.Engine]readmode.Extractor) []Comparison {
	out := make([]Comparison, 0, len(engines))
	for _, engine := range engines {
		ext, ok := extractors[engine]
		if !ok {
			continue
		}

		c := Comparison{Engine: engine}
		article, err := ext.Extract(rawHTML, pageURL)
		if err != nil {
			c.Err = err
			out = append(out, c)
			continue
		}

		c.Title = article.Title
		c.ContentBytes = len(article.ContentHTML)
		c.TextRunes = utf8.RuneCountInString(article.TextContent)
		c.Warnings = len(article.Warnings)
		out = append(out, c)
	}
	return out
}

// ContentDiffers reports whether two comparisons disagree substantially:
// one failed while the other succeeded, or one text is more than half
// again as long as the other.
func ContentDiffers(a, b Comparison) bool {
	if (a.Err == nil) != (b.Err == nil) {
		return true
	}
	if a.Err != nil {
		return false
	}
	short, long := min(a.TextRunes, b.TextRunes), max(a.TextRunes, b.TextRunes)
	if short == 0 {
		return long > 0
	}
	return float64(long) > float64(short)*1.5
}
