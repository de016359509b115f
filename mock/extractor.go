package mock

import "github.com/fwojciec/readmode"

var _ readmode.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of readmode.Extractor.
type Extractor struct {
	ExtractFn func(html, pageURL string) (*readmode.Article, error)
}

func (e *Extractor) Extract(html, pageURL string) (*readmode.Article, error) {
	return e.ExtractFn(html, pageURL)
}
