package mock

import (
	"context"

	"github.com/fwojciec/readmode"
)

var _ readmode.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of readmode.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, siteURL string, filter *readmode.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, siteURL string, filter *readmode.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, siteURL, filter)
}
