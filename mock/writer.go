package mock

import (
	"context"

	"github.com/fwojciec/readmode"
)

var _ readmode.ArticleWriter = (*ArticleWriter)(nil)

// ArticleWriter is a mock implementation of readmode.ArticleWriter.
type ArticleWriter struct {
	CreateArticleFn func(ctx context.Context, article *readmode.StoredArticle) error
}

func (w *ArticleWriter) CreateArticle(ctx context.Context, article *readmode.StoredArticle) error {
	return w.CreateArticleFn(ctx, article)
}
