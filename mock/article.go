package mock

import (
	"context"

	"github.com/fwojciec/readmode"
)

var _ readmode.ArticleService = (*ArticleService)(nil)

// ArticleService is a mock implementation of readmode.ArticleService.
type ArticleService struct {
	CreateArticleFn   func(ctx context.Context, article *readmode.StoredArticle) error
	FindArticleByIDFn func(ctx context.Context, id string) (*readmode.StoredArticle, error)
	FindArticlesFn    func(ctx context.Context, filter readmode.ArticleFilter) ([]*readmode.StoredArticle, error)
	DeleteArticleFn   func(ctx context.Context, id string) error
}

func (s *ArticleService) CreateArticle(ctx context.Context, article *readmode.StoredArticle) error {
	return s.CreateArticleFn(ctx, article)
}

func (s *ArticleService) FindArticleByID(ctx context.Context, id string) (*readmode.StoredArticle, error) {
	return s.FindArticleByIDFn(ctx, id)
}

func (s *ArticleService) FindArticles(ctx context.Context, filter readmode.ArticleFilter) ([]*readmode.StoredArticle, error) {
	return s.FindArticlesFn(ctx, filter)
}

func (s *ArticleService) DeleteArticle(ctx context.Context, id string) error {
	return s.DeleteArticleFn(ctx, id)
}
