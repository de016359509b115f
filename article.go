package readmode

import (
	"context"
	"time"
)

// StoredArticle is an extraction result persisted for later reading.
type StoredArticle struct {
	ID          string    `json:"id"`
	SourceURL   string    `json:"sourceUrl"`
	Engine      Engine    `json:"engine"`
	Title       string    `json:"title"`
	ContentHTML string    `json:"contentHtml"`
	TextContent string    `json:"textContent"`
	ContentHash string    `json:"contentHash"`
	ExtractedAt time.Time `json:"extractedAt"`
}

// Validate returns an error if the article contains invalid fields.
func (a *StoredArticle) Validate() error {
	if a.SourceURL == "" {
		return Errorf(EINVALID, "article source URL required")
	}
	if a.Engine == "" {
		return Errorf(EINVALID, "article engine required")
	}
	return nil
}

// ArticleWriter writes articles to storage.
type ArticleWriter interface {
	CreateArticle(ctx context.Context, article *StoredArticle) error
}

// ArticleService represents a service for managing stored articles.
type ArticleService interface {
	// CreateArticle stores a new article, assigning its ID,
	// content hash and extraction time.
	CreateArticle(ctx context.Context, article *StoredArticle) error

	// FindArticleByID retrieves an article by ID.
	// Returns ENOTFOUND if the article does not exist.
	FindArticleByID(ctx context.Context, id string) (*StoredArticle, error)

	// FindArticles retrieves articles matching the filter,
	// most recently extracted first.
	FindArticles(ctx context.Context, filter ArticleFilter) ([]*StoredArticle, error)

	// DeleteArticle permanently removes an article.
	// Returns ENOTFOUND if the article does not exist.
	DeleteArticle(ctx context.Context, id string) error
}

// ArticleFilter represents a filter for FindArticles.
type ArticleFilter struct {
	ID        *string `json:"id"`
	SourceURL *string `json:"sourceUrl"`
	Engine    *Engine `json:"engine"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
