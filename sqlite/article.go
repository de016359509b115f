package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/readmode"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ readmode.ArticleService = (*ArticleService)(nil)

const articleColumns = "id, source_url, engine, title, content_html, text_content, content_hash, extracted_at"

// ArticleService implements readmode.ArticleService using SQLite.
type ArticleService struct {
	db *DB

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewArticleService creates a new ArticleService.
func NewArticleService(db *DB) *ArticleService {
	return &ArticleService{db: db, Now: time.Now}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], xxhash.Sum64String(content))
	return hex.EncodeToString(b[:])
}

// CreateArticle stores a new article. The ID and content hash are always
// assigned; ExtractedAt is kept when the caller already set it.
func (s *ArticleService) CreateArticle(ctx context.Context, article *readmode.StoredArticle) error {
	if err := article.Validate(); err != nil {
		return err
	}

	article.ID = uuid.New().String()
	article.ContentHash = hashContent(article.ContentHTML)
	if article.ExtractedAt.IsZero() {
		article.ExtractedAt = s.Now()
	}
	article.ExtractedAt = article.ExtractedAt.UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO articles (`+articleColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, article.ID, article.SourceURL, string(article.Engine), article.Title, article.ContentHTML,
		article.TextContent, article.ContentHash, formatTime(article.ExtractedAt))

	return err
}

// FindArticleByID retrieves an article by ID.
func (s *ArticleService) FindArticleByID(ctx context.Context, id string) (*readmode.StoredArticle, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+articleColumns+" FROM articles WHERE id = ?", id)

	article, err := scanArticle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, readmode.Errorf(readmode.ENOTFOUND, "article not found")
	}
	if err != nil {
		return nil, err
	}
	return article, nil
}

// FindArticles retrieves articles matching the filter, most recently
// extracted first.
func (s *ArticleService) FindArticles(ctx context.Context, filter readmode.ArticleFilter) ([]*readmode.StoredArticle, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + articleColumns + " FROM articles WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}
	if filter.Engine != nil {
		query.WriteString(" AND engine = ?")
		args = append(args, string(*filter.Engine))
	}

	query.WriteString(" ORDER BY extracted_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []*readmode.StoredArticle
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}

	return articles, rows.Err()
}

// DeleteArticle permanently removes an article.
func (s *ArticleService) DeleteArticle(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM articles WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return readmode.Errorf(readmode.ENOTFOUND, "article not found")
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanArticle(row scanner) (*readmode.StoredArticle, error) {
	var article readmode.StoredArticle
	var engine, extractedAt string

	if err := row.Scan(&article.ID, &article.SourceURL, &engine, &article.Title,
		&article.ContentHTML, &article.TextContent, &article.ContentHash, &extractedAt); err != nil {
		return nil, err
	}
	article.Engine = readmode.Engine(engine)

	var err error
	article.ExtractedAt, err = parseRFC3339(extractedAt, "extracted_at")
	if err != nil {
		return nil, err
	}

	return &article, nil
}
