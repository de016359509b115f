package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fwojciec/readmode"
)

// Ensure FileStore implements readmode.ArticleWriter at compile time.
var _ readmode.ArticleWriter = (*FileStore)(nil)

// FileStore writes a batch of articles with atomic update semantics.
// Articles are saved to a temporary directory, then moved atomically on
// Commit, so an interrupted batch never leaves a half-written output
// directory behind.
type FileStore struct {
	baseDir string
	name    string
	writer  *Writer
}

// NewFileStore creates a new FileStore.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewFileStore(baseDir, name string, conv readmode.Converter) *FileStore {
	s := &FileStore{
		baseDir: baseDir,
		name:    name,
	}
	s.writer = NewWriter(s.tempDir(), conv)
	return s
}

func (s *FileStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *FileStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// CreateArticle writes the article into the temporary directory.
func (s *FileStore) CreateArticle(ctx context.Context, article *readmode.StoredArticle) error {
	return s.writer.CreateArticle(ctx, article)
}

// Commit replaces the output directory with the temporary one. A batch
// that saved nothing commits an empty directory.
func (s *FileStore) Commit() error {
	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards everything written since the store was created.
func (s *FileStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}
