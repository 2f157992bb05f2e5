package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/youruser/creativestudio/internal/util"
)

var ErrInvalidKey = errors.New("export: invalid key")

// Sink receives finished creatives. Write stores data under key and returns
// the key it was actually stored under.
type Sink interface {
	Write(ctx context.Context, key string, data []byte) (string, error)
}

// FileStore writes exported creatives below a local directory, one
// sub-directory per batch.
type FileStore struct {
	dir string
}

// NewFileStore creates dir if needed.
func NewFileStore(dir string) (*FileStore, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("export: export directory is required")
	}
	if err := util.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("export: create %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// BasePath is the export directory.
func (s *FileStore) BasePath() string {
	if s == nil {
		return ""
	}
	return s.dir
}

func (s *FileStore) Write(ctx context.Context, key string, data []byte) (string, error) {
	if s == nil {
		return "", errors.New("export: file store is nil")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	k, err := exportKey(key)
	if err != nil {
		return "", err
	}
	dst := filepath.Join(s.dir, filepath.FromSlash(k))
	if err := util.EnsureDir(filepath.Dir(dst)); err != nil {
		return "", fmt.Errorf("export: create batch dir: %w", err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return "", fmt.Errorf("export: write %s: %w", k, err)
	}
	return k, nil
}

// exportKey turns "batch/tesco_001_x.jpg"-style keys into a slash-separated
// path relative to the sink root. Keys that resolve outside the root are
// rejected.
func exportKey(key string) (string, error) {
	k := strings.ReplaceAll(strings.TrimSpace(key), "\\", "/")
	k = path.Clean(strings.TrimLeft(k, "/"))
	if k == "." || k == ".." || strings.HasPrefix(k, "../") {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return k, nil
}
