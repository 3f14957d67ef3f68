package media

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore serves images from a directory on disk.
type LocalStore struct {
	basePath string
	baseURL  string
	logger   *slog.Logger
}

// NewLocalStore creates a store rooted at basePath whose files are served
// under baseURL (usually "/media"). The directory must already exist.
func NewLocalStore(basePath, baseURL string, logger *slog.Logger) (*LocalStore, error) {
	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve media path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("media directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("media path %s is not a directory", absPath)
	}

	logger.Info("initialized local media", "base_path", absPath, "base_url", baseURL)

	return &LocalStore{
		basePath: absPath,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		logger:   logger,
	}, nil
}

// URL returns the public URL of object.
func (s *LocalStore) URL(ctx context.Context, object string) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	if _, err := s.resolvePath(object); err != nil {
		return "", &StoreError{Op: "URL", Key: object, Err: err}
	}
	return s.baseURL + "/" + object, nil
}

// Exists reports whether object is a regular file under the base path.
func (s *LocalStore) Exists(ctx context.Context, object string) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	filePath, err := s.resolvePath(object)
	if err != nil {
		return false, &StoreError{Op: "Exists", Key: object, Err: err}
	}

	info, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, &StoreError{Op: "Exists", Key: object, Err: fmt.Errorf("failed to stat file: %w", err)}
	}
	return !info.IsDir(), nil
}

// Handler serves the media directory. Mount it with http.StripPrefix.
func (s *LocalStore) Handler() http.Handler {
	return http.FileServer(http.Dir(s.basePath))
}

// resolvePath maps an object key to a path inside basePath, rejecting
// keys that would escape it.
func (s *LocalStore) resolvePath(object string) (string, error) {
	if object == "" {
		return "", ErrInvalidKey
	}

	cleanKey := filepath.Clean(object)
	if strings.Contains(cleanKey, "..") || filepath.IsAbs(cleanKey) {
		return "", ErrInvalidKey
	}

	absPath := filepath.Join(s.basePath, cleanKey)
	if !strings.HasPrefix(absPath, s.basePath+string(filepath.Separator)) {
		return "", ErrInvalidKey
	}
	return absPath, nil
}
