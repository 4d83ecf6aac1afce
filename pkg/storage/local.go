package storage

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// LocalStore writes blobs below a directory that is also served over HTTP.
type LocalStore struct {
	fs           afero.Fs
	publicPrefix string
	log          *zap.Logger
}

func NewLocalStore(dir, publicPrefix string, log *zap.Logger) *LocalStore {
	return NewLocalStoreFs(afero.NewBasePathFs(afero.NewOsFs(), dir), publicPrefix, log)
}

// NewLocalStoreFs is NewLocalStore on an arbitrary filesystem.
func NewLocalStoreFs(fs afero.Fs, publicPrefix string, log *zap.Logger) *LocalStore {
	return &LocalStore{
		fs:           fs,
		publicPrefix: publicPrefix,
		log:          log.With(zap.String("storage", "local")),
	}
}

func (s *LocalStore) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	key, err := CleanKey(key)
	if err != nil {
		return "", err
	}

	name := "/" + key
	if err := s.fs.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return "", fmt.Errorf("create directory for %s: %w", key, err)
	}
	if err := afero.WriteFile(s.fs, name, data, 0o644); err != nil {
		s.log.Error("failed to write blob", zap.String("key", key), zap.Error(err))
		return "", fmt.Errorf("write %s: %w", key, err)
	}

	return s.publicPrefix + "/" + key, nil
}

func (s *LocalStore) Delete(ctx context.Context, key string) error {
	key, err := CleanKey(key)
	if err != nil {
		return err
	}
	name := "/" + key
	if err := s.fs.Remove(name); err != nil {
		exists, _ := afero.Exists(s.fs, name)
		if !exists {
			return nil
		}
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *LocalStore) DeletePrefix(ctx context.Context, prefix string) error {
	prefix, err := CleanKey(prefix)
	if err != nil {
		return err
	}
	if err := s.fs.RemoveAll("/" + prefix); err != nil {
		return fmt.Errorf("delete %s: %w", prefix, err)
	}
	return nil
}

// Handler serves stored files read-only; mount it with http.StripPrefix.
// Directories answer 404 so stored keys cannot be listed.
func (s *LocalStore) Handler() http.Handler {
	files := http.FileServer(afero.NewHttpFs(afero.NewReadOnlyFs(s.fs)).Dir("/"))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info, err := s.fs.Stat(path.Clean("/" + r.URL.Path))
		if err != nil || info.IsDir() {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}
