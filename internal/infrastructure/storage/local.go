package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/narwhalmedia/splice/internal/domain/catalog"
)

// LocalStorage keeps media blobs under a directory on disk
type LocalStorage struct {
	basePath string
	logger   *zap.Logger
}

// NewLocalStorage creates the base directory if needed
func NewLocalStorage(basePath string, logger *zap.Logger) (*LocalStorage, error) {
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base path: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create base path: %w", err)
	}

	return &LocalStorage{
		basePath: abs,
		logger:   logger.Named("local-storage"),
	}, nil
}

// path keeps keys inside basePath
func (s *LocalStorage) path(key string) string {
	return filepath.Join(s.basePath, filepath.Clean("/"+key))
}

func (s *LocalStorage) Store(ctx context.Context, key string, reader io.Reader) error {
	path := s.path(key)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	// write to a sibling temp file so readers never see a partial blob
	tmp, err := os.CreateTemp(filepath.Dir(path), ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, &ctxReader{ctx: ctx, r: reader}); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move file into place: %w", err)
	}

	s.logger.Debug("stored blob", zap.String("key", key))
	return nil
}

func (s *LocalStorage) Retrieve(ctx context.Context, key string) (io.ReadCloser, error) {
	file, err := os.Open(s.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, catalog.ErrStorageKeyNotFound
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	if err := os.Remove(s.path(key)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return catalog.ErrStorageKeyNotFound
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

func (s *LocalStorage) Exists(ctx context.Context, key string) (bool, error) {
	_, err := os.Stat(s.path(key))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func (s *LocalStorage) GetURL(ctx context.Context, key string) (string, error) {
	if exists, err := s.Exists(ctx, key); err != nil {
		return "", err
	} else if !exists {
		return "", catalog.ErrStorageKeyNotFound
	}

	return "file://" + filepath.ToSlash(s.path(key)), nil
}

// ctxReader stops a copy once the context is done
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (r *ctxReader) Read(p []byte) (int, error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}
