package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage writes files below root. A key "uploads/products/a.jpg"
// lands at root/products/a.jpg and is served at prefix/products/a.jpg.
type LocalStorage struct {
	root   string
	prefix string
}

func NewLocalStorage(root, prefix string) (*LocalStorage, error) {
	if root == "" {
		root = "uploads"
	}
	if prefix == "" {
		prefix = "/uploads"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStorage{root: root, prefix: strings.TrimRight(prefix, "/")}, nil
}

// Root is the directory the HTTP layer serves under the public prefix
func (s *LocalStorage) Root() string { return s.root }

func (s *LocalStorage) file(key string) (string, error) {
	if err := validKey(key); err != nil {
		return "", err
	}
	return filepath.Join(s.root, filepath.FromSlash(strings.TrimPrefix(key, "uploads/"))), nil
}

func (s *LocalStorage) Put(_ context.Context, key string, body io.Reader, size int64, _ string) error {
	name, err := s.file(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(name), ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create upload file: %w", err)
	}
	defer os.Remove(tmp.Name())

	written, err := io.Copy(tmp, io.LimitReader(body, size+1))
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to write upload: %w", err)
	}
	if written > size {
		return ErrFileTooLarge
	}
	return os.Rename(tmp.Name(), name)
}

func (s *LocalStorage) Delete(_ context.Context, key string) error {
	name, err := s.file(key)
	if err != nil {
		return err
	}
	if err := os.Remove(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete upload: %w", err)
	}
	return nil
}

func (s *LocalStorage) URL(_ context.Context, key string) (string, error) {
	if err := validKey(key); err != nil {
		return "", err
	}
	return s.prefix + "/" + strings.TrimPrefix(key, "uploads/"), nil
}

var _ ObjectStorage = (*LocalStorage)(nil)
