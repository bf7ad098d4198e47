// Package storage keeps uploaded images and bills, on local disk or in an
// S3-compatible bucket.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/eyedist/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Upload folders
const (
	FolderProducts = "products"
	FolderBills    = "bills"
)

var (
	ErrUnsupportedType = shared.NewDomainError("UNSUPPORTED_FILE_TYPE", "File type is not allowed")
	ErrFileTooLarge    = shared.NewDomainError("FILE_TOO_LARGE", "File exceeds the upload size limit")
	ErrEmptyFile       = shared.NewDomainError("EMPTY_FILE", "File is empty")
)

var extensions = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
}

// allowed lists the content types accepted per folder
var allowed = map[string][]string{
	FolderProducts: {"image/jpeg", "image/png", "image/webp"},
	FolderBills:    {"image/jpeg", "image/png", "image/webp", "application/pdf"},
}

// ObjectStorage stores files under a relative path such as
// "uploads/products/<uuid>.jpg". That path is what the database keeps.
type ObjectStorage interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	// URL returns where a client can fetch the stored file
	URL(ctx context.Context, key string) (string, error)
}

// Uploader validates incoming files and hands them to an ObjectStorage
type Uploader struct {
	store   ObjectStorage
	maxSize int64
	logger  *zap.Logger
}

func NewUploader(store ObjectStorage, maxSize int64, logger *zap.Logger) *Uploader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Uploader{store: store, maxSize: maxSize, logger: logger}
}

// Save sniffs the content type, checks it against folder and stores the
// file under a fresh name. It returns the relative path.
func (u *Uploader) Save(ctx context.Context, folder string, r io.Reader, size int64) (string, error) {
	if size == 0 {
		return "", ErrEmptyFile
	}
	if u.maxSize > 0 && size > u.maxSize {
		return "", ErrFileTooLarge
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if n == 0 {
		return "", ErrEmptyFile
	}
	head = head[:n]

	ctype := DetectContentType(head)
	if !isAllowed(folder, ctype) {
		return "", ErrUnsupportedType
	}

	key := path.Join("uploads", folder, uuid.NewString()+extensions[ctype])
	body := io.MultiReader(bytes.NewReader(head), r)
	if err := u.store.Put(ctx, key, body, size, ctype); err != nil {
		return "", err
	}
	u.logger.Debug("Stored upload", zap.String("key", key), zap.String("content_type", ctype), zap.Int64("size", size))
	return key, nil
}

// Remove deletes a previously stored file; an empty key is a no-op
func (u *Uploader) Remove(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	return u.store.Delete(ctx, key)
}

// URL resolves a stored path for clients; an empty key stays empty
func (u *Uploader) URL(ctx context.Context, key string) string {
	if key == "" {
		return ""
	}
	url, err := u.store.URL(ctx, key)
	if err != nil {
		u.logger.Warn("Failed to resolve upload URL", zap.String("key", key), zap.Error(err))
		return ""
	}
	return url
}

// DetectContentType sniffs the first bytes of a file
func DetectContentType(head []byte) string {
	ctype := http.DetectContentType(head)
	if i := strings.IndexByte(ctype, ';'); i >= 0 {
		ctype = ctype[:i]
	}
	return ctype
}

func isAllowed(folder, ctype string) bool {
	for _, t := range allowed[folder] {
		if t == ctype {
			return true
		}
	}
	return false
}

// validKey rejects keys that would escape the uploads tree
func validKey(key string) error {
	clean := path.Clean(key)
	if key == "" || clean != key || !strings.HasPrefix(clean, "uploads/") || strings.Contains(clean, "..") {
		return fmt.Errorf("invalid storage key %q", key)
	}
	return nil
}

// New builds the backend selected by cfg.Driver
func New(ctx context.Context, cfg *config.StorageConfig, logger *zap.Logger) (ObjectStorage, error) {
	switch cfg.Driver {
	case "s3":
		s, err := NewS3ObjectStorage(cfg, WithLogger(logger))
		if err != nil {
			return nil, err
		}
		if err := s.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return s, nil
	case "local", "":
		return NewLocalStorage(cfg.LocalDir, cfg.PublicPrefix)
	}
	return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
}
