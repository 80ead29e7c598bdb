// Package storage persists uploaded cover images on the local filesystem and
// serves them back under the /uploads URL prefix.
package storage

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"inkwell/internal/common"
	"inkwell/internal/platform/config"
)

var allowedImageExts = map[string]struct{}{
	".jpeg": {},
	".jpg":  {},
	".png":  {},
	".gif":  {},
}

type LocalStore struct {
	dir      string
	maxBytes int64
}

func NewLocalStore(cfg *config.Config) (*LocalStore, error) {
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %q: %w", cfg.UploadDir, err)
	}
	return &LocalStore{dir: cfg.UploadDir, maxBytes: cfg.MaxUploadBytes}, nil
}

// Dir is the filesystem root the static file server mounts.
func (s *LocalStore) Dir() string {
	return s.dir
}

// Save writes an uploaded image to disk and returns its public URL path.
func (s *LocalStore) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	if header.Size > s.maxBytes {
		return "", fmt.Errorf("file exceeds the %d byte limit: %w", s.maxBytes, common.ErrValidation)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if _, ok := allowedImageExts[ext]; !ok {
		return "", fmt.Errorf("only jpeg, jpg, png and gif files are accepted: %w", common.ErrValidation)
	}
	if ct := header.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		return "", fmt.Errorf("only image uploads are accepted: %w", common.ErrValidation)
	}

	name := fmt.Sprintf("coverImage-%d-%s%s", time.Now().UnixNano(), randomSuffix(), ext)
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(file, s.maxBytes)); err != nil {
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}
	return "/uploads/" + name, nil
}

func randomSuffix() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "00000000"
	}
	return hex.EncodeToString(b)
}
