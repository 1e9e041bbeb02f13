package infra

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// PhotoStorage persists raw upload bytes and returns the public URL to record
// on the photo row. A failure here is fatal for the enclosing registration.
type PhotoStorage interface {
	Save(ctx context.Context, filename string, data []byte) (string, error)
}

// LocalPhotoStorage writes uploads to a local directory served as /uploads.
type LocalPhotoStorage struct {
	dir     string
	baseURL string
}

func NewLocalPhotoStorage() *LocalPhotoStorage {
	dir := os.Getenv("UPLOAD_DIR")
	if dir == "" {
		dir = "public/uploads"
	}
	return &LocalPhotoStorage{dir: dir, baseURL: "/uploads"}
}

func (s *LocalPhotoStorage) Save(ctx context.Context, filename string, data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}
	name := uuid.New().String() + ext

	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", err
	}
	return s.baseURL + "/" + name, nil
}
