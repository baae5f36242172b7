package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MockStorageService implements image storage on the local filesystem. It
// stands in for S3-style object storage in development and tests.
type MockStorageService struct {
	baseURL   string // public server URL, e.g. "http://localhost:5050"
	uploadDir string
}

func NewMockStorageService(baseURL, uploadDir string) (*MockStorageService, error) {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &MockStorageService{
		baseURL:   baseURL,
		uploadDir: uploadDir,
	}, nil
}

// GeneratePresignedUploadURL returns a mock presigned URL pointing back at
// the server's upload endpoint. The key travels in a query parameter so the
// upload handler knows where to save.
func (m *MockStorageService) GeneratePresignedUploadURL(ctx context.Context, key string, contentType string, expiresIn time.Duration) (string, error) {
	uploadToken := uuid.New().String()
	return fmt.Sprintf("%s/api/uploads/%s?key=%s", m.baseURL, uploadToken, key), nil
}

func (m *MockStorageService) GeneratePresignedDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error) {
	return fmt.Sprintf("%s/api/images?key=%s", m.baseURL, key), nil
}

func (m *MockStorageService) FileExists(ctx context.Context, key string) (bool, int64, error) {
	info, err := os.Stat(m.path(key))
	if os.IsNotExist(err) {
		return false, 0, nil
	}
	if err != nil {
		return false, 0, err
	}
	return true, info.Size(), nil
}

func (m *MockStorageService) DeleteFile(ctx context.Context, key string) error {
	err := os.Remove(m.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (m *MockStorageService) SaveFile(key string, reader io.Reader) error {
	path := m.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(f, reader)
	return err
}

func (m *MockStorageService) ReadFile(key string) (io.ReadCloser, error) {
	return os.Open(m.path(key))
}

// path sanitizes the key so uploads cannot escape the upload directory.
func (m *MockStorageService) path(key string) string {
	clean := filepath.Clean("/" + strings.ReplaceAll(key, "..", ""))
	return filepath.Join(m.uploadDir, clean)
}
