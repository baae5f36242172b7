package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"homywork-server/internal/domain"
	"homywork-server/internal/storage"

	"github.com/google/uuid"
)

const uploadURLTTL = 15 * time.Minute

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type imageStorageService struct {
	storage storage.StorageInterface
}

func NewImageStorageService(st storage.StorageInterface) ImageStorageService {
	return &imageStorageService{storage: st}
}

// IssueUploadURL hands the client a short-lived URL to PUT a property image
// to, plus the public URL the stored image will be served from. Keys are
// namespaced per user so hosts cannot collide with each other.
func (s *imageStorageService) IssueUploadURL(ctx context.Context, userID, filename, contentType string) (*UploadTicket, error) {
	ext, ok := allowedImageTypes[strings.ToLower(contentType)]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported content type %q", domain.ErrValidation, contentType)
	}

	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	base = sanitizeFilename(base)
	if base == "" {
		base = "image"
	}

	key := fmt.Sprintf("properties/%s/%s-%s%s", userID, base, uuid.New().String()[:8], ext)

	uploadURL, err := s.storage.GeneratePresignedUploadURL(ctx, key, contentType, uploadURLTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate upload url: %w", err)
	}
	publicURL, err := s.storage.GeneratePresignedDownloadURL(ctx, key, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to generate public url: %w", err)
	}

	return &UploadTicket{
		Key:       key,
		UploadURL: uploadURL,
		PublicURL: publicURL,
	}, nil
}

// sanitizeFilename keeps letters, digits, dashes and underscores.
func sanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	return b.String()
}
