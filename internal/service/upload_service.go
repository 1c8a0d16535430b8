package service

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/sefazor/workshops-backend/internal/models"
	"github.com/sefazor/workshops-backend/pkg/storage"
	"go.uber.org/zap"
)

const uploadPrefix = "workshops"

// UploadService puts workshop documents into the object store and hands
// back the public URL the client embeds in workshop link fields.
type UploadService struct {
	storage storage.StorageService
	maxSize int64
	logger  *zap.Logger
}

func NewUploadService(storage storage.StorageService, maxSize int64, logger *zap.Logger) *UploadService {
	return &UploadService{
		storage: storage,
		maxSize: maxSize,
		logger:  logger,
	}
}

func (s *UploadService) Upload(ctx context.Context, user *models.User, filename, contentType string, size int64, src io.Reader) (string, error) {
	if size <= 0 {
		return "", newError(ErrBadRequest, "File is empty")
	}
	if s.maxSize > 0 && size > s.maxSize {
		return "", newError(ErrBadRequest, "File is too large")
	}

	key := objectKey(user.Username, filename)
	if err := s.storage.Upload(ctx, key, src, size, contentType); err != nil {
		s.logger.Error("upload failed", zap.String("key", key), zap.Error(err))
		return "", serverError("Failed to upload file", err)
	}

	s.logger.Info("file uploaded", zap.String("key", key), zap.String("username", user.Username), zap.Int64("size", size))
	return s.storage.PublicURL(key), nil
}

func objectKey(username, filename string) string {
	ext := keySegment(strings.ToLower(path.Ext(path.Base(filename))))
	return path.Join(uploadPrefix, keySegment(username), uuid.NewString()+ext)
}

// keySegment maps anything outside [A-Za-z0-9._-] to '_' so the value stays
// a single, URL-safe key segment.
func keySegment(s string) string {
	seg := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			return r
		}
		return '_'
	}, s)
	if seg != "" && strings.Trim(seg, ".") == "" {
		return strings.Repeat("_", len(seg))
	}
	return seg
}
