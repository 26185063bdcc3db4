package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"recruiting-portal-backend/internal/domain"
	"recruiting-portal-backend/internal/logger"
	"recruiting-portal-backend/internal/repository"
	"recruiting-portal-backend/internal/storage"

	"github.com/google/uuid"
)

const (
	uploadURLExpiry   = 15 * time.Minute
	downloadURLExpiry = 7 * 24 * time.Hour
)

var defaultResumeTypes = map[string]string{
	"application/pdf":    ".pdf",
	"application/msword": ".doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
}

type resumeService struct {
	userRepo     repository.UserRepository
	store        storage.ObjectStore
	maxSizeBytes int64
	allowed      map[string]string // content type -> extension
}

// NewResumeService restricts uploads to allowedTypes when given, otherwise to
// PDF and Word documents.
func NewResumeService(userRepo repository.UserRepository, store storage.ObjectStore, maxSizeMB int64, allowedTypes []string) ResumeService {
	allowed := defaultResumeTypes
	if len(allowedTypes) > 0 {
		allowed = make(map[string]string, len(allowedTypes))
		for _, t := range allowedTypes {
			if ext, ok := defaultResumeTypes[t]; ok {
				allowed[t] = ext
			}
		}
	}
	return &resumeService{
		userRepo:     userRepo,
		store:        store,
		maxSizeBytes: maxSizeMB * 1024 * 1024,
		allowed:      allowed,
	}
}

func resumePrefix(userID int32) string {
	return fmt.Sprintf("resumes/%d/", userID)
}

func (s *resumeService) GetUploadURL(ctx context.Context, caller domain.Caller, filename, contentType string) (string, string, time.Time, error) {
	ext, ok := s.allowed[contentType]
	if !ok {
		return "", "", time.Time{}, fmt.Errorf("unsupported content type %q: %w", contentType, domain.ErrInvalidArgument)
	}
	if given := strings.ToLower(filepath.Ext(filename)); given != "" && given != ext {
		return "", "", time.Time{}, fmt.Errorf("file extension %q does not match %s: %w", given, contentType, domain.ErrInvalidArgument)
	}

	key := resumePrefix(caller.UserID) + uuid.New().String() + ext
	url, err := s.store.GeneratePresignedUploadURL(ctx, key, contentType, uploadURLExpiry)
	if err != nil {
		return "", "", time.Time{}, err
	}
	return url, key, time.Now().Add(uploadURLExpiry), nil
}

// ConfirmUpload records an uploaded object as the caller's resume and removes
// the previous one.
func (s *resumeService) ConfirmUpload(ctx context.Context, caller domain.Caller, key string) (*domain.User, error) {
	logger.EnterMethod("resumeService.ConfirmUpload", "userID", caller.UserID, "key", key)
	if !strings.HasPrefix(key, resumePrefix(caller.UserID)) {
		return nil, domain.ErrForbidden
	}
	exists, size, err := s.store.FileExists(ctx, key)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}
	if s.maxSizeBytes > 0 && size > s.maxSizeBytes {
		if err := s.store.DeleteFile(ctx, key); err != nil {
			logger.Warn("Failed to delete oversized resume", "key", key, "error", err)
		}
		return nil, fmt.Errorf("resume is %d bytes: %w", size, domain.ErrInvalidArgument)
	}

	user, err := s.userRepo.GetByID(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	previous := user.ResumeKey

	url, err := s.store.GeneratePresignedDownloadURL(ctx, key, downloadURLExpiry)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.UpdateResume(ctx, caller.UserID, url, key); err != nil {
		logger.ExitMethodWithError("resumeService.ConfirmUpload", err)
		return nil, err
	}
	user.ResumeURL, user.ResumeKey = url, key

	if previous != "" && previous != key {
		if err := s.store.DeleteFile(ctx, previous); err != nil {
			logger.Warn("Failed to delete replaced resume", "key", previous, "error", err)
		}
	}
	logger.ExitMethod("resumeService.ConfirmUpload", "userID", caller.UserID)
	return user, nil
}

func (s *resumeService) DeleteResume(ctx context.Context, caller domain.Caller) error {
	user, err := s.userRepo.GetByID(ctx, caller.UserID)
	if err != nil {
		return err
	}
	if user.ResumeKey == "" {
		return domain.ErrNotFound
	}
	if err := s.store.DeleteFile(ctx, user.ResumeKey); err != nil {
		return err
	}
	return s.userRepo.UpdateResume(ctx, caller.UserID, "", "")
}
