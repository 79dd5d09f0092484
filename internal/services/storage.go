package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/Sandeep010-hub/promptcraft-fusion/config"
	"github.com/Sandeep010-hub/promptcraft-fusion/internal/models"
	"github.com/Sandeep010-hub/promptcraft-fusion/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrStorageNotConfigured = errors.New("object storage not configured")
	ErrStorageUpload        = errors.New("failed to upload file to storage")
	ErrOutputUpdate         = errors.New("failed to update prompt with output information")
)

// ObjectStorage stores uploaded outputs and computes their public URLs.
type ObjectStorage interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	PublicURL(key string) string
}

var storageMu sync.RWMutex
var objectStorage ObjectStorage

func SetObjectStorage(s ObjectStorage) {
	storageMu.Lock()
	objectStorage = s
	storageMu.Unlock()
}

func getObjectStorage() ObjectStorage {
	storageMu.RLock()
	defer storageMu.RUnlock()
	return objectStorage
}

// NewObjectStorage builds the driver selected by STORAGE_DRIVER.
func NewObjectStorage(cfg *config.Config) (ObjectStorage, error) {
	switch cfg.StorageDriver {
	case "local", "":
		return NewLocalStorage(cfg.StorageLocalPath, cfg.StorageBucket, cfg.StoragePublicBaseURL)
	case "oss":
		return NewOSSStorage(cfg)
	default:
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q", cfg.StorageDriver)
	}
}

// BuildStorageKey returns {userID}/{promptID}/{unixMillis}-{random}{.ext}.
// The random suffix keeps two uploads in the same millisecond apart.
func BuildStorageKey(userID uint, promptID, filename string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%d/%s/%d-%s%s", userID, promptID, now.UnixMilli(), suffix, ext)
}

// OutputFile is an uploaded file that can be read more than once.
type OutputFile struct {
	Filename    string
	Size        int64
	ContentType string
	Open        func() (io.ReadCloser, error)
}

// UploadOutput stores file for a prompt the caller owns and records its
// public URL and type on the prompt. Nothing is stored for a prompt the caller
// does not own.
func UploadOutput(ctx context.Context, userID uint, promptID string, file OutputFile) (*models.Prompt, error) {
	store := getObjectStorage()
	if store == nil {
		return nil, ErrStorageNotConfigured
	}

	if _, err := GetPrompt(ctx, userID, promptID); err != nil {
		return nil, err
	}

	contentType := file.ContentType
	if contentType == "" {
		contentType = models.DefaultOutputType
	}
	key := BuildStorageKey(userID, promptID, file.Filename, time.Now())

	err := withRetry(ctx, "storage_put", currentStorageTimeout(), func(ctx context.Context) error {
		rc, err := file.Open()
		if err != nil {
			return err
		}
		defer rc.Close()
		return store.Put(ctx, key, rc, file.Size, contentType)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageUpload, err)
	}

	publicURL := store.PublicURL(key)
	logger.Log.Info("output stored",
		zap.Uint("user_id", userID),
		zap.String("prompt_id", promptID),
		zap.String("key", key),
		zap.Int64("size", file.Size),
	)

	prompt, err := AttachOutput(ctx, userID, promptID, publicURL, contentType)
	if err != nil {
		if errors.Is(err, ErrPromptNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrOutputUpdate, err)
	}
	return prompt, nil
}
