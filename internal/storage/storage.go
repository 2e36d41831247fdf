// Package storage provides the object-store adapter for property images
// and agent avatars, backed by MinIO (or any S3-compatible endpoint).
package storage

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/Kento03Onodera/pick-re-crm/platform/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// PresignedURLTTL is the expiration time for presigned URLs.
const PresignedURLTTL = 15 * time.Minute

var allowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
}

// PresignedURL is a time-limited URL plus the key the object will live at.
type PresignedURL struct {
	URL       string
	FileKey   string
	ExpiresAt time.Time
}

// Service wraps the MinIO client with the two buckets this system uses.
type Service struct {
	client         *minio.Client
	propertyImages string
	agentAvatars   string
	maxFileSize    int64
}

// New creates the storage service. Returns an error when MinIO is not
// configured; callers treat a nil service as "uploads disabled".
func New(cfg config.MinIOConfig) (*Service, error) {
	if !cfg.IsMinIOEnabled() {
		return nil, fmt.Errorf("object storage is not configured")
	}

	client, err := minio.New(cfg.GetMinIOEndpoint(), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.GetMinIOAccessKey(), cfg.GetMinIOSecretKey(), ""),
		Secure: cfg.GetMinIOUseSSL(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &Service{
		client:         client,
		propertyImages: cfg.GetMinioBucketPropertyImages(),
		agentAvatars:   cfg.GetMinioBucketAgentAvatars(),
		maxFileSize:    cfg.GetMinIOMaxFileSize(),
	}, nil
}

// EnsureBuckets creates the buckets on startup if they do not exist.
func (s *Service) EnsureBuckets(ctx context.Context) error {
	for _, bucket := range []string{s.propertyImages, s.agentAvatars} {
		exists, err := s.client.BucketExists(ctx, bucket)
		if err != nil {
			return fmt.Errorf("failed to check bucket %s: %w", bucket, err)
		}
		if !exists {
			if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}
	}
	return nil
}

// PropertyImageUploadURL returns a presigned PUT URL for a listing image.
func (s *Service) PropertyImageUploadURL(ctx context.Context, propertyID, fileName, contentType string, sizeBytes int64) (*PresignedURL, error) {
	return s.uploadURL(ctx, s.propertyImages, propertyID, fileName, contentType, sizeBytes)
}

// AgentAvatarUploadURL returns a presigned PUT URL for a profile image.
func (s *Service) AgentAvatarUploadURL(ctx context.Context, agentID, fileName, contentType string, sizeBytes int64) (*PresignedURL, error) {
	return s.uploadURL(ctx, s.agentAvatars, agentID, fileName, contentType, sizeBytes)
}

func (s *Service) uploadURL(ctx context.Context, bucket, folder, fileName, contentType string, sizeBytes int64) (*PresignedURL, error) {
	if _, ok := allowedImageTypes[contentType]; !ok {
		return nil, fmt.Errorf("unsupported content type %q", contentType)
	}
	if sizeBytes <= 0 || sizeBytes > s.maxFileSize {
		return nil, fmt.Errorf("file size %d out of range (max %d)", sizeBytes, s.maxFileSize)
	}

	// Unique key prevents overwrites when the same file name is uploaded twice.
	ext := path.Ext(fileName)
	baseName := strings.TrimSuffix(fileName, ext)
	uniqueFileName := fmt.Sprintf("%s_%s%s", baseName, uuid.New().String()[:8], ext)
	fileKey := filepath.ToSlash(filepath.Join(folder, uniqueFileName))

	expiresAt := time.Now().Add(PresignedURLTTL)
	presignedURL, err := s.client.PresignedPutObject(ctx, bucket, fileKey, PresignedURLTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate upload URL: %w", err)
	}

	return &PresignedURL{
		URL:       presignedURL.String(),
		FileKey:   fileKey,
		ExpiresAt: expiresAt,
	}, nil
}
