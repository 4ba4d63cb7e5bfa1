package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// MediaService stores uploaded files (avatars, course images) in object
// storage and resolves storage paths to presigned URLs for responses.
type MediaService interface {
	// UploadAvatar stores an avatar under the user's prefix and returns the
	// storage path.
	UploadAvatar(ctx context.Context, userID int64, filename, contentType string, body io.Reader) (string, error)
	// URL resolves a storage path to a time-limited GET URL. An empty path
	// resolves to an empty URL.
	URL(ctx context.Context, storagePath string) (string, error)
}

type mediaService struct {
	s3Client      *s3.Client
	presignClient *s3.PresignClient
	bucketName    string
	mediaLogger   zerolog.Logger
}

// NewMediaService creates a new MediaService
func NewMediaService(s3Client *s3.Client, bucketName string, logger zerolog.Logger) MediaService {
	return &mediaService{
		s3Client:      s3Client,
		presignClient: s3.NewPresignClient(s3Client),
		bucketName:    bucketName,
		mediaLogger:   logger.With().Str("service", "MediaService").Logger(),
	}
}

func (s *mediaService) UploadAvatar(ctx context.Context, userID int64, filename, contentType string, body io.Reader) (string, error) {
	storagePath := fmt.Sprintf("avatars/%d/%s", userID, path.Base(filename))
	_, err := s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(storagePath),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		s.mediaLogger.Error().Err(err).Str("path", storagePath).Msg("Failed to upload avatar")
		return "", fmt.Errorf("uploading avatar: %w", err)
	}
	return storagePath, nil
}

func (s *mediaService) URL(ctx context.Context, storagePath string) (string, error) {
	if storagePath == "" {
		return "", nil
	}
	req, err := s.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(storagePath),
	}, s3.WithPresignExpires(1*time.Hour))
	if err != nil {
		return "", fmt.Errorf("presigning %s: %w", storagePath, err)
	}
	return req.URL, nil
}
