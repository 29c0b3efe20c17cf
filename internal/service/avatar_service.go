package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/Dhruv6019/BrivaMart/internal/config"
	"github.com/Dhruv6019/BrivaMart/internal/utils"
)

// MaxAvatarBytes caps avatar uploads at 2 MiB.
const MaxAvatarBytes = 2 << 20

// AvatarService uploads profile avatars to S3 and returns their public URL.
type AvatarService struct {
	client *s3.Client
	bucket string
	region string
}

// NewAvatarService builds the S3 client. Credentials come from the standard
// AWS environment chain. Returns nil when no bucket is configured, which
// disables avatar uploads.
func NewAvatarService(ctx context.Context, cfg *config.S3Config) (*AvatarService, error) {
	if cfg == nil || cfg.Bucket == "" {
		return nil, nil
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &AvatarService{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.Bucket,
		region: cfg.Region,
	}, nil
}

// Enabled reports whether uploads are configured.
func (s *AvatarService) Enabled() bool {
	return s != nil && s.client != nil
}

// Upload stores the avatar under a per-user key and returns its URL.
// Re-uploading overwrites the previous avatar in place.
func (s *AvatarService) Upload(ctx context.Context, userID string, data []byte, contentType string) (string, error) {
	if !s.Enabled() {
		return "", utils.ErrValidation
	}
	if len(data) == 0 || len(data) > MaxAvatarBytes {
		return "", utils.ErrValidation
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := fmt.Sprintf("avatars/%s", userID)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload avatar: %w", err)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}
