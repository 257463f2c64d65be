package storage

import (
	"context"
	"fmt"
	"io"

	awscfg "github.com/aws/aws-sdk-go-v2/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// 入金スクリーンショットをS3に置いて公開URLを返す。
// アプリ側はURLを不透明な文字列として扱う。
type S3EvidenceStore struct {
	uploader *manager.Uploader
	bucket   string
}

func NewS3EvidenceStore(ctx context.Context, bucket string) (*S3EvidenceStore, error) {
	cfg, err := awscfg.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return &S3EvidenceStore{
		uploader: manager.NewUploader(client),
		bucket:   bucket,
	}, nil
}

func (s *S3EvidenceStore) Upload(ctx context.Context, key string, contentType string, body io.Reader) (string, error) {
	result, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ACL:         "public-read",
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}
	return result.Location, nil
}
