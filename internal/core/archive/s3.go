package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"

	"recipe-master/internal/core/export"
	"recipe-master/internal/infrastructure/config"
	"recipe-master/internal/pkg/common"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// PutObjectAPI S3 上傳所需的最小介面
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Archiver 將匯出檔上傳到 S3，路徑為 <prefix>/<id>/<filename>
type S3Archiver struct {
	client PutObjectAPI
	bucket string
	prefix string
}

// NewS3Archiver 以預設憑證鏈建立 S3 客戶端
func NewS3Archiver(ctx context.Context, cfg config.ArchiveConfig) (*S3Archiver, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("archive bucket is required")
	}

	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return NewWithClient(s3.NewFromConfig(awsCfg), cfg.Bucket, cfg.Prefix), nil
}

// NewWithClient 使用指定的客戶端
func NewWithClient(client PutObjectAPI, bucket, prefix string) *S3Archiver {
	return &S3Archiver{client: client, bucket: bucket, prefix: prefix}
}

// Key 物件路徑
func (a *S3Archiver) Key(id, filename string) string {
	return path.Join(a.prefix, id, filename)
}

// Archive 上傳所有匯出檔，個別失敗會合併回傳，不中斷其他上傳
func (a *S3Archiver) Archive(ctx context.Context, id string, artifacts []*export.Artifact) error {
	var errs []error
	for _, artifact := range artifacts {
		if artifact == nil {
			continue
		}
		key := a.Key(id, artifact.Filename)
		_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(a.bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(artifact.Data),
			ContentType: aws.String(artifact.MIMEType),
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("upload %s: %w", key, err))
			continue
		}
		common.LogDebug("匯出檔已歸檔",
			zap.String("bucket", a.bucket),
			zap.String("key", key),
		)
	}
	return errors.Join(errs...)
}
