package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"caiary/config"
	"caiary/packages/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// MinioStore MinIO / S3 兼容对象存储
type MinioStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewMinioStore 创建 MinIO 客户端，存储桶不存在时自动创建
func NewMinioStore(ctx context.Context, conf config.MinioStorageConfig) (*MinioStore, error) {
	client, err := minio.New(conf.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(conf.AccessKey, conf.SecretKey, ""),
		Secure: conf.UseSSL,
		Region: conf.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("创建 MinIO 客户端失败: %w", err)
	}

	exists, err := client.BucketExists(ctx, conf.Bucket)
	if err != nil {
		return nil, fmt.Errorf("检查存储桶是否存在失败: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, conf.Bucket, minio.MakeBucketOptions{Region: conf.Region}); err != nil {
			return nil, fmt.Errorf("创建存储桶失败: %w", err)
		}
		logger.L().Info("已创建存储桶", zap.String("bucket", conf.Bucket))
	}

	publicURL := conf.PublicURL
	if publicURL == "" {
		scheme := "http"
		if conf.UseSSL {
			scheme = "https"
		}
		publicURL = fmt.Sprintf("%s://%s/%s", scheme, conf.Endpoint, conf.Bucket)
	}

	return &MinioStore{
		client:    client,
		bucket:    conf.Bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

func (s *MinioStore) Save(ctx context.Context, img Upload) (string, error) {
	key, err := NewObjectKey(img.Filename, time.Now())
	if err != nil {
		return "", err
	}

	size := img.Size
	if size <= 0 {
		size = -1
	}
	_, err = s.client.PutObject(ctx, s.bucket, key, img.Reader, size, minio.PutObjectOptions{
		ContentType: contentTypeOf(img, key),
	})
	if err != nil {
		return "", fmt.Errorf("上传图片失败: %w", err)
	}
	return key, nil
}

func (s *MinioStore) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("删除图片失败: %w", err)
	}
	return nil
}

func (s *MinioStore) URL(key string) string {
	return s.publicURL + "/" + key
}
