package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"caiary/config"

	"github.com/google/uuid"
)

// Upload 待保存的图片
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// ImageStore 日记图片存储
type ImageStore interface {
	// Save 保存图片并返回对象 key
	Save(ctx context.Context, img Upload) (string, error)
	// Delete 删除对象，对象不存在时不报错
	Delete(ctx context.Context, key string) error
	// URL 对象的访问地址，可能是以 / 开头的相对路径
	URL(key string) string
}

var allowedExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".heic": "image/heic",
}

// ErrUnsupportedImage 不支持的图片格式
var ErrUnsupportedImage = errors.New("不支持的图片格式")

// NewObjectKey 生成对象 key，形如 articles/2024/05/<uuid>.jpg
func NewObjectKey(filename string, now time.Time) (string, error) {
	ext := strings.ToLower(path.Ext(filename))
	if _, ok := allowedExt[ext]; !ok {
		return "", ErrUnsupportedImage
	}
	return fmt.Sprintf("articles/%s/%s%s", now.UTC().Format("2006/01"), uuid.NewString(), ext), nil
}

func contentTypeOf(img Upload, key string) string {
	if img.ContentType != "" && img.ContentType != "application/octet-stream" {
		return img.ContentType
	}
	return allowedExt[path.Ext(key)]
}

// New 按配置创建图片存储
func New(ctx context.Context, conf config.StorageConfig) (ImageStore, error) {
	switch conf.Driver {
	case "", "local":
		return NewLocalStore(conf.Local.Dir, conf.Local.URLPrefix)
	case "minio":
		return NewMinioStore(ctx, conf.Minio)
	default:
		return nil, fmt.Errorf("未知的存储驱动: %s", conf.Driver)
	}
}
