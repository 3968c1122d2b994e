package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LocalStore 本地磁盘存储，由 gin 静态路由对外提供访问
type LocalStore struct {
	dir       string
	urlPrefix string
}

func NewLocalStore(dir, urlPrefix string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("创建图片目录失败: %w", err)
	}
	return &LocalStore{
		dir:       dir,
		urlPrefix: strings.TrimRight(urlPrefix, "/"),
	}, nil
}

// Dir 图片根目录
func (s *LocalStore) Dir() string {
	return s.dir
}

// URLPrefix 静态路由前缀
func (s *LocalStore) URLPrefix() string {
	return s.urlPrefix
}

func (s *LocalStore) Save(ctx context.Context, img Upload) (string, error) {
	key, err := NewObjectKey(img.Filename, time.Now())
	if err != nil {
		return "", err
	}

	dst := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", fmt.Errorf("创建图片目录失败: %w", err)
	}

	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("创建图片文件失败: %w", err)
	}
	if _, err := io.Copy(f, img.Reader); err != nil {
		f.Close()
		os.Remove(dst)
		return "", fmt.Errorf("写入图片失败: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("写入图片失败: %w", err)
	}

	return key, nil
}

func (s *LocalStore) Delete(ctx context.Context, key string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.FromSlash(key)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("删除图片失败: %w", err)
	}
	return nil
}

func (s *LocalStore) URL(key string) string {
	return s.urlPrefix + "/" + key
}
