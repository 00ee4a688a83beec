// Package storage 保存申请图片等二进制文件。数据库中只记录存储键。
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"interior-request-server/internal/config"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("文件不存在")

// BlobStore 以存储键读写文件。键使用 "/" 分隔，例如 plans/2026/10/18/<uuid>.png。
type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete 删除不存在的键不视为错误。
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// NewKey 生成按日期分区、uuid 命名的存储键，保留原始扩展名（小写）。
func NewKey(folder, originalName string, now time.Time) string {
	ext := strings.ToLower(path.Ext(strings.ReplaceAll(originalName, "\\", "/")))
	return path.Join(folder, now.Format("2006/01/02"), uuid.New().String()+ext)
}

// NewFromConfig 根据 upload.backend 创建存储实现。
func NewFromConfig(ctx context.Context, cfg config.UploadConfig) (BlobStore, error) {
	switch cfg.Backend {
	case "", "local":
		return NewLocalStore(cfg.Path, cfg.URLPrefix)
	case "gcs":
		return NewGCSStore(ctx, GCSOptions{
			Bucket:          cfg.GCSBucket,
			Prefix:          cfg.GCSPrefix,
			CredentialsFile: cfg.GCSCredentialsFile,
			PublicURL:       cfg.GCSPublicURL,
		})
	default:
		return nil, fmt.Errorf("不支持的存储后端: %s", cfg.Backend)
	}
}

// DeleteAll 删除一组存储键，失败只记录不返回，返回失败数量。
func DeleteAll(ctx context.Context, store BlobStore, keys []string, onError func(key string, err error)) int {
	failed := 0
	for _, key := range keys {
		if err := store.Delete(ctx, key); err != nil {
			failed++
			if onError != nil {
				onError(key, err)
			}
		}
	}
	return failed
}
