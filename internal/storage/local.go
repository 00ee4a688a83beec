package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"interior-request-server/internal/utils"
)

// LocalStore 将文件保存在本地目录，由媒体路由经 Open 对外提供。
type LocalStore struct {
	root      string
	urlPrefix string
}

func NewLocalStore(root, urlPrefix string) (*LocalStore, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("本地存储目录不能为空")
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("无法创建存储目录 '%s': %w", root, err)
	}
	if urlPrefix == "" {
		urlPrefix = "/media/"
	}
	if !strings.HasSuffix(urlPrefix, "/") {
		urlPrefix += "/"
	}
	return &LocalStore{root: root, urlPrefix: urlPrefix}, nil
}

func (s *LocalStore) Put(_ context.Context, key string, r io.Reader, _ string) error {
	dst, err := utils.SecureJoin(s.root, key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("创建目录失败: %w", err)
	}

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("创建文件失败: %w", err)
	}
	if _, err := io.Copy(out, r); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return fmt.Errorf("写入文件失败: %w", err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dst)
		return fmt.Errorf("写入文件失败: %w", err)
	}
	return nil
}

func (s *LocalStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	src, err := utils.SecureJoin(s.root, key)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(src)
	if os.IsNotExist(err) || (err == nil && info.IsDir()) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	f, err := os.Open(src)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (s *LocalStore) Delete(_ context.Context, key string) error {
	target, err := utils.SecureJoin(s.root, key)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *LocalStore) URL(key string) string {
	return s.urlPrefix + strings.TrimPrefix(filepath.ToSlash(key), "/")
}
