package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

type GCSOptions struct {
	Bucket          string
	Prefix          string
	CredentialsFile string
	PublicURL       string
}

// GCSStore 将文件保存到 Google Cloud Storage 存储桶。
type GCSStore struct {
	client    *gcs.Client
	bucket    string
	prefix    string
	publicURL string
}

func NewGCSStore(ctx context.Context, opts GCSOptions) (*GCSStore, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("未配置 GCS 存储桶")
	}

	var clientOpts []option.ClientOption
	if opts.CredentialsFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(opts.CredentialsFile))
	}
	client, err := gcs.NewClient(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloud storage client: %w", err)
	}

	publicURL := strings.TrimSuffix(opts.PublicURL, "/")
	if publicURL == "" {
		publicURL = "https://storage.googleapis.com"
	}
	return &GCSStore{
		client:    client,
		bucket:    opts.Bucket,
		prefix:    strings.Trim(opts.Prefix, "/"),
		publicURL: publicURL,
	}, nil
}

func (s *GCSStore) objectName(key string) string {
	return path.Join(s.prefix, strings.TrimPrefix(key, "/"))
}

func (s *GCSStore) Put(ctx context.Context, key string, r io.Reader, contentType string) error {
	wc := s.client.Bucket(s.bucket).Object(s.objectName(key)).NewWriter(ctx)
	wc.ContentType = contentType
	if _, err := io.Copy(wc, r); err != nil {
		_ = wc.Close()
		return fmt.Errorf("failed to write data to object: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to close object writer: %w", err)
	}
	return nil
}

func (s *GCSStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	rc, err := s.client.Bucket(s.bucket).Object(s.objectName(key)).NewReader(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return nil, ErrNotFound
	}
	return rc, err
}

func (s *GCSStore) Delete(ctx context.Context, key string) error {
	err := s.client.Bucket(s.bucket).Object(s.objectName(key)).Delete(ctx)
	if err != nil && !errors.Is(err, gcs.ErrObjectNotExist) {
		return err
	}
	return nil
}

func (s *GCSStore) URL(key string) string {
	return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, s.objectName(key))
}

func (s *GCSStore) Close() error {
	return s.client.Close()
}
