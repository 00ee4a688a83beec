package router

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path"
	"strings"

	"interior-request-server/internal/common/httpx"
	"interior-request-server/internal/config"
	"interior-request-server/internal/middleware"
	platformservice "interior-request-server/internal/platform/service"
	"interior-request-server/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// registerMediaRoutes 在 upload.url_prefix 下按存储键读取文件，本地目录与 GCS 存储桶都经由 BlobStore.Open。
func registerMediaRoutes(r *gin.Engine, blobs storage.BlobStore, upload config.UploadConfig) {
	prefix := upload.URLPrefix
	if prefix == "" {
		prefix = "/media/"
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	r.GET(prefix+"*key", middleware.StaticCacheMiddleware(upload.CacheControl), serveBlob(blobs))
}

func serveBlob(blobs storage.BlobStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.TrimPrefix(c.Param("key"), "/")
		if !validBlobKey(key) {
			httpx.WriteServiceError(c, platformservice.NewNotFoundError("文件不存在"), "读取文件失败")
			return
		}

		rc, err := blobs.Open(c.Request.Context(), key)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				httpx.WriteServiceError(c, platformservice.NewNotFoundError("文件不存在"), "读取文件失败")
				return
			}
			logrus.Errorf("❌ 读取文件失败 key=%s: %v", key, err)
			httpx.WriteServiceError(c, platformservice.NewStorageError("读取文件失败"), "读取文件失败")
			return
		}
		defer func() { _ = rc.Close() }()

		contentType := mime.TypeByExtension(path.Ext(key))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		c.Header("Content-Type", contentType)
		c.Header("X-Content-Type-Options", "nosniff")
		c.Status(http.StatusOK)
		if _, err := io.Copy(c.Writer, rc); err != nil {
			logrus.Warnf("⚠️ 输出文件失败 key=%s: %v", key, err)
		}
	}
}

func validBlobKey(key string) bool {
	if key == "" || strings.HasSuffix(key, "/") {
		return false
	}
	for _, part := range strings.Split(key, "/") {
		if part == "" || part == "." || part == ".." {
			return false
		}
	}
	return true
}
