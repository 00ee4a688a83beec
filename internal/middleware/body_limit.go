package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

const defaultJSONBodyMB = 1

// BodyLimitMiddleware 限制普通 JSON 请求体大小
func BodyLimitMiddleware(maxSizeMB int) gin.HandlerFunc {
	if maxSizeMB <= 0 {
		maxSizeMB = defaultJSONBodyMB
	}
	maxBytes := int64(maxSizeMB) * 1024 * 1024

	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// UploadBodyLimitMiddleware 限制 multipart 上传接口的请求体大小。
// 上限应大于单张图片限制，超出图片限制的文件交给表单校验给出字段错误。
func UploadBodyLimitMiddleware(maxSizeMB int) gin.HandlerFunc {
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}
	maxBytes := int64(maxSizeMB) * 1024 * 1024

	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes && c.Request.ContentLength != -1 {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("请求体不能超过 %dMB", maxSizeMB), "code": "validation"})
			c.Abort()
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
