package middleware

import "github.com/gin-gonic/gin"

// StaticCacheMiddleware 为上传文件添加 Cache-Control 头，策略来自 upload.cache_control
func StaticCacheMiddleware(cacheControl string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cacheControl != "" {
			c.Header("Cache-Control", cacheControl)
		}
		c.Next()
	}
}
