package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"interior-request-server/internal/common/httpx"
	appservice "interior-request-server/internal/modules/application/service"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	appService *appservice.Service
}

func New(appService *appservice.Service) *Handler {
	return &Handler{appService: appService}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httpx.WriteBadRequest(c, "无效的申请ID")
		return 0, false
	}
	return uint(id), true
}

// optionalFile 读取可选的文件字段，缺失或非 multipart 请求时返回 nil。
func optionalFile(c *gin.Context, field string) (*multipart.FileHeader, bool) {
	file, err := c.FormFile(field)
	if err == nil {
		return file, true
	}
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, true
	}

	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "请求体过大", "code": "validation"})
		return nil, false
	}
	httpx.WriteBadRequest(c, "表单解析失败")
	return nil, false
}
