package httpx

import (
	"net/http"

	"interior-request-server/internal/platform/service"

	"github.com/gin-gonic/gin"
)

// WriteServiceError writes a standardized HTTP error response for service-layer errors.
func WriteServiceError(c *gin.Context, err error, fallbackMessage string) {
	if serviceErr, ok := service.AsServiceError(err); ok {
		body := gin.H{"error": serviceErr.Message, "code": serviceErr.Code}
		if len(serviceErr.Fields) > 0 {
			body["fields"] = serviceErr.Fields
		}
		c.JSON(serviceErrorStatus(serviceErr.Code), body)
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": fallbackMessage, "code": service.ErrorCodeInternal})
}

// WriteBadRequest 用于请求体无法解析等在进入服务层之前的错误。
func WriteBadRequest(c *gin.Context, message string) {
	WriteServiceError(c, service.NewValidationError(message), message)
}

func serviceErrorStatus(code service.ErrorCode) int {
	switch code {
	case service.ErrorCodeValidation:
		return http.StatusBadRequest
	case service.ErrorCodeUnauthorized:
		return http.StatusUnauthorized
	case service.ErrorCodeForbidden:
		return http.StatusForbidden
	case service.ErrorCodeConflict, service.ErrorCodeGuardViolation, service.ErrorCodeStatusLocked:
		return http.StatusConflict
	case service.ErrorCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
