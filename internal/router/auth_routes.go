package router

import (
	authhandler "interior-request-server/internal/modules/auth/handler"

	"github.com/gin-gonic/gin"
)

func registerAuthRoutes(api *gin.RouterGroup, authLimiter, bodyLimit gin.HandlerFunc, h *authhandler.Handler) {
	api.GET("/register", h.RegisterForm)
	api.POST("/register", authLimiter, bodyLimit, h.Register)
	api.POST("/login", authLimiter, bodyLimit, h.Login)
}
