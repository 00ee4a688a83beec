package router

import (
	"interior-request-server/internal/middleware"
	apphandler "interior-request-server/internal/modules/application/handler"
	authhandler "interior-request-server/internal/modules/auth/handler"

	"github.com/gin-gonic/gin"
)

func registerUserRoutes(api *gin.RouterGroup, uploadBodyLimit, submitLimiter gin.HandlerFunc, auth *authhandler.Handler, apps *apphandler.Handler) {
	userGroup := api.Group("/user")
	userGroup.Use(middleware.JWTAuth())
	userGroup.Use(middleware.AccountCheck())

	userGroup.GET("/profile", auth.Profile)

	userGroup.GET("/applications/new", apps.NewForm)
	userGroup.POST("/applications", uploadBodyLimit, submitLimiter, apps.Create)
	userGroup.GET("/applications", apps.ListMine)
	userGroup.GET("/applications/:id", apps.GetMine)
	userGroup.DELETE("/applications/:id", apps.DeleteMine)
	userGroup.POST("/applications/:id/delete", apps.DeleteMine)
}
