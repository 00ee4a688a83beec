package router

import (
	"interior-request-server/internal/middleware"
	apphandler "interior-request-server/internal/modules/application/handler"
	categoryhandler "interior-request-server/internal/modules/category/handler"

	"github.com/gin-gonic/gin"
)

func registerAdminRoutes(api *gin.RouterGroup, uploadBodyLimit, bodyLimit gin.HandlerFunc, apps *apphandler.Handler, categories *categoryhandler.Handler) {
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.JWTAuth())
	adminGroup.Use(middleware.AccountCheck())
	adminGroup.Use(middleware.StaffCheck())

	adminGroup.GET("/applications", apps.AdminList)
	adminGroup.GET("/applications/:id", apps.AdminGet)
	adminGroup.POST("/applications/:id", uploadBodyLimit, apps.ChangeStatus)

	adminGroup.GET("/categories", categories.AdminList)
	adminGroup.POST("/categories", bodyLimit, categories.Create)
	adminGroup.DELETE("/categories/:id", categories.Delete)
}
