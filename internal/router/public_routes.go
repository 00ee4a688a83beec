package router

import (
	"net/http"

	categoryhandler "interior-request-server/internal/modules/category/handler"

	"github.com/gin-gonic/gin"
)

func registerPublicRoutes(api *gin.RouterGroup, categories *categoryhandler.Handler) {
	api.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong from gin"})
	})
	api.GET("/categories", categories.List)
}
