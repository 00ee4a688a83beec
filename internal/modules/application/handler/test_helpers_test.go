package handler

import (
	"os"
	"testing"

	"interior-request-server/internal/middleware"
	"interior-request-server/internal/modules/application/repo"
	appservice "interior-request-server/internal/modules/application/service"
	categoryrepo "interior-request-server/internal/modules/category/repo"
	"interior-request-server/internal/testutils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	testutils.InitTestConfig()
	os.Exit(m.Run())
}

// setupRouter 挂载申请相关路由，只经过 JWT 解析以便直接测试处理器。
func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB, *testutils.MemoryBlobStore) {
	t.Helper()
	gdb := testutils.SetupDB(t)
	blobs := testutils.NewMemoryBlobStore()
	h := New(appservice.New(repo.NewApplicationRepository(gdb), categoryrepo.NewCategoryRepository(gdb), blobs))

	r := gin.New()
	authed := r.Group("/", middleware.JWTAuth())
	authed.GET("/user/applications/new", h.NewForm)
	authed.POST("/user/applications", h.Create)
	authed.GET("/user/applications", h.ListMine)
	authed.GET("/user/applications/:id", h.GetMine)
	authed.DELETE("/user/applications/:id", h.DeleteMine)
	authed.GET("/admin/applications", h.AdminList)
	authed.GET("/admin/applications/:id", h.AdminGet)
	authed.POST("/admin/applications/:id", h.ChangeStatus)
	return r, gdb, blobs
}
