package di

import (
	"os"
	"testing"

	"interior-request-server/internal/testutils"

	"github.com/gin-gonic/gin"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	testutils.InitTestConfig()
	os.Exit(m.Run())
}

// 测试内容：验证注入器能组装出完整的应用并注册路由。
func TestInitializeApplication(t *testing.T) {
	gdb := testutils.SetupDB(t)
	app, err := InitializeApplication(gdb, testutils.NewMemoryBlobStore())
	if err != nil {
		t.Fatalf("InitializeApplication: %v", err)
	}
	if app.Router == nil || app.Modules == nil || app.Modules.Application == nil {
		t.Fatalf("期望组装完成，实际为 %+v", app)
	}

	r := gin.New()
	app.Router.Init(r)
	if len(r.Routes()) == 0 {
		t.Fatalf("期望注册路由")
	}
}
