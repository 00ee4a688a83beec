package logger

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// 测试内容：验证无效日志级别回退为 info。
func TestInit_InvalidLevelFallsBackToInfo(t *testing.T) {
	Init("nope", "text")
	t.Cleanup(func() { logrus.SetOutput(os.Stderr) })

	if logrus.GetLevel() != logrus.InfoLevel {
		t.Fatalf("期望 info 级别，实际为 %s", logrus.GetLevel())
	}
}

// 测试内容：验证请求日志以 JSON 格式输出状态码与路径。
func TestRequestLogger_WritesJSONFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	Init("debug", "json")

	var buf bytes.Buffer
	logrus.SetOutput(&buf)
	t.Cleanup(func() { logrus.SetOutput(os.Stderr) })

	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/ping", func(c *gin.Context) { c.Set("id", uint(7)); c.Status(http.StatusNoContent) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))

	var entry map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("解析日志失败: %v body=%s", err, buf.String())
	}
	if entry["path"] != "/ping" || entry["status"] != float64(http.StatusNoContent) {
		t.Fatalf("非预期日志字段: %v", entry)
	}
	if entry["user_id"] != float64(7) {
		t.Fatalf("期望 user_id=7，实际为 %v", entry["user_id"])
	}
}
