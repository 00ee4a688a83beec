package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"interior-request-server/internal/middleware"
	"interior-request-server/internal/modules/auth/repo"
	authservice "interior-request-server/internal/modules/auth/service"
	"interior-request-server/internal/testutils"

	"github.com/gin-gonic/gin"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	testutils.InitTestConfig()
	os.Exit(m.Run())
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gdb := testutils.SetupDB(t)
	h := New(authservice.New(repo.NewUserRepository(gdb)))

	r := gin.New()
	r.GET("/register", h.RegisterForm)
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	r.GET("/profile", middleware.JWTAuth(), h.Profile)
	return r
}

func postJSON(r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// 测试内容：验证注册、登录、获取资料的完整流程。
func TestRegisterLoginProfileFlow(t *testing.T) {
	r := setupRouter(t)

	w := postJSON(r, "/register", gin.H{
		"username":         "bob",
		"full_name":        "Bob Builder",
		"email":            "bob@example.com",
		"password":         "secret",
		"password_confirm": "secret",
		"agreement":        true,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("注册期望 201，实际为 %d: %s", w.Code, w.Body.String())
	}

	w = postJSON(r, "/login", gin.H{"username": "bob", "password": "secret"})
	if w.Code != http.StatusOK {
		t.Fatalf("登录期望 200，实际为 %d: %s", w.Code, w.Body.String())
	}
	var login struct {
		Token string `json:"token"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &login)
	if login.Token == "" {
		t.Fatalf("期望返回 token")
	}

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("资料期望 200，实际为 %d", w.Code)
	}
	var profile map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &profile)
	if profile["full_name"] != "Bob Builder" || profile["staff"] != false {
		t.Fatalf("非预期的资料: %v", profile)
	}
}

// 测试内容：验证注册校验失败返回 400 与字段错误列表。
func TestRegister_ValidationFields(t *testing.T) {
	r := setupRouter(t)

	w := postJSON(r, "/register", gin.H{"username": "bob"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("期望 400，实际为 %d", w.Code)
	}
	var body struct {
		Code   string `json:"code"`
		Fields []struct {
			Field string `json:"field"`
		} `json:"fields"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body.Code != "validation" || len(body.Fields) == 0 {
		t.Fatalf("期望 validation 字段错误，实际为 %s", w.Body.String())
	}
}

// 测试内容：验证登录参数缺失返回 400，错误密码返回 401。
func TestLogin_Errors(t *testing.T) {
	r := setupRouter(t)

	if w := postJSON(r, "/login", gin.H{"username": "bob"}); w.Code != http.StatusBadRequest {
		t.Fatalf("期望 400，实际为 %d", w.Code)
	}
	if w := postJSON(r, "/login", gin.H{"username": "bob", "password": "nope"}); w.Code != http.StatusUnauthorized {
		t.Fatalf("期望 401，实际为 %d", w.Code)
	}
}

// 测试内容：验证注册表单规则接口返回用户名规则。
func TestRegisterForm(t *testing.T) {
	r := setupRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/register", nil))
	if w.Code != http.StatusOK || !bytes.Contains(w.Body.Bytes(), []byte("username_pattern")) {
		t.Fatalf("非预期的响应: %d %s", w.Code, w.Body.String())
	}
}
