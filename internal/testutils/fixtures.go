package testutils

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"interior-request-server/internal/model"
	"interior-request-server/internal/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// MinimalPNG 是一个 1x1 的 PNG 图片。
var MinimalPNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0d, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

// CreateUser 创建一个密码为 "password" 的用户。
func CreateUser(t *testing.T, gdb *gorm.DB, username string, staff bool) model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := model.User{
		Username: username,
		FullName: username + " test",
		Email:    username + "@example.com",
		Password: string(hash),
		Staff:    staff,
	}
	if err := gdb.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func CreateCategory(t *testing.T, gdb *gorm.DB, name string) model.Category {
	t.Helper()
	category := model.Category{Name: name}
	if err := gdb.Create(&category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	return category
}

// CreateApplication 直接写入一条申请及其方案图记录，不写入文件。
func CreateApplication(t *testing.T, gdb *gorm.DB, userID, categoryID uint, status model.ApplicationStatus) model.Application {
	t.Helper()
	app := model.Application{
		UserID:      userID,
		CategoryID:  categoryID,
		Title:       "Kitchen remodel",
		Description: "Open plan kitchen",
		Status:      status,
		Images: []model.ApplicationImage{
			{Image: "plans/2026/10/18/fixture.png", OriginalName: "plan.png", Size: int64(len(MinimalPNG)), ImageType: model.ImageTypePlan},
		},
	}
	if err := gdb.Create(&app).Error; err != nil {
		t.Fatalf("create application: %v", err)
	}
	return app
}

// AuthHeader 为用户生成 Bearer 令牌。
func AuthHeader(t *testing.T, user model.User) string {
	t.Helper()
	token, err := utils.GenerateLoginToken(user.ID, user.Username, user.Staff, time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return "Bearer " + token
}

// FilePart 描述 multipart 表单中的一个文件字段。
type FilePart struct {
	Field    string
	Filename string
	Content  []byte
}

// NewMultipartRequest 构造 multipart/form-data 请求。
func NewMultipartRequest(t *testing.T, method, target string, fields map[string]string, files ...FilePart) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	for _, f := range files {
		part, err := writer.CreateFormFile(f.Field, f.Filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write(f.Content); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}
