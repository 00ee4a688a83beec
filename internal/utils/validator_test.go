package utils

import (
	"strings"
	"testing"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		want     bool
	}{
		{name: "plain", username: "bob", want: true},
		{name: "allowed symbols", username: "bob.smith+test@home-1_x", want: true},
		{name: "cyrillic", username: "Иван", want: true},
		{name: "accented latin", username: "josé", want: true},
		{name: "cjk with digits", username: "设计师2026", want: true},
		{name: "empty", username: "", want: false},
		{name: "space", username: "bob smith", want: false},
		{name: "slash", username: "bob/smith", want: false},
		{name: "emoji", username: "bob😀", want: false},
		{name: "too long", username: strings.Repeat("a", 151), want: false},
		{name: "max length", username: strings.Repeat("a", 150), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, msg := ValidateUsername(tt.username)
			if ok != tt.want {
				t.Fatalf("ValidateUsername(%q)=%v(%s) want=%v", tt.username, ok, msg, tt.want)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	if ok, _ := ValidateEmail("bob@example.com"); !ok {
		t.Fatalf("期望合法邮箱通过")
	}
	if ok, _ := ValidateEmail("bob.example.com"); ok {
		t.Fatalf("期望缺少 @ 的邮箱被拒绝")
	}
	if ok, _ := ValidateEmail("  "); ok {
		t.Fatalf("期望空邮箱被拒绝")
	}
}

// 测试内容：验证扩展名与大小检查相互独立，扩展名大小写不敏感。
func TestValidateImageUpload(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		size     int64
		want     int
	}{
		{name: "gif rejected", filename: "photo.gif", size: 1000, want: 1},
		{name: "upper case jpg ok", filename: "photo.JPG", size: 2000000, want: 0},
		{name: "one byte over", filename: "photo.jpg", size: 2097153, want: 1},
		{name: "exactly max", filename: "photo.png", size: 2097152, want: 0},
		{name: "bmp ok", filename: "plan.bmp", size: 10, want: 0},
		{name: "jpeg ok", filename: "plan.Jpeg", size: 10, want: 0},
		{name: "no extension", filename: "plan", size: 10, want: 1},
		{name: "both problems", filename: "photo.gif", size: 3 * 1024 * 1024, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateImageUpload(tt.filename, tt.size, AllowedImageExtensions, MaxImageBytes)
			if len(got) != tt.want {
				t.Fatalf("期望 %d 条错误，实际为 %d: %v", tt.want, len(got), got)
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	if got := FormatBytes(MaxImageBytes); got != "2.0MB" {
		t.Fatalf("期望 2.0MB，实际为 %s", got)
	}
	if got := FormatBytes(512); got != "512B" {
		t.Fatalf("期望 512B，实际为 %s", got)
	}
}
