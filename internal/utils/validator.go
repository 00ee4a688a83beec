package utils

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	UsernameMaxLength = 150
	FullNameMaxLength = 100
	TitleMaxLength    = 200
	// MaxImageBytes 单张图片上限 2MiB
	MaxImageBytes int64 = 2 * 1024 * 1024
)

// AllowedImageExtensions 允许上传的图片扩展名（小写）
var AllowedImageExtensions = []string{".jpg", ".jpeg", ".png", ".bmp"}

// UsernamePattern Unicode 字母、数字以及 . @ + - _
var UsernamePattern = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)

// ValidateUsername checks if the username meets the requirements.
func ValidateUsername(username string) (bool, string) {
	if username == "" {
		return false, "用户名不能为空"
	}
	if len([]rune(username)) > UsernameMaxLength {
		return false, fmt.Sprintf("用户名长度不能超过 %d 个字符", UsernameMaxLength)
	}
	if !UsernamePattern.MatchString(username) {
		return false, "用户名只能包含字母、数字以及 . @ + - _"
	}
	return true, ""
}

// ValidateEmail 只要求包含 @ 符号。
func ValidateEmail(email string) (bool, string) {
	if strings.TrimSpace(email) == "" {
		return false, "邮箱不能为空"
	}
	if !strings.Contains(email, "@") {
		return false, "邮箱格式不正确"
	}
	return true, ""
}

// ValidateImageUpload 校验上传图片的扩展名和大小。两项检查互不影响，可能同时返回两条错误。
// 只检查文件名后缀，不检查文件内容。
func ValidateImageUpload(filename string, size int64, allowedExts []string, maxBytes int64) []string {
	var problems []string

	ext := strings.ToLower(filepath.Ext(filename))
	allowed := false
	for _, candidate := range allowedExts {
		if ext == strings.ToLower(candidate) {
			allowed = true
			break
		}
	}
	if !allowed {
		problems = append(problems, fmt.Sprintf("不支持的文件格式，仅允许: %s", strings.Join(allowedExts, ", ")))
	}

	if size > maxBytes {
		problems = append(problems, fmt.Sprintf("文件大小不能超过 %s", FormatBytes(maxBytes)))
	}

	return problems
}

// FormatBytes 将字节数格式化为便于阅读的字符串。
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%dB", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%cB", float64(n)/float64(div), "KMGT"[exp])
}
