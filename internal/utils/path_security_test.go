package utils

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// 测试内容：验证 SecureJoin 在基路径内拼接时返回合法路径。
func TestSecureJoin_AllowsWithinBase(t *testing.T) {
	base := t.TempDir()

	got, err := SecureJoin(base, "2026/10/18/a.png")
	if err != nil {
		t.Fatalf("SecureJoin 返回错误: %v", err)
	}

	baseAbs, _ := filepath.Abs(base)
	if !strings.HasPrefix(got, baseAbs+string(os.PathSeparator)) {
		t.Fatalf("期望路径位于基目录内, got=%q base=%q", got, baseAbs)
	}
}

// 测试内容：验证 SecureJoin 拒绝绝对路径输入。
func TestSecureJoin_RejectsAbsoluteInput(t *testing.T) {
	base := t.TempDir()
	if _, err := SecureJoin(base, filepath.Join(base, "x.txt")); err == nil {
		t.Fatalf("期望绝对路径返回错误")
	}
}

// 测试内容：验证 SecureJoin 拒绝目录穿越导致的越界路径。
func TestSecureJoin_RejectsTraversalOutsideBase(t *testing.T) {
	base := t.TempDir()
	for _, key := range []string{"../escape.txt", "a/../../escape.txt", ".."} {
		if _, err := SecureJoin(base, key); err == nil {
			t.Fatalf("期望 %q 返回错误", key)
		}
	}
}

// 测试内容：验证路径链路中的符号链接被拒绝。
func TestSecureJoin_RejectsSymlinkInChain(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink 需要额外权限")
	}
	base := t.TempDir()
	outside := t.TempDir()
	if err := os.Symlink(outside, filepath.Join(base, "link")); err != nil {
		t.Fatalf("创建符号链接失败: %v", err)
	}

	if _, err := SecureJoin(base, "link/file.png"); err == nil {
		t.Fatalf("期望符号链接路径返回错误")
	}
}
