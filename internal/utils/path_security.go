package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SecureJoin 将存储键拼接到 basePath 下，返回绝对路径。
// 拒绝绝对路径和越出基目录的 ".."，并确保基目录到目标之间已存在的节点都不是符号链接。
func SecureJoin(basePath, key string) (string, error) {
	baseAbs, err := filepath.Abs(basePath)
	if err != nil {
		return "", fmt.Errorf("路径解析失败: %w", err)
	}

	rel := filepath.Clean(filepath.FromSlash(key))
	if filepath.IsAbs(rel) || filepath.VolumeName(rel) != "" {
		return "", fmt.Errorf("非法路径: 不允许绝对路径")
	}
	if rel == "." {
		rel = ""
	}

	target := filepath.Join(baseAbs, rel)
	within, err := filepath.Rel(baseAbs, target)
	if err != nil || within == ".." || strings.HasPrefix(within, ".."+string(os.PathSeparator)) {
		return "", fmt.Errorf("非法路径: 目标超出基目录")
	}

	if err := ensureNoSymlink(baseAbs, target); err != nil {
		return "", err
	}
	return target, nil
}

// ensureNoSymlink 从 target 逐级回溯到 base，不存在的节点跳过。
func ensureNoSymlink(base, target string) error {
	for current := target; ; current = filepath.Dir(current) {
		info, err := os.Lstat(current)
		switch {
		case err == nil && info.Mode()&os.ModeSymlink != 0:
			return fmt.Errorf("检测到符号链接穿透风险: %s", current)
		case err != nil && !os.IsNotExist(err):
			return fmt.Errorf("检查路径失败: %w", err)
		}
		if current == base {
			return nil
		}
		if filepath.Dir(current) == current {
			return fmt.Errorf("非法路径: 无法定位到安全基目录")
		}
	}
}
