//go:build android

package utils

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// androidDataRoot 应用私有数据根目录
const androidDataRoot = "/data/data"

// EnsureStorageDir 在打开 gdata 之前准备 settings 子目录
//
// gdata 在 Android 上写入 /data/data/<包名>/，但不会创建子目录。
// 目录不可写时返回错误，调用方退回仅内存的设置。
func EnsureStorageDir() error {
	root := GetStoragePath()
	if root == "" {
		return errors.New("cannot resolve android package name")
	}

	dir := filepath.Join(root, "settings")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	probe, err := os.CreateTemp(dir, ".probe-*")
	if err != nil {
		return fmt.Errorf("%s is not writable: %w", dir, err)
	}
	probe.Close()
	return os.Remove(probe.Name())
}

// GetStoragePath 返回 /data/data/<包名>，无法识别包名时返回空字符串
func GetStoragePath() string {
	raw, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return ""
	}
	// cmdline 以 NUL 分隔，第一个字段就是包名
	name, _, _ := bytes.Cut(raw, []byte{0})
	name = bytes.TrimSpace(name)
	if len(name) == 0 {
		return ""
	}
	return filepath.Join(androidDataRoot, string(name))
}
