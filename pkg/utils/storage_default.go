//go:build !android

package utils

// EnsureStorageDir 桌面端由 gdata 自行创建目录
func EnsureStorageDir() error { return nil }

// GetStoragePath 桌面端路径由 gdata 决定，这里不记录
func GetStoragePath() string { return "" }
