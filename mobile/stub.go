//go:build !mobile

// Package mobile 是 ebitenmobile bind 的入口。
// 不带 mobile 标签构建时只保留 Dummy，让 go build ./... 能覆盖到这个包。
package mobile

// Dummy 供 ebitenmobile 生成绑定时引用
func Dummy() {}
