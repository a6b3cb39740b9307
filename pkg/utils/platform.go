//go:build !mobile

package utils

import "os"

// MobileEmulateEnv 置为 "1" 时桌面构建也按移动端处理（不响应 F11、不恢复全屏）
const MobileEmulateEnv = "ESTUDIO_MOBILE_EMULATE"

// IsMobile 桌面构建下只有设置了 MobileEmulateEnv 才返回 true
func IsMobile() bool {
	return os.Getenv(MobileEmulateEnv) == "1"
}
