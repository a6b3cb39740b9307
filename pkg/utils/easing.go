package utils

import "math"

// 过渡曲线
//
// 容器淡出对应 CSS 的 ease-out 过渡，用二次方缓出近似。
// 参数都是 [0, 1] 内的进度，调用方负责先用 Clamp01 钳制。

// EaseOutQuad 二次方缓出：f(t) = 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	inv := 1 - t
	return 1 - inv*inv
}

// Lerp 在 a 与 b 之间按 t 线性取值，不钳制
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 把 v 限制到 [0, 1]，NaN 按 0 处理
func Clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
