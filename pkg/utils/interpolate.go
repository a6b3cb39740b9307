package utils

import "math"

// Interpolate 把输入帧区间 [inRange[0], inRange[1]] 线性映射到输出区间 [outRange[0], outRange[1]]。
//
// 两端都做钳制：输入小于起点返回 outRange[0]，大于终点返回 outRange[1]，
// 任何输入都不会外推出 [min(v0,v1), max(v0,v1)]。
//
// 输入区间退化（f0 == f1）时视为阶跃：input < f0 返回 v0，否则返回 v1。
// 输入区间反向（f0 > f1）时按 [f1, f0] 处理，保持 f0 ↔ v0 的对应关系。
// NaN 输入返回 v0。
func Interpolate(input float64, inRange, outRange [2]float64) float64 {
	f0, f1 := inRange[0], inRange[1]
	v0, v1 := outRange[0], outRange[1]

	if math.IsNaN(input) {
		return v0
	}

	if f0 == f1 {
		if input < f0 {
			return v0
		}
		return v1
	}

	t := Clamp01((input - f0) / (f1 - f0))
	return clampBetween(Lerp(v0, v1, t), v0, v1)
}

// InterpolatePiecewise 分段线性插值（两端钳制）
//
// inputs 必须严格递增且与 outputs 等长（至少 2 个点），否则返回 0。
// 用于粒子透明度包络：[0, 1s, 3.5s, 5s] → [0, a, a, 0]。
func InterpolatePiecewise(input float64, inputs, outputs []float64) float64 {
	if len(inputs) < 2 || len(inputs) != len(outputs) {
		return 0
	}
	for i := 1; i < len(inputs); i++ {
		if !(inputs[i] > inputs[i-1]) {
			return 0
		}
	}

	if math.IsNaN(input) || input <= inputs[0] {
		return outputs[0]
	}
	last := len(inputs) - 1
	if input >= inputs[last] {
		return outputs[last]
	}

	// 找到 input 所在的区段
	seg := 0
	for seg < last-1 && input >= inputs[seg+1] {
		seg++
	}

	return Interpolate(input,
		[2]float64{inputs[seg], inputs[seg+1]},
		[2]float64{outputs[seg], outputs[seg+1]})
}

// PositiveMod 返回落在 [0, m) 内的浮点取模结果
func PositiveMod(x, m float64) float64 {
	if m == 0 {
		return 0
	}
	r := math.Mod(x, m)
	if r < 0 {
		r += math.Abs(m)
	}
	return r
}

// PositiveModInt 整数版 PositiveMod，m ≤ 0 时返回 0
func PositiveModInt(x, m int) int {
	if m <= 0 {
		return 0
	}
	r := x % m
	if r < 0 {
		r += m
	}
	return r
}

// clampBetween 将 v 限制在 a、b 构成的闭区间内（a、b 顺序任意）
func clampBetween(v, a, b float64) float64 {
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
