package utils

import (
	"math"
	"testing"
)

func TestEaseOutQuad(t *testing.T) {
	cases := map[float64]float64{
		0:    0,
		0.25: 0.4375,
		0.5:  0.75,
		1:    1,
	}
	for in, want := range cases {
		if got := EaseOutQuad(in); math.Abs(got-want) > 1e-9 {
			t.Errorf("EaseOutQuad(%v) = %v, 期望 %v", in, got, want)
		}
	}

	// 缓出曲线前半段始终领先线性进度
	for p := 0.05; p < 1; p += 0.05 {
		if EaseOutQuad(p) <= p {
			t.Errorf("EaseOutQuad(%v) = %v 应大于 %v", p, EaseOutQuad(p), p)
		}
	}
}

func TestLerp(t *testing.T) {
	tests := []struct {
		name    string
		a, b, t float64
		want    float64
	}{
		{"起点", 0, 100, 0, 0},
		{"四分之一", 0, 100, 0.25, 25},
		{"递减区间", 60, 0, 0.5, 30},
		{"跨零", -50, 50, 0.5, 0},
		{"不钳制", 0, 10, 1.5, 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Lerp(tt.a, tt.b, tt.t); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Lerp(%v, %v, %v) = %v, 期望 %v", tt.a, tt.b, tt.t, got, tt.want)
			}
		})
	}
}

func TestClamp01(t *testing.T) {
	inputs := []float64{-1, 0, 0.3, 1, 7, math.NaN(), math.Inf(1), math.Inf(-1)}
	wants := []float64{0, 0, 0.3, 1, 1, 0, 1, 0}
	for i, in := range inputs {
		if got := Clamp01(in); got != wants[i] {
			t.Errorf("Clamp01(%v) = %v, 期望 %v", in, got, wants[i])
		}
	}
}

// TestContainerFadeCurve 模拟容器淡出：0.4 秒内透明度 1 → 0
func TestContainerFadeCurve(t *testing.T) {
	const fadeSeconds = 0.4
	prev := 1.0
	for elapsed := 0.0; elapsed <= 0.5; elapsed += 1.0 / 30.0 {
		opacity := 1 - EaseOutQuad(Clamp01(elapsed/fadeSeconds))
		if opacity > prev+1e-12 {
			t.Errorf("elapsed=%.3f 时透明度 %v 大于上一帧 %v", elapsed, opacity, prev)
		}
		if opacity < 0 || opacity > 1 {
			t.Errorf("elapsed=%.3f 时透明度 %v 超出 [0,1]", elapsed, opacity)
		}
		prev = opacity
	}
	if prev != 0 {
		t.Errorf("淡出结束后透明度应为 0，实际 %v", prev)
	}
}
