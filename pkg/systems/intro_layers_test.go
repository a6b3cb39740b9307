package systems

import (
	"math"
	"testing"

	"github.com/decker502/estudio-intro/pkg/components"
	"github.com/decker502/estudio-intro/pkg/config"
)

func newTestContext(w, h float64) LayerContext {
	return NewLayerContext(config.DefaultIntroConfig(), config.Viewport{Width: w, Height: h})
}

// TestBackgroundOpacity 背景在 [0,15] 单调上升，[15,105] 恒为 1，[105,150] 单调下降
func TestBackgroundOpacity(t *testing.T) {
	ctx := newTestContext(1920, 1080)

	if got := ctx.BackgroundOpacity(0); got != 0 {
		t.Errorf("BackgroundOpacity(0) = %v, 期望 0", got)
	}

	prev := -1.0
	for f := 0; f <= 15; f++ {
		v := ctx.BackgroundOpacity(float64(f))
		if v < prev {
			t.Errorf("frame %d: %v 小于上一帧 %v", f, v, prev)
		}
		prev = v
	}
	for f := 15; f <= 105; f++ {
		if v := ctx.BackgroundOpacity(float64(f)); v != 1 {
			t.Errorf("frame %d: 期望 1，实际 %v", f, v)
		}
	}
	prev = 2.0
	for f := 105; f <= 150; f++ {
		v := ctx.BackgroundOpacity(float64(f))
		if v > prev {
			t.Errorf("frame %d: %v 大于上一帧 %v", f, v, prev)
		}
		prev = v
	}
	for _, f := range []float64{150, 151, 400} {
		if v := ctx.BackgroundOpacity(f); v != 0 {
			t.Errorf("BackgroundOpacity(%v) = %v, 期望 0", f, v)
		}
	}
}

// TestComputeLinesGrowth 线条在 1.5 秒内生长到 80%/70%
func TestComputeLinesGrowth(t *testing.T) {
	ctx := newTestContext(1920, 1080)

	start := ComputeLines(ctx, 0)
	if start.Progress != 0 {
		t.Errorf("本地第 0 帧进度应为 0，实际 %v", start.Progress)
	}
	for i, e := range start.Edges {
		if e.Length() != 0 {
			t.Errorf("edge %d 初始长度应为 0，实际 %v", i, e.Length())
		}
	}

	done := ComputeLines(ctx, 45)
	if math.Abs(done.Progress-1) > utilsThreshold {
		t.Fatalf("第 45 帧进度应接近 1，实际 %v", done.Progress)
	}

	tests := []struct {
		name   string
		edge   components.LineSegment
		length float64
	}{
		{"top", done.Edges[0], 0.8 * 1920},
		{"bottom", done.Edges[1], 0.8 * 1920},
		{"left", done.Edges[2], 0.7 * 1080},
		{"right", done.Edges[3], 0.7 * 1080},
	}
	for _, tt := range tests {
		if math.Abs(tt.edge.Length()-tt.length) > tt.length*utilsThreshold {
			t.Errorf("%s 长度 %v，期望约 %v", tt.name, tt.edge.Length(), tt.length)
		}
	}

	// 上线从左侧 10% 开始，下线锚定在右侧 10%
	if !approx(done.Edges[0].X1, 192) || !approx(done.Edges[0].Y1, 302.4) {
		t.Errorf("top 起点 = (%v, %v)", done.Edges[0].X1, done.Edges[0].Y1)
	}
	if !approx(done.Edges[1].X2, 1728) || !approx(done.Edges[1].Y2, 777.6) {
		t.Errorf("bottom 终点 = (%v, %v)", done.Edges[1].X2, done.Edges[1].Y2)
	}
	// 左竖线从顶部 15% 向下，右竖线锚定在底部 15%
	if !approx(done.Edges[2].X1, 384) || !approx(done.Edges[2].Y1, 162) {
		t.Errorf("left 起点 = (%v, %v)", done.Edges[2].X1, done.Edges[2].Y1)
	}
	if !approx(done.Edges[3].X2, 1536) || !approx(done.Edges[3].Y2, 918) {
		t.Errorf("right 终点 = (%v, %v)", done.Edges[3].X2, done.Edges[3].Y2)
	}

	// 斜线：中心在视口中心，45°，长度 p × diagonalLineMax
	d := done.Diagonal
	if math.Abs((d.X1+d.X2)/2-960) > 1e-9 || math.Abs((d.Y1+d.Y2)/2-540) > 1e-9 {
		t.Errorf("斜线中心 = (%v, %v)", (d.X1+d.X2)/2, (d.Y1+d.Y2)/2)
	}
	if math.Abs((d.X2-d.X1)-(d.Y2-d.Y1)) > 1e-9 {
		t.Errorf("斜线应为 45°: %+v", d)
	}
	want := done.Progress * ctx.Scale.DiagonalLineMax
	if math.Abs(d.Length()-want) > 1e-6 {
		t.Errorf("斜线长度 %v，期望 %v", d.Length(), want)
	}
}

// utilsThreshold 弹簧静止阈值
const utilsThreshold = 0.005

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// TestComputeStudioName 名称入场前后的状态
func TestComputeStudioName(t *testing.T) {
	ctx := newTestContext(1920, 1080)
	s := ctx.Scale

	start := ComputeStudioName(ctx, 0)
	if start.Opacity != 0 {
		t.Errorf("初始透明度应为 0，实际 %v", start.Opacity)
	}
	if math.Abs(start.TranslateY-s.TranslateYOffset) > 1e-9 {
		t.Errorf("初始位移 %v，期望 %v", start.TranslateY, s.TranslateYOffset)
	}
	if math.Abs(start.LetterSpacing-2.2*s.LetterSpacingMax) > 1e-9 {
		t.Errorf("初始字间距 %v，期望 %v", start.LetterSpacing, 2.2*s.LetterSpacingMax)
	}
	if start.FontSize != 72 {
		t.Errorf("字号 %v，期望 72", start.FontSize)
	}
	if math.Abs(start.CenterY-(1080-s.PaddingBottom)/2) > 1e-9 {
		t.Errorf("中心 Y %v", start.CenterY)
	}

	rest := ComputeStudioName(ctx, 240)
	if math.Abs(rest.Opacity-1) > 1e-3 || math.Abs(rest.TranslateY) > 0.1 {
		t.Errorf("静止状态 opacity=%v translateY=%v", rest.Opacity, rest.TranslateY)
	}
	if math.Abs(rest.LetterSpacing-s.LetterSpacingMax) > 0.01 {
		t.Errorf("静止字间距 %v，期望 %v", rest.LetterSpacing, s.LetterSpacingMax)
	}

	// 插值两端钳制：任何帧都不越界
	for f := -10; f <= 120; f++ {
		st := ComputeStudioName(ctx, f)
		if st.Opacity < 0 || st.Opacity > 1 {
			t.Fatalf("frame %d opacity %v 越界", f, st.Opacity)
		}
		if st.TranslateY < 0 || st.TranslateY > s.TranslateYOffset {
			t.Fatalf("frame %d translateY %v 越界", f, st.TranslateY)
		}
	}
}

// TestComputeLogo Logo 从 0.7 倍缩放淡入
func TestComputeLogo(t *testing.T) {
	ctx := newTestContext(1920, 1080)

	start := ComputeLogo(ctx, 0)
	if start.Scale != 0.7 || start.Opacity != 0 {
		t.Errorf("初始 scale=%v opacity=%v，期望 0.7 / 0", start.Scale, start.Opacity)
	}
	if math.Abs(start.Size-72*1.666) > 1e-9 {
		t.Errorf("Logo 尺寸 %v", start.Size)
	}
	if math.Abs(start.CenterY-(540+ctx.Scale.MarginTop/2)) > 1e-9 {
		t.Errorf("Logo 中心 Y %v", start.CenterY)
	}

	mid := ComputeLogo(ctx, 6)
	if mid.Scale <= 0.7 || mid.Scale > 1 || mid.Opacity <= 0 || mid.Opacity > 1 {
		t.Errorf("入场中 scale=%v opacity=%v", mid.Scale, mid.Opacity)
	}
}

// TestComputeTaglineStagger 第 i 个词的弹簧严格晚于第 i-1 个词启动
func TestComputeTaglineStagger(t *testing.T) {
	ctx := newTestContext(1920, 1080)
	words := ctx.Config.Tagline.Words

	firstMoving := make([]int, len(words))
	for i := range firstMoving {
		firstMoving[i] = -1
	}
	for f := 0; f <= 90; f++ {
		state := ComputeTagline(ctx, f)
		for i, w := range state.Words {
			if firstMoving[i] < 0 && w.Progress > 0 {
				firstMoving[i] = f
			}
		}
	}

	for i := range words {
		if firstMoving[i] < 0 {
			t.Fatalf("word %d 从未开始入场", i)
		}
		if i > 0 && firstMoving[i] <= firstMoving[i-1] {
			t.Errorf("word %d 在第 %d 帧启动，不晚于 word %d（第 %d 帧）", i, firstMoving[i], i-1, firstMoving[i-1])
		}
		if i > 0 && firstMoving[i]-firstMoving[i-1] != 4 {
			t.Errorf("word %d 与前一个词间隔 %d 帧，期望 4", i, firstMoving[i]-firstMoving[i-1])
		}
	}
}

// TestComputeTaglineSeparators 分隔点使用更大的字号
func TestComputeTaglineSeparators(t *testing.T) {
	ctx := newTestContext(1920, 1080)
	state := ComputeTagline(ctx, 30)
	tw := ctx.Scale.TaglineWidths

	for _, w := range state.Words {
		want := tw.Base
		if w.Text == "·" {
			want = tw.Dot
			if !w.IsSeparator {
				t.Errorf("%q 应标记为分隔符", w.Text)
			}
		}
		if w.FontSize != want {
			t.Errorf("%q 字号 %v，期望 %v", w.Text, w.FontSize, want)
		}
		if w.TranslateY < 0 || w.TranslateY > tw.Base*0.9 {
			t.Errorf("%q 位移 %v 越界", w.Text, w.TranslateY)
		}
	}
	if math.Abs(state.MaxWidth-1920*0.9) > 1e-9 {
		t.Errorf("可用宽度 %v，期望 %v", state.MaxWidth, 1920*0.9)
	}
}

// TestLayoutTagline 标语排版与换行
func TestLayoutTagline(t *testing.T) {
	// 每个字符宽度 = 字号 × 0.5
	measure := func(text string, size float64) float64 {
		return float64(len([]rune(text))) * size * 0.5
	}

	t.Run("宽屏单行居中", func(t *testing.T) {
		ctx := newTestContext(1920, 1080)
		state := ComputeTagline(ctx, 0)
		placements := LayoutTagline(state, measure)
		if len(placements) != len(state.Words) {
			t.Fatalf("期望 %d 个位置，实际 %d", len(state.Words), len(placements))
		}
		for _, p := range placements {
			if p.Row != 0 {
				t.Errorf("word %d 应在第 0 行，实际第 %d 行", p.Index, p.Row)
			}
			if p.CenterY != state.CenterY {
				t.Errorf("单行中心 %v，期望 %v", p.CenterY, state.CenterY)
			}
		}
		first, last := placements[0], placements[len(placements)-1]
		left := first.X - state.CenterX
		right := last.X + last.Width - state.CenterX
		if math.Abs(left+right) > 1e-9 {
			t.Errorf("行未居中: left=%v right=%v", left, right)
		}
		for i := 1; i < len(placements); i++ {
			gap := placements[i].X - (placements[i-1].X + placements[i-1].Width)
			if math.Abs(gap-state.Gap) > 1e-9 {
				t.Errorf("word %d 间距 %v，期望 %v", i, gap, state.Gap)
			}
		}
	})

	t.Run("窄屏换行", func(t *testing.T) {
		state := ComputeTagline(newTestContext(1920, 1080), 0)
		state.MaxWidth = 250
		placements := LayoutTagline(state, measure)

		rows := map[int][2]float64{}
		for _, p := range placements {
			r, ok := rows[p.Row]
			if !ok {
				r = [2]float64{p.X, p.X + p.Width}
			}
			r[0] = math.Min(r[0], p.X)
			r[1] = math.Max(r[1], p.X+p.Width)
			rows[p.Row] = r
		}
		if len(rows) < 2 {
			t.Fatalf("可用宽度 250 时应换行，实际 %d 行", len(rows))
		}
		for row, r := range rows {
			if r[1]-r[0] > state.MaxWidth+1e-9 {
				// 单个词超宽时允许独占一行
				count := 0
				for _, p := range placements {
					if p.Row == row {
						count++
					}
				}
				if count > 1 {
					t.Errorf("第 %d 行宽度 %v 超过 %v", row, r[1]-r[0], state.MaxWidth)
				}
			}
		}
	})

	t.Run("空输入", func(t *testing.T) {
		if got := LayoutTagline(components.TaglineState{}, measure); got != nil {
			t.Errorf("空标语应返回 nil，实际 %v", got)
		}
	})
}

// TestComputeDustPeriodic 粒子位置按各自周期循环
func TestComputeDustPeriodic(t *testing.T) {
	ctx := newTestContext(1920, 1080)

	for f := 0; f < 150; f++ {
		now := ComputeDust(ctx, f)
		for i, p := range now.Particles {
			period := int(DustPeriodSeconds(i)) * ctx.FPS
			later := ComputeDust(ctx, f+period).Particles[i]
			if later.YPercent != p.YPercent || later.XPercent != p.XPercent {
				t.Fatalf("particle %d frame %d: (%v, %v) != frame %d (%v, %v)",
					i, f, p.XPercent, p.YPercent, f+period, later.XPercent, later.YPercent)
			}
		}
	}
}

// TestComputeDustSeeds 粒子的确定性位置与透明度包络
func TestComputeDustSeeds(t *testing.T) {
	ctx := newTestContext(1000, 1000)
	dust := ComputeDust(ctx, 0)
	if len(dust.Particles) != 8 {
		t.Fatalf("期望 8 颗粒子，实际 %d", len(dust.Particles))
	}

	// i=1: seed=137.5, x=962.5 mod 100=62.5, startY=30+(412.5 mod 60)=82.5
	p1 := dust.Particles[1]
	if math.Abs(p1.XPercent-62.5) > 1e-9 || math.Abs(p1.YPercent-82.5) > 1e-9 {
		t.Errorf("particle 1 = (%v%%, %v%%)，期望 (62.5%%, 82.5%%)", p1.XPercent, p1.YPercent)
	}
	if !approx(p1.X, 625) || p1.Size != 3 {
		t.Errorf("particle 1 x=%v size=%v", p1.X, p1.Size)
	}

	for _, p := range dust.Particles {
		if p.Opacity != 0 {
			t.Errorf("第 0 帧粒子 %d 透明度应为 0，实际 %v", p.Index, p.Opacity)
		}
	}

	plateau := ComputeDust(ctx, 60)
	for _, p := range plateau.Particles {
		want := 0.3 + 0.1*float64(p.Index%3)
		if math.Abs(p.Opacity-want) > 1e-9 {
			t.Errorf("particle %d 平台透明度 %v，期望 %v", p.Index, p.Opacity, want)
		}
	}

	for _, p := range ComputeDust(ctx, 150).Particles {
		if p.Opacity != 0 {
			t.Errorf("第 150 帧粒子 %d 透明度应为 0，实际 %v", p.Index, p.Opacity)
		}
	}
}

// TestGradientAlpha 渐变中心最亮，70% 半径外透明
func TestGradientAlpha(t *testing.T) {
	ctx := newTestContext(1920, 1080)
	g := ComputeGradient(ctx)

	if !approx(g.CenterX, 960) || !approx(g.CenterY, 432) {
		t.Errorf("渐变中心 (%v, %v)，期望 (960, 432)", g.CenterX, g.CenterY)
	}
	center := GradientAlpha(g, g.CenterX, g.CenterY)
	if math.Abs(center-float64(g.Color.A)/255) > 1e-9 {
		t.Errorf("中心透明度 %v，期望 %v", center, float64(g.Color.A)/255)
	}
	if got := GradientAlpha(g, 0, 1080); got != 0 {
		t.Errorf("角落透明度 %v，期望 0", got)
	}
	if got := GradientAlpha(components.GradientState{}, 1, 1); got != 0 {
		t.Errorf("零半径透明度 %v，期望 0", got)
	}
}

// TestZeroViewport 视口为空时所有尺寸为 0
func TestZeroViewport(t *testing.T) {
	ctx := newTestContext(0, 0)
	name := ComputeStudioName(ctx, 30)
	if name.FontSize != 0 || name.TranslateY != 0 {
		t.Errorf("空视口名称 fontSize=%v translateY=%v", name.FontSize, name.TranslateY)
	}
	lines := ComputeLines(ctx, 45)
	for i, e := range lines.Edges {
		if e.Length() != 0 {
			t.Errorf("空视口 edge %d 长度 %v", i, e.Length())
		}
	}
	if ComputeLogo(ctx, 30).Size != 0 {
		t.Error("空视口 Logo 尺寸应为 0")
	}
}
