package systems

import (
	"math"

	"github.com/decker502/estudio-intro/pkg/components"
	"github.com/decker502/estudio-intro/pkg/config"
	"github.com/decker502/estudio-intro/pkg/utils"
)

// 线条布局（视口比例）
const (
	linesTopY        = 0.28
	linesBottomY     = 0.72
	linesHorizInset  = 0.10 // 水平线距左/右边缘
	linesHorizLength = 0.80
	linesVertInsetX  = 0.20 // 竖线距左/右边缘
	linesVertInsetY  = 0.15 // 竖线距上/下边缘
	linesVertLength  = 0.70
)

// 标语
const (
	taglineRiseFactor = 0.9 // 入场位移 = 单词字号 × 0.9
	taglineLineHeight = 1.2 // 行高倍数
)

// 浮尘
const (
	dustSeedStep     = 137.5
	dustBaseOpacity  = 0.3
	dustOpacityStep  = 0.1
	dustFadeInSecond = 1.0
)

// LayerContext 图层计算的只读输入
// 由视口一次性推导，每帧传给所有图层函数。
type LayerContext struct {
	FPS    int
	Width  float64
	Height float64
	Scale  config.ResolvedScale
	Config *config.IntroConfig
}

// NewLayerContext 根据配置和视口创建图层上下文
func NewLayerContext(cfg *config.IntroConfig, vp config.Viewport) LayerContext {
	ctx := LayerContext{
		FPS:    cfg.FPS,
		Config: cfg,
		Scale:  config.ResolveViewportScale(vp),
	}
	if !vp.IsZero() {
		ctx.Width, ctx.Height = vp.Width, vp.Height
	}
	return ctx
}

// BackgroundOpacity 合成整体不透明度：开头淡入 × 结尾淡出
func (ctx LayerContext) BackgroundOpacity(frame float64) float64 {
	fps := float64(ctx.FPS)
	bg := ctx.Config.Background
	fadeIn := utils.Interpolate(frame, [2]float64{0, bg.FadeInSeconds * fps}, [2]float64{0, 1})
	fadeOut := utils.Interpolate(frame,
		[2]float64{bg.FadeOutStartSeconds * fps, ctx.Config.DurationSeconds * fps},
		[2]float64{1, 0})
	return fadeIn * fadeOut
}

// ComputeGradient 计算暖色渐变的几何
// 椭圆以最远角为边界（radial-gradient 的 farthest-corner 规则）。
func ComputeGradient(ctx LayerContext) components.GradientState {
	g := ctx.Config.Background.Gradient
	cx := g.CenterX * ctx.Width
	cy := g.CenterY * ctx.Height
	dx := math.Max(cx, ctx.Width-cx)
	dy := math.Max(cy, ctx.Height-cy)
	return components.GradientState{
		CenterX: cx,
		CenterY: cy,
		RadiusX: dx * math.Sqrt2,
		RadiusY: dy * math.Sqrt2,
		Extent:  g.Extent,
		Color:   g.Color.NRGBA(),
	}
}

// GradientAlpha 渐变在 (x, y) 处的不透明度，范围 [0, Color.A/255]
func GradientAlpha(g components.GradientState, x, y float64) float64 {
	if !(g.RadiusX > 0) || !(g.RadiusY > 0) || !(g.Extent > 0) {
		return 0
	}
	d := math.Hypot((x-g.CenterX)/g.RadiusX, (y-g.CenterY)/g.RadiusY)
	return utils.Interpolate(d, [2]float64{0, g.Extent}, [2]float64{1, 0}) * float64(g.Color.A) / 255
}

// ComputeLines 建筑线条：四条边线和中心斜线随同一弹簧生长
func ComputeLines(ctx LayerContext, localFrame int) components.LinesState {
	cfg := ctx.Config.Lines
	p := utils.Spring(utils.SpringParams{
		Frame:          float64(localFrame),
		FPS:            ctx.FPS,
		Config:         cfg.Spring,
		DurationFrames: float64(config.SecondsToFrames(cfg.GrowSeconds, ctx.FPS)),
	})

	w, h := ctx.Width, ctx.Height
	horiz := p * linesHorizLength * w
	vert := p * linesVertLength * h

	left := linesHorizInset * w
	right := (1 - linesHorizInset) * w
	top := linesVertInsetY * h
	bottom := (1 - linesVertInsetY) * h

	// 45° 斜线，中心在视口中心
	half := p * ctx.Scale.DiagonalLineMax / 2 * math.Cos(math.Pi/4)
	cx, cy := w/2, h/2

	return components.LinesState{
		Progress: p,
		Edges: [4]components.LineSegment{
			{X1: left, Y1: linesTopY * h, X2: left + horiz, Y2: linesTopY * h},
			{X1: right - horiz, Y1: linesBottomY * h, X2: right, Y2: linesBottomY * h},
			{X1: linesVertInsetX * w, Y1: top, X2: linesVertInsetX * w, Y2: top + vert},
			{X1: (1 - linesVertInsetX) * w, Y1: bottom - vert, X2: (1 - linesVertInsetX) * w, Y2: bottom},
		},
		Diagonal:      components.LineSegment{X1: cx - half, Y1: cy - half, X2: cx + half, Y2: cy + half},
		EdgeColor:     cfg.EdgeColor.NRGBA(),
		DiagonalColor: cfg.DiagonalColor.NRGBA(),
	}
}

// ComputeStudioName 工作室名称：弹性入场，上移、淡入，字间距由宽收紧
func ComputeStudioName(ctx LayerContext, localFrame int) components.StudioNameState {
	cfg := ctx.Config.StudioName
	s := ctx.Scale
	p := utils.Spring(utils.SpringParams{Frame: float64(localFrame), FPS: ctx.FPS, Config: cfg.Spring})

	return components.StudioNameState{
		Text:          cfg.Text,
		Progress:      p,
		Opacity:       utils.Interpolate(p, [2]float64{0, 1}, [2]float64{0, 1}),
		TranslateY:    utils.Interpolate(p, [2]float64{0, 1}, [2]float64{s.TranslateYOffset, 0}),
		LetterSpacing: utils.Interpolate(p, [2]float64{0, 1}, [2]float64{s.LetterSpacingMax * cfg.LetterSpacingStart, s.LetterSpacingMax}),
		FontSize:      s.BaseSize,
		CenterX:       ctx.Width / 2,
		CenterY:       (ctx.Height - s.PaddingBottom) / 2,
		Color:         cfg.Color.NRGBA(),
	}
}

// ComputeLogo Logo：弹性缩放 0.7 → 1 并淡入
func ComputeLogo(ctx LayerContext, localFrame int) components.LogoState {
	cfg := ctx.Config.Logo
	s := ctx.Scale
	p := utils.Spring(utils.SpringParams{Frame: float64(localFrame), FPS: ctx.FPS, Config: cfg.Spring})

	return components.LogoState{
		Path:       cfg.Path,
		Progress:   p,
		Opacity:    utils.Interpolate(p, [2]float64{0, 1}, [2]float64{0, 1}),
		Scale:      utils.Interpolate(p, [2]float64{0, 1}, [2]float64{cfg.ScaleFrom, 1}),
		Size:       s.LogoSize,
		CenterX:    ctx.Width / 2,
		CenterY:    ctx.Height/2 + s.MarginTop/2,
		Brightness: cfg.Brightness,
		Contrast:   cfg.Contrast,
	}
}

// ComputeTagline 标语：逐词错开入场
// 第 i 个词的弹簧从本地第 staggerFrames×i 帧开始。
func ComputeTagline(ctx LayerContext, localFrame int) components.TaglineState {
	cfg := ctx.Config.Tagline
	tw := ctx.Scale.TaglineWidths

	words := make([]components.TaglineWordState, len(cfg.Words))
	for i, text := range cfg.Words {
		wordFrame := localFrame - cfg.StaggerFrames*i
		p := utils.Spring(utils.SpringParams{Frame: float64(wordFrame), FPS: ctx.FPS, Config: cfg.Spring})

		separator := text == cfg.Separator
		size := tw.Base
		if separator {
			size = tw.Dot
		}
		words[i] = components.TaglineWordState{
			Text:        text,
			IsSeparator: separator,
			LocalFrame:  wordFrame,
			Progress:    p,
			Opacity:     utils.Interpolate(p, [2]float64{0, 1}, [2]float64{0, 1}),
			TranslateY:  utils.Interpolate(p, [2]float64{0, 1}, [2]float64{tw.Base * taglineRiseFactor, 0}),
			FontSize:    size,
		}
	}

	return components.TaglineState{
		Words:         words,
		Gap:           tw.Gap,
		LetterSpacing: tw.LS,
		CenterX:       ctx.Width / 2,
		CenterY:       ctx.Height/2 + ctx.Scale.TaglinePaddingTop/2,
		MaxWidth:      ctx.Width * (1 - 2*cfg.SideMargin),
		Color:         cfg.Color.NRGBA(),
	}
}

// TaglinePlacement 标语单词的排版位置（未加入场位移）
type TaglinePlacement struct {
	Index   int
	X       float64 // 左边缘
	CenterY float64 // 所在行的垂直中心
	Width   float64
	Row     int
}

// TextMeasurer 返回文本在指定字号下的宽度（不含字间距）
type TextMeasurer func(text string, fontSize float64) float64

// LayoutTagline 按可用宽度换行排版标语
//
// 单词之间和行之间都使用 Gap 间距；每行水平居中，整体以 CenterY 垂直居中。
// 单个单词超过可用宽度时独占一行，不截断。
func LayoutTagline(state components.TaglineState, measure TextMeasurer) []TaglinePlacement {
	if len(state.Words) == 0 || measure == nil {
		return nil
	}

	type row struct {
		start, end int // [start, end)
		width      float64
		height     float64
	}

	widths := make([]float64, len(state.Words))
	for i, w := range state.Words {
		runes := float64(len([]rune(w.Text)))
		widths[i] = measure(w.Text, w.FontSize) + state.LetterSpacing*runes
	}

	var rows []row
	cur := row{}
	for i := range state.Words {
		add := widths[i]
		if i > cur.start {
			add += state.Gap
		}
		if i > cur.start && cur.width+add > state.MaxWidth {
			rows = append(rows, cur)
			cur = row{start: i}
			add = widths[i]
		}
		cur.end = i + 1
		cur.width += add
		cur.height = math.Max(cur.height, state.Words[i].FontSize*taglineLineHeight)
	}
	rows = append(rows, cur)

	total := 0.0
	for i, r := range rows {
		if i > 0 {
			total += state.Gap
		}
		total += r.height
	}

	placements := make([]TaglinePlacement, 0, len(state.Words))
	y := state.CenterY - total/2
	for ri, r := range rows {
		x := state.CenterX - r.width/2
		for i := r.start; i < r.end; i++ {
			placements = append(placements, TaglinePlacement{
				Index:   i,
				X:       x,
				CenterY: y + r.height/2,
				Width:   widths[i],
				Row:     ri,
			})
			x += widths[i] + state.Gap
		}
		y += r.height + state.Gap
	}
	return placements
}

// ComputeDust 浮尘粒子：位置由序号决定，按各自周期循环上升
// 使用全局帧，整个合成期间都挂载。
func ComputeDust(ctx LayerContext, globalFrame int) components.DustState {
	cfg := ctx.Config.Dust
	fps := float64(ctx.FPS)
	frame := float64(globalFrame)

	particles := make([]components.ParticleState, cfg.Count)
	for i := range particles {
		seed := float64(i) * dustSeedStep
		x := utils.PositiveMod(seed*7, 100)
		startY := 30 + utils.PositiveMod(seed*3, 60)
		// 相位按整数帧取模，保证严格周期
		periodFrames := max(int(math.Round(DustPeriodSeconds(i)*fps)), 1)
		progress := float64(utils.PositiveModInt(globalFrame, periodFrames)) / float64(periodFrames)
		y := startY - progress*cfg.RisePercent

		peak := dustBaseOpacity + float64(i%3)*dustOpacityStep
		opacity := utils.InterpolatePiecewise(frame,
			[]float64{0, dustFadeInSecond * fps, ctx.Config.Background.FadeOutStartSeconds * fps, ctx.Config.DurationSeconds * fps},
			[]float64{0, peak, peak, 0})

		particles[i] = components.ParticleState{
			Index:    i,
			XPercent: x,
			YPercent: y,
			X:        x / 100 * ctx.Width,
			Y:        y / 100 * ctx.Height,
			Size:     float64(2 + i%2),
			Opacity:  opacity,
		}
	}
	return components.DustState{Particles: particles, Color: cfg.Color.NRGBA()}
}

// DustPeriodSeconds 第 i 颗粒子上升一个周期的秒数
func DustPeriodSeconds(i int) float64 {
	return float64(4 + i%3)
}
