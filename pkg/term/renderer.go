// Package term 在终端里渲染开场动画
//
// 每个字符格按 CellWidth x CellHeight 像素折算，合成结果先换算成字符格坐标，
// 颜色用 24 位真彩色混合到背景上。
package term

import (
	"image/color"
	"math"
	"strings"

	"github.com/decker502/estudio-intro/pkg/components"
	"github.com/decker502/estudio-intro/pkg/config"
	"github.com/decker502/estudio-intro/pkg/systems"
	"github.com/decker502/estudio-intro/pkg/utils"
	"github.com/gdamore/tcell/v2"
)

// 一个字符格对应的像素尺寸
const (
	CellWidth  = 8.0
	CellHeight = 16.0
)

// CellWriter 渲染目标（tcell.Screen 满足该接口）
type CellWriter interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (width, height int)
}

// cell 一帧中单个字符格的内容
type cell struct {
	ch rune
	fg color.NRGBA // 预先混合好的前景色（不透明）
	bg color.NRGBA
}

// Renderer 把合成结果绘制到字符网格
type Renderer struct {
	screen CellWriter
	cols   int
	rows   int
	grid   []cell
}

// NewRenderer 创建终端渲染器
func NewRenderer(screen CellWriter) *Renderer {
	return &Renderer{screen: screen}
}

// Viewport 当前终端尺寸换算出的像素视口
func (r *Renderer) Viewport() config.Viewport {
	cols, rows := r.screen.Size()
	return ViewportForCells(cols, rows)
}

// ViewportForCells 字符格数换算为像素视口
func ViewportForCells(cols, rows int) config.Viewport {
	return config.Viewport{Width: float64(cols) * CellWidth, Height: float64(rows) * CellHeight}
}

// Draw 绘制一帧
//
// 落地页底色在最下层，覆盖层容器按 containerOpacity 叠加，
// 合成内容再乘以合成自身的不透明度。
func (r *Renderer) Draw(comp components.Composition, containerOpacity float64) {
	r.reset(config.PageBackgroundColor)

	if containerOpacity > 0 {
		r.fillBackground(comp.BackgroundColor, containerOpacity)

		alpha := containerOpacity * comp.Opacity
		if comp.Visible && alpha > 0 {
			r.drawGradient(comp.Gradient, alpha)
			for i := range comp.Layers {
				layer := &comp.Layers[i]
				switch {
				case layer.Lines != nil:
					r.drawLines(layer.Lines, alpha)
				case layer.StudioName != nil:
					r.drawStudioName(layer.StudioName, alpha)
				case layer.Logo != nil:
					r.drawLogo(layer.Logo, alpha)
				case layer.Tagline != nil:
					r.drawTagline(layer.Tagline, alpha)
				}
			}
			r.drawDust(comp.Dust, alpha)
		}
	}

	r.flush()
}

// pageLine 落地页中的一行
type pageLine struct {
	text string
	clr  color.NRGBA
}

// DrawPage 绘制落地页文本（开场卸载之后使用）
func (r *Renderer) DrawPage(content *config.PageContent, scroll int) {
	r.reset(config.PageBackgroundColor)
	if content == nil {
		r.flush()
		return
	}

	margin := 2
	width := float64(max(r.cols-2*margin, 1))
	measure := func(s string) float64 { return float64(len([]rune(s))) }

	var lines []pageLine
	add := func(s string, clr color.NRGBA) {
		for _, l := range utils.WrapWords(s, width, measure) {
			lines = append(lines, pageLine{text: l, clr: clr})
		}
	}
	for _, section := range content.Sections {
		add("", config.PageInkColor)
		if section.Eyebrow != "" {
			add(strings.ToUpper(section.Eyebrow), config.PageAccentColor)
		}
		add(section.Heading, config.PageInkColor)
		for _, p := range section.Body {
			add("  "+p, config.PageInkColor)
		}
	}
	add("", config.PageInkColor)
	add(content.Footer, config.PageAccentColor)

	// 第一行固定为品牌和导航
	r.putString(margin, 0, content.Brand, config.PageInkColor, 1)
	nav := strings.Join(content.Navigation, "  ")
	r.putString(r.cols-margin-len([]rune(nav)), 0, nav, config.PageInkColor, 1)

	scroll = max(0, min(scroll, len(lines)-1))
	for i := scroll; i < len(lines) && i-scroll+2 < r.rows; i++ {
		r.putString(margin, i-scroll+2, lines[i].text, lines[i].clr, 1)
	}
	r.flush()
}

func (r *Renderer) reset(bg color.NRGBA) {
	r.cols, r.rows = r.screen.Size()
	n := max(r.cols, 0) * max(r.rows, 0)
	if cap(r.grid) < n {
		r.grid = make([]cell, n)
	}
	r.grid = r.grid[:n]
	for i := range r.grid {
		r.grid[i] = cell{ch: ' ', fg: bg, bg: bg}
	}
}

func (r *Renderer) flush() {
	for y := 0; y < r.rows; y++ {
		for x := 0; x < r.cols; x++ {
			c := r.grid[y*r.cols+x]
			style := tcell.StyleDefault.
				Foreground(toTcell(c.fg)).
				Background(toTcell(c.bg))
			r.screen.SetContent(x, y, c.ch, nil, style)
		}
	}
}

func (r *Renderer) at(x, y int) *cell {
	if x < 0 || y < 0 || x >= r.cols || y >= r.rows {
		return nil
	}
	return &r.grid[y*r.cols+x]
}

func (r *Renderer) fillBackground(bg color.NRGBA, opacity float64) {
	a := opacity * float64(bg.A) / 255
	for i := range r.grid {
		r.grid[i].bg = blend(r.grid[i].bg, bg, a)
		r.grid[i].fg = r.grid[i].bg
	}
}

func (r *Renderer) drawGradient(g components.GradientState, alpha float64) {
	base := alpha * float64(g.Color.A) / 255
	for y := 0; y < r.rows; y++ {
		for x := 0; x < r.cols; x++ {
			px := (float64(x) + 0.5) * CellWidth
			py := (float64(y) + 0.5) * CellHeight
			a := systems.GradientAlpha(g, px, py) * base
			if a <= 0 {
				continue
			}
			c := &r.grid[y*r.cols+x]
			c.bg = blend(c.bg, g.Color, a)
			if c.ch == ' ' {
				c.fg = c.bg
			}
		}
	}
}

func (r *Renderer) drawLines(lines *components.LinesState, alpha float64) {
	for i, e := range lines.Edges {
		ch := '─'
		if i >= 2 {
			ch = '│'
		}
		r.drawSegment(e, ch, lines.EdgeColor, alpha)
	}
	r.drawSegment(lines.Diagonal, '╲', lines.DiagonalColor, alpha)
}

// drawSegment 按字符格采样线段
func (r *Renderer) drawSegment(seg components.LineSegment, ch rune, clr color.NRGBA, alpha float64) {
	length := seg.Length()
	if length <= 0 {
		return
	}
	steps := int(math.Ceil(math.Max(math.Abs(seg.X2-seg.X1)/CellWidth, math.Abs(seg.Y2-seg.Y1)/CellHeight)))
	steps = max(steps, 1)
	a := alpha * float64(clr.A) / 255
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := seg.X1 + (seg.X2-seg.X1)*t
		y := seg.Y1 + (seg.Y2-seg.Y1)*t
		if c := r.at(int(x/CellWidth), int(y/CellHeight)); c != nil {
			c.ch = ch
			c.fg = blend(c.bg, clr, a)
		}
	}
}

func (r *Renderer) drawStudioName(name *components.StudioNameState, alpha float64) {
	if name.Opacity <= 0 {
		return
	}
	label := strings.ToUpper(name.Text)
	spacing := int(math.Round(name.LetterSpacing / CellWidth))
	width := len([]rune(label)) * (1 + spacing)
	x := int(math.Round(name.CenterX/CellWidth)) - width/2
	y := int((name.CenterY + name.TranslateY) / CellHeight)
	r.putSpaced(x, y, label, spacing, name.Color, alpha*name.Opacity)
}

func (r *Renderer) drawLogo(logo *components.LogoState, alpha float64) {
	if logo.Opacity <= 0 || logo.Size <= 0 || logo.Scale <= 0 {
		return
	}
	size := logo.Size * logo.Scale
	x0 := int(math.Round((logo.CenterX - size/2) / CellWidth))
	x1 := int(math.Round((logo.CenterX + size/2) / CellWidth))
	y0 := int(math.Round((logo.CenterY - size/2) / CellHeight))
	y1 := int(math.Round((logo.CenterY + size/2) / CellHeight))

	// Logo 在终端里画成方框加字母
	clr := logoColor(logo)
	a := alpha * logo.Opacity
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			c := r.at(x, y)
			if c == nil {
				continue
			}
			switch {
			case (x == x0 || x == x1) && (y == y0 || y == y1):
				c.ch = '+'
			case y == y0 || y == y1:
				c.ch = '─'
			case x == x0 || x == x1:
				c.ch = '│'
			default:
				continue
			}
			c.fg = blend(c.bg, clr, a)
		}
	}
	cx := int(math.Round(logo.CenterX / CellWidth))
	cy := int(logo.CenterY / CellHeight)
	if c := r.at(cx, cy); c != nil {
		c.ch = 'G'
		c.fg = blend(c.bg, clr, a)
	}
}

// logoColor 亮度/对比度作用在浅色字形上
func logoColor(logo *components.LogoState) color.NRGBA {
	adjust := func(v uint8) uint8 {
		x := float64(v) / 255
		x = (x*logo.Brightness-0.5)*logo.Contrast + 0.5
		return uint8(math.Round(utils.Clamp01(x) * 255))
	}
	base := config.PageBackgroundColor
	return color.NRGBA{R: adjust(base.R), G: adjust(base.G), B: adjust(base.B), A: 0xff}
}

func (r *Renderer) drawTagline(tagline *components.TaglineState, alpha float64) {
	// 终端里每个字符占一格，字间距四舍五入到整格
	spacing := int(math.Round(tagline.LetterSpacing / CellWidth))
	state := *tagline
	state.LetterSpacing = float64(spacing) * CellWidth
	measure := func(s string, _ float64) float64 {
		return float64(len([]rune(s))) * CellWidth
	}

	for _, p := range systems.LayoutTagline(state, measure) {
		w := tagline.Words[p.Index]
		if w.Opacity <= 0 {
			continue
		}
		x := int(math.Round(p.X / CellWidth))
		y := int((p.CenterY + w.TranslateY) / CellHeight)
		r.putSpaced(x, y, strings.ToUpper(w.Text), spacing, tagline.Color, alpha*w.Opacity)
	}
}

func (r *Renderer) drawDust(dust components.DustState, alpha float64) {
	base := alpha * float64(dust.Color.A) / 255
	for _, p := range dust.Particles {
		if p.Opacity <= 0 {
			continue
		}
		c := r.at(int((p.X+p.Size/2)/CellWidth), int((p.Y+p.Size/2)/CellHeight))
		if c == nil || c.ch != ' ' {
			continue
		}
		c.ch = '·'
		c.fg = blend(c.bg, dust.Color, base*p.Opacity)
	}
}

func (r *Renderer) putSpaced(x, y int, s string, spacing int, clr color.NRGBA, alpha float64) {
	for _, ch := range s {
		if c := r.at(x, y); c != nil && ch != ' ' {
			c.ch = ch
			c.fg = blend(c.bg, clr, alpha)
		}
		x += 1 + spacing
	}
}

func (r *Renderer) putString(x, y int, s string, clr color.NRGBA, alpha float64) {
	r.putSpaced(x, y, s, 0, clr, alpha)
}

// blend 把 fg 以 alpha 叠加到 bg 上，结果不透明
func blend(bg, fg color.NRGBA, alpha float64) color.NRGBA {
	a := utils.Clamp01(alpha)
	mix := func(b, f uint8) uint8 {
		return uint8(math.Round(float64(b) + (float64(f)-float64(b))*a))
	}
	return color.NRGBA{R: mix(bg.R, fg.R), G: mix(bg.G, fg.G), B: mix(bg.B, fg.B), A: 0xff}
}

func toTcell(c color.NRGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
