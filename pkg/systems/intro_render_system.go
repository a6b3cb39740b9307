package systems

import (
	"image/color"
	"log"
	"math"
	"strings"

	"github.com/decker502/estudio-intro/pkg/components"
	"github.com/decker502/estudio-intro/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/colorm"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// gradientDownscale 渐变纹理相对视口的缩小倍数（渐变很平滑，低分辨率即可）
const gradientDownscale = 4

// IntroRenderSystem 把一帧合成结果绘制到 ebiten 图像上
//
// 只负责图层内容，合成整体不透明度（Composition.Opacity）和容器淡出
// 由调用方在把离屏图像贴到屏幕时统一施加。
type IntroRenderSystem struct {
	resourceManager *game.ResourceManager
	fontPath        string
	logo            *ebiten.Image

	gradient    *ebiten.Image
	gradientKey components.GradientState

	fontWarned bool
}

// NewIntroRenderSystem 创建渲染系统
// fontPath 为空时使用内置字体。
func NewIntroRenderSystem(rm *game.ResourceManager, fontPath string) *IntroRenderSystem {
	return &IntroRenderSystem{
		resourceManager: rm,
		fontPath:        fontPath,
	}
}

// SetLogo 设置 Logo 图片，nil 表示加载失败（Logo 位置留空）
func (s *IntroRenderSystem) SetLogo(img *ebiten.Image) {
	s.logo = img
}

// Draw 绘制合成结果
func (s *IntroRenderSystem) Draw(dst *ebiten.Image, comp components.Composition) {
	if !comp.Visible {
		return
	}

	dst.Fill(comp.BackgroundColor)
	s.drawGradient(dst, comp)

	for i := range comp.Layers {
		layer := &comp.Layers[i]
		switch {
		case layer.Lines != nil:
			s.drawLines(dst, layer.Lines)
		case layer.StudioName != nil:
			s.drawStudioName(dst, layer.StudioName)
		case layer.Logo != nil:
			s.drawLogo(dst, layer.Logo)
		case layer.Tagline != nil:
			s.drawTagline(dst, layer.Tagline)
		}
	}

	s.drawDust(dst, comp.Dust)
}

// drawGradient 绘制暖色渐变
// 渐变只取决于视口，纹理按视口缓存。
func (s *IntroRenderSystem) drawGradient(dst *ebiten.Image, comp components.Composition) {
	g := comp.Gradient
	if g.Color.A == 0 || comp.Width <= 0 || comp.Height <= 0 {
		return
	}

	if s.gradient == nil || s.gradientKey != g {
		w := max(int(math.Ceil(comp.Width/gradientDownscale)), 1)
		h := max(int(math.Ceil(comp.Height/gradientDownscale)), 1)
		pixels := make([]byte, 4*w*h)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				px := (float64(x) + 0.5) * gradientDownscale
				py := (float64(y) + 0.5) * gradientDownscale
				a := GradientAlpha(g, px, py)
				// WritePixels 使用预乘 alpha
				i := 4 * (y*w + x)
				pixels[i] = uint8(float64(g.Color.R) * a)
				pixels[i+1] = uint8(float64(g.Color.G) * a)
				pixels[i+2] = uint8(float64(g.Color.B) * a)
				pixels[i+3] = uint8(255 * a)
			}
		}
		if s.gradient != nil {
			s.gradient.Deallocate()
		}
		s.gradient = ebiten.NewImage(w, h)
		s.gradient.WritePixels(pixels)
		s.gradientKey = g
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(gradientDownscale, gradientDownscale)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(s.gradient, op)
}

func (s *IntroRenderSystem) drawLines(dst *ebiten.Image, lines *components.LinesState) {
	for _, e := range lines.Edges {
		strokeSegment(dst, e, lines.EdgeColor)
	}
	strokeSegment(dst, lines.Diagonal, lines.DiagonalColor)
}

func strokeSegment(dst *ebiten.Image, seg components.LineSegment, clr color.NRGBA) {
	if seg.Length() <= 0 || clr.A == 0 {
		return
	}
	vector.StrokeLine(dst, float32(seg.X1), float32(seg.Y1), float32(seg.X2), float32(seg.Y2), 1, clr, true)
}

func (s *IntroRenderSystem) drawStudioName(dst *ebiten.Image, name *components.StudioNameState) {
	if name.Opacity <= 0 || name.FontSize <= 0 {
		return
	}
	face := s.face(name.FontSize)
	if face == nil {
		return
	}

	label := strings.ToUpper(name.Text)
	width := spacedWidth(label, face, name.LetterSpacing)
	s.drawSpaced(dst, label, face, name.LetterSpacing,
		name.CenterX-width/2, name.CenterY+name.TranslateY, name.Color, name.Opacity)
}

func (s *IntroRenderSystem) drawLogo(dst *ebiten.Image, logo *components.LogoState) {
	if s.logo == nil || logo.Opacity <= 0 || logo.Size <= 0 || logo.Scale <= 0 {
		return
	}

	// object-fit: contain
	b := s.logo.Bounds()
	iw, ih := float64(b.Dx()), float64(b.Dy())
	if iw == 0 || ih == 0 {
		return
	}
	fit := math.Min(logo.Size/iw, logo.Size/ih) * logo.Scale

	var cm colorm.ColorM
	// brightness(b) contrast(c): x' = (x·b − 0.5)·c + 0.5
	k := logo.Brightness * logo.Contrast
	offset := 0.5 * (1 - logo.Contrast)
	cm.Scale(k, k, k, logo.Opacity)
	cm.Translate(offset, offset, offset, 0)

	op := &colorm.DrawImageOptions{}
	op.GeoM.Translate(-iw/2, -ih/2)
	op.GeoM.Scale(fit, fit)
	op.GeoM.Translate(logo.CenterX, logo.CenterY)
	op.Filter = ebiten.FilterLinear
	colorm.DrawImage(dst, s.logo, cm, op)
}

func (s *IntroRenderSystem) drawTagline(dst *ebiten.Image, tagline *components.TaglineState) {
	if len(tagline.Words) == 0 || tagline.Words[0].FontSize <= 0 {
		return
	}

	measure := func(word string, size float64) float64 {
		face := s.face(size)
		if face == nil {
			return 0
		}
		return text.Advance(strings.ToUpper(word), face)
	}

	for _, p := range LayoutTagline(*tagline, measure) {
		w := tagline.Words[p.Index]
		if w.Opacity <= 0 {
			continue
		}
		face := s.face(w.FontSize)
		if face == nil {
			continue
		}
		s.drawSpaced(dst, strings.ToUpper(w.Text), face, tagline.LetterSpacing,
			p.X, p.CenterY+w.TranslateY, tagline.Color, w.Opacity)
	}
}

func (s *IntroRenderSystem) drawDust(dst *ebiten.Image, dust components.DustState) {
	for _, p := range dust.Particles {
		if p.Opacity <= 0 {
			continue
		}
		clr := dust.Color
		clr.A = uint8(math.Round(float64(clr.A) * p.Opacity))
		r := p.Size / 2
		vector.DrawFilledCircle(dst, float32(p.X+r), float32(p.Y+r), float32(r), clr, true)
	}
}

// drawSpaced 逐字绘制（每个字后追加 letterSpacing），y 为垂直中心
func (s *IntroRenderSystem) drawSpaced(dst *ebiten.Image, label string, face *text.GoTextFace, spacing, x, y float64, clr color.NRGBA, opacity float64) {
	for _, r := range label {
		glyph := string(r)
		op := &text.DrawOptions{}
		op.GeoM.Translate(x, y)
		op.ColorScale.ScaleWithColor(clr)
		op.ColorScale.ScaleAlpha(float32(opacity))
		op.LayoutOptions.SecondaryAlign = text.AlignCenter
		text.Draw(dst, glyph, face, op)
		x += text.Advance(glyph, face) + spacing
	}
}

// spacedWidth 含字间距的文本宽度
func spacedWidth(label string, face *text.GoTextFace, spacing float64) float64 {
	return text.Advance(label, face) + spacing*float64(len([]rune(label)))
}

// face 获取字体，失败时只记录一次日志
func (s *IntroRenderSystem) face(size float64) *text.GoTextFace {
	if s.resourceManager == nil || size <= 0 {
		return nil
	}
	face, err := s.resourceManager.LoadFont(s.fontPath, size)
	if err != nil {
		if !s.fontWarned {
			log.Printf("[IntroRenderSystem] 字体加载失败: %v", err)
			s.fontWarned = true
		}
		return nil
	}
	return face
}
