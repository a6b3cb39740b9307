package scenes

import (
	"image/color"
	"log"
	"math"

	"github.com/decker502/estudio-intro/pkg/config"
	"github.com/decker502/estudio-intro/pkg/game"
	"github.com/decker502/estudio-intro/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// PageScene 落地页
// 开场动画播放期间在覆盖层下方绘制，卸载后成为当前场景。
type PageScene struct {
	resourceManager *game.ResourceManager
	content         *config.PageContent
	fontPath        string

	scrollY       float64
	contentHeight float64 // 最近一次绘制时的内容总高度
	viewHeight    float64
	scroller      *utils.TouchScroller

	fontWarned bool
}

// NewPageScene 创建落地页场景
func NewPageScene(rm *game.ResourceManager, content *config.PageContent, fontPath string) *PageScene {
	return &PageScene{
		resourceManager: rm,
		content:         content,
		fontPath:        fontPath,
		scroller:        utils.NewTouchScroller(),
	}
}

// Update 处理滚动输入
func (s *PageScene) Update(deltaTime float64) {
	_, wheelY := ebiten.Wheel()
	delta := -wheelY * config.PageScrollStep

	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		delta += config.PageScrollStep
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		delta -= config.PageScrollStep
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageDown) {
		delta += s.viewHeight * 0.9
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageUp) {
		delta -= s.viewHeight * 0.9
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		delta = -s.scrollY
	}

	delta += s.scroller.Update()
	if delta != 0 {
		s.ScrollBy(delta)
	}
}

// ScrollBy 滚动页面，结果限制在 [0, MaxScroll]
func (s *PageScene) ScrollBy(delta float64) {
	s.scrollY = math.Max(0, math.Min(s.scrollY+delta, s.MaxScroll()))
}

// ScrollY 当前滚动位置
func (s *PageScene) ScrollY() float64 {
	return s.scrollY
}

// MaxScroll 最大滚动距离（首次绘制前为 0）
func (s *PageScene) MaxScroll() float64 {
	return math.Max(0, s.contentHeight-s.viewHeight)
}

// Draw 绘制落地页
func (s *PageScene) Draw(screen *ebiten.Image) {
	screen.Fill(config.PageBackgroundColor)
	if s.content == nil {
		return
	}

	b := screen.Bounds()
	width := float64(b.Dx())
	s.viewHeight = float64(b.Dy())
	textWidth := math.Max(width-2*config.PageMarginX, 1)

	y := config.PageNavHeight + config.PageSectionSpacing - s.scrollY
	for _, section := range s.content.Sections {
		if section.Eyebrow != "" {
			y = s.drawParagraph(screen, section.Eyebrow, config.PageEyebrowSize, config.PageAccentColor, y, textWidth)
		}
		y = s.drawParagraph(screen, section.Heading, config.PageHeadingSize, config.PageInkColor, y, textWidth)
		y += config.PageBodySize * 0.5
		for _, paragraph := range section.Body {
			y = s.drawParagraph(screen, paragraph, config.PageBodySize, config.PageInkColor, y, textWidth)
		}
		y += config.PageSectionSpacing
		vector.StrokeLine(screen, float32(config.PageMarginX), float32(y-config.PageSectionSpacing/2),
			float32(width-config.PageMarginX), float32(y-config.PageSectionSpacing/2), 1, config.PageRuleColor, true)
	}
	if s.content.Footer != "" {
		y = s.drawParagraph(screen, s.content.Footer, config.PageNavFontSize, config.PageAccentColor, y, textWidth)
	}
	s.contentHeight = y + s.scrollY + config.PageSectionSpacing
	s.ScrollBy(0)

	s.drawNavigation(screen, width)
}

// drawNavigation 绘制固定在顶部的导航栏
func (s *PageScene) drawNavigation(screen *ebiten.Image, width float64) {
	vector.DrawFilledRect(screen, 0, 0, float32(width), float32(config.PageNavHeight), config.PageBackgroundColor, false)
	vector.StrokeLine(screen, 0, float32(config.PageNavHeight), float32(width), float32(config.PageNavHeight), 1, config.PageRuleColor, false)

	centerY := config.PageNavHeight / 2
	if face := s.face(config.PageBrandFontSize); face != nil {
		drawText(screen, s.content.Brand, face, config.PageMarginX, centerY, config.PageInkColor, text.AlignStart)
	}

	face := s.face(config.PageNavFontSize)
	if face == nil {
		return
	}
	x := width - config.PageMarginX
	for i := len(s.content.Navigation) - 1; i >= 0; i-- {
		item := s.content.Navigation[i]
		drawText(screen, item, face, x, centerY, config.PageInkColor, text.AlignEnd)
		x -= text.Advance(item, face) + config.PageMarginX/2
	}
}

// drawParagraph 换行绘制一段文本，返回下一段的起始 y
func (s *PageScene) drawParagraph(screen *ebiten.Image, paragraph string, size float64, clr color.NRGBA, y, maxWidth float64) float64 {
	lineHeight := size * config.PageLineSpacing
	face := s.face(size)
	if face == nil {
		return y + lineHeight
	}

	for _, line := range utils.WrapText(paragraph, face, maxWidth) {
		// 只绘制可见的行
		if y+lineHeight > 0 && y < s.viewHeight {
			drawText(screen, line, face, config.PageMarginX, y+lineHeight/2, clr, text.AlignStart)
		}
		y += lineHeight
	}
	return y
}

func drawText(screen *ebiten.Image, s string, face *text.GoTextFace, x, centerY float64, clr color.Color, align text.Align) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, centerY)
	op.ColorScale.ScaleWithColor(clr)
	op.LayoutOptions.PrimaryAlign = align
	op.LayoutOptions.SecondaryAlign = text.AlignCenter
	text.Draw(screen, s, face, op)
}

func (s *PageScene) face(size float64) *text.GoTextFace {
	if s.resourceManager == nil {
		return nil
	}
	face, err := s.resourceManager.LoadFont(s.fontPath, size)
	if err != nil {
		if !s.fontWarned {
			log.Printf("[PageScene] 字体加载失败: %v", err)
			s.fontWarned = true
		}
		return nil
	}
	return face
}
