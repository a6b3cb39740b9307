package components

import (
	"image/color"
	"math"
)

// 每帧图层视觉状态
//
// 所有状态都是 (帧, 缩放尺寸) 的纯函数结果，每帧重新计算，不做累加。
// 坐标单位为像素，原点在视口左上角。

// LineSegment 一条线段
type LineSegment struct {
	X1, Y1 float64
	X2, Y2 float64
}

// Length 线段长度
func (s LineSegment) Length() float64 {
	return math.Hypot(s.X2-s.X1, s.Y2-s.Y1)
}

// LinesState 建筑线条
type LinesState struct {
	Progress float64
	// Edges 依次为上、下、左、右四条边线
	Edges         [4]LineSegment
	Diagonal      LineSegment
	EdgeColor     color.NRGBA
	DiagonalColor color.NRGBA
}

// StudioNameState 工作室名称
type StudioNameState struct {
	Text          string
	Progress      float64
	Opacity       float64
	TranslateY    float64 // 向下偏移，入场时归零
	LetterSpacing float64
	FontSize      float64
	CenterX       float64
	CenterY       float64 // 未加 TranslateY 的中心
	Color         color.NRGBA
}

// LogoState Logo 图片
type LogoState struct {
	Path       string
	Progress   float64
	Opacity    float64
	Scale      float64
	Size       float64 // 未缩放时的宽高
	CenterX    float64
	CenterY    float64
	Brightness float64
	Contrast   float64
}

// TaglineWordState 标语中的一个单词或分隔点
type TaglineWordState struct {
	Text        string
	IsSeparator bool
	LocalFrame  int // 扣除错开延迟后的帧
	Progress    float64
	Opacity     float64
	TranslateY  float64
	FontSize    float64
}

// TaglineState 标语
type TaglineState struct {
	Words         []TaglineWordState
	Gap           float64
	LetterSpacing float64
	CenterX       float64
	CenterY       float64
	MaxWidth      float64 // 可用宽度，超出时换行
	Color         color.NRGBA
}

// ParticleState 一颗浮尘粒子
type ParticleState struct {
	Index    int
	XPercent float64 // 视口宽度百分比
	YPercent float64 // 视口高度百分比
	X, Y     float64 // 像素坐标
	Size     float64
	Opacity  float64
}

// DustState 浮尘粒子层
type DustState struct {
	Particles []ParticleState
	Color     color.NRGBA
}

// GradientState 暖色椭圆径向渐变
type GradientState struct {
	CenterX, CenterY float64
	RadiusX, RadiusY float64 // 100% 处的半径
	Extent           float64 // 透明终止位置（半径比例）
	Color            color.NRGBA
}

// LayerState 一个分时图层在当前帧的状态
// 只有与 Kind 对应的指针非空。
type LayerState struct {
	Kind       LayerKind
	Phase      LayerPhase
	LocalFrame int
	ZIndex     int

	Lines      *LinesState
	StudioName *StudioNameState
	Logo       *LogoState
	Tagline    *TaglineState
}

// Composition 一帧的合成结果
//
// 合成顺序固定：背景 → 渐变 → 线条 → 名称 → Logo → 标语 → 浮尘。
// Layers 只包含需要渲染的分时图层，按 ZIndex 升序排列。
type Composition struct {
	Frame   int
	Visible bool
	// Opacity 合成整体不透明度（开头淡入 × 结尾淡出）
	Opacity         float64
	Width, Height   float64
	BaseSize        float64
	BackgroundColor color.NRGBA
	Gradient        GradientState
	Layers          []LayerState
	Dust            DustState
}

// Layer 按类型查找可见图层
func (c *Composition) Layer(kind LayerKind) (*LayerState, bool) {
	for i := range c.Layers {
		if c.Layers[i].Kind == kind {
			return &c.Layers[i], true
		}
	}
	return nil, false
}
