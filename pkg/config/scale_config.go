package config

import "math"

// 响应式缩放配置
//
// 开场动画按 1920x1080 设计稿制作，所有尺寸都以设计稿字号 72 为基准。
// 实际尺寸由视口宽高推导：baseSize = min(width*0.08, height*0.1, 72)，
// 其余尺寸都是 baseSize 的固定倍数。72 是上限而不是放大系数，
// 大屏不会超过设计稿尺寸。

const (
	// ReferenceWidth 设计稿宽度
	ReferenceWidth = 1920.0
	// ReferenceHeight 设计稿高度
	ReferenceHeight = 1080.0

	// MaxBaseSize 设计稿中工作室名称的字号（基准尺寸上限）
	MaxBaseSize = 72.0

	// BaseSizeWidthRatio 基准尺寸相对视口宽度的比例
	BaseSizeWidthRatio = 0.08
	// BaseSizeHeightRatio 基准尺寸相对视口高度的比例
	BaseSizeHeightRatio = 0.1
)

// 各尺寸相对 baseSize 的倍数（设计稿像素值 / 72）
const (
	PaddingBottomRatio     = 1.5
	MarginTopRatio         = 1.2
	LogoSizeRatio          = 1.666
	TaglinePaddingTopRatio = 2.5
	DiagonalLineMaxRatio   = 4.16  // 300 / 72
	LetterSpacingMaxRatio  = 0.194 // 14 / 72
	TranslateYOffsetRatio  = 0.833 // 60 / 72

	TaglineBaseRatio = 0.222 // 16 / 72
	TaglineDotRatio  = 0.277 // 20 / 72
	TaglineGapRatio  = 0.166 // 12 / 72
	TaglineLSRatio   = 0.055 // 4 / 72
)

// Viewport 视口尺寸（挂载时采集一次）
type Viewport struct {
	Width  float64
	Height float64
}

// IsZero 视口是否退化（任一边不为正数）
func (v Viewport) IsZero() bool {
	return !(v.Width > 0) || !(v.Height > 0)
}

// TaglineWidths 标语相关尺寸
type TaglineWidths struct {
	Base float64 // 单词字号
	Dot  float64 // 分隔点字号
	Gap  float64 // 单词间距
	LS   float64 // 字间距
}

// ResolvedScale 由视口推导出的全部几何尺寸
// 纯函数结果，每次渲染重新计算，不在原处修改。
type ResolvedScale struct {
	BaseSize          float64
	PaddingBottom     float64
	MarginTop         float64
	LogoSize          float64
	TaglinePaddingTop float64
	DiagonalLineMax   float64
	LetterSpacingMax  float64
	TranslateYOffset  float64
	TaglineWidths     TaglineWidths
}

// ResolveScale 根据视口宽高计算缩放后的尺寸
//
// 宽或高不为正数（包括 NaN）时返回全零结果：图层不可见但不会出错。
func ResolveScale(width, height float64) ResolvedScale {
	if (Viewport{Width: width, Height: height}).IsZero() {
		return ResolvedScale{}
	}

	base := math.Min(math.Min(width*BaseSizeWidthRatio, height*BaseSizeHeightRatio), MaxBaseSize)
	return ScaleFromBase(base)
}

// ResolveViewportScale 是 ResolveScale 的 Viewport 版本
func ResolveViewportScale(v Viewport) ResolvedScale {
	return ResolveScale(v.Width, v.Height)
}

// ScaleFromBase 由基准尺寸推导其余尺寸
func ScaleFromBase(base float64) ResolvedScale {
	if !(base > 0) {
		return ResolvedScale{}
	}
	return ResolvedScale{
		BaseSize:          base,
		PaddingBottom:     base * PaddingBottomRatio,
		MarginTop:         base * MarginTopRatio,
		LogoSize:          base * LogoSizeRatio,
		TaglinePaddingTop: base * TaglinePaddingTopRatio,
		DiagonalLineMax:   base * DiagonalLineMaxRatio,
		LetterSpacingMax:  base * LetterSpacingMaxRatio,
		TranslateYOffset:  base * TranslateYOffsetRatio,
		TaglineWidths: TaglineWidths{
			Base: base * TaglineBaseRatio,
			Dot:  base * TaglineDotRatio,
			Gap:  base * TaglineGapRatio,
			LS:   base * TaglineLSRatio,
		},
	}
}
