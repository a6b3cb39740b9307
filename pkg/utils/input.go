// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// SkipKeys 可以跳过开场动画的按键
var SkipKeys = []ebiten.Key{ebiten.KeyEscape, ebiten.KeySpace, ebiten.KeyEnter}

// IsJustTouchedOrClicked 检查是否刚刚发生点击或触摸
// 返回是否点击以及点击位置
func IsJustTouchedOrClicked() (bool, int, int) {
	// 检查触摸
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}

	// 检查鼠标
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}

	return false, 0, 0
}

// IsAnyKeyJustPressed 本帧是否按下了任一指定按键
func IsAnyKeyJustPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

// IsSkipRequested 用户本帧是否请求跳过（按键、点击或触摸）
func IsSkipRequested() bool {
	if IsAnyKeyJustPressed(SkipKeys...) {
		return true
	}
	pressed, _, _ := IsJustTouchedOrClicked()
	return pressed
}

// ============================================================================
// 触摸滚动 - 落地页在移动端用手指拖动滚动
// ============================================================================

// TouchScroller 跟踪单指垂直拖动
type TouchScroller struct {
	touchID  ebiten.TouchID
	tracking bool
	lastY    int
}

// NewTouchScroller 创建触摸滚动跟踪器
func NewTouchScroller() *TouchScroller {
	return &TouchScroller{touchID: -1}
}

// Update 每帧调用一次，返回本帧手指在垂直方向移动的像素数
// 向上拖动返回正数（内容向下滚动）。
func (ts *TouchScroller) Update() float64 {
	if !ts.tracking {
		justPressed := inpututil.AppendJustPressedTouchIDs(nil)
		if len(justPressed) == 0 {
			return 0
		}
		ts.touchID = justPressed[0]
		_, ts.lastY = ebiten.TouchPosition(ts.touchID)
		ts.tracking = true
		return 0
	}

	if inpututil.IsTouchJustReleased(ts.touchID) {
		ts.Reset()
		return 0
	}

	_, y := ebiten.TouchPosition(ts.touchID)
	return ts.Move(y)
}

// Move 记录新的手指位置并返回位移
func (ts *TouchScroller) Move(y int) float64 {
	delta := float64(ts.lastY - y)
	ts.lastY = y
	return delta
}

// Begin 开始跟踪（lastY 为按下位置）
func (ts *TouchScroller) Begin(id ebiten.TouchID, y int) {
	ts.touchID = id
	ts.lastY = y
	ts.tracking = true
}

// Tracking 是否正在跟踪拖动
func (ts *TouchScroller) Tracking() bool {
	return ts.tracking
}

// Reset 重置拖动状态
func (ts *TouchScroller) Reset() {
	ts.touchID = -1
	ts.tracking = false
	ts.lastY = 0
}
