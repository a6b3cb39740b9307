package game

import "math"

// frameEpsilon 吸收浮点累加误差（例如 30 次 1/30 秒之和略小于 1）
const frameEpsilon = 1e-9

// Clock 开场动画的帧时钟
//
// 由宿主的 tick 源（ebiten Update、终端 Ticker）驱动，把墙钟时间换算为整数帧。
// 帧号只增不减，到达总帧数后停在总帧数。
type Clock struct {
	fps         int
	totalFrames int
	frame       int
	accumulator float64 // 不足一帧的剩余（帧）
	running     bool
}

// NewClock 创建时钟（未启动）
// fps ≤ 0 时使用 30。
func NewClock(fps, totalFrames int) *Clock {
	if fps <= 0 {
		fps = 30
	}
	if totalFrames < 0 {
		totalFrames = 0
	}
	return &Clock{fps: fps, totalFrames: totalFrames}
}

// Start 启动时钟；已结束的时钟不会重新启动
func (c *Clock) Start() {
	if c.Ended() {
		return
	}
	c.running = true
}

// Stop 停止时钟，可重复调用
// 返回调用前是否在运行。
func (c *Clock) Stop() bool {
	wasRunning := c.running
	c.running = false
	return wasRunning
}

// Running 时钟是否在运行
func (c *Clock) Running() bool {
	return c.running
}

// Advance 按墙钟时间推进，返回本次推进的帧数
// 未运行、dt 非正数或 NaN 时不推进。
func (c *Clock) Advance(dt float64) int {
	if !c.running || !(dt > 0) || math.IsInf(dt, 0) {
		return 0
	}

	c.accumulator += dt * float64(c.fps)
	n := int(c.accumulator + frameEpsilon)
	if n <= 0 {
		return 0
	}
	c.accumulator = math.Max(c.accumulator-float64(n), 0)
	return c.advanceFrames(n)
}

// Tick 推进一帧
func (c *Clock) Tick() int {
	if !c.running {
		return 0
	}
	return c.advanceFrames(1)
}

func (c *Clock) advanceFrames(n int) int {
	before := c.frame
	c.frame = min(c.frame+n, c.totalFrames)
	if c.Ended() {
		c.accumulator = 0
	}
	return c.frame - before
}

// Frame 当前帧
func (c *Clock) Frame() int {
	return c.frame
}

// FPS 帧率
func (c *Clock) FPS() int {
	return c.fps
}

// TotalFrames 总帧数
func (c *Clock) TotalFrames() int {
	return c.totalFrames
}

// Ended 是否已到达总帧数
func (c *Clock) Ended() bool {
	return c.frame >= c.totalFrames
}
