package game

import (
	"log"

	"github.com/decker502/estudio-intro/pkg/config"
	"github.com/decker502/estudio-intro/pkg/utils"
)

// PlaybackPhase 开场动画覆盖层的生命周期阶段
type PlaybackPhase int

const (
	PhasePlaying PlaybackPhase = iota
	PhaseEnded
	PhaseFadingOut
	PhaseUnmounted
)

// String 返回阶段名称
func (p PlaybackPhase) String() string {
	switch p {
	case PhasePlaying:
		return "Playing"
	case PhaseEnded:
		return "Ended"
	case PhaseFadingOut:
		return "FadingOut"
	case PhaseUnmounted:
		return "Unmounted"
	default:
		return "Unknown"
	}
}

// PlaybackOptions 播放参数
type PlaybackOptions struct {
	FPS          int
	TotalFrames  int
	FadeDuration float64 // 容器淡出时长（秒）
	UnmountDelay float64 // 进入淡出后多久卸载（秒）
}

// PlaybackOptionsFromConfig 从开场动画配置生成播放参数
func PlaybackOptionsFromConfig(cfg *config.IntroConfig) PlaybackOptions {
	return PlaybackOptions{
		FPS:          cfg.FPS,
		TotalFrames:  cfg.TotalFrames(),
		FadeDuration: cfg.FadeOutSeconds,
		UnmountDelay: cfg.UnmountDelaySeconds,
	}
}

type endedListener struct {
	id int
	fn func()
}

// PlaybackController 开场动画的生命周期控制器
//
// 状态: Playing → Ended → FadingOut → Unmounted
//
// 构造时采集一次视口并立即启动时钟。时钟到达总帧数时进入 Ended，
// 通知完成回调并停止时钟，同一次 Update 内立即进入 FadingOut。
// 淡出按墙钟时间计时，与帧时钟无关；到达卸载延迟后进入 Unmounted。
//
// 唯一持有可变的时钟和阶段状态，其他组件只读取派生值。
type PlaybackController struct {
	viewport config.Viewport
	clock    *Clock
	phase    PlaybackPhase

	fadeDuration float64
	unmountDelay float64
	fadeElapsed  float64
	dismissed    bool

	listeners      []endedListener
	nextListenerID int
	onPhaseChange  func(from, to PlaybackPhase)
}

// NewPlaybackController 创建控制器并开始播放
func NewPlaybackController(viewport config.Viewport, opts PlaybackOptions) *PlaybackController {
	if opts.FadeDuration < 0 {
		opts.FadeDuration = 0
	}
	if opts.UnmountDelay < opts.FadeDuration {
		opts.UnmountDelay = opts.FadeDuration
	}

	pc := &PlaybackController{
		viewport:     viewport,
		clock:        NewClock(opts.FPS, opts.TotalFrames),
		phase:        PhasePlaying,
		fadeDuration: opts.FadeDuration,
		unmountDelay: opts.UnmountDelay,
	}
	pc.clock.Start()

	log.Printf("[PlaybackController] 开始播放: %d 帧 @ %d fps, 视口 %.0fx%.0f",
		pc.clock.TotalFrames(), pc.clock.FPS(), viewport.Width, viewport.Height)
	return pc
}

// SetPhaseChangeHandler 设置阶段变化回调（宿主日志/场景切换使用）
func (pc *PlaybackController) SetPhaseChangeHandler(fn func(from, to PlaybackPhase)) {
	pc.onPhaseChange = fn
}

// OnEnded 注册播放完成回调，返回取消函数
// 取消函数可以重复调用；卸载后回调会被清空。
func (pc *PlaybackController) OnEnded(fn func()) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	pc.nextListenerID++
	id := pc.nextListenerID
	pc.listeners = append(pc.listeners, endedListener{id: id, fn: fn})

	return func() {
		for i, l := range pc.listeners {
			if l.id == id {
				pc.listeners = append(pc.listeners[:i], pc.listeners[i+1:]...)
				return
			}
		}
	}
}

// ListenerCount 当前注册的完成回调数量
func (pc *PlaybackController) ListenerCount() int {
	return len(pc.listeners)
}

// Update 推进一次 tick
func (pc *PlaybackController) Update(deltaTime float64) {
	switch pc.phase {
	case PhasePlaying:
		pc.clock.Advance(deltaTime)
		if pc.clock.Ended() {
			pc.finish()
		}
	case PhaseFadingOut:
		if deltaTime > 0 {
			pc.fadeElapsed += deltaTime
		}
		if pc.fadeElapsed >= pc.unmountDelay-frameEpsilon {
			pc.unmount()
		}
	}
}

// finish 播放到末尾：Ended → FadingOut
func (pc *PlaybackController) finish() {
	pc.setPhase(PhaseEnded)
	pc.clock.Stop()

	listeners := make([]endedListener, len(pc.listeners))
	copy(listeners, pc.listeners)
	for _, l := range listeners {
		l.fn()
	}

	pc.beginFadeOut()
}

func (pc *PlaybackController) beginFadeOut() {
	pc.fadeElapsed = 0
	pc.setPhase(PhaseFadingOut)
	if pc.unmountDelay <= 0 {
		pc.unmount()
	}
}

func (pc *PlaybackController) unmount() {
	pc.clock.Stop()
	pc.listeners = nil
	pc.setPhase(PhaseUnmounted)
}

// Dismiss 手动跳过：停止时钟并直接进入淡出
// 只在 Playing 阶段有效，返回是否生效。
func (pc *PlaybackController) Dismiss() bool {
	if pc.phase != PhasePlaying {
		return false
	}
	log.Printf("[PlaybackController] 手动跳过 (frame %d)", pc.clock.Frame())
	pc.dismissed = true
	pc.clock.Stop()
	pc.beginFadeOut()
	return true
}

// Close 停止时钟并清空回调，可重复调用
// 场景被提前切换时使用，不改变阶段。
func (pc *PlaybackController) Close() {
	pc.clock.Stop()
	pc.listeners = nil
}

func (pc *PlaybackController) setPhase(to PlaybackPhase) {
	from := pc.phase
	if from == to {
		return
	}
	pc.phase = to
	log.Printf("[PlaybackController] %s → %s (frame %d)", from, to, pc.clock.Frame())
	if pc.onPhaseChange != nil {
		pc.onPhaseChange(from, to)
	}
}

// Phase 当前阶段
func (pc *PlaybackController) Phase() PlaybackPhase {
	return pc.phase
}

// Frame 当前全局帧
func (pc *PlaybackController) Frame() int {
	return pc.clock.Frame()
}

// ClockRunning 时钟是否仍在运行
func (pc *PlaybackController) ClockRunning() bool {
	return pc.clock.Running()
}

// Dismissed 是否被手动跳过
func (pc *PlaybackController) Dismissed() bool {
	return pc.dismissed
}

// Viewport 挂载时采集的视口
func (pc *PlaybackController) Viewport() config.Viewport {
	return pc.viewport
}

// ContainerOpacity 覆盖层容器的不透明度
// 淡出阶段按 ease-out 从 1 降到 0。
func (pc *PlaybackController) ContainerOpacity() float64 {
	switch pc.phase {
	case PhasePlaying, PhaseEnded:
		return 1
	case PhaseFadingOut:
		if pc.fadeDuration <= 0 {
			return 0
		}
		t := utils.Clamp01(pc.fadeElapsed / pc.fadeDuration)
		return 1 - utils.EaseOutQuad(t)
	default:
		return 0
	}
}

// BlocksInput 覆盖层是否拦截输入
// 淡出开始后输入交给下层页面。
func (pc *PlaybackController) BlocksInput() bool {
	return pc.phase == PhasePlaying || pc.phase == PhaseEnded
}

// Rendered 覆盖层是否仍需渲染
func (pc *PlaybackController) Rendered() bool {
	return pc.phase != PhaseUnmounted
}
