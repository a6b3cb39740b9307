package term

import (
	"fmt"
	"log"
	"time"

	"github.com/decker502/estudio-intro/pkg/config"
	"github.com/decker502/estudio-intro/pkg/ecs"
	"github.com/decker502/estudio-intro/pkg/game"
	"github.com/decker502/estudio-intro/pkg/systems"
	"github.com/gdamore/tcell/v2"
)

// Screen 宿主需要的终端能力（tcell.Screen 的子集）
type Screen interface {
	CellWriter
	Show()
	Sync()
	PollEvent() tcell.Event
}

// Host 终端宿主：开场动画播放完毕后显示落地页文本
type Host struct {
	screen     Screen
	renderer   *Renderer
	timeline   *systems.TimelineSystem
	controller *game.PlaybackController
	content    *config.PageContent

	fps    int
	scroll int
	quit   bool
}

// NewHost 创建终端宿主，视口取自当前终端尺寸并只采集一次
func NewHost(screen Screen, cfg *config.IntroConfig, content *config.PageContent) (*Host, error) {
	if cfg == nil {
		cfg = config.DefaultIntroConfig()
	}
	renderer := NewRenderer(screen)
	vp := renderer.Viewport()

	timeline, err := systems.NewTimelineSystem(ecs.NewEntityManager(), cfg, vp)
	if err != nil {
		return nil, fmt.Errorf("failed to create intro timeline: %w", err)
	}

	h := &Host{
		screen:     screen,
		renderer:   renderer,
		timeline:   timeline,
		controller: game.NewPlaybackController(vp, game.PlaybackOptionsFromConfig(cfg)),
		content:    content,
		fps:        cfg.FPS,
	}
	h.controller.SetPhaseChangeHandler(func(from, to game.PlaybackPhase) {
		log.Printf("[TermHost] %s → %s", from, to)
	})
	return h, nil
}

// HandleEvent 处理一个终端事件，返回是否继续运行
func (h *Host) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			h.quit = true
			return false
		}
		if h.controller.BlocksInput() {
			if isSkipKey(ev) {
				h.controller.Dismiss()
			}
			return true
		}
		// 淡出期间滚动键交给落地页，跳过键不能变成退出
		if h.controller.Phase() != game.PhaseUnmounted && isSkipKey(ev) {
			return true
		}
		return h.handlePageKey(ev)
	case *tcell.EventResize:
		// 视口已在挂载时采集，这里只重绘
		h.screen.Sync()
	}
	return true
}

func isSkipKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyEnter:
		return true
	case tcell.KeyRune:
		return ev.Rune() == ' ' || ev.Rune() == 'q'
	}
	return false
}

func (h *Host) handlePageKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		h.quit = true
		return false
	case tcell.KeyDown:
		h.scroll++
	case tcell.KeyUp:
		h.scroll = max(h.scroll-1, 0)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			h.quit = true
			return false
		case 'j':
			h.scroll++
		case 'k':
			h.scroll = max(h.scroll-1, 0)
		}
	}
	return true
}

// Step 推进一个 tick 并绘制
func (h *Host) Step(deltaTime float64) {
	h.controller.Update(deltaTime)
	h.Draw()
}

// Draw 绘制当前状态
func (h *Host) Draw() {
	if h.controller.Rendered() {
		comp := h.timeline.Compose(h.controller.Frame())
		h.renderer.Draw(comp, h.controller.ContainerOpacity())
	} else {
		h.renderer.DrawPage(h.content, h.scroll)
	}
	h.screen.Show()
}

// Run 事件循环，直到用户退出
//
// 独立的 goroutine 只负责把 PollEvent 的结果转发到 channel，
// 时间轴始终在调用 Run 的 goroutine 上推进。
func (h *Host) Run() {
	interval := time.Second / time.Duration(max(h.fps, 1))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	tickerStopped := false
	h.Draw()
	for {
		select {
		case ev, ok := <-eventChan:
			if !ok || !h.HandleEvent(ev) {
				return
			}
			if tickerStopped {
				h.Draw()
			}

		case <-ticker.C:
			h.Step(interval.Seconds())
			if !h.controller.Rendered() {
				// 卸载后只在输入时重绘
				ticker.Stop()
				tickerStopped = true
			}
		}
	}
}

// Controller 播放控制器
func (h *Host) Controller() *game.PlaybackController {
	return h.controller
}

// Scroll 落地页滚动行数
func (h *Host) Scroll() int {
	return h.scroll
}

// Quit 用户是否请求退出
func (h *Host) Quit() bool {
	return h.quit
}
