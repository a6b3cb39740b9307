package term

import (
	"testing"

	"github.com/decker502/estudio-intro/pkg/config"
	"github.com/decker502/estudio-intro/pkg/game"
	"github.com/gdamore/tcell/v2"
)

const tick = 1.0 / 30.0

func newTestHost(t *testing.T) (*Host, *fakeScreen) {
	t.Helper()
	screen := newFakeScreen(80, 24)
	h, err := NewHost(screen, config.DefaultIntroConfig(), &config.PageContent{
		Brand:    "ESTUDIO G",
		Sections: []config.PageSection{{Heading: "Proyectos", Body: []string{"Casa Roble"}}},
	})
	if err != nil {
		t.Fatalf("NewHost() error = %v", err)
	}
	return h, screen
}

func key(k tcell.Key, r rune) *tcell.EventKey {
	return tcell.NewEventKey(k, r, tcell.ModNone)
}

// TestHostPlaysToPage 播放结束后显示落地页
func TestHostPlaysToPage(t *testing.T) {
	h, screen := newTestHost(t)
	for i := 0; i < 165; i++ {
		h.Step(tick)
	}
	if h.Controller().Phase() != game.PhaseUnmounted {
		t.Fatalf("165 个 tick 后阶段 = %v, 期望 Unmounted", h.Controller().Phase())
	}
	if screen.shows != 165 {
		t.Errorf("Show 调用 %d 次，期望 165", screen.shows)
	}
	if got := screen.row(0); got[2:11] != "ESTUDIO G" {
		t.Errorf("卸载后首行 = %q", got)
	}
}

// TestHostSkipKeys 播放期间 Escape/Space/Enter/q 跳过
func TestHostSkipKeys(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
	}{
		{"Escape", key(tcell.KeyEscape, 0)},
		{"Enter", key(tcell.KeyEnter, 0)},
		{"Space", key(tcell.KeyRune, ' ')},
		{"q", key(tcell.KeyRune, 'q')},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestHost(t)
			h.Step(tick)
			if !h.HandleEvent(tt.ev) {
				t.Fatal("跳过按键不应退出")
			}
			if h.Controller().Phase() != game.PhaseFadingOut || !h.Controller().Dismissed() {
				t.Errorf("跳过后阶段 = %v", h.Controller().Phase())
			}
		})
	}
}

// TestHostPageKeys 落地页滚动和退出
func TestHostPageKeys(t *testing.T) {
	h, _ := newTestHost(t)
	h.HandleEvent(key(tcell.KeyEscape, 0))
	for i := 0; i < 15; i++ {
		h.Step(tick)
	}
	if h.Controller().Rendered() {
		t.Fatal("跳过 0.5 秒后应已卸载")
	}

	h.HandleEvent(key(tcell.KeyRune, 'j'))
	h.HandleEvent(key(tcell.KeyDown, 0))
	if h.Scroll() != 2 {
		t.Errorf("Scroll() = %d, 期望 2", h.Scroll())
	}
	h.HandleEvent(key(tcell.KeyUp, 0))
	h.HandleEvent(key(tcell.KeyRune, 'k'))
	h.HandleEvent(key(tcell.KeyRune, 'k'))
	if h.Scroll() != 0 {
		t.Errorf("Scroll() = %d, 期望 0", h.Scroll())
	}

	if h.HandleEvent(key(tcell.KeyRune, 'q')) {
		t.Error("落地页按 q 应退出")
	}
	if !h.Quit() {
		t.Error("Quit() 应为 true")
	}
}

// TestHostSkipKeysDuringFadeOut 淡出期间再按跳过键不退出，卸载后才退出
func TestHostSkipKeysDuringFadeOut(t *testing.T) {
	tests := []struct {
		name  string
		start func(h *Host)
	}{
		{"手动跳过后", func(h *Host) { h.HandleEvent(key(tcell.KeyEscape, 0)) }},
		{"自然结束后", func(h *Host) {
			for h.Controller().Phase() == game.PhasePlaying {
				h.Step(tick)
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestHost(t)
			tt.start(h)
			if h.Controller().Phase() != game.PhaseFadingOut {
				t.Fatalf("阶段 = %v, 期望 FadingOut", h.Controller().Phase())
			}

			for _, ev := range []*tcell.EventKey{key(tcell.KeyEscape, 0), key(tcell.KeyRune, 'q'), key(tcell.KeyEnter, 0)} {
				if !h.HandleEvent(ev) {
					t.Fatalf("淡出期间按 %v 不应退出", ev.Name())
				}
			}
			if h.Quit() {
				t.Fatal("淡出期间 Quit() 应为 false")
			}

			h.HandleEvent(key(tcell.KeyRune, 'j'))
			if h.Scroll() != 1 {
				t.Errorf("淡出期间滚动应生效，Scroll() = %d", h.Scroll())
			}

			for i := 0; i < 15; i++ {
				h.Step(tick)
			}
			if h.Controller().Phase() != game.PhaseUnmounted {
				t.Fatalf("0.5 秒后阶段 = %v, 期望 Unmounted", h.Controller().Phase())
			}
			if h.HandleEvent(key(tcell.KeyEscape, 0)) || !h.Quit() {
				t.Error("卸载后 Escape 应退出")
			}
		})
	}
}

// TestHostCtrlC 任何阶段 Ctrl-C 都退出
func TestHostCtrlC(t *testing.T) {
	h, _ := newTestHost(t)
	if h.HandleEvent(key(tcell.KeyCtrlC, 0)) {
		t.Error("Ctrl-C 应退出")
	}
	if h.Controller().Dismissed() {
		t.Error("Ctrl-C 不应触发跳过")
	}
}

// TestHostResize 尺寸变化只重绘，不重新采集视口
func TestHostResize(t *testing.T) {
	h, screen := newTestHost(t)
	before := h.Controller().Viewport()
	h.HandleEvent(tcell.NewEventResize(120, 24))
	if screen.syncs != 1 {
		t.Errorf("Sync 调用 %d 次，期望 1", screen.syncs)
	}
	if h.Controller().Viewport() != before {
		t.Error("视口不应改变")
	}
}
