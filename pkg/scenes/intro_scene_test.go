package scenes

import (
	"testing"

	"github.com/decker502/estudio-intro/pkg/components"
	"github.com/decker502/estudio-intro/pkg/config"
	"github.com/decker502/estudio-intro/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
)

const tick = 1.0 / 30.0

// recordingPage 记录 Update 调用次数的落地页替身
type recordingPage struct {
	updates int
	draws   int
}

func (p *recordingPage) Update(deltaTime float64)  { p.updates++ }
func (p *recordingPage) Draw(screen *ebiten.Image) { p.draws++ }

func newTestIntroScene(t *testing.T, vp config.Viewport) (*IntroScene, *game.SceneManager, *recordingPage) {
	t.Helper()
	sm := game.NewSceneManager()
	page := &recordingPage{}
	scene, err := NewIntroScene(game.NewResourceManager(), sm, config.DefaultIntroConfig(), vp, page, "")
	if err != nil {
		t.Fatalf("NewIntroScene() error = %v", err)
	}
	sm.SwitchTo(scene)
	return scene, sm, page
}

// TestIntroSceneFullPlayback 完整播放后切换到落地页
func TestIntroSceneFullPlayback(t *testing.T) {
	scene, sm, page := newTestIntroScene(t, config.Viewport{Width: 1920, Height: 1080})

	for i := 0; i < 150; i++ {
		sm.Update(tick)
	}
	if got := scene.Controller().Phase(); got != game.PhaseFadingOut {
		t.Fatalf("150 帧后阶段 = %v, 期望 FadingOut", got)
	}
	if scene.Composition().Opacity != 0 {
		t.Errorf("结束后合成不透明度应为 0，实际 %v", scene.Composition().Opacity)
	}
	if page.updates != 0 {
		t.Errorf("播放期间落地页不应收到更新，实际 %d 次", page.updates)
	}

	for i := 0; i < 15; i++ {
		sm.Update(tick)
	}
	if scene.Controller().Phase() != game.PhaseUnmounted {
		t.Fatalf("淡出 0.5 秒后应卸载，实际 %v", scene.Controller().Phase())
	}
	if sm.GetCurrentScene() != page {
		t.Error("卸载后当前场景应为落地页")
	}
	if page.updates == 0 {
		t.Error("淡出期间输入应交给落地页")
	}
	if scene.Controller().ClockRunning() {
		t.Error("卸载后时钟应已停止")
	}
}

// TestIntroSceneSkip 手动跳过后不再推进帧
func TestIntroSceneSkip(t *testing.T) {
	scene, sm, page := newTestIntroScene(t, config.Viewport{Width: 1280, Height: 720})

	for i := 0; i < 20; i++ {
		sm.Update(tick)
	}
	if !scene.Skip() {
		t.Fatal("Playing 阶段 Skip() 应生效")
	}
	if scene.Skip() {
		t.Error("重复 Skip() 应返回 false")
	}

	frame := scene.Controller().Frame()
	for i := 0; i < 15; i++ {
		sm.Update(tick)
		if got := scene.Controller().Frame(); got != frame {
			t.Fatalf("跳过后帧号变化: %d → %d", frame, got)
		}
	}
	if sm.GetCurrentScene() != page {
		t.Error("跳过后 0.5 秒应切换到落地页")
	}
}

// TestIntroSceneZeroViewport 视口为空时不渲染但仍然播放完成
func TestIntroSceneZeroViewport(t *testing.T) {
	scene, sm, page := newTestIntroScene(t, config.Viewport{})

	for i := 0; i < 165; i++ {
		sm.Update(tick)
		if scene.Composition().Visible {
			t.Fatalf("视口为空时合成不应可见 (tick %d)", i)
		}
	}
	if sm.GetCurrentScene() != page {
		t.Error("视口为空时也应按时卸载")
	}
}

// TestIntroSceneLogoPreload Logo 在预挂载窗口开始时才请求加载
func TestIntroSceneLogoPreload(t *testing.T) {
	scene, sm, _ := newTestIntroScene(t, config.Viewport{Width: 1920, Height: 1080})

	// Logo 从 1.5 秒开始，预挂载 0.5 秒：第 30 帧开始预挂载
	for i := 0; i < 29; i++ {
		sm.Update(tick)
	}
	if scene.logoRequested {
		t.Fatalf("第 %d 帧不应请求 Logo", scene.Controller().Frame())
	}

	sm.Update(tick)
	if !scene.logoRequested {
		t.Fatalf("第 %d 帧应已请求 Logo", scene.Controller().Frame())
	}
	comp := scene.Composition()
	if _, ok := comp.Layer(components.LayerLogo); !ok {
		t.Error("预挂载期间 Logo 图层应已挂载")
	}
}

// TestIntroSceneDraw 绘制不应 panic，并且先绘制落地页
func TestIntroSceneDraw(t *testing.T) {
	scene, sm, page := newTestIntroScene(t, config.Viewport{Width: 320, Height: 180})
	screen := ebiten.NewImage(320, 180)

	for i := 0; i < 60; i++ {
		sm.Update(tick)
	}
	sm.Draw(screen)
	if page.draws != 1 {
		t.Errorf("落地页应绘制 1 次，实际 %d 次", page.draws)
	}

	scene.Dispose()
	scene.Dispose()
	sm.Draw(screen)
}
