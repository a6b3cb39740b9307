package scenes

import (
	"fmt"
	"log"
	"math"

	"github.com/decker502/estudio-intro/pkg/components"
	"github.com/decker502/estudio-intro/pkg/config"
	"github.com/decker502/estudio-intro/pkg/ecs"
	"github.com/decker502/estudio-intro/pkg/game"
	"github.com/decker502/estudio-intro/pkg/systems"
	"github.com/decker502/estudio-intro/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// IntroScene 开场动画覆盖层
//
// 落地页始终绘制在下方；覆盖层（容器背景 + 合成画面）按容器不透明度叠加在上面。
// 卸载后切换到落地页场景。
type IntroScene struct {
	resourceManager *game.ResourceManager
	sceneManager    *game.SceneManager
	config          *config.IntroConfig

	entityManager *ecs.EntityManager
	timeline      *systems.TimelineSystem
	renderer      *systems.IntroRenderSystem
	controller    *game.PlaybackController
	unsubscribe   func()

	page      game.Scene
	offscreen *ebiten.Image

	composition   components.Composition
	logoRequested bool
	switched      bool
}

// NewIntroScene 创建开场动画场景
//
// 参数：
//   - viewport: 挂载时采集的视口尺寸，之后不再变化
//   - page: 覆盖层下方的落地页，卸载后成为当前场景
func NewIntroScene(rm *game.ResourceManager, sm *game.SceneManager, cfg *config.IntroConfig, viewport config.Viewport, page game.Scene, fontPath string) (*IntroScene, error) {
	if cfg == nil {
		cfg = config.DefaultIntroConfig()
	}

	em := ecs.NewEntityManager()
	timeline, err := systems.NewTimelineSystem(em, cfg, viewport)
	if err != nil {
		return nil, fmt.Errorf("failed to create intro timeline: %w", err)
	}

	scene := &IntroScene{
		resourceManager: rm,
		sceneManager:    sm,
		config:          cfg,
		entityManager:   em,
		timeline:        timeline,
		renderer:        systems.NewIntroRenderSystem(rm, fontPath),
		controller:      game.NewPlaybackController(viewport, game.PlaybackOptionsFromConfig(cfg)),
		page:            page,
	}

	scene.controller.SetPhaseChangeHandler(func(from, to game.PlaybackPhase) {
		log.Printf("[IntroScene] %s → %s", from, to)
	})
	scene.unsubscribe = scene.controller.OnEnded(func() {
		log.Printf("[IntroScene] 开场动画播放完成 (%d 帧)", timeline.TotalFrames())
	})

	if !viewport.IsZero() {
		w := int(math.Ceil(viewport.Width))
		h := int(math.Ceil(viewport.Height))
		scene.offscreen = ebiten.NewImage(w, h)
	} else {
		log.Printf("[IntroScene] 视口为空 (%.0fx%.0f)，只播放时间轴不渲染", viewport.Width, viewport.Height)
	}

	scene.composition = timeline.Compose(0)
	scene.preload(0)
	return scene, nil
}

// Update 推进时间轴
func (s *IntroScene) Update(deltaTime float64) {
	if s.controller.BlocksInput() {
		if utils.IsSkipRequested() {
			s.Skip()
		}
	} else if s.page != nil {
		// 淡出开始后输入交给落地页
		s.page.Update(deltaTime)
	}

	s.controller.Update(deltaTime)

	frame := s.controller.Frame()
	s.preload(frame)
	s.composition = s.timeline.Compose(frame)

	if !s.controller.Rendered() {
		s.switchToPage()
	}
}

// Skip 手动跳过开场动画（Escape / Space / 点击）
func (s *IntroScene) Skip() bool {
	return s.controller.Dismiss()
}

// preload Logo 图层进入预挂载时加载图片，失败只记录一次
func (s *IntroScene) preload(frame int) {
	if s.logoRequested || !s.timeline.NeedsPreload(components.LayerLogo, frame) {
		return
	}
	s.logoRequested = true
	if s.resourceManager == nil {
		return
	}

	img, err := s.resourceManager.LoadImage(s.config.Logo.Path)
	if err != nil {
		log.Printf("[IntroScene] Logo 加载失败，保留空白: %v", err)
		return
	}
	s.renderer.SetLogo(img)
}

func (s *IntroScene) switchToPage() {
	if s.switched {
		return
	}
	s.switched = true
	log.Printf("[IntroScene] 覆盖层已卸载，切换到落地页")
	if s.sceneManager != nil && s.page != nil {
		s.sceneManager.SwitchTo(s.page)
	}
}

// Draw 绘制落地页和覆盖层
func (s *IntroScene) Draw(screen *ebiten.Image) {
	if s.page != nil {
		s.page.Draw(screen)
	}

	containerOpacity := s.controller.ContainerOpacity()
	if !s.controller.Rendered() || containerOpacity <= 0 {
		return
	}

	// 容器背景
	bg := s.composition.BackgroundColor
	bg.A = uint8(math.Round(float64(bg.A) * containerOpacity))
	if bg.A > 0 {
		backdrop := screen.Bounds()
		drawBackdrop(screen, backdrop.Dx(), backdrop.Dy(), bg)
	}

	if s.offscreen == nil || !s.composition.Visible || s.composition.Opacity <= 0 {
		return
	}

	s.offscreen.Clear()
	s.renderer.Draw(s.offscreen, s.composition)

	// 视口在挂载后不再变化，窗口尺寸改变时整体缩放
	sb := screen.Bounds()
	ob := s.offscreen.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(sb.Dx())/float64(ob.Dx()), float64(sb.Dy())/float64(ob.Dy()))
	op.ColorScale.ScaleAlpha(float32(containerOpacity * s.composition.Opacity))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(s.offscreen, op)
}

// Dispose 场景被切换掉时停止时钟并取消回调
func (s *IntroScene) Dispose() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
	s.controller.Close()
	if s.offscreen != nil {
		s.offscreen.Deallocate()
		s.offscreen = nil
	}
}

// Controller 返回播放控制器
func (s *IntroScene) Controller() *game.PlaybackController {
	return s.controller
}

// Composition 返回最近一次计算的合成结果
func (s *IntroScene) Composition() components.Composition {
	return s.composition
}

// Timeline 返回时间轴
func (s *IntroScene) Timeline() *systems.TimelineSystem {
	return s.timeline
}
