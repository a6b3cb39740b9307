// Package app 提供站点应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/decker502/estudio-intro/pkg/config"
	"github.com/decker502/estudio-intro/pkg/game"
	"github.com/decker502/estudio-intro/pkg/scenes"
	"github.com/decker502/estudio-intro/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// SkipIntro 不播放开场动画，直接显示落地页（优先于偏好设置）
	SkipIntro bool
	// IntroConfigPath 开场动画配置路径，为空使用内置配置
	IntroConfigPath string
	// PageContentPath 落地页内容路径，为空使用内置内容
	PageContentPath string
	// LogoPath 覆盖配置中的 Logo 路径
	LogoPath string
	// FontPath 字体文件路径，为空使用内置字体
	FontPath string
}

// App 是站点应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager    *game.SceneManager
	resourceManager *game.ResourceManager
	settings        *game.SettingsManager
	introConfig     *config.IntroConfig
	page            *scenes.PageScene

	cfg      Config
	viewport config.Viewport
	started  bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
// 场景在第一次拿到窗口尺寸后才创建（视口只采集一次）。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	introPath := cfg.IntroConfigPath
	if introPath == "" {
		introPath = config.DefaultIntroConfigPath
	}
	introConfig, err := config.LoadIntroConfig(introPath)
	if err != nil {
		return nil, fmt.Errorf("开场动画配置加载失败: %w", err)
	}
	if cfg.LogoPath != "" {
		introConfig.Logo.Path = cfg.LogoPath
	}
	log.Printf("[Config] 开场动画: %d 帧 @ %d fps", introConfig.TotalFrames(), introConfig.FPS)

	pagePath := cfg.PageContentPath
	if pagePath == "" {
		pagePath = config.DefaultPageConfigPath
	}
	content, err := config.LoadPageContent(pagePath)
	if err != nil {
		return nil, fmt.Errorf("落地页内容加载失败: %w", err)
	}

	resourceManager := game.NewResourceManager()
	if _, err := resourceManager.LoadFontSource(cfg.FontPath); err != nil {
		return nil, fmt.Errorf("字体加载失败: %w", err)
	}

	settings := game.OpenSettingsManager(config.GdataAppName)
	if settings.GetSettings().Fullscreen && !utils.IsMobile() {
		ebiten.SetFullscreen(true)
	}

	a := &App{
		sceneManager:    game.NewSceneManager(),
		resourceManager: resourceManager,
		settings:        settings,
		introConfig:     introConfig,
		page:            scenes.NewPageScene(resourceManager, content, cfg.FontPath),
		cfg:             cfg,
	}
	a.sceneManager.SetSceneFactory(a.createScene)
	return a, nil
}

// createScene 场景工厂
func (a *App) createScene(id game.SceneID) game.Scene {
	switch id {
	case game.ScenePage:
		return a.page
	case game.SceneIntro:
		intro, err := scenes.NewIntroScene(a.resourceManager, a.sceneManager, a.introConfig, a.viewport, a.page, a.cfg.FontPath)
		if err != nil {
			log.Printf("[App] 开场动画创建失败，直接显示落地页: %v", err)
			return a.page
		}
		return intro
	}
	return nil
}

// ShouldPlayIntro 是否播放开场动画
func (a *App) ShouldPlayIntro() bool {
	return !a.cfg.SkipIntro && !a.settings.GetSettings().SkipIntro
}

// start 采集视口后创建首个场景
func (a *App) start() {
	a.started = true
	log.Printf("[App] 视口 %.0fx%.0f", a.viewport.Width, a.viewport.Height)

	if a.ShouldPlayIntro() {
		a.sceneManager.SwitchToID(game.SceneIntro)
	} else {
		log.Printf("[App] 跳过开场动画")
		a.sceneManager.SwitchToID(game.ScenePage)
	}
}

// Update 更新逻辑，每个 tick 调用一次（TPS 与动画帧率一致）
func (a *App) Update() error {
	if !a.started {
		a.start()
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.WindowWidth, config.WindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if !utils.IsMobile() && inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	a.sceneManager.Update(1.0 / float64(ebiten.TPS()))
	return nil
}

func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		// 退出全屏
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	} else {
		ebiten.SetFullscreen(true)
	}

	a.settings.SetFullscreen(!a.settings.GetSettings().Fullscreen)
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] 保存设置失败: %v", err)
	}
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 逻辑屏幕尺寸跟随窗口尺寸
// 第一次拿到窗口尺寸时作为开场动画的视口。
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if !a.started {
		a.viewport = config.Viewport{Width: float64(outsideWidth), Height: float64(outsideHeight)}
	}
	return max(outsideWidth, 1), max(outsideHeight, 1)
}

// TPS 每秒 tick 数（与动画帧率一致）
func (a *App) TPS() int {
	return a.introConfig.FPS
}

// Viewport 采集到的视口
func (a *App) Viewport() config.Viewport {
	return a.viewport
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.cfg.Verbose
}
