// Estudio G 站点宿主：播放开场动画后显示落地页
//
// Usage:
//
//	go run . [flags]
//
// Flags:
//
//	--verbose            Enable verbose logging
//	--skip-intro         Show the landing page immediately
//	--config <path>      Intro timeline YAML (default: embedded data/intro.yaml)
//	--page <path>        Landing page content YAML (default: embedded data/page.yaml)
//	--logo <path>        Override the logo image
//	--font <path>        TTF/OTF font file (default: built-in Go Regular)
//
// Controls:
//
//	Escape/Space/Enter/Click  - Skip the intro
//	F11                       - Toggle fullscreen
package main

import (
	"flag"
	"log"

	"github.com/decker502/estudio-intro/pkg/app"
	"github.com/decker502/estudio-intro/pkg/config"
	"github.com/decker502/estudio-intro/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verboseFlag   = flag.Bool("verbose", false, "Enable verbose logging")
	skipIntroFlag = flag.Bool("skip-intro", false, "Show the landing page immediately")
	configFlag    = flag.String("config", "", "Intro timeline YAML (default: embedded data/intro.yaml)")
	pageFlag      = flag.String("page", "", "Landing page content YAML (default: embedded data/page.yaml)")
	logoFlag      = flag.String("logo", "", "Override the logo image path")
	fontFlag      = flag.String("font", "", "Font file (default: built-in Go Regular)")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源
	embedded.Init(dataFS)

	siteApp, err := app.NewApp(app.Config{
		Verbose:         *verboseFlag,
		SkipIntro:       *skipIntroFlag,
		IntroConfigPath: *configFlag,
		PageContentPath: *pageFlag,
		LogoPath:        *logoFlag,
		FontPath:        *fontFlag,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(siteApp.TPS())

	if err := ebiten.RunGame(siteApp); err != nil {
		log.Fatal(err)
	}
}
