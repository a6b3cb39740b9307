//go:build mobile

// Package mobile 把站点打包成 Android .aar / iOS .xcframework。
//
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.estudiog.intro -o build/android/intro.aar ./mobile
//	ebitenmobile bind -target ios -tags mobile -o build/ios/EstudioIntro.xcframework ./mobile
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/decker502/estudio-intro/pkg/app"
	"github.com/decker502/estudio-intro/pkg/embedded"
)

func init() {
	embedded.Init(dataFS)

	site, err := app.NewApp(app.Config{Verbose: true})
	if err != nil {
		log.Fatalf("[mobile] 启动站点失败: %v", err)
	}
	ebiten.SetTPS(site.TPS())
	mobile.SetGame(site)
}

// Dummy 供 ebitenmobile 生成绑定时引用
func Dummy() {}
