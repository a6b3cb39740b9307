package scenes

import (
	"image/color"

	"github.com/decker502/estudio-intro/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Scene is a type alias for game.Scene to maintain backward compatibility.
// All scene implementations should implement the game.Scene interface.
type Scene = game.Scene

// drawBackdrop 用纯色填满整个屏幕（支持半透明）
func drawBackdrop(screen *ebiten.Image, width, height int, clr color.Color) {
	vector.DrawFilledRect(screen, 0, 0, float32(width), float32(height), clr, false)
}
