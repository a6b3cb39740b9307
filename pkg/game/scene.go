package game

import "github.com/hajimehoshi/ebiten/v2"

// Scene 站点的一屏内容：开场动画覆盖层或落地页
//
// Update 的 deltaTime 以秒为单位，由 App 按 1/TPS 传入。
type Scene interface {
	Update(deltaTime float64)
	Draw(screen *ebiten.Image)
}

// Disposable 场景被替换时需要释放资源（停止时钟、退订回调、释放离屏图像）
// Dispose 可能被调用多次。
type Disposable interface {
	Dispose()
}
