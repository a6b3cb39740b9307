package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneID 场景标识
type SceneID string

const (
	SceneIntro SceneID = "intro"
	ScenePage  SceneID = "page"
)

// SceneFactory 按 ID 构建场景；由 app 包注入，game 包因此不依赖 scenes 包
type SceneFactory func(id SceneID) Scene

// SceneManager 持有当前场景，把帧更新和绘制转发给它
type SceneManager struct {
	current Scene
	factory SceneFactory
}

// NewSceneManager 创建一个没有活动场景的管理器
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 注入场景工厂
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.factory = factory
}

// SwitchTo 替换当前场景；被替换的场景若实现 Disposable 则先释放
func (sm *SceneManager) SwitchTo(next Scene) {
	if next == sm.current {
		return
	}
	if old, ok := sm.current.(Disposable); ok {
		old.Dispose()
	}
	sm.current = next
}

// SwitchToID 用工厂构建场景并切换，失败时保留当前场景
func (sm *SceneManager) SwitchToID(id SceneID) bool {
	if sm.factory == nil {
		log.Printf("[SceneManager] 未设置场景工厂，无法切换到 %s", id)
		return false
	}
	next := sm.factory(id)
	if next == nil {
		log.Printf("[SceneManager] 场景 %s 构建失败", id)
		return false
	}
	log.Printf("[SceneManager] -> %s", id)
	sm.SwitchTo(next)
	return true
}

// GetCurrentScene 当前场景，可能为 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.current
}

func (sm *SceneManager) Update(deltaTime float64) {
	if sm.current == nil {
		return
	}
	sm.current.Update(deltaTime)
}

func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.current == nil {
		return
	}
	sm.current.Draw(screen)
}
