package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// stubScene 记录调用次数的场景
type stubScene struct {
	updates  int
	draws    int
	disposed int
	lastDT   float64
}

func (s *stubScene) Update(dt float64)         { s.updates++; s.lastDT = dt }
func (s *stubScene) Draw(screen *ebiten.Image) { s.draws++ }
func (s *stubScene) Dispose()                  { s.disposed++ }

// plainScene 不实现 Disposable
type plainScene struct{ updates int }

func (s *plainScene) Update(float64)     { s.updates++ }
func (s *plainScene) Draw(*ebiten.Image) {}

func TestSceneManagerEmpty(t *testing.T) {
	sm := NewSceneManager()
	if sm.GetCurrentScene() != nil {
		t.Fatalf("新建的管理器不应有场景，实际 %T", sm.GetCurrentScene())
	}
	// 没有场景时转发是空操作
	sm.Update(1.0 / 60)
	sm.Draw(ebiten.NewImage(16, 16))
}

func TestSceneManagerForwardsToCurrent(t *testing.T) {
	sm := NewSceneManager()
	intro := &stubScene{}
	sm.SwitchTo(intro)

	sm.Update(1.0 / 60)
	sm.Update(1.0 / 30)
	sm.Draw(ebiten.NewImage(16, 16))

	if intro.updates != 2 || intro.draws != 1 {
		t.Errorf("updates=%d draws=%d, 期望 2 / 1", intro.updates, intro.draws)
	}
	if intro.lastDT != 1.0/30 {
		t.Errorf("lastDT = %v, 期望 %v", intro.lastDT, 1.0/30)
	}
}

func TestSceneManagerSwitchDisposes(t *testing.T) {
	tests := []struct {
		name        string
		switches    func(sm *SceneManager, intro, page *stubScene)
		wantIntro   int
		wantPage    int
		wantCurrent string
	}{
		{
			name:        "同一场景不释放",
			switches:    func(sm *SceneManager, intro, _ *stubScene) { sm.SwitchTo(intro); sm.SwitchTo(intro) },
			wantCurrent: "intro",
		},
		{
			name:        "开场切到落地页",
			switches:    func(sm *SceneManager, intro, page *stubScene) { sm.SwitchTo(intro); sm.SwitchTo(page) },
			wantIntro:   1,
			wantCurrent: "page",
		},
		{
			name: "来回切换",
			switches: func(sm *SceneManager, intro, page *stubScene) {
				sm.SwitchTo(intro)
				sm.SwitchTo(page)
				sm.SwitchTo(intro)
			},
			wantIntro:   1,
			wantPage:    1,
			wantCurrent: "intro",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm := NewSceneManager()
			intro, page := &stubScene{}, &stubScene{}
			tt.switches(sm, intro, page)

			if intro.disposed != tt.wantIntro || page.disposed != tt.wantPage {
				t.Errorf("disposed intro=%d page=%d, 期望 %d / %d", intro.disposed, page.disposed, tt.wantIntro, tt.wantPage)
			}
			want := Scene(intro)
			if tt.wantCurrent == "page" {
				want = page
			}
			if sm.GetCurrentScene() != want {
				t.Errorf("当前场景不是 %s", tt.wantCurrent)
			}
		})
	}
}

func TestSceneManagerSwitchFromNonDisposable(t *testing.T) {
	sm := NewSceneManager()
	first := &plainScene{}
	next := &stubScene{}
	sm.SwitchTo(first)
	sm.SwitchTo(next)
	sm.Update(0)

	if first.updates != 0 || next.updates != 1 {
		t.Errorf("first=%d next=%d, 期望 0 / 1", first.updates, next.updates)
	}
}

func TestSceneManagerSwitchToID(t *testing.T) {
	sm := NewSceneManager()
	if sm.SwitchToID(ScenePage) {
		t.Error("未设置工厂时 SwitchToID 应失败")
	}

	intro := &stubScene{}
	page := &stubScene{}
	sm.SetSceneFactory(func(id SceneID) Scene {
		switch id {
		case SceneIntro:
			return intro
		case ScenePage:
			return page
		}
		return nil
	})

	if !sm.SwitchToID(SceneIntro) || sm.GetCurrentScene() != intro {
		t.Fatal("SwitchToID(intro) 未切换到开场场景")
	}
	if !sm.SwitchToID(ScenePage) || sm.GetCurrentScene() != page {
		t.Fatal("SwitchToID(page) 未切换到落地页")
	}
	if intro.disposed != 1 {
		t.Errorf("开场场景应被释放一次，实际 %d", intro.disposed)
	}
	if sm.SwitchToID(SceneID("gallery")) {
		t.Error("未知场景应切换失败")
	}
	if sm.GetCurrentScene() != page {
		t.Error("切换失败后应保留当前场景")
	}
}
