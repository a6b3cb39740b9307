package systems

import (
	"fmt"
	"log"
	"sort"

	"github.com/decker502/estudio-intro/pkg/components"
	"github.com/decker502/estudio-intro/pkg/config"
	"github.com/decker502/estudio-intro/pkg/ecs"
	"github.com/decker502/estudio-intro/pkg/entities"
)

// TimelineSystem 开场动画时间轴
//
// 持有四个分时图层实体，把全局帧映射到各图层的本地帧并按固定顺序合成。
// Compose 是纯函数：同一帧多次调用结果相同，可以任意跳帧。
type TimelineSystem struct {
	entityManager *ecs.EntityManager
	config        *config.IntroConfig
	ctx           LayerContext
	totalFrames   int
	layers        []LayerWindow // 按 ZIndex 升序
}

// LayerWindow 图层实体及其挂载窗口
type LayerWindow struct {
	Entity ecs.EntityID
	Kind   components.LayerKind
	Window components.MountWindow
	ZIndex int
}

// NewTimelineSystem 创建时间轴并生成图层实体
// 视口只在这里读取一次。
func NewTimelineSystem(em *ecs.EntityManager, cfg *config.IntroConfig, vp config.Viewport) (*TimelineSystem, error) {
	if em == nil {
		return nil, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil {
		return nil, fmt.Errorf("intro config cannot be nil")
	}

	if _, err := entities.NewIntroLayers(em, cfg); err != nil {
		return nil, fmt.Errorf("failed to create intro layers: %w", err)
	}

	ts := &TimelineSystem{
		entityManager: em,
		config:        cfg,
		ctx:           NewLayerContext(cfg, vp),
		totalFrames:   cfg.TotalFrames(),
	}
	ts.collectLayers()

	if vp.IsZero() {
		log.Printf("[TimelineSystem] 视口为空 (%vx%v)，合成不可见但仍按时间轴播放", vp.Width, vp.Height)
	}
	log.Printf("[TimelineSystem] %d 帧 @ %d fps, %d 个图层, baseSize=%.2f",
		ts.totalFrames, cfg.FPS, len(ts.layers), ts.ctx.Scale.BaseSize)
	return ts, nil
}

// collectLayers 查询图层实体并按合成顺序排序
func (ts *TimelineSystem) collectLayers() {
	ids := ts.entityManager.GetEntitiesWith(
		ecs.TypeOf[*components.SequenceComponent](),
		ecs.TypeOf[*components.LayerComponent](),
	)

	ts.layers = ts.layers[:0]
	for _, id := range ids {
		seq, _ := ecs.Get[*components.SequenceComponent](ts.entityManager, id)
		layer, _ := ecs.Get[*components.LayerComponent](ts.entityManager, id)
		ts.layers = append(ts.layers, LayerWindow{
			Entity: id,
			Kind:   layer.Kind,
			Window: seq.Window,
			ZIndex: seq.ZIndex,
		})
	}
	sort.SliceStable(ts.layers, func(i, j int) bool {
		return ts.layers[i].ZIndex < ts.layers[j].ZIndex
	})
}

// TotalFrames 合成总帧数
func (ts *TimelineSystem) TotalFrames() int {
	return ts.totalFrames
}

// FPS 帧率
func (ts *TimelineSystem) FPS() int {
	return ts.ctx.FPS
}

// Context 图层上下文（只读副本）
func (ts *TimelineSystem) Context() LayerContext {
	return ts.ctx
}

// Layers 返回所有图层窗口（按合成顺序）
func (ts *TimelineSystem) Layers() []LayerWindow {
	out := make([]LayerWindow, len(ts.layers))
	copy(out, ts.layers)
	return out
}

// Compose 计算某一全局帧的合成结果
//
// frame < 0 或 frame ≥ 总帧数时返回不可见的空合成（Opacity 为 0）。
// 预挂载中的图层按本地第 0 帧的状态输出。
func (ts *TimelineSystem) Compose(frame int) components.Composition {
	ctx := ts.ctx
	comp := components.Composition{
		Frame:           frame,
		Width:           ctx.Width,
		Height:          ctx.Height,
		BaseSize:        ctx.Scale.BaseSize,
		BackgroundColor: ts.config.Background.Color.NRGBA(),
	}
	if frame < 0 || frame >= ts.totalFrames {
		return comp
	}

	comp.Opacity = ctx.BackgroundOpacity(float64(frame))
	comp.Visible = ctx.Width > 0 && ctx.Height > 0
	comp.Gradient = ComputeGradient(ctx)

	for _, l := range ts.layers {
		phase := l.Window.PhaseAt(frame)
		if !phase.Visible() {
			continue
		}
		local := l.Window.LocalFrame(frame)
		// 预挂载期间停在第 0 帧
		animFrame := max(local, 0)

		state := components.LayerState{
			Kind:       l.Kind,
			Phase:      phase,
			LocalFrame: local,
			ZIndex:     l.ZIndex,
		}
		switch l.Kind {
		case components.LayerLines:
			s := ComputeLines(ctx, animFrame)
			state.Lines = &s
		case components.LayerStudioName:
			s := ComputeStudioName(ctx, animFrame)
			state.StudioName = &s
		case components.LayerLogo:
			s := ComputeLogo(ctx, animFrame)
			state.Logo = &s
		case components.LayerTagline:
			s := ComputeTagline(ctx, animFrame)
			state.Tagline = &s
		}
		comp.Layers = append(comp.Layers, state)
	}

	comp.Dust = ComputeDust(ctx, frame)
	return comp
}

// PhasesAt 所有图层在某一帧的阶段（包括不渲染的图层）
func (ts *TimelineSystem) PhasesAt(frame int) map[components.LayerKind]components.LayerPhase {
	phases := make(map[components.LayerKind]components.LayerPhase, len(ts.layers))
	for _, l := range ts.layers {
		phases[l.Kind] = l.Window.PhaseAt(frame)
	}
	return phases
}

// NeedsPreload 在该帧是否有图层处于预挂载或播放状态（用于触发资源预加载）
func (ts *TimelineSystem) NeedsPreload(kind components.LayerKind, frame int) bool {
	for _, l := range ts.layers {
		if l.Kind == kind {
			return l.Window.PhaseAt(frame).Visible()
		}
	}
	return false
}
