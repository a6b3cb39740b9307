package entities

import (
	"fmt"
	"log"

	"github.com/decker502/estudio-intro/pkg/components"
	"github.com/decker502/estudio-intro/pkg/config"
	"github.com/decker502/estudio-intro/pkg/ecs"
)

// 图层合成顺序（背景为 0，浮尘始终在最上层）
const (
	ZIndexLines      = 10
	ZIndexStudioName = 20
	ZIndexLogo       = 30
	ZIndexTagline    = 40
)

// NewIntroLayerEntity 创建一个分时图层实体
//
// 参数:
//   - em: 实体管理器
//   - kind: 图层类型
//   - spec: 挂载窗口（秒）
//   - fps: 帧率，用于把秒换算为帧
//
// 返回:
//   - ecs.EntityID: 创建的实体ID，失败返回 0
//   - error: 窗口非法时返回错误
func NewIntroLayerEntity(em *ecs.EntityManager, kind components.LayerKind, spec config.WindowSpec, fps int) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if fps <= 0 {
		return 0, fmt.Errorf("invalid fps %d", fps)
	}

	start, duration, premount := spec.Frames(fps)
	if start < 0 || duration <= 0 || premount < 0 {
		return 0, fmt.Errorf("invalid %s window: start=%d duration=%d premount=%d", kind, start, duration, premount)
	}

	entityID := em.CreateEntity()
	em.AddComponent(entityID, &components.SequenceComponent{
		Window: components.MountWindow{
			StartFrame:     start,
			DurationFrames: duration,
			PremountFrames: premount,
		},
		ZIndex: zIndexOf(kind),
	})
	em.AddComponent(entityID, &components.LayerComponent{Kind: kind})

	log.Printf("[IntroLayerFactory] %s: frames [%d, %d) premount %d (entity %d)",
		kind, start, start+duration, premount, entityID)
	return entityID, nil
}

// NewIntroLayers 按配置创建四个分时图层
// 返回的实体顺序与合成顺序一致。
func NewIntroLayers(em *ecs.EntityManager, cfg *config.IntroConfig) ([]ecs.EntityID, error) {
	if cfg == nil {
		return nil, fmt.Errorf("intro config cannot be nil")
	}

	layers := []struct {
		kind components.LayerKind
		spec config.WindowSpec
	}{
		{components.LayerLines, cfg.Layers.Lines},
		{components.LayerStudioName, cfg.Layers.StudioName},
		{components.LayerLogo, cfg.Layers.Logo},
		{components.LayerTagline, cfg.Layers.Tagline},
	}

	ids := make([]ecs.EntityID, 0, len(layers))
	for _, l := range layers {
		id, err := NewIntroLayerEntity(em, l.kind, l.spec, cfg.FPS)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s layer: %w", l.kind, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func zIndexOf(kind components.LayerKind) int {
	switch kind {
	case components.LayerLines:
		return ZIndexLines
	case components.LayerStudioName:
		return ZIndexStudioName
	case components.LayerLogo:
		return ZIndexLogo
	case components.LayerTagline:
		return ZIndexTagline
	default:
		return 0
	}
}
