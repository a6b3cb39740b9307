package components

// LayerKind 分时图层类型
type LayerKind int

const (
	LayerLines LayerKind = iota
	LayerStudioName
	LayerLogo
	LayerTagline
)

// String 返回图层名称（日志和命令行输出使用）
func (k LayerKind) String() string {
	switch k {
	case LayerLines:
		return "lines"
	case LayerStudioName:
		return "studioName"
	case LayerLogo:
		return "logo"
	case LayerTagline:
		return "tagline"
	default:
		return "unknown"
	}
}

// LayerPhase 图层在某一全局帧所处的阶段
type LayerPhase int

const (
	// PhaseDormant 尚未进入预挂载窗口，不渲染
	PhaseDormant LayerPhase = iota
	// PhasePremounting 预挂载：可以预加载资源，按第 0 帧状态渲染
	PhasePremounting
	// PhaseActive 播放中
	PhaseActive
	// PhaseRetired 已超出持续时长，不渲染
	PhaseRetired
)

// String 返回阶段名称
func (p LayerPhase) String() string {
	switch p {
	case PhaseDormant:
		return "dormant"
	case PhasePremounting:
		return "premounting"
	case PhaseActive:
		return "active"
	case PhaseRetired:
		return "retired"
	default:
		return "unknown"
	}
}

// Visible 该阶段是否需要渲染
func (p LayerPhase) Visible() bool {
	return p == PhasePremounting || p == PhaseActive
}

// MountWindow 图层挂载窗口（帧）
// 合成期间保持不变。
type MountWindow struct {
	StartFrame     int // 本地第 0 帧对应的全局帧
	DurationFrames int // 活跃帧数
	PremountFrames int // 提前挂载帧数
}

// LocalFrame 全局帧换算为本地帧
func (w MountWindow) LocalFrame(globalFrame int) int {
	return globalFrame - w.StartFrame
}

// PhaseAt 计算全局帧对应的图层阶段
//
//	local < -premount          → Dormant
//	-premount ≤ local < 0      → Premounting
//	0 ≤ local < duration       → Active
//	local ≥ duration           → Retired
func (w MountWindow) PhaseAt(globalFrame int) LayerPhase {
	local := w.LocalFrame(globalFrame)
	switch {
	case local >= w.DurationFrames:
		return PhaseRetired
	case local >= 0:
		return PhaseActive
	case local >= -w.PremountFrames:
		return PhasePremounting
	default:
		return PhaseDormant
	}
}

// EndFrame 图层退场的全局帧（不含）
func (w MountWindow) EndFrame() int {
	return w.StartFrame + w.DurationFrames
}

// SequenceComponent 图层在时间轴上的位置
type SequenceComponent struct {
	Window MountWindow
	// ZIndex 合成顺序，越大越靠上
	ZIndex int
}

// LayerComponent 标记图层类型
type LayerComponent struct {
	Kind LayerKind
}
