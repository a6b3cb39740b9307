package utils

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// SpringConfig 弹簧物理参数
//
// 阻尼比 ζ = Damping / (2·√(Stiffness·Mass))，角频率 ω = √(Stiffness/Mass)。
// ζ < 1 欠阻尼（回弹），ζ = 1 临界阻尼，ζ > 1 过阻尼（无回弹、缓慢收敛）。
type SpringConfig struct {
	Damping   float64 `yaml:"damping"`
	Stiffness float64 `yaml:"stiffness"`
	Mass      float64 `yaml:"mass"`
}

const (
	// DefaultSpringDamping 等默认值与未配置字段对应
	DefaultSpringDamping   = 10.0
	DefaultSpringStiffness = 100.0
	DefaultSpringMass      = 1.0

	// SpringRestThreshold 判定弹簧静止的位移阈值
	SpringRestThreshold = 0.005

	// springRestHoldFrames 位移需连续保持在阈值内的帧数
	springRestHoldFrames = 20

	// maxSpringMeasureFrames 测量自然时长的帧数上限（防止永不收敛的参数死循环）
	maxSpringMeasureFrames = 100000
)

// 开场动画使用的两类弹簧
var (
	// SpringSettle 接近临界的过阻尼配置：快速就位、无回弹（线条、标语单词）
	SpringSettle = SpringConfig{Damping: 200}

	// SpringNameElastic 工作室名称的弹性入场
	SpringNameElastic = SpringConfig{Damping: 15, Stiffness: 80, Mass: 1}

	// SpringLogoElastic Logo 的弹性入场
	SpringLogoElastic = SpringConfig{Damping: 12, Stiffness: 100, Mass: 1}
)

// WithDefaults 返回补齐默认值后的配置（零值字段使用默认值）
func (c SpringConfig) WithDefaults() SpringConfig {
	if c.Damping == 0 {
		c.Damping = DefaultSpringDamping
	}
	if c.Stiffness == 0 {
		c.Stiffness = DefaultSpringStiffness
	}
	if c.Mass == 0 {
		c.Mass = DefaultSpringMass
	}
	return c
}

// AngularFrequency 返回 ω = √(k/m)
func (c SpringConfig) AngularFrequency() float64 {
	c = c.WithDefaults()
	return math.Sqrt(c.Stiffness / c.Mass)
}

// DampingRatio 返回 ζ = c / (2√(k·m))
func (c SpringConfig) DampingRatio() float64 {
	c = c.WithDefaults()
	return c.Damping / (2 * math.Sqrt(c.Stiffness*c.Mass))
}

// valid 负值参数无法构成弹簧
func (c SpringConfig) valid() bool {
	c = c.WithDefaults()
	return c.Stiffness > 0 && c.Mass > 0 && c.Damping >= 0
}

// SpringParams 一次弹簧求值的输入
type SpringParams struct {
	Frame  float64 // 图层本地帧（可为负）
	FPS    int
	Config SpringConfig

	// DurationFrames > 0 时拉伸时间轴，使弹簧的自然静止帧恰好落在该帧
	DurationFrames float64
}

// Spring 计算弹簧从 0 向 1 运动的进度
//
// 结果是 t = frame/fps 时刻的解析解（静止起步、目标位置 1），
// 欠阻尼时可能略超过 1。frame ≤ 0 返回 0。
// 参数非法（刚度或质量 ≤ 0、fps ≤ 0）时退化为阶跃：frame > 0 返回 1。
func Spring(p SpringParams) float64 {
	if math.IsNaN(p.Frame) || p.Frame <= 0 {
		return 0
	}
	if p.FPS <= 0 || !p.Config.valid() {
		return 1
	}

	frame := p.Frame
	if p.DurationFrames > 0 {
		natural := MeasureSpring(p.FPS, p.Config, SpringRestThreshold)
		if natural > 0 {
			frame = frame * float64(natural) / p.DurationFrames
		}
	}

	return springPosition(frame/float64(p.FPS), p.Config)
}

// MeasureSpring 返回弹簧的自然时长（帧）
//
// 找到位移 |1 - x| 首次小于阈值的帧，之后还需连续 20 帧保持在阈值内；
// 期间一旦越界，静止帧顺延到越界之后。
func MeasureSpring(fps int, config SpringConfig, threshold float64) int {
	if fps <= 0 || !config.valid() {
		return 0
	}
	if threshold <= 0 {
		threshold = SpringRestThreshold
	}

	diff := func(frame int) float64 {
		return math.Abs(1 - springPosition(float64(frame)/float64(fps), config))
	}

	frame := 0
	for diff(frame) >= threshold {
		frame++
		if frame >= maxSpringMeasureFrames {
			return maxSpringMeasureFrames
		}
	}

	finished := frame
	for held := 0; held < springRestHoldFrames; held++ {
		frame++
		if diff(frame) >= threshold {
			held = -1
			finished = frame + 1
		}
		if frame >= maxSpringMeasureFrames {
			return maxSpringMeasureFrames
		}
	}

	return finished
}

// springPosition 解析求解 seconds 时刻的位置
//
// harmonica 的系数是阻尼谐振子在单步 deltaTime 上的精确解，
// 因此以整段时长作为步长、从静止的 0 出发一步即可得到该时刻的位置。
func springPosition(seconds float64, config SpringConfig) float64 {
	if seconds <= 0 {
		return 0
	}
	s := harmonica.NewSpring(seconds, config.AngularFrequency(), config.DampingRatio())
	pos, _ := s.Update(0, 0, 1)
	return pos
}
