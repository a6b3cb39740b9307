package config

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/decker502/estudio-intro/pkg/embedded"
	"github.com/decker502/estudio-intro/pkg/utils"
	"gopkg.in/yaml.v3"
)

// DefaultIntroConfigPath 内置开场动画配置（嵌入资源）
const DefaultIntroConfigPath = "data/intro.yaml"

// 开场动画时间常量（30 fps 下共 150 帧）
const (
	DefaultFPS                 = 30
	DefaultDurationSeconds     = 5.0
	DefaultFadeOutSeconds      = 0.4 // 容器淡出过渡时长
	DefaultUnmountDelaySeconds = 0.5 // 结束后移除覆盖层的延迟
)

// IntroConfig 开场动画配置
// 定义时间轴、各图层挂载窗口、弹簧参数和配色
type IntroConfig struct {
	FPS                 int     `yaml:"fps"`                 // 帧率
	DurationSeconds     float64 `yaml:"durationSeconds"`     // 总时长（秒）
	FadeOutSeconds      float64 `yaml:"fadeOutSeconds"`      // 容器淡出时长（秒）
	UnmountDelaySeconds float64 `yaml:"unmountDelaySeconds"` // 淡出开始到卸载的时长（秒）

	Background BackgroundConfig `yaml:"background"`
	Layers     LayerWindows     `yaml:"layers"`
	Lines      LinesConfig      `yaml:"lines"`
	StudioName StudioNameConfig `yaml:"studioName"`
	Logo       LogoConfig       `yaml:"logo"`
	Tagline    TaglineConfig    `yaml:"tagline"`
	Dust       DustConfig       `yaml:"dust"`
}

// BackgroundConfig 背景与整体淡入淡出
type BackgroundConfig struct {
	Color               ColorSpec      `yaml:"color"`
	FadeInSeconds       float64        `yaml:"fadeInSeconds"`       // 开头淡入时长
	FadeOutStartSeconds float64        `yaml:"fadeOutStartSeconds"` // 结尾淡出开始时刻
	Gradient            GradientConfig `yaml:"gradient"`
}

// GradientConfig 暖色径向渐变（椭圆，中心在 50% 40%）
type GradientConfig struct {
	Color   ColorSpec `yaml:"color"`
	CenterX float64   `yaml:"centerX"` // 中心 X（视口宽度比例）
	CenterY float64   `yaml:"centerY"` // 中心 Y（视口高度比例）
	Extent  float64   `yaml:"extent"`  // 透明终止位置（半径比例）
}

// WindowSpec 图层挂载窗口（秒）
type WindowSpec struct {
	StartSeconds    float64 `yaml:"startSeconds"`
	DurationSeconds float64 `yaml:"durationSeconds"`
	PremountSeconds float64 `yaml:"premountSeconds"`
}

// Frames 将秒换算为帧（四舍五入）
func (w WindowSpec) Frames(fps int) (start, duration, premount int) {
	return SecondsToFrames(w.StartSeconds, fps),
		SecondsToFrames(w.DurationSeconds, fps),
		SecondsToFrames(w.PremountSeconds, fps)
}

// LayerWindows 四个分时图层的挂载窗口
type LayerWindows struct {
	Lines      WindowSpec `yaml:"lines"`
	StudioName WindowSpec `yaml:"studioName"`
	Logo       WindowSpec `yaml:"logo"`
	Tagline    WindowSpec `yaml:"tagline"`
}

// LinesConfig 建筑线条
type LinesConfig struct {
	GrowSeconds   float64            `yaml:"growSeconds"` // 线条生长时长
	Spring        utils.SpringConfig `yaml:"spring"`
	EdgeColor     ColorSpec          `yaml:"edgeColor"`
	DiagonalColor ColorSpec          `yaml:"diagonalColor"`
}

// StudioNameConfig 工作室名称
type StudioNameConfig struct {
	Text               string             `yaml:"text"`
	Spring             utils.SpringConfig `yaml:"spring"`
	Color              ColorSpec          `yaml:"color"`
	LetterSpacingStart float64            `yaml:"letterSpacingStart"` // 起始字间距倍数（相对 letterSpacingMax）
}

// LogoConfig Logo 图片
type LogoConfig struct {
	Path       string             `yaml:"path"`
	Spring     utils.SpringConfig `yaml:"spring"`
	ScaleFrom  float64            `yaml:"scaleFrom"`
	Brightness float64            `yaml:"brightness"`
	Contrast   float64            `yaml:"contrast"`
}

// TaglineConfig 标语
type TaglineConfig struct {
	Words         []string           `yaml:"words"`
	Separator     string             `yaml:"separator"`     // 分隔符（使用更大字号）
	StaggerFrames int                `yaml:"staggerFrames"` // 相邻单词入场间隔（帧）
	Spring        utils.SpringConfig `yaml:"spring"`
	Color         ColorSpec          `yaml:"color"`
	SideMargin    float64            `yaml:"sideMargin"` // 左右留白（视口宽度比例）
}

// DustConfig 浮尘粒子
type DustConfig struct {
	Count       int       `yaml:"count"`
	Color       ColorSpec `yaml:"color"`
	RisePercent float64   `yaml:"risePercent"` // 一个周期内上升的视口高度百分比
}

// ColorSpec 颜色配置：十六进制 RGB + 透明度
type ColorSpec struct {
	Hex   string  `yaml:"hex"`
	Alpha float64 `yaml:"alpha"`
}

// NRGBA 转为非预乘颜色，Hex 非法时返回透明黑
func (c ColorSpec) NRGBA() color.NRGBA {
	r, g, b, err := ParseHexColor(c.Hex)
	if err != nil {
		return color.NRGBA{}
	}
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(utils.Clamp01(c.Alpha) * 255))}
}

// ParseHexColor 解析 "#rrggbb" 或 "#rgb"
func ParseHexColor(s string) (r, g, b uint8, err error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return 0, 0, 0, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), nil
}

// SecondsToFrames 秒换算为帧（四舍五入）
func SecondsToFrames(seconds float64, fps int) int {
	return int(math.Round(seconds * float64(fps)))
}

// TotalFrames 总帧数
func (c *IntroConfig) TotalFrames() int {
	return SecondsToFrames(c.DurationSeconds, c.FPS)
}

// DefaultIntroConfig 返回与设计稿一致的默认配置
func DefaultIntroConfig() *IntroConfig {
	cfg := &IntroConfig{}
	applyIntroDefaults(cfg)
	return cfg
}

// LoadIntroConfig 加载开场动画配置
//
// 路径以 "data/" 开头且嵌入资源中存在时从嵌入资源读取，否则从文件系统读取。
func LoadIntroConfig(path string) (*IntroConfig, error) {
	var (
		data []byte
		err  error
	)
	if embedded.IsInitialized() && embedded.Exists(path) {
		data, err = embedded.ReadFile(path)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read intro config file %s: %w", path, err)
	}

	cfg, err := ParseIntroConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid intro config in %s: %w", path, err)
	}
	return cfg, nil
}

// ParseIntroConfig 解析 YAML 数据、补齐默认值并校验
func ParseIntroConfig(data []byte) (*IntroConfig, error) {
	var cfg IntroConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse intro config YAML: %w", err)
	}

	applyIntroDefaults(&cfg)

	if err := ValidateIntroConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyIntroDefaults 为缺失字段设置默认值
func applyIntroDefaults(cfg *IntroConfig) {
	if cfg.FPS == 0 {
		cfg.FPS = DefaultFPS
	}
	if cfg.DurationSeconds == 0 {
		cfg.DurationSeconds = DefaultDurationSeconds
	}
	if cfg.FadeOutSeconds == 0 {
		cfg.FadeOutSeconds = DefaultFadeOutSeconds
	}
	if cfg.UnmountDelaySeconds == 0 {
		cfg.UnmountDelaySeconds = DefaultUnmountDelaySeconds
	}

	bg := &cfg.Background
	defaultColor(&bg.Color, "#2a1f17", 1)
	if bg.FadeInSeconds == 0 {
		bg.FadeInSeconds = 0.5
	}
	if bg.FadeOutStartSeconds == 0 {
		bg.FadeOutStartSeconds = 3.5
	}
	defaultColor(&bg.Gradient.Color, "#b47846", 0.15)
	if bg.Gradient.CenterX == 0 {
		bg.Gradient.CenterX = 0.5
	}
	if bg.Gradient.CenterY == 0 {
		bg.Gradient.CenterY = 0.4
	}
	if bg.Gradient.Extent == 0 {
		bg.Gradient.Extent = 0.7
	}

	defaultWindow(&cfg.Layers.Lines, WindowSpec{StartSeconds: 0.5, DurationSeconds: 4.5, PremountSeconds: 0.3})
	defaultWindow(&cfg.Layers.StudioName, WindowSpec{StartSeconds: 1.0, DurationSeconds: 4.0, PremountSeconds: 0.5})
	defaultWindow(&cfg.Layers.Logo, WindowSpec{StartSeconds: 1.5, DurationSeconds: 3.5, PremountSeconds: 0.5})
	defaultWindow(&cfg.Layers.Tagline, WindowSpec{StartSeconds: 2.0, DurationSeconds: 3.0, PremountSeconds: 0.5})

	if cfg.Lines.GrowSeconds == 0 {
		cfg.Lines.GrowSeconds = 1.5
	}
	defaultSpring(&cfg.Lines.Spring, utils.SpringSettle)
	defaultColor(&cfg.Lines.EdgeColor, "#c8a078", 0.25)
	defaultColor(&cfg.Lines.DiagonalColor, "#c8a078", 0.12)

	if cfg.StudioName.Text == "" {
		cfg.StudioName.Text = "ESTUDIO"
	}
	defaultSpring(&cfg.StudioName.Spring, utils.SpringNameElastic)
	defaultColor(&cfg.StudioName.Color, "#f5ebe0", 1)
	if cfg.StudioName.LetterSpacingStart == 0 {
		cfg.StudioName.LetterSpacingStart = 2.2
	}

	if cfg.Logo.Path == "" {
		cfg.Logo.Path = "data/images/logo.png"
	}
	defaultSpring(&cfg.Logo.Spring, utils.SpringLogoElastic)
	if cfg.Logo.ScaleFrom == 0 {
		cfg.Logo.ScaleFrom = 0.7
	}
	if cfg.Logo.Brightness == 0 {
		cfg.Logo.Brightness = 1.3
	}
	if cfg.Logo.Contrast == 0 {
		cfg.Logo.Contrast = 0.9
	}

	if len(cfg.Tagline.Words) == 0 {
		cfg.Tagline.Words = []string{"Arquitectura", "·", "Interiorismo", "·", "Diseño"}
	}
	if cfg.Tagline.Separator == "" {
		cfg.Tagline.Separator = "·"
	}
	if cfg.Tagline.StaggerFrames == 0 {
		cfg.Tagline.StaggerFrames = 4
	}
	defaultSpring(&cfg.Tagline.Spring, utils.SpringSettle)
	defaultColor(&cfg.Tagline.Color, "#c8b4a0", 0.9)
	if cfg.Tagline.SideMargin == 0 {
		cfg.Tagline.SideMargin = 0.05
	}

	if cfg.Dust.Count == 0 {
		cfg.Dust.Count = 8
	}
	defaultColor(&cfg.Dust.Color, "#c8aa82", 0.4)
	if cfg.Dust.RisePercent == 0 {
		cfg.Dust.RisePercent = 20
	}
}

func defaultColor(c *ColorSpec, hex string, alpha float64) {
	if c.Hex == "" {
		c.Hex = hex
		if c.Alpha == 0 {
			c.Alpha = alpha
		}
	}
}

func defaultWindow(w *WindowSpec, def WindowSpec) {
	if *w == (WindowSpec{}) {
		*w = def
	}
}

func defaultSpring(s *utils.SpringConfig, def utils.SpringConfig) {
	if *s == (utils.SpringConfig{}) {
		*s = def
	}
}

// ValidateIntroConfig 校验配置的合法性
func ValidateIntroConfig(cfg *IntroConfig) error {
	if cfg.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", cfg.FPS)
	}
	if cfg.DurationSeconds <= 0 {
		return fmt.Errorf("durationSeconds must be positive, got %v", cfg.DurationSeconds)
	}
	if cfg.FadeOutSeconds < 0 {
		return fmt.Errorf("fadeOutSeconds cannot be negative, got %v", cfg.FadeOutSeconds)
	}
	if cfg.UnmountDelaySeconds < cfg.FadeOutSeconds {
		return fmt.Errorf("unmountDelaySeconds (%v) must not be shorter than fadeOutSeconds (%v)",
			cfg.UnmountDelaySeconds, cfg.FadeOutSeconds)
	}

	bg := cfg.Background
	if bg.FadeInSeconds < 0 || bg.FadeInSeconds > cfg.DurationSeconds {
		return fmt.Errorf("background.fadeInSeconds must be within [0, %v], got %v", cfg.DurationSeconds, bg.FadeInSeconds)
	}
	if bg.FadeOutStartSeconds < bg.FadeInSeconds || bg.FadeOutStartSeconds >= cfg.DurationSeconds {
		return fmt.Errorf("background.fadeOutStartSeconds must be within [%v, %v), got %v",
			bg.FadeInSeconds, cfg.DurationSeconds, bg.FadeOutStartSeconds)
	}

	windows := map[string]WindowSpec{
		"lines":      cfg.Layers.Lines,
		"studioName": cfg.Layers.StudioName,
		"logo":       cfg.Layers.Logo,
		"tagline":    cfg.Layers.Tagline,
	}
	for name, w := range windows {
		start, duration, premount := w.Frames(cfg.FPS)
		if start < 0 {
			return fmt.Errorf("layers.%s.startSeconds cannot be negative, got %v", name, w.StartSeconds)
		}
		if duration <= 0 {
			return fmt.Errorf("layers.%s.durationSeconds must cover at least one frame, got %v", name, w.DurationSeconds)
		}
		if premount < 0 {
			return fmt.Errorf("layers.%s.premountSeconds cannot be negative, got %v", name, w.PremountSeconds)
		}
	}

	springs := map[string]utils.SpringConfig{
		"lines.spring":      cfg.Lines.Spring,
		"studioName.spring": cfg.StudioName.Spring,
		"logo.spring":       cfg.Logo.Spring,
		"tagline.spring":    cfg.Tagline.Spring,
	}
	for name, s := range springs {
		if s.Damping < 0 || s.Stiffness < 0 || s.Mass < 0 {
			return fmt.Errorf("%s: damping, stiffness and mass cannot be negative, got %+v", name, s)
		}
	}

	colors := map[string]ColorSpec{
		"background.color":          bg.Color,
		"background.gradient.color": bg.Gradient.Color,
		"lines.edgeColor":           cfg.Lines.EdgeColor,
		"lines.diagonalColor":       cfg.Lines.DiagonalColor,
		"studioName.color":          cfg.StudioName.Color,
		"tagline.color":             cfg.Tagline.Color,
		"dust.color":                cfg.Dust.Color,
	}
	for name, c := range colors {
		if _, _, _, err := ParseHexColor(c.Hex); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if c.Alpha < 0 || c.Alpha > 1 {
			return fmt.Errorf("%s: alpha must be within [0, 1], got %v", name, c.Alpha)
		}
	}

	if cfg.Tagline.StaggerFrames < 0 {
		return fmt.Errorf("tagline.staggerFrames cannot be negative, got %d", cfg.Tagline.StaggerFrames)
	}
	if cfg.Tagline.SideMargin < 0 || cfg.Tagline.SideMargin >= 0.5 {
		return fmt.Errorf("tagline.sideMargin must be within [0, 0.5), got %v", cfg.Tagline.SideMargin)
	}
	if cfg.Dust.Count < 0 {
		return fmt.Errorf("dust.count cannot be negative, got %d", cfg.Dust.Count)
	}
	if cfg.Logo.ScaleFrom < 0 {
		return fmt.Errorf("logo.scaleFrom cannot be negative, got %v", cfg.Logo.ScaleFrom)
	}

	return nil
}
