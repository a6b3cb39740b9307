package config

import (
	"fmt"
	"image/color"
	"os"

	"github.com/decker502/estudio-intro/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// DefaultPageConfigPath 内置落地页内容
const DefaultPageConfigPath = "data/page.yaml"

// 落地页布局常量
const (
	PageMarginX        = 48.0 // 左右边距
	PageNavHeight      = 72.0 // 顶部导航高度
	PageSectionSpacing = 56.0 // 区块间距
	PageScrollStep     = 48.0 // 方向键/滚轮每次滚动距离
	PageBrandFontSize  = 24.0
	PageNavFontSize    = 14.0
	PageEyebrowSize    = 13.0
	PageHeadingSize    = 34.0
	PageBodySize       = 16.0
	PageLineSpacing    = 1.5 // 行高倍数
)

// 落地页配色
var (
	PageBackgroundColor = color.NRGBA{R: 0xf5, G: 0xeb, B: 0xe0, A: 0xff}
	PageInkColor        = color.NRGBA{R: 0x2a, G: 0x1f, B: 0x17, A: 0xff}
	PageAccentColor     = color.NRGBA{R: 0xb4, G: 0x78, B: 0x46, A: 0xff}
	PageRuleColor       = color.NRGBA{R: 0xc8, G: 0xa0, B: 0x78, A: 0x80}
)

// PageContent 落地页内容
type PageContent struct {
	Brand      string        `yaml:"brand"`
	Navigation []string      `yaml:"navigation"`
	Sections   []PageSection `yaml:"sections"`
	Footer     string        `yaml:"footer"`
}

// PageSection 落地页区块
type PageSection struct {
	Eyebrow string   `yaml:"eyebrow"` // 小标题
	Heading string   `yaml:"heading"`
	Body    []string `yaml:"body"`
}

// LoadPageContent 加载落地页内容（优先嵌入资源）
func LoadPageContent(path string) (*PageContent, error) {
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
		return nil, fmt.Errorf("failed to read page content %s: %w", path, err)
	}

	var content PageContent
	if err := yaml.Unmarshal(data, &content); err != nil {
		return nil, fmt.Errorf("failed to parse page content YAML from %s: %w", path, err)
	}

	if content.Brand == "" {
		return nil, fmt.Errorf("invalid page content in %s: brand is required", path)
	}
	for i, s := range content.Sections {
		if s.Heading == "" {
			return nil, fmt.Errorf("invalid page content in %s: sections[%d].heading is required", path, i)
		}
	}

	return &content, nil
}
