package game

import (
	"errors"
	"fmt"
	"log"

	"github.com/decker502/estudio-intro/pkg/utils"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// SiteSettings 宿主偏好（不包含动画进度，每次启动都从第 0 帧开始）
type SiteSettings struct {
	SkipIntro  bool `yaml:"skipIntro"`  // 启动时直接进入落地页
	Fullscreen bool `yaml:"fullscreen"` // 启动时恢复全屏
}

// DefaultSettings 首次启动的偏好
func DefaultSettings() *SiteSettings {
	return &SiteSettings{}
}

// gdata 中的存储位置：settings/global，值为 YAML
const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

var errNoStore = errors.New("settings store unavailable")

// SettingsManager 在内存中持有偏好，并在可用时同步到 gdata
//
// store 为 nil 时是纯内存模式：Save/Load 都不报错，重启后恢复默认值。
type SettingsManager struct {
	store    *gdata.Manager
	settings *SiteSettings
}

// NewSettingsManager 包装一个 gdata 存储并立即读取一次
// 读取失败只记日志，继续使用默认偏好。
func NewSettingsManager(store *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{store: store, settings: DefaultSettings()}
	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] 读取偏好失败，使用默认值: %v", err)
	}
	return sm
}

// OpenSettingsManager 按应用名打开 gdata；打不开时退回纯内存模式
func OpenSettingsManager(appName string) *SettingsManager {
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[SettingsManager] 存储目录不可用: %v", err)
	} else if p := utils.GetStoragePath(); p != "" {
		log.Printf("[SettingsManager] 存储目录: %s", p)
	}

	store, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[SettingsManager] gdata 打开失败，偏好不会保存: %v", err)
		store = nil
	}
	return NewSettingsManager(store)
}

// Load 重新读取偏好；没有存储或尚未保存过时重置为默认值
func (sm *SettingsManager) Load() error {
	sm.settings = DefaultSettings()

	raw, err := sm.read()
	switch {
	case errors.Is(err, errNoStore):
		return nil
	case err != nil:
		return fmt.Errorf("load settings: %w", err)
	case raw == nil:
		return nil
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(raw, loaded); err != nil {
		return fmt.Errorf("decode settings: %w", err)
	}
	sm.settings = loaded
	log.Printf("[SettingsManager] 已读取偏好: %+v", *loaded)
	return nil
}

func (sm *SettingsManager) read() ([]byte, error) {
	if sm.store == nil {
		return nil, errNoStore
	}
	if !sm.store.ObjectPropExists(settingsObject, settingsProperty) {
		return nil, nil
	}
	return sm.store.LoadObjectProp(settingsObject, settingsProperty)
}

// Save 写回 gdata；纯内存模式下什么也不做
func (sm *SettingsManager) Save() error {
	if sm.store == nil {
		return nil
	}
	raw, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := sm.store.SaveObjectProp(settingsObject, settingsProperty, raw); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// Persistent 偏好能否跨启动保留
func (sm *SettingsManager) Persistent() bool { return sm.store != nil }

// GetSettings 当前偏好（可直接修改，之后调用 Save）
func (sm *SettingsManager) GetSettings() *SiteSettings { return sm.settings }

func (sm *SettingsManager) SetSkipIntro(skip bool) { sm.settings.SkipIntro = skip }

func (sm *SettingsManager) SetFullscreen(on bool) { sm.settings.Fullscreen = on }
