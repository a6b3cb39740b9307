package config

// 桌面窗口配置
const (
	// WindowWidth 初始窗口宽度
	WindowWidth = 1280
	// WindowHeight 初始窗口高度
	WindowHeight = 720
	// WindowTitle 窗口标题
	WindowTitle = "Estudio G - Arquitectura Contemporánea"

	// GdataAppName gdata 存储使用的应用名
	GdataAppName = "estudio_intro"
)
