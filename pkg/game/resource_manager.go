package game

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"os"

	"github.com/decker502/estudio-intro/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultFontPath 内置字体（Go Regular），不需要字体文件
const DefaultFontPath = "builtin:goregular"

// ResourceManager is responsible for centralized management of site resources.
// It loads and caches images and font faces so each asset is decoded only once.
//
// Paths starting with "data/" are read from the embedded resources when the
// embedded package is initialized; everything else is read from the file system.
//
// Thread Safety Note:
// This implementation is NOT thread-safe. It is only used from the ebiten
// game loop goroutine.
type ResourceManager struct {
	imageCache  map[string]*ebiten.Image
	imageErrors map[string]error // 加载失败的路径，避免每帧重试
	fontSources map[string]*text.GoTextFaceSource
	faceCache   map[string]*text.GoTextFace
}

// NewResourceManager creates a ResourceManager with empty caches.
func NewResourceManager() *ResourceManager {
	return &ResourceManager{
		imageCache:  make(map[string]*ebiten.Image),
		imageErrors: make(map[string]error),
		fontSources: make(map[string]*text.GoTextFaceSource),
		faceCache:   make(map[string]*text.GoTextFace),
	}
}

// openResource 打开资源（嵌入资源优先）
func openResource(path string) (io.ReadCloser, error) {
	if embedded.IsInitialized() && embedded.Exists(path) {
		return embedded.Open(path)
	}
	return os.Open(path)
}

// readResource 读取资源全部内容
func readResource(path string) ([]byte, error) {
	f, err := openResource(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// DecodeImageFile 解码图片文件（不创建 GPU 图像）
func DecodeImageFile(path string) (image.Image, error) {
	f, err := openResource(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return img, nil
}

// LoadImage loads an image and caches it for future use.
// 失败结果同样会被缓存，之后对同一路径的调用直接返回之前的错误。
func (rm *ResourceManager) LoadImage(path string) (*ebiten.Image, error) {
	if cached, ok := rm.imageCache[path]; ok {
		return cached, nil
	}
	if err, failed := rm.imageErrors[path]; failed {
		return nil, err
	}

	img, err := DecodeImageFile(path)
	if err != nil {
		rm.imageErrors[path] = err
		return nil, err
	}

	ebitenImg := ebiten.NewImageFromImage(img)
	rm.imageCache[path] = ebitenImg
	return ebitenImg, nil
}

// GetImage retrieves a previously loaded image from the cache, or nil.
func (rm *ResourceManager) GetImage(path string) *ebiten.Image {
	return rm.imageCache[path]
}

// LoadFontSource 加载字体源并缓存
// path 为空或 DefaultFontPath 时使用内置的 Go Regular 字体。
func (rm *ResourceManager) LoadFontSource(path string) (*text.GoTextFaceSource, error) {
	if path == "" {
		path = DefaultFontPath
	}
	if cached, ok := rm.fontSources[path]; ok {
		return cached, nil
	}

	var data []byte
	if path == DefaultFontPath {
		data = goregular.TTF
	} else {
		var err error
		data, err = readResource(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read font file %s: %w", path, err)
		}
	}

	source, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create font source for %s: %w", path, err)
	}
	rm.fontSources[path] = source
	return source, nil
}

// LoadFont 加载指定字号的字体
func (rm *ResourceManager) LoadFont(path string, size float64) (*text.GoTextFace, error) {
	if path == "" {
		path = DefaultFontPath
	}
	cacheKey := fmt.Sprintf("%s:%.2f", path, size)
	if cached, ok := rm.faceCache[cacheKey]; ok {
		return cached, nil
	}

	source, err := rm.LoadFontSource(path)
	if err != nil {
		return nil, err
	}

	face := &text.GoTextFace{
		Source:    source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	rm.faceCache[cacheKey] = face
	return face, nil
}
