package embedded

import (
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"data/intro.yaml": &fstest.MapFile{Data: []byte("fps: 30\n")},
		"data/page.yaml":  &fstest.MapFile{Data: []byte("brand: X\n")},
	}
}

// TestIsInitialized 测试初始化状态检测
func TestIsInitialized(t *testing.T) {
	Reset()
	defer Reset()

	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}

	Init(testFS())

	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}

	Init(nil)
	if IsInitialized() {
		t.Error("Expected Init(nil) to leave the package uninitialized")
	}
}

// TestReadFileNotInitialized 测试未初始化时调用 ReadFile
func TestReadFileNotInitialized(t *testing.T) {
	Reset()

	_, err := ReadFile("data/intro.yaml")
	if err == nil {
		t.Fatal("Expected error when calling ReadFile() before Init()")
	}
	if err.Error() != "embedded package not initialized, call Init() first" {
		t.Errorf("Unexpected error message: %v", err)
	}
	if Exists("data/intro.yaml") {
		t.Error("Exists() should be false before Init()")
	}
}

// TestReadFile 测试路径标准化与读取
func TestReadFile(t *testing.T) {
	Init(testFS())
	defer Reset()

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{"标准路径", "data/intro.yaml", "fps: 30\n", false},
		{"带 ./ 前缀", "./data/page.yaml", "brand: X\n", false},
		{"未知前缀", "assets/logo.png", "", true},
		{"不存在", "data/missing.yaml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := ReadFile(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ReadFile(%q) expected error", tt.path)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadFile(%q) failed: %v", tt.path, err)
			}
			if string(data) != tt.want {
				t.Errorf("ReadFile(%q) = %q, want %q", tt.path, data, tt.want)
			}
		})
	}
}

// TestExistsAndGlob 测试存在性检查与通配
func TestExistsAndGlob(t *testing.T) {
	Init(testFS())
	defer Reset()

	if !Exists("data/intro.yaml") {
		t.Error("Exists(data/intro.yaml) = false, want true")
	}
	if Exists("data/none.yaml") {
		t.Error("Exists(data/none.yaml) = true, want false")
	}

	matches, err := Glob("data/*.yaml")
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("Glob(data/*.yaml) = %v, want 2 matches", matches)
	}
}
