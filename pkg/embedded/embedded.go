// Package embedded 提供嵌入资源的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）。
// 本包保存该文件系统，让 config 等包可以读取内置的默认配置。
//
// 未调用 Init 时所有读取都返回 ErrNotInitialized，调用方应回退到磁盘文件。
package embedded

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
)

// ErrNotInitialized 表示 Init 尚未调用
var ErrNotInitialized = errors.New("embedded package not initialized")

// Prefix 内置资源的路径前缀
const Prefix = "data/"

var (
	mu     sync.RWMutex
	dataFS fs.FS
)

// Init 设置内置数据文件系统
// 必须在 main() 开始时、任何配置加载之前调用；传入 nil 等价于 Reset
func Init(data fs.FS) {
	mu.Lock()
	dataFS = data
	mu.Unlock()
}

// Reset 清除已设置的文件系统（用于测试）
func Reset() {
	Init(nil)
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	mu.RLock()
	defer mu.RUnlock()
	return dataFS != nil
}

// IsEmbeddedPath 路径是否指向内置资源（以 "data/" 开头）
func IsEmbeddedPath(path string) bool {
	return strings.HasPrefix(normalize(path), Prefix)
}

// ReadFile 读取内置资源
// 路径必须以 "data/" 开头
func ReadFile(path string) ([]byte, error) {
	mu.RLock()
	fsys := dataFS
	mu.RUnlock()

	if fsys == nil {
		return nil, ErrNotInitialized
	}
	path = normalize(path)
	if !strings.HasPrefix(path, Prefix) {
		return nil, fmt.Errorf("unknown resource path prefix: %s (must start with %q)", path, Prefix)
	}
	return fs.ReadFile(fsys, path)
}

// Exists 检查文件是否存在于内置资源中
func Exists(path string) bool {
	_, err := ReadFile(path)
	return err == nil
}

// normalize 标准化路径分隔符为正斜杠（embed.FS 使用正斜杠）并移除 "./" 前缀
func normalize(path string) string {
	return strings.TrimPrefix(filepath.ToSlash(path), "./")
}
