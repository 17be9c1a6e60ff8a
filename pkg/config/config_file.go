package config

import (
	"os"

	"github.com/decker502/gridboard/pkg/embedded"
)

// readConfigFile 读取配置文件
// "data/" 开头的路径优先从内置资源读取，未初始化或不存在时回退到磁盘
func readConfigFile(path string) ([]byte, error) {
	if embedded.IsEmbeddedPath(path) && embedded.IsInitialized() {
		if data, err := embedded.ReadFile(path); err == nil {
			return data, nil
		}
	}
	return os.ReadFile(path)
}
