package config

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/decker502/gridboard/pkg/types"
)

// ErrInvalidCatalog 表示资产目录中存在非法条目
var ErrInvalidCatalog = errors.New("invalid asset catalog")

// DefaultCatalogPath 内置的示例资产目录
const DefaultCatalogPath = "data/catalog.yaml"

// AssetCatalog 资产目录文件结构
type AssetCatalog struct {
	Assets []types.Asset `yaml:"assets"`
}

// LoadAssetCatalog 从 YAML 文件加载初始资产
//
// 返回:
//   - []types.Asset: 按文件中的顺序排列
//   - error: 读取、解析失败，或存在空/重复的 id 时返回错误
func LoadAssetCatalog(path string) ([]types.Asset, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read asset catalog %s: %w", path, err)
	}

	var catalog AssetCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse asset catalog YAML from %s: %w", path, err)
	}

	if err := validateCatalog(catalog.Assets); err != nil {
		return nil, fmt.Errorf("invalid asset catalog in %s: %w", path, err)
	}
	return catalog.Assets, nil
}

func validateCatalog(assets []types.Asset) error {
	seen := make(map[types.AssetID]struct{}, len(assets))
	for i, a := range assets {
		if a.ID == "" {
			return fmt.Errorf("%w: asset #%d has empty id", ErrInvalidCatalog, i)
		}
		if _, dup := seen[a.ID]; dup {
			return fmt.Errorf("%w: duplicate asset id %q", ErrInvalidCatalog, a.ID)
		}
		seen[a.ID] = struct{}{}
	}
	return nil
}
