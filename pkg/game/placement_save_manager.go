package game

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/decker502/gridboard/pkg/types"
)

// 存储路径常量
const (
	placementsObject   = "placements"
	placementsProperty = "board"
)

// placementSaveData 存档文件结构
type placementSaveData struct {
	Placements map[types.AssetID]types.Cell `yaml:"placements"`
}

// PlacementSaveManager 放置存档管理器
// 负责把资产的显式格子保存到 gdata，并在启动时恢复
type PlacementSaveManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	logger       *zap.Logger
}

// NewPlacementSaveManager 创建放置存档管理器
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存）
//   - logger: 可为 nil
func NewPlacementSaveManager(gdataManager *gdata.Manager, logger *zap.Logger) *PlacementSaveManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlacementSaveManager{
		gdataManager: gdataManager,
		logger:       logger.Named("placements"),
	}
}

// IsPersistent 是否能够持久化
func (pm *PlacementSaveManager) IsPersistent() bool {
	return pm != nil && pm.gdataManager != nil
}

// Load 从 gdata 加载已保存的放置
//
// 降级模式或存档不存在时返回空映射和 nil
//
// 返回：
//   - map[types.AssetID]types.Cell: 资产到格子的映射
//   - error: 读取或反序列化失败
func (pm *PlacementSaveManager) Load() (map[types.AssetID]types.Cell, error) {
	if !pm.IsPersistent() {
		return map[types.AssetID]types.Cell{}, nil
	}
	if !pm.gdataManager.ObjectPropExists(placementsObject, placementsProperty) {
		return map[types.AssetID]types.Cell{}, nil
	}

	data, err := pm.gdataManager.LoadObjectProp(placementsObject, placementsProperty)
	if err != nil {
		return nil, fmt.Errorf("failed to load placements: %w", err)
	}

	var saved placementSaveData
	if err := yaml.Unmarshal(data, &saved); err != nil {
		return nil, fmt.Errorf("failed to unmarshal placements: %w", err)
	}
	if saved.Placements == nil {
		saved.Placements = map[types.AssetID]types.Cell{}
	}

	pm.logger.Debug("placements loaded", zap.Int("count", len(saved.Placements)))
	return saved.Placements, nil
}

// Save 保存放置到 gdata
// 降级模式下直接返回 nil
func (pm *PlacementSaveManager) Save(placements map[types.AssetID]types.Cell) error {
	if !pm.IsPersistent() {
		return nil
	}

	data, err := yaml.Marshal(placementSaveData{Placements: placements})
	if err != nil {
		return fmt.Errorf("failed to marshal placements: %w", err)
	}
	if err := pm.gdataManager.SaveObjectProp(placementsObject, placementsProperty, data); err != nil {
		return fmt.Errorf("failed to save placements: %w", err)
	}

	pm.logger.Debug("placements saved", zap.Int("count", len(placements)))
	return nil
}
