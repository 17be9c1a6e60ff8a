package systems

import (
	"github.com/decker502/gridboard/pkg/types"
	"github.com/decker502/gridboard/pkg/utils"
)

// CollisionValidator 判断格子是否被其他资产占用
//
// Policy 为 explicit 时只有显式放置的行参与判断；
// 为 all 时自动排布的资产也占用它们的回退格子。
type CollisionValidator struct {
	Policy types.CollisionPolicy
}

// IsOccupied 检查目标格子是否被 excluding 以外的资产占用
//
// 参数:
//   - target: 目标格子
//   - excluding: 正在移动的资产，永远不与自身冲突
//   - table: 当前放置表
//
// 线性扫描，时间与放置表行数成正比。
func (v CollisionValidator) IsOccupied(target types.Cell, excluding types.AssetID, table types.PlacementTable) bool {
	for _, p := range table {
		if p.AssetID == excluding {
			continue
		}
		if !p.Explicit && v.Policy != types.CollisionAll {
			continue
		}
		if p.Cell == target {
			return true
		}
	}
	return false
}

// IsOccupied 使用默认策略（只看显式放置）检查目标格子
func IsOccupied(target types.Cell, excluding types.AssetID, table types.PlacementTable) bool {
	return CollisionValidator{Policy: types.CollisionExplicitOnly}.IsOccupied(target, excluding, table)
}

// ResolveCell 计算快照中第 index 个资产所在的格子
//
// 优先级：本地待确认的提交 > 显式格子 > 按顺序的回退格子。
// 超出网格范围的显式格子视为未放置。
func ResolveCell(grid utils.BoardGrid, asset types.Asset, index int, overrides map[types.AssetID]types.Cell) (cell types.Cell, explicit bool) {
	if c, ok := overrides[asset.ID]; ok {
		return c, true
	}
	if asset.HasCell() && grid.Contains(asset.Cell) {
		return asset.Cell, true
	}
	return grid.AutoCell(index), false
}

// BuildPlacementTable 从快照和本地待确认的提交构建放置表
// 行的顺序与快照中资产的顺序一致；重复的 ID 只保留第一次出现的行，与场景实体一致
func BuildPlacementTable(snapshot types.Snapshot, grid utils.BoardGrid, overrides map[types.AssetID]types.Cell) types.PlacementTable {
	table := make(types.PlacementTable, 0, len(snapshot.Assets))
	seen := make(map[types.AssetID]struct{}, len(snapshot.Assets))
	for i, a := range snapshot.Assets {
		if _, dup := seen[a.ID]; dup {
			continue
		}
		seen[a.ID] = struct{}{}
		cell, explicit := ResolveCell(grid, a, i, overrides)
		table = append(table, types.Placement{AssetID: a.ID, Cell: cell, Explicit: explicit})
	}
	return table
}
