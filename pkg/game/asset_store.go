package game

import (
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"go.uber.org/zap"

	"github.com/decker502/gridboard/pkg/types"
	"github.com/decker502/gridboard/pkg/utils"
)

// 资产仓库错误
var (
	// ErrUnknownAsset 资产不存在
	ErrUnknownAsset = errors.New("unknown asset")
	// ErrDuplicateAsset 资产 ID 重复
	ErrDuplicateAsset = errors.New("duplicate asset id")
	// ErrCellOutOfRange 格子超出网格范围
	ErrCellOutOfRange = errors.New("cell out of range")
	// ErrCellOccupied 格子已被另一个显式放置的资产占用
	ErrCellOccupied = errors.New("cell occupied")
)

// AssetStore 资产仓库
//
// 保存有序的资产列表，对外只提供快照副本。交互核心通过 OnAssetMove
// 提交移动；仓库在应用时再次保证显式格子不重复，并把放置写入存档。
// 每次内容变化 Version 加 1。
type AssetStore struct {
	grid    utils.BoardGrid
	assets  []types.Asset
	version uint64
	saves   *PlacementSaveManager
	logger  *zap.Logger
}

// NewAssetStore 创建资产仓库
//
// 参数：
//   - grid: 棋盘网格
//   - assets: 初始资产（会被深拷贝）
//   - saves: 放置存档，可为 nil；已保存的放置会覆盖初始格子
//   - logger: 可为 nil
//
// 返回：
//   - error: 资产 ID 为空或重复
func NewAssetStore(grid utils.BoardGrid, assets []types.Asset, saves *PlacementSaveManager, logger *zap.Logger) (*AssetStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &AssetStore{
		grid:    grid,
		version: 1,
		saves:   saves,
		logger:  logger.Named("store"),
	}

	seen := make(map[types.AssetID]struct{}, len(assets))
	for _, a := range assets {
		if a.ID == "" {
			return nil, fmt.Errorf("%w: empty id", ErrUnknownAsset)
		}
		if _, dup := seen[a.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAsset, a.ID)
		}
		seen[a.ID] = struct{}{}
	}
	if err := copier.CopyWithOption(&s.assets, &assets, copier.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("failed to copy assets: %w", err)
	}

	s.restore()
	return s, nil
}

// restore 应用已保存的放置
//
// 先把所有存档格子叠加到目录格子上，再在合并后的布局中解决冲突：
// 同一格子按资产顺序先到先得，落选的资产退回目录格子（仍被占用时变为未放置）。
// 越界的存档格子直接忽略。
func (s *AssetStore) restore() {
	if s.saves == nil {
		return
	}
	saved, err := s.saves.Load()
	if err != nil {
		s.logger.Warn("failed to load saved placements, using catalog cells", zap.Error(err))
		return
	}

	catalog := make([]types.Cell, len(s.assets))
	for i := range s.assets {
		catalog[i] = s.assets[i].Cell
		cell, ok := saved[s.assets[i].ID]
		if !ok {
			continue
		}
		if !s.grid.Contains(cell) {
			s.logger.Warn("ignoring saved placement outside the grid",
				zap.String("asset", string(s.assets[i].ID)),
				zap.Stringer("cell", cell),
			)
			continue
		}
		s.assets[i].Cell = cell
	}

	claimed := make(map[types.Cell]struct{}, len(s.assets))
	var losers []int
	for i, a := range s.assets {
		if !a.HasCell() {
			continue
		}
		if _, taken := claimed[a.Cell]; taken {
			losers = append(losers, i)
			continue
		}
		claimed[a.Cell] = struct{}{}
	}

	for _, i := range losers {
		fallback := catalog[i]
		if _, taken := claimed[fallback]; taken || !s.grid.Contains(fallback) {
			fallback = types.Cell{}
		} else {
			claimed[fallback] = struct{}{}
		}
		s.logger.Warn("ignoring conflicting saved placement",
			zap.String("asset", string(s.assets[i].ID)),
			zap.Stringer("cell", s.assets[i].Cell),
			zap.Stringer("fallback", fallback),
		)
		s.assets[i].Cell = fallback
	}
}

// Version 当前版本号
func (s *AssetStore) Version() uint64 {
	return s.version
}

// Snapshot 返回当前内容的深拷贝
// 调用方可以自由修改返回值而不影响仓库
func (s *AssetStore) Snapshot() types.Snapshot {
	snap := types.Snapshot{Version: s.version}
	if err := copier.CopyWithOption(&snap.Assets, &s.assets, copier.Option{DeepCopy: true}); err != nil {
		// 类型完全相同的切片拷贝不会失败
		s.logger.Error("snapshot copy failed", zap.Error(err))
	}
	return snap
}

// MoveAsset 把资产显式放置到 cell
//
// 移动到当前格子是合法的空操作，不改变版本号。
//
// 返回：
//   - error: ErrUnknownAsset、ErrCellOutOfRange 或 ErrCellOccupied
func (s *AssetStore) MoveAsset(id types.AssetID, cell types.Cell) error {
	idx := s.index(id)
	if idx < 0 {
		return fmt.Errorf("move %s: %w", id, ErrUnknownAsset)
	}
	if !s.grid.Contains(cell) {
		return fmt.Errorf("move %s to %v: %w", id, cell, ErrCellOutOfRange)
	}
	if s.assets[idx].Cell == cell {
		return nil
	}
	if other := s.occupant(cell, id); other >= 0 {
		return fmt.Errorf("move %s to %v (held by %s): %w", id, cell, s.assets[other].ID, ErrCellOccupied)
	}

	s.assets[idx].Cell = cell
	s.bump()
	s.logger.Info("asset moved", zap.String("asset", string(id)), zap.Stringer("cell", cell))
	return nil
}

// OnAssetMove 提交回调适配器，错误只记录日志
func (s *AssetStore) OnAssetMove(id types.AssetID, cell types.Cell) {
	if err := s.MoveAsset(id, cell); err != nil {
		s.logger.Warn("rejected asset move", zap.Error(err))
	}
}

// Add 追加一个资产
func (s *AssetStore) Add(asset types.Asset) error {
	if asset.ID == "" {
		return fmt.Errorf("%w: empty id", ErrUnknownAsset)
	}
	if s.index(asset.ID) >= 0 {
		return fmt.Errorf("add %s: %w", asset.ID, ErrDuplicateAsset)
	}
	if asset.HasCell() && s.grid.Contains(asset.Cell) && s.occupant(asset.Cell, asset.ID) >= 0 {
		return fmt.Errorf("add %s at %v: %w", asset.ID, asset.Cell, ErrCellOccupied)
	}
	var copied types.Asset
	if err := copier.CopyWithOption(&copied, &asset, copier.Option{DeepCopy: true}); err != nil {
		return fmt.Errorf("failed to copy asset: %w", err)
	}
	s.assets = append(s.assets, copied)
	s.bump()
	return nil
}

// Remove 删除一个资产
func (s *AssetStore) Remove(id types.AssetID) error {
	idx := s.index(id)
	if idx < 0 {
		return fmt.Errorf("remove %s: %w", id, ErrUnknownAsset)
	}
	s.assets = append(s.assets[:idx], s.assets[idx+1:]...)
	s.bump()
	return nil
}

// bump 版本号加 1 并写入存档
func (s *AssetStore) bump() {
	s.version++
	if s.saves == nil {
		return
	}
	if err := s.saves.Save(s.explicitPlacements()); err != nil {
		// 存档失败不回滚内存中的修改
		s.logger.Warn("failed to persist placements", zap.Error(err))
	}
}

// Flush 立即把当前放置写入存档
func (s *AssetStore) Flush() error {
	if s.saves == nil {
		return nil
	}
	return s.saves.Save(s.explicitPlacements())
}

// explicitPlacements 所有显式放置
func (s *AssetStore) explicitPlacements() map[types.AssetID]types.Cell {
	out := make(map[types.AssetID]types.Cell, len(s.assets))
	for _, a := range s.assets {
		if a.HasCell() {
			out[a.ID] = a.Cell
		}
	}
	return out
}

func (s *AssetStore) index(id types.AssetID) int {
	for i, a := range s.assets {
		if a.ID == id {
			return i
		}
	}
	return -1
}

// occupant 返回显式占用 cell 的其他资产下标，没有时返回 -1
func (s *AssetStore) occupant(cell types.Cell, excluding types.AssetID) int {
	for i, a := range s.assets {
		if a.ID != excluding && a.HasCell() && a.Cell == cell {
			return i
		}
	}
	return -1
}
