package systems

import (
	"go.uber.org/zap"

	"github.com/decker502/gridboard/pkg/components"
	"github.com/decker502/gridboard/pkg/config"
	"github.com/decker502/gridboard/pkg/ecs"
	"github.com/decker502/gridboard/pkg/geom"
	"github.com/decker502/gridboard/pkg/types"
	"github.com/decker502/gridboard/pkg/utils"
)

// pendingCommit 本地已提交、外部仓库尚未刷新的放置
type pendingCommit struct {
	cell    types.Cell
	version uint64
}

// SceneSyncSystem 把资产快照同步为场景实体
//
// 维护 AssetID <-> EntityID 的映射表，每帧根据快照创建、更新、销毁实体。
// 本地提交在快照版本变化之前覆盖资产的格子，保证拖拽结束后实体不会闪回原处。
type SceneSyncSystem struct {
	em     *ecs.EntityManager
	cfg    config.BoardConfig
	grid   utils.BoardGrid
	logger *zap.Logger

	entities map[types.AssetID]ecs.EntityID
	pending  map[types.AssetID]pendingCommit
	snapshot types.Snapshot

	boardEntity     ecs.EntityID
	indicatorEntity ecs.EntityID
}

// NewSceneSyncSystem 创建场景同步系统，并创建棋盘和落点指示器两个装饰实体
func NewSceneSyncSystem(em *ecs.EntityManager, cfg config.BoardConfig, grid utils.BoardGrid, logger *zap.Logger) *SceneSyncSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &SceneSyncSystem{
		em:       em,
		cfg:      cfg,
		grid:     grid,
		logger:   logger.Named("sync"),
		entities: make(map[types.AssetID]ecs.EntityID),
		pending:  make(map[types.AssetID]pendingCommit),
	}

	extent := grid.HalfExtent() * 2
	s.boardEntity = em.CreateEntity()
	em.AddComponent(s.boardEntity, &components.DecorComponent{Kind: components.DecorBoard})
	em.AddComponent(s.boardEntity, &components.TransformComponent{
		Position: geom.V3(0, cfg.BoardHeight-0.2, 0),
		Size:     geom.V3(extent, 0.2, extent),
	})

	s.indicatorEntity = em.CreateEntity()
	em.AddComponent(s.indicatorEntity, &components.DecorComponent{Kind: components.DecorIndicator})
	em.AddComponent(s.indicatorEntity, &components.TransformComponent{
		Position: geom.V3(0, cfg.BoardHeight, 0),
		Size:     geom.V3(grid.CellSize, 0.05, grid.CellSize),
	})
	em.AddComponent(s.indicatorEntity, &components.DropIndicatorComponent{})

	return s
}

// Sync 根据快照更新场景实体
// 每帧在处理指针事件之前调用一次
func (s *SceneSyncSystem) Sync(snapshot types.Snapshot) {
	s.snapshot = snapshot

	// 外部仓库已刷新：丢弃之前记录的本地提交
	for id, p := range s.pending {
		if p.version != snapshot.Version {
			delete(s.pending, id)
		}
	}

	seen := make(map[types.AssetID]struct{}, len(snapshot.Assets))
	for i, asset := range snapshot.Assets {
		if _, dup := seen[asset.ID]; dup {
			s.logger.Warn("duplicate asset id in snapshot", zap.String("asset", string(asset.ID)))
			continue
		}
		seen[asset.ID] = struct{}{}
		s.syncAsset(asset, i)
	}

	for id, entity := range s.entities {
		if _, ok := seen[id]; ok {
			continue
		}
		s.em.DestroyEntity(entity)
		delete(s.entities, id)
		delete(s.pending, id)
		s.logger.Debug("asset removed", zap.String("asset", string(id)), zap.Uint64("entity", uint64(entity)))
	}
}

// syncAsset 创建或更新单个资产的实体
func (s *SceneSyncSystem) syncAsset(asset types.Asset, index int) {
	entity, ok := s.entities[asset.ID]
	if !ok {
		entity = s.em.CreateEntity()
		s.entities[asset.ID] = entity
		s.em.AddComponent(entity, &components.AssetRefComponent{AssetID: asset.ID})
		s.em.AddComponent(entity, &components.TransformComponent{})
		s.em.AddComponent(entity, &components.AnchorComponent{})
		s.logger.Debug("asset added", zap.String("asset", string(asset.ID)), zap.Uint64("entity", uint64(entity)))
	}

	if asset.Interactable {
		ecs.AddComponent(s.em, entity, &components.InteractableComponent{})
	} else {
		ecs.RemoveComponent[*components.InteractableComponent](s.em, entity)
	}

	cell, _ := ResolveCell(s.grid, asset, index, s.overrides())
	anchor, _ := ecs.GetComponent[*components.AnchorComponent](s.em, entity)
	anchor.Cell = cell
	anchor.Position = s.CellCenter(cell)

	transform, _ := ecs.GetComponent[*components.TransformComponent](s.em, entity)
	fp := s.cfg.BoxFootprint()
	transform.Size = geom.V3(fp, s.cfg.BoxHeight(asset.Value), fp)
	if !ecs.HasComponent[*components.DraggingComponent](s.em, entity) {
		transform.Position = anchor.Position
	}
}

// overrides 当前待确认提交的格子映射
func (s *SceneSyncSystem) overrides() map[types.AssetID]types.Cell {
	if len(s.pending) == 0 {
		return nil
	}
	out := make(map[types.AssetID]types.Cell, len(s.pending))
	for id, p := range s.pending {
		out[id] = p.cell
	}
	return out
}

// RecordCommit 记录一次本地提交，并把实体锚定到新格子
// 覆盖在快照版本变化之前一直有效
func (s *SceneSyncSystem) RecordCommit(id types.AssetID, cell types.Cell) {
	s.pending[id] = pendingCommit{cell: cell, version: s.snapshot.Version}
	if entity, ok := s.entities[id]; ok {
		if anchor, ok := ecs.GetComponent[*components.AnchorComponent](s.em, entity); ok {
			anchor.Cell = cell
			anchor.Position = s.CellCenter(cell)
		}
	}
}

// PlacementTable 当前快照加本地提交得到的放置表
func (s *SceneSyncSystem) PlacementTable() types.PlacementTable {
	return BuildPlacementTable(s.snapshot, s.grid, s.overrides())
}

// EntityFor 查找资产对应的实体
func (s *SceneSyncSystem) EntityFor(id types.AssetID) (ecs.EntityID, bool) {
	entity, ok := s.entities[id]
	return entity, ok
}

// Asset 在当前快照中查找资产
func (s *SceneSyncSystem) Asset(id types.AssetID) (types.Asset, bool) {
	a, _, ok := s.snapshot.Find(id)
	return a, ok
}

// Snapshot 最近一次同步的快照
func (s *SceneSyncSystem) Snapshot() types.Snapshot {
	return s.snapshot
}

// CellCenter 格子中心在棋盘平面上的世界坐标
func (s *SceneSyncSystem) CellCenter(cell types.Cell) geom.Vec3 {
	x, z := s.grid.CellToWorld(cell)
	return geom.V3(x, s.cfg.BoardHeight, z)
}

// BoardEntity 棋盘装饰实体
func (s *SceneSyncSystem) BoardEntity() ecs.EntityID {
	return s.boardEntity
}

// IndicatorEntity 落点指示器实体
func (s *SceneSyncSystem) IndicatorEntity() ecs.EntityID {
	return s.indicatorEntity
}
