package systems

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/decker502/gridboard/pkg/config"
	"github.com/decker502/gridboard/pkg/ecs"
	"github.com/decker502/gridboard/pkg/geom"
	"github.com/decker502/gridboard/pkg/types"
	"github.com/decker502/gridboard/pkg/utils"
)

// InteractionSystem 交互核心的入口
//
// 宿主把指针事件推入 Queue()，每帧调用一次 Update：
//  1. 按快照同步场景实体
//  2. 按 AssetID 重新解析拖拽和悬停的目标
//  3. 按到达顺序处理事件，拖拽先于悬停
//  4. 清理被标记删除的实体
type InteractionSystem struct {
	em     *ecs.EntityManager
	grid   utils.BoardGrid
	queue  *utils.PointerQueue
	logger *zap.Logger

	sync   *SceneSyncSystem
	picker *PickingSystem
	drag   *DragSystem
	hover  *HoverSystem

	sink SignalSink
}

// NewInteractionSystem 创建交互系统
//
// 参数:
//   - em: 实体管理器，场景实体都创建在其中
//   - cfg: 棋盘配置（必须已通过校验）
//   - onAssetMove: 提交回调，可为 nil
//   - logger: 可为 nil
//
// 返回:
//   - error: 配置非法时返回错误
func NewInteractionSystem(em *ecs.EntityManager, cfg config.BoardConfig, onAssetMove AssetMoveFunc, logger *zap.Logger) (*InteractionSystem, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("interaction system: %w", err)
	}
	grid, err := cfg.Grid()
	if err != nil {
		return nil, fmt.Errorf("interaction system: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	sync := NewSceneSyncSystem(em, cfg, grid, logger)
	picker := NewPickingSystem(em)
	s := &InteractionSystem{
		em:     em,
		grid:   grid,
		queue:  utils.NewPointerQueue(),
		logger: logger.Named("interaction"),
		sync:   sync,
		picker: picker,
		drag:   NewDragSystem(em, sync, picker, cfg, grid, onAssetMove, logger),
		hover:  NewHoverSystem(em, sync, picker, logger),
	}
	s.logger.Info("interaction system ready",
		zap.Int("gridSize", grid.Size),
		zap.Float32("cellSize", grid.CellSize),
		zap.String("collisionPolicy", string(cfg.CollisionPolicy)),
	)
	return s, nil
}

// Queue 指针事件队列
func (s *InteractionSystem) Queue() *utils.PointerQueue {
	return s.queue
}

// Update 处理一帧
//
// 参数:
//   - snapshot: 外部资产仓库的当前快照
//   - camera: 当前相机
//
// 返回:
//   - []Signal: 本帧产生的视觉反馈信号，按产生顺序排列
func (s *InteractionSystem) Update(snapshot types.Snapshot, camera geom.Camera) []Signal {
	s.sync.Sync(snapshot)
	s.drag.Revalidate(&s.sink)
	s.hover.Revalidate(&s.sink)

	for _, ev := range s.queue.Drain() {
		if s.drag.HandleEvent(ev, camera, &s.sink) {
			continue
		}
		if ev.Kind == utils.PointerMove && !s.drag.IsDragging() {
			s.hover.HandleMove(ev, camera, s.draggedAsset(), &s.sink)
		}
	}

	s.em.RemoveMarkedEntities()
	return s.sink.Take()
}

// IsDragging 是否存在进行中的拖拽
func (s *InteractionSystem) IsDragging() bool {
	return s.drag.IsDragging()
}

// Session 当前拖拽会话
func (s *InteractionSystem) Session() (DragSession, bool) {
	return s.drag.Session()
}

// Hovered 当前高亮的资产
func (s *InteractionSystem) Hovered() (types.AssetID, bool) {
	return s.hover.Hovered()
}

// PlacementTable 当前放置表（快照加本地提交）
func (s *InteractionSystem) PlacementTable() types.PlacementTable {
	return s.sync.PlacementTable()
}

// Scene 场景同步系统，渲染层通过它查询实体
func (s *InteractionSystem) Scene() *SceneSyncSystem {
	return s.sync
}

// Grid 棋盘网格
func (s *InteractionSystem) Grid() utils.BoardGrid {
	return s.grid
}

func (s *InteractionSystem) draggedAsset() types.AssetID {
	if session, ok := s.drag.Session(); ok {
		return session.AssetID
	}
	return ""
}
