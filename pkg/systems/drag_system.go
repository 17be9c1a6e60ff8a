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

// AssetMoveFunc 提交回调，每次成功提交恰好调用一次
type AssetMoveFunc func(id types.AssetID, cell types.Cell)

// DragSession 一次进行中的拖拽
// 只按 AssetID 引用资产，每个事件都重新解析
type DragSession struct {
	AssetID types.AssetID
	Entity  ecs.EntityID
	// Anchor 回退锚点（拖拽开始时的底面中心，随外部刷新更新）
	Anchor geom.Vec3
	// OriginCell 拖拽开始时所在格子
	OriginCell types.Cell
	// TargetCell 当前吸附的目标格子
	TargetCell types.Cell
	// Blocked 目标格子是否被占用
	Blocked bool
}

// DragSystem 拖拽状态机：Idle <-> Dragging
//
// 状态转换：
//   - Idle + down 命中资产  -> Dragging（抬起、关闭相机旋转）
//   - Dragging + move        -> 射线与棋盘平面求交、吸附、校验
//   - Dragging + up          -> 提交或回退 -> Idle
//   - Dragging + cancel      -> 回退 -> Idle
//   - Dragging + down        -> 忽略
//   - 资产从快照中消失        -> 静默中止 -> Idle
type DragSystem struct {
	em        *ecs.EntityManager
	sync      *SceneSyncSystem
	picker    *PickingSystem
	validator CollisionValidator
	grid      utils.BoardGrid
	cfg       config.BoardConfig
	onMove    AssetMoveFunc
	logger    *zap.Logger

	session *DragSession
}

// NewDragSystem 创建拖拽系统
// onMove 可为 nil（只产生信号，不通知外部仓库）
func NewDragSystem(em *ecs.EntityManager, sync *SceneSyncSystem, picker *PickingSystem, cfg config.BoardConfig, grid utils.BoardGrid, onMove AssetMoveFunc, logger *zap.Logger) *DragSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DragSystem{
		em:        em,
		sync:      sync,
		picker:    picker,
		validator: CollisionValidator{Policy: cfg.CollisionPolicy},
		grid:      grid,
		cfg:       cfg,
		onMove:    onMove,
		logger:    logger.Named("drag"),
	}
}

// IsDragging 是否存在进行中的拖拽
func (s *DragSystem) IsDragging() bool {
	return s.session != nil
}

// Session 返回当前拖拽会话的副本
func (s *DragSystem) Session() (DragSession, bool) {
	if s.session == nil {
		return DragSession{}, false
	}
	return *s.session, true
}

// HandleEvent 处理一个指针事件
//
// 返回:
//   - bool: 事件是否被拖拽消费（消费后悬停系统不再处理）
func (s *DragSystem) HandleEvent(ev utils.PointerEvent, camera geom.Camera, out *SignalSink) bool {
	if s.session == nil {
		if ev.Kind == utils.PointerDown {
			return s.begin(ev, camera, out)
		}
		return false
	}

	if !s.Revalidate(out) {
		return true
	}

	switch ev.Kind {
	case utils.PointerDown:
		// 同一时间只允许一个拖拽
		s.logger.Debug("pointer down ignored while dragging", zap.String("asset", string(s.session.AssetID)))
	case utils.PointerMove:
		s.move(ev, camera, out)
	case utils.PointerUp:
		s.drop(out)
	case utils.PointerCancel:
		s.logger.Debug("drag cancelled", zap.String("asset", string(s.session.AssetID)))
		s.revert(out)
	}
	return true
}

// Revalidate 按 AssetID 重新解析被拖拽的资产
// 资产已从快照中消失时中止拖拽并返回 false；没有拖拽时返回 true
func (s *DragSystem) Revalidate(out *SignalSink) bool {
	if s.session == nil {
		return true
	}
	entity, ok := s.sync.EntityFor(s.session.AssetID)
	if _, inSnapshot := s.sync.Asset(s.session.AssetID); !ok || !inSnapshot || entity != s.session.Entity {
		s.abort(out)
		return false
	}
	if anchor, ok := ecs.GetComponent[*components.AnchorComponent](s.em, entity); ok {
		s.session.Anchor = anchor.Position
	}
	return true
}

// begin 尝试在指针下拾取资产并开始拖拽
func (s *DragSystem) begin(ev utils.PointerEvent, camera geom.Camera, out *SignalSink) bool {
	hit, ok := s.picker.Pick(ev.X, ev.Y, camera)
	if !ok {
		return false
	}
	transform, ok := ecs.GetComponent[*components.TransformComponent](s.em, hit.Entity)
	if !ok {
		return false
	}
	anchor, ok := ecs.GetComponent[*components.AnchorComponent](s.em, hit.Entity)
	if !ok {
		return false
	}

	s.session = &DragSession{
		AssetID:    hit.AssetID,
		Entity:     hit.Entity,
		Anchor:     transform.Position,
		OriginCell: anchor.Cell,
		TargetCell: anchor.Cell,
	}
	s.session.Blocked = s.validator.IsOccupied(anchor.Cell, hit.AssetID, s.sync.PlacementTable())

	ecs.AddComponent(s.em, hit.Entity, &components.DraggingComponent{})
	transform.Position.Y = s.session.Anchor.Y + s.cfg.LiftHeight

	s.logger.Debug("drag started",
		zap.String("asset", string(hit.AssetID)),
		zap.Stringer("cell", anchor.Cell),
	)

	out.Emit(Signal{Kind: SignalOrbit, OrbitEnabled: false})
	out.Emit(Signal{Kind: SignalPicked, AssetID: hit.AssetID, Entity: hit.Entity, Cell: anchor.Cell})
	out.Emit(s.transformSignal(transform.Position))
	s.showIndicator(out)
	return true
}

// move 射线与棋盘平面求交，吸附到格子并校验
func (s *DragSystem) move(ev utils.PointerEvent, camera geom.Camera, out *SignalSink) {
	ray := camera.ScreenRay(ev.X, ev.Y)
	if hit, _, ok := ray.IntersectPlaneY(s.cfg.BoardHeight); ok {
		s.session.TargetCell = s.grid.WorldToCell(hit.X, hit.Z)
	}
	// 未命中平面（射线平行或朝上）时保留上一个目标格子

	transform, ok := ecs.GetComponent[*components.TransformComponent](s.em, s.session.Entity)
	if !ok {
		return
	}
	center := s.sync.CellCenter(s.session.TargetCell)
	transform.Position = geom.V3(center.X, s.session.Anchor.Y+s.cfg.LiftHeight, center.Z)
	s.session.Blocked = s.validator.IsOccupied(s.session.TargetCell, s.session.AssetID, s.sync.PlacementTable())

	out.Emit(s.transformSignal(transform.Position))
	s.showIndicator(out)
}

// drop 释放：根据临时位置计算最终格子，提交或回退
func (s *DragSystem) drop(out *SignalSink) {
	transform, ok := ecs.GetComponent[*components.TransformComponent](s.em, s.session.Entity)
	if !ok {
		s.abort(out)
		return
	}
	cell := s.grid.WorldToCell(transform.Position.X, transform.Position.Z)

	if s.validator.IsOccupied(cell, s.session.AssetID, s.sync.PlacementTable()) {
		s.logger.Debug("drop rejected, cell occupied",
			zap.String("asset", string(s.session.AssetID)),
			zap.Stringer("cell", cell),
		)
		s.revert(out)
		return
	}

	id, entity := s.session.AssetID, s.session.Entity
	if s.onMove != nil {
		s.onMove(id, cell)
	}
	s.sync.RecordCommit(id, cell)

	center := s.sync.CellCenter(cell)
	transform.Position = geom.V3(center.X, s.session.Anchor.Y, center.Z)

	s.logger.Debug("drop committed",
		zap.String("asset", string(id)),
		zap.Stringer("from", s.session.OriginCell),
		zap.Stringer("to", cell),
	)

	out.Emit(s.transformSignal(transform.Position))
	out.Emit(Signal{Kind: SignalCommitted, AssetID: id, Entity: entity, Cell: cell})
	s.end(out)
}

// revert 恢复锚点位置，不通知外部仓库
func (s *DragSystem) revert(out *SignalSink) {
	if transform, ok := ecs.GetComponent[*components.TransformComponent](s.em, s.session.Entity); ok {
		transform.Position = s.session.Anchor
		out.Emit(s.transformSignal(transform.Position))
	}
	out.Emit(Signal{
		Kind:    SignalReverted,
		AssetID: s.session.AssetID,
		Entity:  s.session.Entity,
		Cell:    s.session.OriginCell,
	})
	s.end(out)
}

// abort 被拖拽的资产已不存在，静默结束
func (s *DragSystem) abort(out *SignalSink) {
	s.logger.Warn("dragged asset vanished, aborting drag", zap.String("asset", string(s.session.AssetID)))
	out.Emit(Signal{Kind: SignalAborted, AssetID: s.session.AssetID, Entity: s.session.Entity})
	s.end(out)
}

// end 清理会话、隐藏指示器、恢复相机旋转
func (s *DragSystem) end(out *SignalSink) {
	if s.em.Exists(s.session.Entity) {
		ecs.RemoveComponent[*components.DraggingComponent](s.em, s.session.Entity)
	}
	if indicator, ok := ecs.GetComponent[*components.DropIndicatorComponent](s.em, s.sync.IndicatorEntity()); ok {
		indicator.Visible = false
		indicator.Blocked = false
	}
	s.session = nil

	out.Emit(Signal{Kind: SignalDropIndicatorHidden})
	out.Emit(Signal{Kind: SignalOrbit, OrbitEnabled: true})
}

// showIndicator 把落点指示器移到目标格子
func (s *DragSystem) showIndicator(out *SignalSink) {
	cell := s.session.TargetCell
	indicatorEntity := s.sync.IndicatorEntity()
	if indicator, ok := ecs.GetComponent[*components.DropIndicatorComponent](s.em, indicatorEntity); ok {
		indicator.Cell = cell
		indicator.Blocked = s.session.Blocked
		indicator.Visible = true
	}
	if transform, ok := ecs.GetComponent[*components.TransformComponent](s.em, indicatorEntity); ok {
		transform.Position = s.sync.CellCenter(cell)
	}
	out.Emit(Signal{
		Kind:    SignalDropIndicator,
		AssetID: s.session.AssetID,
		Cell:    cell,
		Blocked: s.session.Blocked,
	})
}

func (s *DragSystem) transformSignal(pos geom.Vec3) Signal {
	return Signal{
		Kind:     SignalTransform,
		AssetID:  s.session.AssetID,
		Entity:   s.session.Entity,
		Position: pos,
	}
}
