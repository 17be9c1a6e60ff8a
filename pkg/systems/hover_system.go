package systems

import (
	"go.uber.org/zap"

	"github.com/decker502/gridboard/pkg/components"
	"github.com/decker502/gridboard/pkg/ecs"
	"github.com/decker502/gridboard/pkg/geom"
	"github.com/decker502/gridboard/pkg/types"
	"github.com/decker502/gridboard/pkg/utils"
)

// hoverIntensity 悬停高亮强度
const hoverIntensity = 1.0

// HoverSystem 悬停高亮系统
//
// 空闲时每次指针移动都重新拾取，指针下的资产变化时发出 unhighlight/highlight。
// 状态保存在专用实体的 HoverStateComponent 上；从不修改放置表。
type HoverSystem struct {
	em     *ecs.EntityManager
	sync   *SceneSyncSystem
	picker *PickingSystem
	logger *zap.Logger

	stateEntity ecs.EntityID
	hoveredID   types.AssetID
}

// NewHoverSystem 创建悬停系统
func NewHoverSystem(em *ecs.EntityManager, sync *SceneSyncSystem, picker *PickingSystem, logger *zap.Logger) *HoverSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	stateEntity := em.CreateEntity()
	em.AddComponent(stateEntity, &components.HoverStateComponent{})
	return &HoverSystem{
		em:          em,
		sync:        sync,
		picker:      picker,
		logger:      logger.Named("hover"),
		stateEntity: stateEntity,
	}
}

// Hovered 当前高亮的资产
func (s *HoverSystem) Hovered() (types.AssetID, bool) {
	state := s.state()
	if state == nil || state.HoveredEntity == 0 {
		return "", false
	}
	return s.hoveredID, true
}

// HandleMove 处理空闲状态下的指针移动
//
// 参数:
//   - dragged: 正在被拖拽的资产（没有则为空），它不会被取消高亮
func (s *HoverSystem) HandleMove(ev utils.PointerEvent, camera geom.Camera, dragged types.AssetID, out *SignalSink) {
	state := s.state()
	if state == nil {
		return
	}

	hit, ok := s.picker.Pick(ev.X, ev.Y, camera)
	if ok && hit.Entity == state.HoveredEntity {
		return
	}

	if state.HoveredEntity != 0 {
		if s.hoveredID != dragged {
			s.unhighlight(state, out)
		}
		state.HoveredEntity = 0
		s.hoveredID = ""
	}

	if ok {
		s.highlight(state, hit, out)
	}
}

// Revalidate 高亮的资产已被移除时清理悬停状态
func (s *HoverSystem) Revalidate(out *SignalSink) {
	state := s.state()
	if state == nil || state.HoveredEntity == 0 {
		return
	}
	entity, ok := s.sync.EntityFor(s.hoveredID)
	if ok && entity == state.HoveredEntity {
		return
	}
	s.unhighlight(state, out)
	state.HoveredEntity = 0
	s.hoveredID = ""
}

func (s *HoverSystem) highlight(state *components.HoverStateComponent, hit PickResult, out *SignalSink) {
	state.HoveredEntity = hit.Entity
	s.hoveredID = hit.AssetID
	ecs.AddComponent(s.em, hit.Entity, &components.HoverHighlightComponent{
		Intensity: hoverIntensity,
		IsActive:  true,
	})

	sig := Signal{Kind: SignalHighlight, AssetID: hit.AssetID, Entity: hit.Entity}
	if asset, ok := s.sync.Asset(hit.AssetID); ok {
		sig.Name = asset.Name
		sig.Value = asset.Value
		sig.Attributes = copyAttributes(asset.Attributes)
	}
	s.logger.Debug("highlight", zap.String("asset", string(hit.AssetID)))
	out.Emit(sig)
}

func (s *HoverSystem) unhighlight(state *components.HoverStateComponent, out *SignalSink) {
	if s.em.Exists(state.HoveredEntity) {
		ecs.RemoveComponent[*components.HoverHighlightComponent](s.em, state.HoveredEntity)
	}
	s.logger.Debug("unhighlight", zap.String("asset", string(s.hoveredID)))
	out.Emit(Signal{Kind: SignalUnhighlight, AssetID: s.hoveredID, Entity: state.HoveredEntity})
}

func (s *HoverSystem) state() *components.HoverStateComponent {
	state, ok := ecs.GetComponent[*components.HoverStateComponent](s.em, s.stateEntity)
	if !ok {
		return nil
	}
	return state
}

func copyAttributes(attrs map[string]string) map[string]string {
	if attrs == nil {
		return nil
	}
	out := make(map[string]string, len(attrs))
	for k, v := range attrs {
		out[k] = v
	}
	return out
}
