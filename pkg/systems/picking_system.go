package systems

import (
	"github.com/decker502/gridboard/pkg/components"
	"github.com/decker502/gridboard/pkg/ecs"
	"github.com/decker502/gridboard/pkg/geom"
	"github.com/decker502/gridboard/pkg/types"
)

// PickResult 一次拾取的结果
type PickResult struct {
	AssetID types.AssetID
	Entity  ecs.EntityID
	// T 射线参数（到相机的距离）
	T float32
}

// PickingSystem 把指针位置解析为最近的可交互资产
// 只读，不修改任何组件
type PickingSystem struct {
	em *ecs.EntityManager
}

// NewPickingSystem 创建拾取系统
func NewPickingSystem(em *ecs.EntityManager) *PickingSystem {
	return &PickingSystem{em: em}
}

// Pick 从相机经过 NDC 坐标发出射线，返回最近的可交互资产
//
// 只有带 InteractableComponent 的实体参与检测，棋盘和指示器永远不会被返回。
// 射线参数相等时返回 EntityID 较小的实体。
//
// 返回:
//   - PickResult: 命中结果
//   - bool: 是否命中
func (s *PickingSystem) Pick(ndcX, ndcY float32, camera geom.Camera) (PickResult, bool) {
	ray := camera.ScreenRay(ndcX, ndcY)

	var best PickResult
	found := false

	// 查询结果按 ID 升序，严格小于才替换，相等时保留较小的 ID
	entities := ecs.GetEntitiesWith3[
		*components.InteractableComponent,
		*components.TransformComponent,
		*components.AssetRefComponent,
	](s.em)
	for _, id := range entities {
		if s.em.IsMarkedForDestroy(id) {
			continue
		}
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.em, id)
		t, ok := ray.IntersectAABB(transform.Bounds())
		if !ok {
			continue
		}
		if !found || t < best.T {
			ref, _ := ecs.GetComponent[*components.AssetRefComponent](s.em, id)
			best = PickResult{AssetID: ref.AssetID, Entity: id, T: t}
			found = true
		}
	}
	return best, found
}
