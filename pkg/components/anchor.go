package components

import (
	"github.com/decker502/gridboard/pkg/geom"
	"github.com/decker502/gridboard/pkg/types"
)

// AnchorComponent 资产的静止位置
// 拖拽被拒绝或取消时，实体回到 Position；提交成功后 Anchor 更新为新格子中心
type AnchorComponent struct {
	Position geom.Vec3
	Cell     types.Cell
}
