package components

import "github.com/decker502/gridboard/pkg/types"

// DropIndicatorComponent 标记实体为落点指示器
// 拖拽过程中显示在目标格子上，被占用时以阻挡样式绘制
// 此组件与 TransformComponent 和 DecorComponent 配合使用
type DropIndicatorComponent struct {
	// Cell 指示的格子
	Cell types.Cell
	// Blocked 目标格子是否被其他资产占用
	Blocked bool
	// Visible 是否显示
	Visible bool
}
