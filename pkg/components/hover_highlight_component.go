package components

import "github.com/decker502/gridboard/pkg/ecs"

// HoverHighlightComponent 悬停高亮组件
// 用于资产被指针悬停时的持续高亮效果（不闪烁）
type HoverHighlightComponent struct {
	// Intensity 高亮强度（0.0 - 1.0）
	// 1.0 = 最亮，0.0 = 无效果
	Intensity float64

	// IsActive 是否激活
	IsActive bool
}

// HoverStateComponent 悬停状态（单例组件）
//
// 挂载到一个专用实体上，由 HoverSystem 读取和更新。
// 任意时刻最多一个资产处于高亮状态。
type HoverStateComponent struct {
	// HoveredEntity 当前高亮的实体ID
	// 无悬停时为 0
	HoveredEntity ecs.EntityID
}
