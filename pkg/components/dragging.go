package components

// DraggingComponent 标记正在被拖拽的实体
// 场景同步遇到此标记时不覆盖它的 Transform，避免快照更新把方块拉回原处
type DraggingComponent struct{}
