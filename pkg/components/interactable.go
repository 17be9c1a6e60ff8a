package components

// InteractableComponent 标记实体可以被拾取（悬停、拖拽）
// 只有带此组件的实体参与射线检测；棋盘、指示器等装饰实体没有此组件
type InteractableComponent struct{}
