package components

// DecorKind 装饰实体类型
type DecorKind int

const (
	// DecorBoard 棋盘底板
	DecorBoard DecorKind = iota
	// DecorIndicator 落点指示器
	DecorIndicator
)

// DecorComponent 标记非资产的场景实体
// 装饰实体不带 AssetRefComponent，也永远不可拾取
type DecorComponent struct {
	Kind DecorKind
}
