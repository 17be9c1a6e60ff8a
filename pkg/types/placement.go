package types

// CollisionPolicy 碰撞检测策略
// 决定没有显式格子的（自动排布的）资产是否参与占用判断
type CollisionPolicy string

const (
	// CollisionExplicitOnly 只有显式放置的资产占用格子（默认）
	CollisionExplicitOnly CollisionPolicy = "explicit"
	// CollisionAll 自动排布的资产也占用它的回退格子
	CollisionAll CollisionPolicy = "all"
)

// Valid 是否为已知策略
func (p CollisionPolicy) Valid() bool {
	return p == CollisionExplicitOnly || p == CollisionAll
}

// Placement 放置表中的一行
type Placement struct {
	AssetID AssetID
	Cell    Cell
	// Explicit 为 true 表示显式放置；false 表示按创建顺序回退得到的格子
	Explicit bool
}

// PlacementTable 资产到格子的映射，按快照顺序排列
type PlacementTable []Placement

// Lookup 查找资产所在的行
func (t PlacementTable) Lookup(id AssetID) (Placement, bool) {
	for _, p := range t {
		if p.AssetID == id {
			return p, true
		}
	}
	return Placement{}, false
}
