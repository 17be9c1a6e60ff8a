package components

import "github.com/decker502/gridboard/pkg/types"

// AssetRefComponent 把场景实体关联回资产模型
// 每个资产最多对应一个带此组件的实体
type AssetRefComponent struct {
	AssetID types.AssetID
}
