package components

import "github.com/decker502/gridboard/pkg/geom"

// TransformComponent 资产方块在世界中的位置和尺寸
//
// Position 是方块底面中心，方块从 Position.Y 向上延伸 Size.Y。
// 拖拽时 Position 会被临时修改（抬起并跟随指针），释放后由锚点恢复。
type TransformComponent struct {
	// Position 底面中心（世界坐标）
	Position geom.Vec3
	// Size 宽（X）、高（Y）、深（Z）
	Size geom.Vec3
}

// Bounds 返回方块的轴对齐包围盒
func (t *TransformComponent) Bounds() geom.AABB {
	hw, hd := t.Size.X/2, t.Size.Z/2
	return geom.AABB{
		Min: geom.V3(t.Position.X-hw, t.Position.Y, t.Position.Z-hd),
		Max: geom.V3(t.Position.X+hw, t.Position.Y+t.Size.Y, t.Position.Z+hd),
	}
}
