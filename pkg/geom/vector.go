// Package geom 提供三维拾取所需的最小几何工具：向量、射线、包围盒、透视相机
//
// # 坐标系统
//
// 世界坐标使用 Y 轴向上的右手系，棋盘位于 XZ 平面上：
//   - X 轴对应棋盘的列（col）
//   - Z 轴对应棋盘的行（row）
//   - Y 轴为高度，棋盘表面高度由配置的 BoardHeight 决定
//
// 所有计算使用 float32（math32），与渲染侧的顶点精度一致。
package geom

import "github.com/chewxy/math32"

// Vec3 三维向量
type Vec3 struct {
	X, Y, Z float32
}

// V3 创建向量
func V3(x, y, z float32) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add 向量加法
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub 向量减法
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale 数乘
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot 点积
func (v Vec3) Dot(o Vec3) float32 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross 叉积
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Length 向量长度
func (v Vec3) Length() float32 {
	return math32.Sqrt(v.Dot(v))
}

// Normalize 返回单位向量；零向量原样返回
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// ApproxEqual 在容差 eps 内逐分量比较
func (v Vec3) ApproxEqual(o Vec3, eps float32) bool {
	return math32.Abs(v.X-o.X) <= eps &&
		math32.Abs(v.Y-o.Y) <= eps &&
		math32.Abs(v.Z-o.Z) <= eps
}
