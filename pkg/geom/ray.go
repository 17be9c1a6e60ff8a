package geom

import "github.com/chewxy/math32"

// parallelEpsilon 射线方向与平面近似平行的阈值
const parallelEpsilon = 1e-6

// Ray 射线：Origin + t*Direction（t >= 0）
// Direction 应为单位向量，这样 t 就是到原点的距离
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// At 返回射线参数 t 处的点
func (r Ray) At(t float32) Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// IntersectPlaneY 计算射线与水平面 y = height 的交点
//
// 返回：
//   - point: 交点
//   - t: 射线参数
//   - ok: 射线与平面平行或交点在射线起点后方时为 false
func (r Ray) IntersectPlaneY(height float32) (point Vec3, t float32, ok bool) {
	if math32.Abs(r.Direction.Y) < parallelEpsilon {
		return Vec3{}, 0, false
	}
	t = (height - r.Origin.Y) / r.Direction.Y
	if t < 0 {
		return Vec3{}, 0, false
	}
	point = r.At(t)
	point.Y = height // 消除浮点误差
	return point, t, true
}

// AABB 轴对齐包围盒
type AABB struct {
	Min, Max Vec3
}

// Center 包围盒中心
func (b AABB) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Contains 点是否在包围盒内（含边界）
func (b AABB) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// IntersectAABB 使用 slab 算法计算射线与包围盒的最近交点参数
//
// 射线起点在盒内时返回 t = 0。
// 返回 ok=false 表示不相交（或包围盒完全在射线后方）。
func (r Ray) IntersectAABB(b AABB) (t float32, ok bool) {
	tMin := float32(0)
	tMax := math32.Inf(1)

	origin := [3]float32{r.Origin.X, r.Origin.Y, r.Origin.Z}
	dir := [3]float32{r.Direction.X, r.Direction.Y, r.Direction.Z}
	lo := [3]float32{b.Min.X, b.Min.Y, b.Min.Z}
	hi := [3]float32{b.Max.X, b.Max.Y, b.Max.Z}

	for axis := 0; axis < 3; axis++ {
		if math32.Abs(dir[axis]) < parallelEpsilon {
			// 与该轴的两个面平行：起点必须落在 slab 内
			if origin[axis] < lo[axis] || origin[axis] > hi[axis] {
				return 0, false
			}
			continue
		}
		inv := 1 / dir[axis]
		t1 := (lo[axis] - origin[axis]) * inv
		t2 := (hi[axis] - origin[axis]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tMin {
			tMin = t1
		}
		if t2 < tMax {
			tMax = t2
		}
		if tMin > tMax {
			return 0, false
		}
	}
	return tMin, true
}
