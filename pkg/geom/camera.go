package geom

import "github.com/chewxy/math32"

// nearPlane 投影时的近裁剪距离
const nearPlane = 0.01

// Camera 透视相机参数（由外部渲染层提供）
//
// 指针坐标使用归一化屏幕坐标（NDC）：X、Y 范围 [-1, 1]，Y 向上。
type Camera struct {
	Position Vec3
	Target   Vec3
	Up       Vec3
	// FovY 垂直视场角（角度）
	FovY float32
	// Aspect 视口宽高比（宽/高），<= 0 时按 1 处理
	Aspect float32
}

// parallelEps 视线与上方向叉积长度低于该值时视为平行
const parallelEps = 1e-6

// fallbackUps 视线与 Up 平行（如正上方俯视）时依次尝试的备用上方向
// 俯视时 -Z 在屏幕上方，与行号增大的方向相反
var fallbackUps = [...]Vec3{V3(0, 0, -1), V3(1, 0, 0)}

// basis 返回相机的正交基：forward, right, up
// Position 与 Target 重合时视线退化为 -Z
func (c Camera) basis() (forward, right, up Vec3) {
	forward = c.Target.Sub(c.Position).Normalize()
	if forward.Length() == 0 {
		forward = V3(0, 0, -1)
	}
	worldUp := c.Up.Normalize()
	if worldUp.Length() == 0 {
		worldUp = V3(0, 1, 0)
	}
	right = forward.Cross(worldUp)
	for _, alt := range fallbackUps {
		if right.Length() > parallelEps {
			break
		}
		right = forward.Cross(alt)
	}
	right = right.Normalize()
	up = right.Cross(forward)
	return forward, right, up
}

// frustum 返回视锥在单位距离处的半高和半宽
func (c Camera) frustum() (halfH, halfW float32) {
	fov := c.FovY
	if fov <= 0 || fov >= 180 {
		fov = 45
	}
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	halfH = math32.Tan(fov * math32.Pi / 360)
	return halfH, halfH * aspect
}

// ScreenRay 根据 NDC 坐标构建从相机出发的拾取射线
func (c Camera) ScreenRay(ndcX, ndcY float32) Ray {
	forward, right, up := c.basis()
	halfH, halfW := c.frustum()
	dir := forward.
		Add(right.Scale(ndcX * halfW)).
		Add(up.Scale(ndcY * halfH))
	return Ray{Origin: c.Position, Direction: dir.Normalize()}
}

// Project 将世界坐标投影到 NDC，是 ScreenRay 的逆运算
// 点位于相机后方（或近平面内）时 ok 为 false
func (c Camera) Project(p Vec3) (ndcX, ndcY float32, ok bool) {
	forward, right, up := c.basis()
	halfH, halfW := c.frustum()
	d := p.Sub(c.Position)
	depth := d.Dot(forward)
	if depth <= nearPlane {
		return 0, 0, false
	}
	ndcX = d.Dot(right) / (depth * halfW)
	ndcY = d.Dot(up) / (depth * halfH)
	return ndcX, ndcY, true
}
