package geom

import (
	"testing"

	"github.com/chewxy/math32"
)

const testEps = 1e-4

// TestIntersectPlaneY 测试射线与水平面求交
func TestIntersectPlaneY(t *testing.T) {
	tests := []struct {
		name    string
		ray     Ray
		height  float32
		wantOK  bool
		wantPos Vec3
	}{
		{
			name:    "垂直向下命中",
			ray:     Ray{Origin: V3(2, 10, -3), Direction: V3(0, -1, 0)},
			height:  0,
			wantOK:  true,
			wantPos: V3(2, 0, -3),
		},
		{
			name:    "斜向命中抬高的平面",
			ray:     Ray{Origin: V3(0, 10, 0), Direction: V3(1, -1, 0).Normalize()},
			height:  2,
			wantOK:  true,
			wantPos: V3(8, 2, 0),
		},
		{
			name:   "平行于平面",
			ray:    Ray{Origin: V3(0, 5, 0), Direction: V3(1, 0, 0)},
			height: 0,
			wantOK: false,
		},
		{
			name:   "平面在射线后方",
			ray:    Ray{Origin: V3(0, 5, 0), Direction: V3(0, 1, 0)},
			height: 0,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, ok := tt.ray.IntersectPlaneY(tt.height)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && !got.ApproxEqual(tt.wantPos, testEps) {
				t.Errorf("point = %+v, want %+v", got, tt.wantPos)
			}
		})
	}
}

// TestIntersectAABB 测试射线与包围盒求交
func TestIntersectAABB(t *testing.T) {
	box := AABB{Min: V3(-1, 0, -1), Max: V3(1, 2, 1)}

	tests := []struct {
		name   string
		ray    Ray
		wantOK bool
		wantT  float32
	}{
		{
			name:   "正面命中",
			ray:    Ray{Origin: V3(0, 1, -10), Direction: V3(0, 0, 1)},
			wantOK: true,
			wantT:  9,
		},
		{
			name:   "从上方命中顶面",
			ray:    Ray{Origin: V3(0.5, 10, 0.5), Direction: V3(0, -1, 0)},
			wantOK: true,
			wantT:  8,
		},
		{
			name:   "擦边错过",
			ray:    Ray{Origin: V3(1.5, 1, -10), Direction: V3(0, 0, 1)},
			wantOK: false,
		},
		{
			name:   "包围盒在射线后方",
			ray:    Ray{Origin: V3(0, 1, 10), Direction: V3(0, 0, 1)},
			wantOK: false,
		},
		{
			name:   "起点在盒内",
			ray:    Ray{Origin: V3(0, 1, 0), Direction: V3(1, 0, 0)},
			wantOK: true,
			wantT:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.ray.IntersectAABB(box)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && math32.Abs(got-tt.wantT) > testEps {
				t.Errorf("t = %v, want %v", got, tt.wantT)
			}
		})
	}
}

// TestCameraProjectRoundTrip 投影后再反投影，射线应穿过原始点
func TestCameraProjectRoundTrip(t *testing.T) {
	cam := Camera{
		Position: V3(0, 30, 30),
		Target:   V3(0, 0, 0),
		Up:       V3(0, 1, 0),
		FovY:     45,
		Aspect:   16.0 / 9.0,
	}

	points := []Vec3{
		V3(0, 0, 0),
		V3(-18, 0, 18),
		V3(10, 3, -6),
	}
	for _, p := range points {
		x, y, ok := cam.Project(p)
		if !ok {
			t.Fatalf("Project(%+v) not visible", p)
		}
		ray := cam.ScreenRay(x, y)
		dist := p.Sub(cam.Position).Length()
		got := ray.At(dist)
		if !got.ApproxEqual(p, 1e-2) {
			t.Errorf("round trip of %+v ended at %+v", p, got)
		}
	}
}

// TestCameraScreenRayCenter 屏幕中心射线指向目标点
func TestCameraScreenRayCenter(t *testing.T) {
	cam := Camera{Position: V3(0, 10, 10), Target: V3(0, 0, 0), Up: V3(0, 1, 0), FovY: 60, Aspect: 1}
	ray := cam.ScreenRay(0, 0)
	want := V3(0, -1, -1).Normalize()
	if !ray.Direction.ApproxEqual(want, testEps) {
		t.Errorf("direction = %+v, want %+v", ray.Direction, want)
	}
}

// TestCameraProjectBehind 相机后方的点不可见
func TestCameraProjectBehind(t *testing.T) {
	cam := Camera{Position: V3(0, 0, 10), Target: V3(0, 0, 0), Up: V3(0, 1, 0), FovY: 45, Aspect: 1}
	if _, _, ok := cam.Project(V3(0, 0, 20)); ok {
		t.Error("point behind the camera should not project")
	}
}

// TestCameraStraightDown Up 与视线平行时改用备用上方向，射线仍随 NDC 变化
func TestCameraStraightDown(t *testing.T) {
	cam := Camera{Position: V3(0, 60, 0), Target: V3(0, 0, 0), Up: V3(0, 1, 0), FovY: 45, Aspect: 1}

	a := cam.ScreenRay(-0.9, 0)
	b := cam.ScreenRay(0.9, 0)
	if a.Direction.ApproxEqual(b.Direction, testEps) {
		t.Fatalf("ScreenRay ignores the pointer: both %+v", a.Direction)
	}

	// NDC +X 对应世界 +X，NDC +Y 对应世界 -Z
	p, _, ok := cam.ScreenRay(0.5, 0.5).IntersectPlaneY(0)
	if !ok || p.X <= 0 || p.Z >= 0 {
		t.Errorf("ray through (0.5, 0.5) hit %+v (ok=%v), want +X and -Z", p, ok)
	}

	target := V3(7, 0, -3)
	x, y, ok := cam.Project(target)
	if !ok {
		t.Fatal("point below the camera should project")
	}
	got, _, _ := cam.ScreenRay(x, y).IntersectPlaneY(0)
	if !got.ApproxEqual(target, 1e-2) {
		t.Errorf("round trip of %+v ended at %+v", target, got)
	}
}
