package systems

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/gridboard/pkg/components"
	"github.com/decker502/gridboard/pkg/ecs"
	"github.com/decker502/gridboard/pkg/geom"
	"github.com/decker502/gridboard/pkg/utils"
)

// 渲染颜色
var (
	colorGrid          = color.RGBA{R: 90, G: 110, B: 90, A: 255}
	colorBox           = color.RGBA{R: 220, G: 220, B: 220, A: 255}
	colorBoxHighlight  = color.RGBA{R: 255, G: 210, B: 80, A: 255}
	colorBoxDragging   = color.RGBA{R: 120, G: 200, B: 255, A: 255}
	colorBoxInert      = color.RGBA{R: 130, G: 130, B: 130, A: 255}
	colorIndicatorFree = color.RGBA{R: 80, G: 220, B: 120, A: 160}
	colorIndicatorHeld = color.RGBA{R: 230, G: 70, B: 70, A: 160}
)

// boxEdgePairs 包围盒 12 条边对应的角点下标（见 boxCorners）
var boxEdgePairs = [12][2]int{
	{0, 1}, {1, 3}, {3, 2}, {2, 0}, // 底面
	{4, 5}, {5, 7}, {7, 6}, {6, 4}, // 顶面
	{0, 4}, {1, 5}, {2, 6}, {3, 7}, // 竖边
}

// BoardRenderSystem 用线框绘制棋盘、资产方块和落点指示器
//
// 渲染层只读取组件：TransformComponent 决定几何，
// HoverHighlightComponent、DraggingComponent、DropIndicatorComponent 决定颜色。
type BoardRenderSystem struct {
	em   *ecs.EntityManager
	grid utils.BoardGrid
	// boardHeight 棋盘平面高度
	boardHeight float32
}

// NewBoardRenderSystem 创建渲染系统
func NewBoardRenderSystem(em *ecs.EntityManager, grid utils.BoardGrid, boardHeight float32) *BoardRenderSystem {
	return &BoardRenderSystem{em: em, grid: grid, boardHeight: boardHeight}
}

// Draw 绘制整个场景
func (s *BoardRenderSystem) Draw(screen *ebiten.Image, camera geom.Camera) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()

	for _, seg := range GridLines(s.grid, s.boardHeight) {
		s.strokeSegment(screen, camera, w, h, seg[0], seg[1], 1, colorGrid)
	}

	s.drawIndicator(screen, camera, w, h)

	// 远处的方块先画
	entities := ecs.GetEntitiesWith2[*components.AssetRefComponent, *components.TransformComponent](s.em)
	sort.SliceStable(entities, func(i, j int) bool {
		return s.depth(camera, entities[i]) > s.depth(camera, entities[j])
	})
	for _, id := range entities {
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.em, id)
		clr, width := s.boxStyle(id)
		corners := BoxCorners(transform.Bounds())
		for _, e := range boxEdgePairs {
			s.strokeSegment(screen, camera, w, h, corners[e[0]], corners[e[1]], width, clr)
		}
	}
}

// drawIndicator 在目标格子上画一个方框，被占用时用红色
func (s *BoardRenderSystem) drawIndicator(screen *ebiten.Image, camera geom.Camera, w, h int) {
	ids := ecs.GetEntitiesWith2[*components.DropIndicatorComponent, *components.TransformComponent](s.em)
	for _, id := range ids {
		indicator, _ := ecs.GetComponent[*components.DropIndicatorComponent](s.em, id)
		if !indicator.Visible {
			continue
		}
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.em, id)
		clr := colorIndicatorFree
		if indicator.Blocked {
			clr = colorIndicatorHeld
		}
		corners := BoxCorners(transform.Bounds())
		for _, e := range boxEdgePairs[:4] {
			s.strokeSegment(screen, camera, w, h, corners[e[0]], corners[e[1]], 3, clr)
		}
	}
}

// boxStyle 根据组件选择方块的颜色和线宽
func (s *BoardRenderSystem) boxStyle(id ecs.EntityID) (color.RGBA, float32) {
	switch {
	case ecs.HasComponent[*components.DraggingComponent](s.em, id):
		return colorBoxDragging, 2
	case ecs.HasComponent[*components.HoverHighlightComponent](s.em, id):
		hl, _ := ecs.GetComponent[*components.HoverHighlightComponent](s.em, id)
		if hl.IsActive && hl.Intensity > 0 {
			return colorBoxHighlight, 1 + float32(hl.Intensity)
		}
	case !ecs.HasComponent[*components.InteractableComponent](s.em, id):
		return colorBoxInert, 1
	}
	return colorBox, 1
}

func (s *BoardRenderSystem) depth(camera geom.Camera, id ecs.EntityID) float32 {
	transform, _ := ecs.GetComponent[*components.TransformComponent](s.em, id)
	return transform.Bounds().Center().Sub(camera.Position).Length()
}

func (s *BoardRenderSystem) strokeSegment(screen *ebiten.Image, camera geom.Camera, w, h int, a, b geom.Vec3, width float32, clr color.Color) {
	x0, y0, ok0 := ProjectToScreen(camera, a, w, h)
	x1, y1, ok1 := ProjectToScreen(camera, b, w, h)
	if !ok0 || !ok1 {
		return
	}
	vector.StrokeLine(screen, x0, y0, x1, y1, width, clr, true)
}

// ProjectToScreen 把世界坐标投影为屏幕像素坐标
// 点在相机后方时 ok 为 false
func ProjectToScreen(camera geom.Camera, p geom.Vec3, width, height int) (x, y float32, ok bool) {
	nx, ny, ok := camera.Project(p)
	if !ok {
		return 0, 0, false
	}
	x, y = utils.NDCToScreen(nx, ny, width, height)
	return x, y, true
}

// BoxCorners 返回包围盒的 8 个角点
// 下标的第 0 位对应 X，第 1 位对应 Z，第 2 位对应 Y（0 = Min，1 = Max）
func BoxCorners(b geom.AABB) [8]geom.Vec3 {
	var out [8]geom.Vec3
	for i := 0; i < 8; i++ {
		p := b.Min
		if i&1 != 0 {
			p.X = b.Max.X
		}
		if i&2 != 0 {
			p.Z = b.Max.Z
		}
		if i&4 != 0 {
			p.Y = b.Max.Y
		}
		out[i] = p
	}
	return out
}

// GridLines 返回棋盘网格线段（N+1 条列线和 N+1 条行线）
func GridLines(grid utils.BoardGrid, y float32) [][2]geom.Vec3 {
	half := grid.HalfExtent()
	lines := make([][2]geom.Vec3, 0, 2*(grid.Size+1))
	for i := 0; i <= grid.Size; i++ {
		v := -half + float32(i)*grid.CellSize
		lines = append(lines,
			[2]geom.Vec3{geom.V3(v, y, -half), geom.V3(v, y, half)},
			[2]geom.Vec3{geom.V3(-half, y, v), geom.V3(half, y, v)},
		)
	}
	return lines
}
