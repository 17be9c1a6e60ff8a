package utils

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"

	"github.com/decker502/gridboard/pkg/types"
)

// testGrid 参考实例：10×10，格子边长 4
func testGrid(t *testing.T) BoardGrid {
	t.Helper()
	g, err := NewBoardGrid(10, 4)
	if err != nil {
		t.Fatalf("NewBoardGrid: %v", err)
	}
	return g
}

// TestWorldToCell 测试世界坐标到格子坐标的转换
func TestWorldToCell(t *testing.T) {
	g := testGrid(t)

	tests := []struct {
		name string
		x, z float32
		want types.Cell
	}{
		{name: "左上角格子内部", x: -19, z: -19, want: types.Cell{Col: 1, Row: 1}},
		{name: "左上角格子中心", x: -18, z: -18, want: types.Cell{Col: 1, Row: 1}},
		{name: "第二列的左边界", x: -16, z: -18, want: types.Cell{Col: 2, Row: 1}},
		{name: "原点落在 (6,6)", x: 0, z: 0, want: types.Cell{Col: 6, Row: 6}},
		{name: "原点左侧一点落在 (5,5)", x: -0.1, z: -0.1, want: types.Cell{Col: 5, Row: 5}},
		{name: "右下角格子", x: 19.9, z: 19.9, want: types.Cell{Col: 10, Row: 10}},
		{name: "网格右侧外部被钳制", x: 500, z: 2, want: types.Cell{Col: 10, Row: 6}},
		{name: "网格左侧外部被钳制", x: -500, z: -500, want: types.Cell{Col: 1, Row: 1}},
		{name: "右边缘恰好等于半宽", x: 20, z: 20, want: types.Cell{Col: 10, Row: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.WorldToCell(tt.x, tt.z); got != tt.want {
				t.Errorf("WorldToCell(%v, %v) = %v, want %v", tt.x, tt.z, got, tt.want)
			}
		})
	}
}

// TestCellToWorld 测试格子中心坐标
func TestCellToWorld(t *testing.T) {
	g := testGrid(t)

	tests := []struct {
		cell  types.Cell
		wantX float32
		wantZ float32
	}{
		{cell: types.Cell{Col: 1, Row: 1}, wantX: -18, wantZ: -18},
		{cell: types.Cell{Col: 2, Row: 1}, wantX: -14, wantZ: -18},
		{cell: types.Cell{Col: 5, Row: 5}, wantX: -2, wantZ: -2},
		{cell: types.Cell{Col: 10, Row: 10}, wantX: 18, wantZ: 18},
	}

	for _, tt := range tests {
		x, z := g.CellToWorld(tt.cell)
		if x != tt.wantX || z != tt.wantZ {
			t.Errorf("CellToWorld(%v) = (%v, %v), want (%v, %v)", tt.cell, x, z, tt.wantX, tt.wantZ)
		}
	}
}

// TestGridRoundTrip 对所有格子，CellToWorld 后再 WorldToCell 必须回到原格子
// 同时覆盖奇数尺寸的网格
func TestGridRoundTrip(t *testing.T) {
	grids := []BoardGrid{
		{Size: 10, CellSize: 4},
		{Size: 7, CellSize: 1.5},
		{Size: 1, CellSize: 3},
	}
	for _, g := range grids {
		for col := 1; col <= g.Size; col++ {
			for row := 1; row <= g.Size; row++ {
				cell := types.Cell{Col: col, Row: row}
				x, z := g.CellToWorld(cell)
				if got := g.WorldToCell(x, z); got != cell {
					t.Errorf("grid %+v: round trip of %v gave %v", g, cell, got)
				}
			}
		}
	}
}

// TestWorldToCellAlwaysInRange 任意输入（包括非有限值）都不会越界
func TestWorldToCellAlwaysInRange(t *testing.T) {
	g := testGrid(t)

	inputs := []float32{
		0, -1e9, 1e9, 19.999, -20, 20.0001,
		math32.Inf(1), math32.Inf(-1), math32.NaN(),
		math32.MaxFloat32, -math32.MaxFloat32,
	}
	for _, x := range inputs {
		for _, z := range inputs {
			c := g.WorldToCell(x, z)
			if !g.Contains(c) {
				t.Errorf("WorldToCell(%v, %v) = %v is out of range", x, z, c)
			}
		}
	}

	if c := g.WorldToCell(math32.Inf(1), math32.NaN()); c != (types.Cell{Col: 10, Row: 1}) {
		t.Errorf("non-finite clamp = %v, want (10,1)", c)
	}
}

// TestAutoCell 测试按创建顺序的行优先回退格子
func TestAutoCell(t *testing.T) {
	g := testGrid(t)

	tests := []struct {
		index int
		want  types.Cell
	}{
		{index: 0, want: types.Cell{Col: 1, Row: 1}},
		{index: 1, want: types.Cell{Col: 2, Row: 1}},
		{index: 9, want: types.Cell{Col: 10, Row: 1}},
		{index: 10, want: types.Cell{Col: 1, Row: 2}},
		{index: 99, want: types.Cell{Col: 10, Row: 10}},
		{index: 100, want: types.Cell{Col: 1, Row: 1}},
	}
	for _, tt := range tests {
		if got := g.AutoCell(tt.index); got != tt.want {
			t.Errorf("AutoCell(%d) = %v, want %v", tt.index, got, tt.want)
		}
	}
}

// TestNewBoardGridInvalid 非法参数返回 ErrInvalidGrid
func TestNewBoardGridInvalid(t *testing.T) {
	cases := []struct {
		size     int
		cellSize float32
	}{
		{0, 4},
		{-3, 4},
		{10, 0},
		{10, -1},
		{10, math32.NaN()},
		{10, math32.Inf(1)},
	}
	for _, c := range cases {
		if _, err := NewBoardGrid(c.size, c.cellSize); !errors.Is(err, ErrInvalidGrid) {
			t.Errorf("NewBoardGrid(%d, %v) error = %v, want ErrInvalidGrid", c.size, c.cellSize, err)
		}
	}
}
