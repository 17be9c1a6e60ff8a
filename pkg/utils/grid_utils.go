package utils

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/decker502/gridboard/pkg/types"
)

// ErrInvalidGrid 表示网格尺寸或格子边长非法
var ErrInvalidGrid = errors.New("invalid board grid")

// BoardGrid 描述固定大小的 N×N 棋盘网格
//
// 网格以世界原点为中心铺在 XZ 平面上：
//   - 列（col）沿 X 轴，行（row）沿 Z 轴，均为 1-based
//   - 网格总宽度 = Size * CellSize，左上角格子 (1,1) 位于 -X、-Z 一侧
//
// BoardGrid 是值类型，创建后在整个会话中不变。
type BoardGrid struct {
	// Size 每条边的格子数 N
	Size int
	// CellSize 格子边长（世界单位）
	CellSize float32
}

// NewBoardGrid 创建网格
//
// 参数:
//   - size: 每条边的格子数，必须 >= 1
//   - cellSize: 格子边长，必须为正的有限值
//
// 返回:
//   - BoardGrid: 网格
//   - error: 参数非法时返回包装了 ErrInvalidGrid 的错误
func NewBoardGrid(size int, cellSize float32) (BoardGrid, error) {
	if size < 1 {
		return BoardGrid{}, fmt.Errorf("%w: size=%d", ErrInvalidGrid, size)
	}
	if !(cellSize > 0) || math32.IsInf(cellSize, 0) {
		return BoardGrid{}, fmt.Errorf("%w: cellSize=%v", ErrInvalidGrid, cellSize)
	}
	return BoardGrid{Size: size, CellSize: cellSize}, nil
}

// WorldToCell 将世界坐标转换为格子坐标
//
// 计算方式：除以格子边长、偏移半个网格、向下取整、加 1，
// 最后把每个轴钳制到 [1, Size]。网格外的点会被钳制到最近的边缘格子。
//
// 参数:
//   - x, z: 世界坐标（XZ 平面）
//
// 返回:
//   - types.Cell: 1-based 的格子坐标，永远在网格范围内
func (g BoardGrid) WorldToCell(x, z float32) types.Cell {
	return types.Cell{
		Col: g.axisToIndex(x),
		Row: g.axisToIndex(z),
	}
}

// CellToWorld 将格子坐标转换为格子中心的世界坐标
//
// 公式: (col - 1 - N/2 + 0.5) * CellSize，行同理
// 对 WorldToCell 产生的任意格子，WorldToCell(CellToWorld(c)) == c
func (g BoardGrid) CellToWorld(cell types.Cell) (x, z float32) {
	return g.indexToAxis(cell.Col), g.indexToAxis(cell.Row)
}

// Contains 格子是否在网格范围内
func (g BoardGrid) Contains(cell types.Cell) bool {
	return cell.Col >= 1 && cell.Col <= g.Size && cell.Row >= 1 && cell.Row <= g.Size
}

// AutoCell 返回第 index 个资产（按创建顺序）的默认格子
// 按行优先填充：先填满第 1 行的所有列，再到第 2 行；超过 N*N 后从头循环
func (g BoardGrid) AutoCell(index int) types.Cell {
	if index < 0 {
		index = 0
	}
	index %= g.Size * g.Size
	return types.Cell{
		Col: index%g.Size + 1,
		Row: index/g.Size + 1,
	}
}

// HalfExtent 网格半宽（世界单位）
func (g BoardGrid) HalfExtent() float32 {
	return float32(g.Size) * g.CellSize / 2
}

// axisToIndex 单轴世界坐标 -> 1-based 索引（含钳制）
func (g BoardGrid) axisToIndex(v float32) int {
	// 非有限输入：+Inf 钳到最大，-Inf 和 NaN 钳到最小
	if math32.IsNaN(v) || math32.IsInf(v, -1) {
		return 1
	}
	if math32.IsInf(v, 1) {
		return g.Size
	}

	f := math32.Floor(v/g.CellSize+float32(g.Size)/2) + 1
	if f < 1 {
		return 1
	}
	if f > float32(g.Size) {
		return g.Size
	}
	return int(f)
}

// indexToAxis 单轴 1-based 索引 -> 格子中心的世界坐标
func (g BoardGrid) indexToAxis(i int) float32 {
	return (float32(i) - 1 - float32(g.Size)/2 + 0.5) * g.CellSize
}
