// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

import "fmt"

// AssetID 是资产的稳定标识符
// 由外部资产仓库分配，跨帧、跨快照保持不变
type AssetID string

// Cell 棋盘格子坐标（1-based）
// 零值 {0, 0} 表示"未指定格子"
type Cell struct {
	Col int `yaml:"col"`
	Row int `yaml:"row"`
}

// IsZero 是否为未指定格子
func (c Cell) IsZero() bool {
	return c.Col == 0 && c.Row == 0
}

// String 返回格子的字符串表示，如 "(3,5)"
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Col, c.Row)
}

// Asset 外部资产仓库中的一条资产记录
//
// Cell 为零值时表示没有显式放置，按快照中的顺序回退到行优先的默认格子。
type Asset struct {
	ID   AssetID `yaml:"id"`
	Name string  `yaml:"name"`
	// Cell 显式放置的格子（1-based），零值表示未放置
	Cell Cell `yaml:"cell,omitempty"`
	// Value 数值属性，决定资产方块的高度
	Value float64 `yaml:"value"`
	// Interactable 是否可被拾取和拖拽
	Interactable bool `yaml:"interactable"`
	// Attributes 描述性属性，悬停高亮时随信号一起发出
	Attributes map[string]string `yaml:"attributes,omitempty"`
}

// HasCell 是否有显式放置的格子
func (a Asset) HasCell() bool {
	return !a.Cell.IsZero()
}

// Snapshot 外部资产仓库在某一时刻的只读快照
// Version 在仓库内容每次变化后递增，用于判断"外部刷新"是否已经发生
type Snapshot struct {
	Version uint64
	Assets  []Asset
}

// Find 按标识符查找资产，返回资产、它在快照中的下标以及是否找到
func (s Snapshot) Find(id AssetID) (Asset, int, bool) {
	for i, a := range s.Assets {
		if a.ID == id {
			return a, i, true
		}
	}
	return Asset{}, -1, false
}
