package systems

import (
	"github.com/decker502/gridboard/pkg/ecs"
	"github.com/decker502/gridboard/pkg/geom"
	"github.com/decker502/gridboard/pkg/types"
)

// SignalKind 交互系统发给渲染层的信号类型
type SignalKind int

const (
	// SignalTransform 实体的世界位置变化（拖拽中、回退、提交）
	SignalTransform SignalKind = iota + 1
	// SignalPicked 资产被拾取，拖拽开始
	SignalPicked
	// SignalDropIndicator 落点指示器移动到 Cell，Blocked 表示被占用
	SignalDropIndicator
	// SignalDropIndicatorHidden 隐藏落点指示器
	SignalDropIndicatorHidden
	// SignalCommitted 拖拽提交到 Cell
	SignalCommitted
	// SignalReverted 拖拽被拒绝或取消，实体回到锚点
	SignalReverted
	// SignalAborted 被拖拽的资产已从快照中消失，拖拽静默结束
	SignalAborted
	// SignalHighlight 高亮资产，附带描述属性
	SignalHighlight
	// SignalUnhighlight 取消高亮
	SignalUnhighlight
	// SignalOrbit 开启或关闭宿主的相机自动旋转（OrbitEnabled）
	SignalOrbit
)

var signalKindNames = map[SignalKind]string{
	SignalTransform:           "transform",
	SignalPicked:              "picked",
	SignalDropIndicator:       "drop_indicator",
	SignalDropIndicatorHidden: "drop_indicator_hidden",
	SignalCommitted:           "committed",
	SignalReverted:            "reverted",
	SignalAborted:             "aborted",
	SignalHighlight:           "highlight",
	SignalUnhighlight:         "unhighlight",
	SignalOrbit:               "orbit",
}

// String 返回信号类型名称
func (k SignalKind) String() string {
	if name, ok := signalKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// IsDrag 是否为拖拽相关信号（高亮类信号以外的全部信号）
func (k SignalKind) IsDrag() bool {
	return k != SignalHighlight && k != SignalUnhighlight
}

// Signal 一条视觉反馈信号
// 只有与 Kind 相关的字段有意义
type Signal struct {
	Kind    SignalKind
	AssetID types.AssetID
	Entity  ecs.EntityID

	// Cell 落点、提交的目标格子
	Cell types.Cell
	// Position 实体底面中心（SignalTransform）
	Position geom.Vec3
	// Blocked 落点是否被占用（SignalDropIndicator）
	Blocked bool
	// OrbitEnabled 相机自动旋转开关（SignalOrbit）
	OrbitEnabled bool

	// Name、Value、Attributes 资产描述（SignalHighlight）
	Name       string
	Value      float64
	Attributes map[string]string
}

// SignalSink 收集一帧内产生的信号
type SignalSink struct {
	signals []Signal
}

// Emit 追加一条信号
func (s *SignalSink) Emit(sig Signal) {
	s.signals = append(s.signals, sig)
}

// Take 取出并清空已收集的信号
func (s *SignalSink) Take() []Signal {
	out := s.signals
	s.signals = nil
	return out
}

// Len 已收集的信号数
func (s *SignalSink) Len() int {
	return len(s.signals)
}
