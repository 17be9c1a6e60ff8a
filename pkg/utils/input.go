// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerSample 某一帧读取到的原始指针状态
// 统一鼠标和触摸输入；由 readPointerSample 从 ebiten 读取
type PointerSample struct {
	// Focused 窗口是否拥有焦点
	Focused bool
	// Pressed 指针当前是否按下
	Pressed bool
	// JustPressed 本帧刚按下
	JustPressed bool
	// JustReleased 本帧刚释放
	JustReleased bool
	// X, Y 屏幕坐标
	X, Y int
}

// PointerTracker 把每帧的鼠标/触摸状态翻译为指针事件
//
// 状态转换：
//   - 未按下 + JustPressed       -> PointerDown
//   - 按下中 + 位置变化          -> PointerMove
//   - 未按下 + 位置变化          -> PointerMove（用于悬停）
//   - 按下中 + 释放              -> PointerUp
//   - 按下中 + 失去焦点          -> PointerCancel（拖拽不能悬空）
type PointerTracker struct {
	pressed bool
	lastX   int
	lastY   int
	hasLast bool

	// 触摸跟踪
	isTouch bool
	touchID ebiten.TouchID
}

// NewPointerTracker 创建指针跟踪器
func NewPointerTracker() *PointerTracker {
	return &PointerTracker{touchID: -1}
}

// Update 读取本帧输入并把事件推入队列（每帧调用一次）
//
// 参数:
//   - q: 目标事件队列
//   - width, height: 视口尺寸，用于换算 NDC
func (t *PointerTracker) Update(q *PointerQueue, width, height int) {
	t.Apply(t.readPointerSample(), q, width, height)
}

// Apply 根据一次采样推进状态并产生事件
// 与 ebiten 解耦，便于在没有窗口的情况下测试
func (t *PointerTracker) Apply(s PointerSample, q *PointerQueue, width, height int) {
	push := func(kind PointerEventKind, x, y int) {
		nx, ny := ScreenToNDC(x, y, width, height)
		q.Push(PointerEvent{Kind: kind, X: nx, Y: ny})
	}

	// 失去焦点：正在按下则取消，保证拖拽一定会结束
	if !s.Focused {
		if t.pressed {
			push(PointerCancel, t.lastX, t.lastY)
			t.pressed = false
			t.isTouch = false
		}
		return
	}

	moved := !t.hasLast || s.X != t.lastX || s.Y != t.lastY

	switch {
	case s.JustPressed && !t.pressed:
		if moved && t.hasLast {
			// 先补发移动，保证按下前悬停状态是最新的
			push(PointerMove, s.X, s.Y)
		}
		push(PointerDown, s.X, s.Y)
		t.pressed = true

	case t.pressed && (s.JustReleased || !s.Pressed):
		// 释放事件丢失时（未收到 JustReleased 但已经松开）也结束按下状态
		// 同一帧内的最后一段移动先发出，落点以它为准
		if moved {
			push(PointerMove, s.X, s.Y)
		}
		push(PointerUp, s.X, s.Y)
		t.pressed = false

	case moved:
		push(PointerMove, s.X, s.Y)
	}

	t.lastX, t.lastY = s.X, s.Y
	t.hasLast = true
}

// IsPressed 指针当前是否处于按下状态
func (t *PointerTracker) IsPressed() bool {
	return t.pressed
}

// Reset 重置跟踪状态
func (t *PointerTracker) Reset() {
	*t = PointerTracker{touchID: -1}
}

// readPointerSample 从 ebiten 读取当前帧的指针状态
// 优先检测触摸输入（移动设备），其次是鼠标（桌面设备）
func (t *PointerTracker) readPointerSample() PointerSample {
	s := PointerSample{Focused: ebiten.IsFocused()}

	// 新的触摸
	if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 && !t.isTouch {
		t.isTouch = true
		t.touchID = ids[0]
		s.X, s.Y = ebiten.TouchPosition(ids[0])
		s.JustPressed = true
		s.Pressed = true
		return s
	}

	// 正在跟踪的触摸
	if t.isTouch {
		if inpututil.IsTouchJustReleased(t.touchID) {
			// 触摸释放后无法再读取位置，使用最后一次记录的位置
			s.X, s.Y = t.lastX, t.lastY
			s.JustReleased = true
			t.isTouch = false
			t.touchID = -1
			return s
		}
		s.X, s.Y = ebiten.TouchPosition(t.touchID)
		s.Pressed = true
		return s
	}

	s.X, s.Y = ebiten.CursorPosition()
	s.JustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	s.JustReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	s.Pressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	return s
}
