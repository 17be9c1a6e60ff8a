package utils

import "sync"

// PointerEventKind 指针事件类型
type PointerEventKind int

const (
	// PointerDown 按下（鼠标左键或触摸开始）
	PointerDown PointerEventKind = iota + 1
	// PointerMove 移动
	PointerMove
	// PointerUp 释放
	PointerUp
	// PointerCancel 丢失指针捕获或窗口失去焦点
	PointerCancel
)

// String 返回事件类型名称
func (k PointerEventKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	case PointerCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// PointerEvent 一次指针输入
// X、Y 为归一化屏幕坐标（NDC，范围 [-1, 1]，Y 向上）
type PointerEvent struct {
	Kind PointerEventKind
	X, Y float32
}

// PointerQueue 指针事件队列
//
// 宿主（渲染层）在收到输入时 Push，交互系统每帧 Drain 一次，
// 按到达顺序同步处理。Push 可能来自输入回调，因此用互斥锁保护。
type PointerQueue struct {
	mu     sync.Mutex
	events []PointerEvent
}

// NewPointerQueue 创建空队列
func NewPointerQueue() *PointerQueue {
	return &PointerQueue{events: make([]PointerEvent, 0, 8)}
}

// Push 追加一个事件
func (q *PointerQueue) Push(ev PointerEvent) {
	q.mu.Lock()
	q.events = append(q.events, ev)
	q.mu.Unlock()
}

// Drain 取出并清空所有待处理事件
func (q *PointerQueue) Drain() []PointerEvent {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.events) == 0 {
		return nil
	}
	out := q.events
	q.events = make([]PointerEvent, 0, cap(out))
	return out
}

// Len 待处理事件数
func (q *PointerQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

// ScreenToNDC 将屏幕像素坐标转换为 NDC
//
// 参数:
//   - x, y: 屏幕坐标（左上角为原点，Y 向下）
//   - width, height: 视口尺寸（像素），<= 0 时返回 (0, 0)
func ScreenToNDC(x, y, width, height int) (ndcX, ndcY float32) {
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	ndcX = (float32(x)+0.5)/float32(width)*2 - 1
	ndcY = 1 - (float32(y)+0.5)/float32(height)*2
	return ndcX, ndcY
}

// NDCToScreen 将 NDC 转换为屏幕像素坐标（浮点），ScreenToNDC 的逆运算
func NDCToScreen(ndcX, ndcY float32, width, height int) (x, y float32) {
	x = (ndcX+1)/2*float32(width) - 0.5
	y = (1-ndcY)/2*float32(height) - 0.5
	return x, y
}
