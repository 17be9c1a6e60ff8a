package systems

import (
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/decker502/gridboard/pkg/config"
	"github.com/decker502/gridboard/pkg/ecs"
	"github.com/decker502/gridboard/pkg/geom"
	"github.com/decker502/gridboard/pkg/types"
	"github.com/decker502/gridboard/pkg/utils"
)

// testWorld 10×10、格子边长 4 的参考棋盘，带俯视相机
type testWorld struct {
	t      *testing.T
	em     *ecs.EntityManager
	sys    *InteractionSystem
	camera geom.Camera
	snap   types.Snapshot
	moves  []moveCall
}

type moveCall struct {
	id   types.AssetID
	cell types.Cell
}

// topDownCamera 正上方俯视：NDC +X 对应世界 +X，NDC +Y 对应世界 -Z
func topDownCamera() geom.Camera {
	return geom.Camera{
		Position: geom.V3(0, 100, 0),
		Target:   geom.V3(0, 0, 0),
		Up:       geom.V3(0, 0, -1),
		FovY:     45,
		Aspect:   1,
	}
}

func newTestWorld(t *testing.T, policy types.CollisionPolicy, assets ...types.Asset) *testWorld {
	t.Helper()
	cfg := config.DefaultBoardConfig()
	cfg.CollisionPolicy = policy

	w := &testWorld{
		t:      t,
		em:     ecs.NewEntityManager(),
		camera: topDownCamera(),
		snap:   types.Snapshot{Version: 1, Assets: assets},
	}
	sys, err := NewInteractionSystem(w.em, cfg, func(id types.AssetID, cell types.Cell) {
		w.moves = append(w.moves, moveCall{id: id, cell: cell})
	}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewInteractionSystem: %v", err)
	}
	w.sys = sys
	w.frame()
	return w
}

// asset 创建一个可交互资产；cell 为零值表示未放置
func asset(id string, col, row int) types.Asset {
	return types.Asset{
		ID:           types.AssetID(id),
		Name:         "asset " + id,
		Cell:         types.Cell{Col: col, Row: row},
		Value:        4,
		Interactable: true,
		Attributes:   map[string]string{"kind": "building"},
	}
}

// cellCenter 格子中心的世界坐标
func cellCenter(col, row int) (float32, float32) {
	g := utils.BoardGrid{Size: 10, CellSize: 4}
	return g.CellToWorld(types.Cell{Col: col, Row: row})
}

// aim 返回指向棋盘平面上 (x, z) 的 NDC 坐标
func (w *testWorld) aim(x, z float32) (float32, float32) {
	w.t.Helper()
	nx, ny, ok := w.camera.Project(geom.V3(x, 0, z))
	if !ok {
		w.t.Fatalf("point (%v, %v) is not visible", x, z)
	}
	return nx, ny
}

// push 推入一个指向格子中心的事件
func (w *testWorld) push(kind utils.PointerEventKind, col, row int) {
	w.t.Helper()
	x, z := cellCenter(col, row)
	w.pushAt(kind, x, z)
}

func (w *testWorld) pushAt(kind utils.PointerEventKind, x, z float32) {
	w.t.Helper()
	nx, ny := w.aim(x, z)
	w.sys.Queue().Push(utils.PointerEvent{Kind: kind, X: nx, Y: ny})
}

// frame 用当前快照跑一帧
func (w *testWorld) frame() []Signal {
	return w.sys.Update(w.snap, w.camera)
}

func signalKinds(signals []Signal) []SignalKind {
	out := make([]SignalKind, len(signals))
	for i, s := range signals {
		out[i] = s.Kind
	}
	return out
}

func findSignal(signals []Signal, kind SignalKind) (Signal, bool) {
	for _, s := range signals {
		if s.Kind == kind {
			return s, true
		}
	}
	return Signal{}, false
}

func countSignals(signals []Signal, kind SignalKind) int {
	n := 0
	for _, s := range signals {
		if s.Kind == kind {
			n++
		}
	}
	return n
}

// lastSignal 返回最后一个指定类型的信号
func lastSignal(signals []Signal, kind SignalKind) (Signal, bool) {
	for i := len(signals) - 1; i >= 0; i-- {
		if signals[i].Kind == kind {
			return signals[i], true
		}
	}
	return Signal{}, false
}

// placement 放置表中资产所在的格子
func (w *testWorld) placement(id string) types.Cell {
	w.t.Helper()
	p, ok := w.sys.PlacementTable().Lookup(types.AssetID(id))
	if !ok {
		w.t.Fatalf("asset %s not in placement table", id)
	}
	return p.Cell
}
