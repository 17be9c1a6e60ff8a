package scenes

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"go.uber.org/zap"

	"github.com/decker502/gridboard/pkg/config"
	"github.com/decker502/gridboard/pkg/ecs"
	"github.com/decker502/gridboard/pkg/game"
	"github.com/decker502/gridboard/pkg/geom"
	"github.com/decker502/gridboard/pkg/systems"
	"github.com/decker502/gridboard/pkg/types"
	"github.com/decker502/gridboard/pkg/utils"
)

var backgroundColor = color.RGBA{R: 24, G: 28, B: 32, A: 255}

// BoardScene 棋盘编辑场景
//
// 每帧：指针输入 -> 事件队列 -> 交互系统 -> 信号 -> HUD 状态。
// 资产仓库是唯一的数据来源，场景只持有它的快照。
type BoardScene struct {
	store       *game.AssetStore
	em          *ecs.EntityManager
	interaction *systems.InteractionSystem
	renderer    *systems.BoardRenderSystem
	tracker     *utils.PointerTracker
	logger      *zap.Logger

	camera geom.Camera
	width  int
	height int

	snapshot types.Snapshot

	// HUD 状态，由信号驱动
	orbitEnabled bool
	hoverLines   []string
	status       string
}

// NewBoardScene 创建棋盘场景
//
// 参数:
//   - cfg: 棋盘配置
//   - store: 资产仓库，拖拽提交通过 store.OnAssetMove 写回
//   - logger: 可为 nil
func NewBoardScene(cfg config.BoardConfig, store *game.AssetStore, logger *zap.Logger) (*BoardScene, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	em := ecs.NewEntityManager()
	interaction, err := systems.NewInteractionSystem(em, cfg, store.OnAssetMove, logger)
	if err != nil {
		return nil, fmt.Errorf("board scene: %w", err)
	}
	return &BoardScene{
		store:        store,
		em:           em,
		interaction:  interaction,
		renderer:     systems.NewBoardRenderSystem(em, interaction.Grid(), cfg.BoardHeight),
		tracker:      utils.NewPointerTracker(),
		logger:       logger.Named("board"),
		camera:       cfg.InitialCamera(),
		orbitEnabled: true,
		snapshot:     store.Snapshot(),
	}, nil
}

// Update 读取输入并推进交互
func (s *BoardScene) Update(deltaTime float64) {
	s.tracker.Update(s.interaction.Queue(), s.width, s.height)
	s.step()
}

// step 跑一帧交互逻辑（不读取输入设备）
func (s *BoardScene) step() {
	if v := s.store.Version(); v != s.snapshot.Version {
		s.snapshot = s.store.Snapshot()
	}
	s.applySignals(s.interaction.Update(s.snapshot, s.camera))
}

// applySignals 把信号翻译为 HUD 状态
func (s *BoardScene) applySignals(signals []systems.Signal) {
	for _, sig := range signals {
		switch sig.Kind {
		case systems.SignalOrbit:
			s.orbitEnabled = sig.OrbitEnabled
		case systems.SignalHighlight:
			s.hoverLines = describeAsset(sig)
		case systems.SignalUnhighlight:
			s.hoverLines = nil
		case systems.SignalPicked:
			s.status = fmt.Sprintf("dragging %s", sig.AssetID)
		case systems.SignalCommitted:
			s.status = fmt.Sprintf("moved %s to %s", sig.AssetID, sig.Cell)
		case systems.SignalReverted:
			s.status = fmt.Sprintf("%s returned to %s", sig.AssetID, sig.Cell)
		case systems.SignalAborted:
			s.status = fmt.Sprintf("%s is gone", sig.AssetID)
		}
	}
}

// describeAsset 悬停信息，属性按键排序
func describeAsset(sig systems.Signal) []string {
	lines := []string{
		fmt.Sprintf("%s (%s)", sig.Name, sig.AssetID),
		fmt.Sprintf("value: %g", sig.Value),
	}
	keys := make([]string, 0, len(sig.Attributes))
	for k := range sig.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s: %s", k, sig.Attributes[k]))
	}
	return lines
}

// Draw 绘制棋盘和 HUD
func (s *BoardScene) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	s.renderer.Draw(screen, s.camera)

	ebitenutil.DebugPrintAt(screen, s.hudText(), 8, 8)
}

func (s *BoardScene) hudText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "assets: %d  version: %d\n", len(s.snapshot.Assets), s.snapshot.Version)
	if !s.orbitEnabled {
		b.WriteString("orbit: paused\n")
	}
	if s.status != "" {
		b.WriteString(s.status)
		b.WriteByte('\n')
	}
	for _, line := range s.hoverLines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// Resize 视口尺寸变化时更新相机宽高比
func (s *BoardScene) Resize(width, height int) {
	s.width, s.height = width, height
	if height > 0 {
		s.camera.Aspect = float32(width) / float32(height)
	}
}

// SaveOnExit 把仓库中的放置写入存档
func (s *BoardScene) SaveOnExit() bool {
	if err := s.store.Flush(); err != nil {
		s.logger.Warn("failed to save placements", zap.Error(err))
		return false
	}
	return true
}

// OrbitEnabled 相机自动旋转是否允许（拖拽期间为 false）
func (s *BoardScene) OrbitEnabled() bool {
	return s.orbitEnabled
}
