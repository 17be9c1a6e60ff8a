package config

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"gopkg.in/yaml.v3"

	"github.com/decker502/gridboard/pkg/geom"
	"github.com/decker502/gridboard/pkg/types"
	"github.com/decker502/gridboard/pkg/utils"
)

// ErrInvalidBoardConfig 表示棋盘配置中存在非法值
var ErrInvalidBoardConfig = errors.New("invalid board config")

// DefaultBoardConfigPath 内置的默认棋盘配置
const DefaultBoardConfigPath = "data/board.yaml"

// minCameraDistance 相机位置与目标点的最小距离，过近时无法确定视线方向
const minCameraDistance = 1e-3

// CameraConfig 初始相机参数
type CameraConfig struct {
	Position []float32 `yaml:"position"` // [x, y, z]
	Target   []float32 `yaml:"target"`   // [x, y, z]
	FovY     float32   `yaml:"fovY"`     // 垂直视场角（角度）
}

// BoardConfig 棋盘与交互参数
type BoardConfig struct {
	GridSize    int     `yaml:"gridSize"`    // 每条边的格子数 N
	CellSize    float32 `yaml:"cellSize"`    // 格子边长（世界单位）
	BoardHeight float32 `yaml:"boardHeight"` // 棋盘平面高度，拖拽时射线与 y = BoardHeight 求交
	LiftHeight  float32 `yaml:"liftHeight"`  // 拖拽时方块抬起的高度

	// 方块高度 = clamp(Value * HeightScale, MinHeight, MaxHeight)
	HeightScale float32 `yaml:"heightScale"`
	MinHeight   float32 `yaml:"minHeight"`
	MaxHeight   float32 `yaml:"maxHeight"`

	// Footprint 方块底面边长占格子边长的比例 (0, 1]
	Footprint float32 `yaml:"footprint"`

	CollisionPolicy types.CollisionPolicy `yaml:"collisionPolicy"`

	Camera CameraConfig `yaml:"camera"`
}

// DefaultBoardConfig 返回默认配置（10×10，格子边长 4）
func DefaultBoardConfig() BoardConfig {
	return BoardConfig{
		GridSize:        10,
		CellSize:        4,
		BoardHeight:     0,
		LiftHeight:      1,
		HeightScale:     0.5,
		MinHeight:       0.5,
		MaxHeight:       12,
		Footprint:       0.7,
		CollisionPolicy: types.CollisionExplicitOnly,
		Camera: CameraConfig{
			Position: []float32{0, 40, 30},
			Target:   []float32{0, 0, 0},
			FovY:     45,
		},
	}
}

// LoadBoardConfig 从 YAML 文件加载棋盘配置
// 文件中没有出现的键保留默认值
//
// 参数:
//   - path: 配置文件路径；"data/" 开头时优先读取内置资源
//
// 返回:
//   - BoardConfig: 解析并校验后的配置
//   - error: 读取、解析或校验失败时返回包装后的错误
func LoadBoardConfig(path string) (BoardConfig, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return BoardConfig{}, fmt.Errorf("failed to read board config %s: %w", path, err)
	}
	return ParseBoardConfig(data)
}

// ParseBoardConfig 解析 YAML 内容
func ParseBoardConfig(data []byte) (BoardConfig, error) {
	cfg := DefaultBoardConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return BoardConfig{}, fmt.Errorf("failed to parse board config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return BoardConfig{}, err
	}
	return cfg, nil
}

// Validate 校验配置
func (c BoardConfig) Validate() error {
	if c.GridSize < 1 {
		return fmt.Errorf("%w: gridSize must be at least 1, got %d", ErrInvalidBoardConfig, c.GridSize)
	}
	if !positiveFinite(c.CellSize) {
		return fmt.Errorf("%w: cellSize must be positive, got %v", ErrInvalidBoardConfig, c.CellSize)
	}
	if !finite(c.BoardHeight) || !finite(c.LiftHeight) || c.LiftHeight < 0 {
		return fmt.Errorf("%w: boardHeight/liftHeight must be finite and liftHeight >= 0", ErrInvalidBoardConfig)
	}
	if !positiveFinite(c.HeightScale) {
		return fmt.Errorf("%w: heightScale must be positive, got %v", ErrInvalidBoardConfig, c.HeightScale)
	}
	if !positiveFinite(c.MinHeight) || !finite(c.MaxHeight) || c.MaxHeight < c.MinHeight {
		return fmt.Errorf("%w: need 0 < minHeight <= maxHeight, got %v..%v", ErrInvalidBoardConfig, c.MinHeight, c.MaxHeight)
	}
	if !positiveFinite(c.Footprint) || c.Footprint > 1 {
		return fmt.Errorf("%w: footprint must be in (0, 1], got %v", ErrInvalidBoardConfig, c.Footprint)
	}
	if !c.CollisionPolicy.Valid() {
		return fmt.Errorf("%w: unknown collisionPolicy %q", ErrInvalidBoardConfig, c.CollisionPolicy)
	}
	if len(c.Camera.Position) != 3 || len(c.Camera.Target) != 3 {
		return fmt.Errorf("%w: camera position and target need 3 components", ErrInvalidBoardConfig)
	}
	if !finiteAll(c.Camera.Position) || !finiteAll(c.Camera.Target) {
		return fmt.Errorf("%w: camera position and target must be finite", ErrInvalidBoardConfig)
	}
	cam := c.InitialCamera()
	if cam.Target.Sub(cam.Position).Length() < minCameraDistance {
		return fmt.Errorf("%w: camera position and target must differ", ErrInvalidBoardConfig)
	}
	if c.Camera.FovY <= 0 || c.Camera.FovY >= 180 {
		return fmt.Errorf("%w: camera fovY must be in (0, 180), got %v", ErrInvalidBoardConfig, c.Camera.FovY)
	}
	return nil
}

// Grid 根据配置创建网格
func (c BoardConfig) Grid() (utils.BoardGrid, error) {
	return utils.NewBoardGrid(c.GridSize, c.CellSize)
}

// InitialCamera 返回配置中的初始相机
// Aspect 由宿主在知道视口尺寸后设置
func (c BoardConfig) InitialCamera() geom.Camera {
	cam := geom.Camera{
		Up:   geom.V3(0, 1, 0),
		FovY: c.Camera.FovY,
	}
	if len(c.Camera.Position) == 3 {
		cam.Position = geom.V3(c.Camera.Position[0], c.Camera.Position[1], c.Camera.Position[2])
	}
	if len(c.Camera.Target) == 3 {
		cam.Target = geom.V3(c.Camera.Target[0], c.Camera.Target[1], c.Camera.Target[2])
	}
	return cam
}

// BoxHeight 根据资产数值计算方块高度
func (c BoardConfig) BoxHeight(value float64) float32 {
	h := float32(value) * c.HeightScale
	if math32.IsNaN(h) || h < c.MinHeight {
		return c.MinHeight
	}
	if h > c.MaxHeight {
		return c.MaxHeight
	}
	return h
}

// BoxFootprint 方块底面边长（世界单位）
func (c BoardConfig) BoxFootprint() float32 {
	return c.Footprint * c.CellSize
}

func finite(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}

func positiveFinite(v float32) bool {
	return v > 0 && !math32.IsInf(v, 0)
}

func finiteAll(vs []float32) bool {
	for _, v := range vs {
		if !finite(v) {
			return false
		}
	}
	return true
}
