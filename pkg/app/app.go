// Package app 把配置、资产仓库、存档和棋盘场景组装成一个 ebiten.Game
//
// main 包只负责解析命令行参数和初始化嵌入资源，其余初始化都在 NewApp 中完成。
package app

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"

	"github.com/decker502/gridboard/pkg/config"
	"github.com/decker502/gridboard/pkg/game"
	"github.com/decker502/gridboard/pkg/scenes"
)

// AppName 存档目录名
const AppName = "gridboard"

// Config 定义应用启动配置
// 环境变量提供默认值，命令行参数可以覆盖
type Config struct {
	// Verbose 启用开发模式日志（Debug 级别、彩色输出）
	Verbose bool `env:"GRIDBOARD_VERBOSE"`
	// BoardConfigPath 棋盘配置文件，data/ 前缀时从嵌入资源读取
	BoardConfigPath string `env:"GRIDBOARD_CONFIG" envDefault:"data/board.yaml"`
	// CatalogPath 资产目录文件，data/ 前缀时从嵌入资源读取
	CatalogPath string `env:"GRIDBOARD_CATALOG" envDefault:"data/catalog.yaml"`
	// Ephemeral 不打开存档，放置只保存在内存中
	Ephemeral bool `env:"GRIDBOARD_EPHEMERAL"`
}

// LoadConfigFromEnv 从环境变量读取启动配置
func LoadConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// App 实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	store        *game.AssetStore
	logger       *zap.Logger
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	logger, err := newLogger(cfg.Verbose)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	if cfg.BoardConfigPath == "" {
		cfg.BoardConfigPath = config.DefaultBoardConfigPath
	}
	if cfg.CatalogPath == "" {
		cfg.CatalogPath = config.DefaultCatalogPath
	}

	boardCfg, err := config.LoadBoardConfig(cfg.BoardConfigPath)
	if err != nil {
		return nil, fmt.Errorf("棋盘配置加载失败: %w", err)
	}
	grid, err := boardCfg.Grid()
	if err != nil {
		return nil, fmt.Errorf("棋盘配置加载失败: %w", err)
	}
	assets, err := config.LoadAssetCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("资产目录加载失败: %w", err)
	}
	logger.Info("configuration loaded",
		zap.String("board", cfg.BoardConfigPath),
		zap.String("catalog", cfg.CatalogPath),
		zap.Int("assets", len(assets)),
	)

	saves := game.NewPlacementSaveManager(openSaveData(cfg, logger), logger)
	store, err := game.NewAssetStore(grid, assets, saves, logger)
	if err != nil {
		return nil, fmt.Errorf("资产仓库初始化失败: %w", err)
	}

	sceneManager := game.NewSceneManager(logger)
	boardScene, err := scenes.NewBoardScene(boardCfg, store, logger)
	if err != nil {
		return nil, err
	}
	sceneManager.SwitchTo(boardScene)

	return &App{
		sceneManager: sceneManager,
		store:        store,
		logger:       logger,
	}, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// openSaveData 打开 gdata 存档，失败时返回 nil（仅内存模式）
func openSaveData(cfg Config, logger *zap.Logger) *gdata.Manager {
	if cfg.Ephemeral {
		return nil
	}
	manager, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		logger.Warn("save data unavailable, placements will not persist", zap.Error(err))
		return nil
	}
	return manager
}

// Update 更新逻辑，每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// Layout 逻辑屏幕尺寸跟随窗口，场景据此更新相机宽高比
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.sceneManager.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// SaveOnExit 退出前保存当前场景
func (a *App) SaveOnExit() bool {
	return a.sceneManager.SaveOnExit()
}

// Store 资产仓库
func (a *App) Store() *game.AssetStore {
	return a.store
}

// Logger 应用日志
func (a *App) Logger() *zap.Logger {
	return a.logger
}
