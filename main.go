package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/decker502/gridboard/pkg/app"
	"github.com/decker502/gridboard/pkg/embedded"
)

const (
	windowWidth  = 1024
	windowHeight = 768
)

func main() {
	cfg, err := app.LoadConfigFromEnv()
	if err != nil {
		log.Fatalf("环境变量配置错误: %v", err)
	}
	flag.StringVar(&cfg.BoardConfigPath, "config", cfg.BoardConfigPath, "棋盘配置文件（data/ 前缀从内置资源读取）")
	flag.StringVar(&cfg.CatalogPath, "catalog", cfg.CatalogPath, "资产目录文件（data/ 前缀从内置资源读取）")
	flag.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "显示详细调试日志")
	flag.BoolVar(&cfg.Ephemeral, "ephemeral", cfg.Ephemeral, "不读写存档")
	flag.Parse()

	embedded.Init(dataFS)

	a, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}
	logger := a.Logger()
	defer func() { _ = logger.Sync() }()

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("Grid Board")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	runErr := ebiten.RunGame(a)
	if !a.SaveOnExit() {
		logger.Warn("placements were not saved on exit")
	}
	if runErr != nil {
		logger.Fatal("game loop stopped", zap.Error(runErr))
	}
}
