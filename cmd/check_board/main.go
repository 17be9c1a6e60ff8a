// check_board 校验棋盘配置和资产目录，打印初始放置表
//
// 用法: go run ./cmd/check_board --config data/board.yaml --catalog data/catalog.yaml
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/decker502/gridboard/pkg/config"
	"github.com/decker502/gridboard/pkg/systems"
	"github.com/decker502/gridboard/pkg/types"
)

var (
	boardConfigPath = flag.String("config", config.DefaultBoardConfigPath, "棋盘配置文件")
	catalogPath     = flag.String("catalog", config.DefaultCatalogPath, "资产目录文件")
)

func main() {
	flag.Parse()

	cfg, err := config.LoadBoardConfig(*boardConfigPath)
	if err != nil {
		log.Fatalf("加载棋盘配置失败: %v", err)
	}
	grid, err := cfg.Grid()
	if err != nil {
		log.Fatalf("棋盘配置非法: %v", err)
	}
	assets, err := config.LoadAssetCatalog(*catalogPath)
	if err != nil {
		log.Fatalf("加载资产目录失败: %v", err)
	}

	snapshot := types.Snapshot{Version: 1, Assets: assets}
	table := systems.BuildPlacementTable(snapshot, grid, nil)
	validator := systems.CollisionValidator{Policy: cfg.CollisionPolicy}

	fmt.Printf("棋盘: %d×%d, 格子边长 %.2f, 碰撞策略 %s\n", grid.Size, grid.Size, grid.CellSize, cfg.CollisionPolicy)
	fmt.Printf("资产数量: %d\n\n", len(assets))

	conflicts := 0
	for i, p := range table {
		mode := "auto"
		if p.Explicit {
			mode = "explicit"
		}
		a := assets[i]
		fmt.Printf("  %-12s %-8s %-8s value=%-6g height=%.2f", p.AssetID, p.Cell, mode, a.Value, cfg.BoxHeight(a.Value))
		if a.HasCell() && !p.Explicit {
			fmt.Printf("  (cell %s out of range)", a.Cell)
		}
		// 自动排布的资产只在 all 策略下参与冲突判断
		occupies := p.Explicit || cfg.CollisionPolicy == types.CollisionAll
		if occupies && validator.IsOccupied(p.Cell, p.AssetID, table) {
			fmt.Print("  CONFLICT")
			conflicts++
		}
		fmt.Println()
	}

	if conflicts > 0 {
		fmt.Printf("\n%d 个资产的格子冲突\n", conflicts)
		os.Exit(1)
	}
}
