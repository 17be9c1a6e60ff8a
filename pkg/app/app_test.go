package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/decker502/gridboard/pkg/types"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestNewAppFromFiles(t *testing.T) {
	board := writeFile(t, "board.yaml", "gridSize: 6\ncellSize: 2\n")
	catalog := writeFile(t, "catalog.yaml", `assets:
  - id: a
    name: Alpha
    cell: {col: 2, row: 3}
    value: 5
    interactable: true
  - id: b
    name: Beta
    value: 1
    interactable: true
`)

	a, err := NewApp(Config{BoardConfigPath: board, CatalogPath: catalog, Ephemeral: true})
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}

	snap := a.Store().Snapshot()
	if len(snap.Assets) != 2 {
		t.Fatalf("got %d assets, want 2", len(snap.Assets))
	}
	if got, _, _ := snap.Find("a"); got.Cell != (types.Cell{Col: 2, Row: 3}) {
		t.Errorf("a.Cell = %v, want (2,3)", got.Cell)
	}

	w, h := a.Layout(640, 480)
	if w != 640 || h != 480 {
		t.Errorf("Layout = %dx%d, want 640x480", w, h)
	}
	if !a.SaveOnExit() {
		t.Error("SaveOnExit() = false")
	}
}

func TestNewAppErrors(t *testing.T) {
	catalog := writeFile(t, "catalog.yaml", "assets: []\n")

	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "棋盘配置不存在", cfg: Config{BoardConfigPath: filepath.Join(t.TempDir(), "missing.yaml"), CatalogPath: catalog}},
		{name: "棋盘配置非法", cfg: Config{BoardConfigPath: writeFile(t, "bad.yaml", "gridSize: 0\n"), CatalogPath: catalog}},
		{name: "资产目录重复", cfg: Config{
			BoardConfigPath: writeFile(t, "board.yaml", "gridSize: 4\n"),
			CatalogPath:     writeFile(t, "dup.yaml", "assets:\n  - id: x\n  - id: x\n"),
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cfg.Ephemeral = true
			if _, err := NewApp(tt.cfg); err == nil {
				t.Error("NewApp() should fail")
			}
		})
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Run("默认值", func(t *testing.T) {
		cfg, err := LoadConfigFromEnv()
		if err != nil {
			t.Fatalf("LoadConfigFromEnv: %v", err)
		}
		if cfg.BoardConfigPath != "data/board.yaml" || cfg.CatalogPath != "data/catalog.yaml" {
			t.Errorf("default paths = %q, %q", cfg.BoardConfigPath, cfg.CatalogPath)
		}
		if cfg.Verbose || cfg.Ephemeral {
			t.Errorf("flags should default to false: %+v", cfg)
		}
	})

	t.Run("环境变量覆盖", func(t *testing.T) {
		t.Setenv("GRIDBOARD_CONFIG", "/tmp/board.yaml")
		t.Setenv("GRIDBOARD_VERBOSE", "true")
		t.Setenv("GRIDBOARD_EPHEMERAL", "1")
		cfg, err := LoadConfigFromEnv()
		if err != nil {
			t.Fatalf("LoadConfigFromEnv: %v", err)
		}
		if cfg.BoardConfigPath != "/tmp/board.yaml" || !cfg.Verbose || !cfg.Ephemeral {
			t.Errorf("cfg = %+v", cfg)
		}
	})

	t.Run("非法布尔值", func(t *testing.T) {
		t.Setenv("GRIDBOARD_VERBOSE", "maybe")
		if _, err := LoadConfigFromEnv(); err == nil {
			t.Error("LoadConfigFromEnv() should fail")
		}
	})
}
