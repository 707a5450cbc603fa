package prefabs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/milk9111/pathgrip/tile"
)

func TestTileSpecHeights(t *testing.T) {
	tests := []struct {
		name    string
		heights string
		active  int
		first   uint8
		wantErr bool
	}{
		{name: "flat", heights: "0000000000000000", active: 16, first: 0},
		{name: "spaced", heights: "8888 8888 8888 8888", active: 16, first: 8},
		{name: "gaps", heights: "..44444444444444", active: 14, first: 0},
		{name: "short", heights: "000", wantErr: true},
		{name: "bad_digit", heights: "000000000000000g", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := TileSpec{Heights: tt.heights}.baseTile()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.heights)
				}
				return
			}
			if err != nil {
				t.Fatalf("baseTile: %v", err)
			}
			active := 0
			for _, a := range b.Active {
				if a {
					active++
				}
			}
			if active != tt.active {
				t.Fatalf("active columns = %d, want %d", active, tt.active)
			}
			if b.Heights[0] != tt.first {
				t.Fatalf("height[0] = %d, want %d", b.Heights[0], tt.first)
			}
		})
	}
}

func TestTilesetToConfig(t *testing.T) {
	spec := &TilesetSpec{Tiles: []TileSpec{
		{ID: 1, Heights: "0000000000000000", Angles: AngleSpec{LeftWall: 0xC0, RightWall: 0x40, Roof: 0x80}},
		{ID: 2, Planes: []int{1}, Heights: "8888888888888888"},
	}}
	cfg, err := spec.ToConfig()
	if err != nil {
		t.Fatalf("ToConfig: %v", err)
	}
	if !cfg.Planes[0][1].Active[0] || !cfg.Planes[1][1].Active[0] {
		t.Fatalf("tile 1 should be on both planes")
	}
	if cfg.Planes[0][2].Active[0] {
		t.Fatalf("tile 2 should only be on plane 1")
	}
	if cfg.Planes[1][2].Heights[3] != 8 {
		t.Fatalf("tile 2 height = %d, want 8", cfg.Planes[1][2].Heights[3])
	}

	table := cfg.Build()
	if got := table.Info(0, 1).RoofAngle; got != 0x80 {
		t.Fatalf("roof angle = %#x, want 0x80", got)
	}
	if got := table.Mask(1, 2).Floor[0]; got != 8 {
		t.Fatalf("floor mask = %d, want 8", got)
	}
}

func TestTilesetToConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		tile TileSpec
	}{
		{name: "id", tile: TileSpec{ID: tile.BaseCount, Heights: "0000000000000000"}},
		{name: "plane", tile: TileSpec{ID: 1, Planes: []int{2}, Heights: "0000000000000000"}},
		{name: "heights", tile: TileSpec{ID: 1, Heights: "00"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := &TilesetSpec{Tiles: []TileSpec{tt.tile}}
			if _, err := spec.ToConfig(); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestEmbeddedPrefabs(t *testing.T) {
	engine, err := LoadEngineSpec()
	if err != nil {
		t.Fatalf("LoadEngineSpec: %v", err)
	}
	if engine.Revision != "extended" || engine.Tileset != "tiles_demo.yaml" {
		t.Fatalf("unexpected engine spec: %+v", engine)
	}

	tiles, err := LoadTilesetSpec(engine.Tileset)
	if err != nil {
		t.Fatalf("LoadTilesetSpec: %v", err)
	}
	if _, err := tiles.ToConfig(); err != nil {
		t.Fatalf("demo tileset: %v", err)
	}

	spec, err := LoadEntityBuildSpec("runner.yaml")
	if err != nil {
		t.Fatalf("LoadEntityBuildSpec: %v", err)
	}
	hb, err := DecodeComponentSpec[HitboxComponentSpec](spec.Components["hitbox"])
	if err != nil {
		t.Fatalf("decode hitbox: %v", err)
	}
	if hb.Outer.Bottom != 19 || hb.Inner == nil || hb.Inner.Left != -4 {
		t.Fatalf("unexpected hitbox: %+v", hb)
	}
	drv, err := DecodeComponentSpec[DriverComponentSpec](spec.Components["driver"])
	if err != nil {
		t.Fatalf("decode driver: %v", err)
	}
	if _, err := LoadScript(drv.Script); err != nil {
		t.Fatalf("LoadScript(%q): %v", drv.Script, err)
	}
}

func TestCleanScriptPath(t *testing.T) {
	for _, in := range []string{"runner.tengo", "scripts/runner.tengo", "prefabs/scripts/runner.tengo"} {
		if got := cleanScriptPath(in); got != "scripts/runner.tengo" {
			t.Fatalf("cleanScriptPath(%q) = %q", in, got)
		}
	}
}

func TestLoadPrefersDisk(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "scripts"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "engine.yaml"), []byte("ticks: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "scripts", "runner.tengo"), []byte("// edited\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	old := Dir
	Dir = dir
	t.Cleanup(func() { Dir = old })

	data, err := Load("prefabs/engine.yaml")
	if err != nil || string(data) != "ticks: 3\n" {
		t.Fatalf("Load = %q, %v", data, err)
	}
	data, err = LoadScript("runner.tengo")
	if err != nil || string(data) != "// edited\n" {
		t.Fatalf("LoadScript = %q, %v", data, err)
	}
	if _, err := Load("crawler.yaml"); err != nil {
		t.Fatalf("embedded fallback: %v", err)
	}
	if _, err := Load(""); err == nil {
		t.Fatal("empty name should fail")
	}
}
