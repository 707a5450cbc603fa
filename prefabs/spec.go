package prefabs

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/milk9111/pathgrip/tile"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// EngineSpec configures a simulation run.
type EngineSpec struct {
	Revision string `yaml:"revision"`
	// Tileset is either a tileset prefab (.yaml) or a compiled .til file.
	Tileset string `yaml:"tileset"`
	Level   string `yaml:"level"`
	Ticks   int    `yaml:"ticks"`
}

func LoadEngineSpec() (*EngineSpec, error) {
	spec, err := LoadSpec[EngineSpec]("engine.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type AngleSpec struct {
	Floor     uint8 `yaml:"floor"`
	LeftWall  uint8 `yaml:"left_wall"`
	RightWall uint8 `yaml:"right_wall"`
	Roof      uint8 `yaml:"roof"`
}

// TileSpec describes one base tile. Heights has one character per column:
// a hex digit is the surface height, '.' is an empty column.
type TileSpec struct {
	ID      int       `yaml:"id"`
	Planes  []int     `yaml:"planes,omitempty"`
	Heights string    `yaml:"heights"`
	FlipY   bool      `yaml:"flip_y,omitempty"`
	Angles  AngleSpec `yaml:"angles"`
	Flag    uint8     `yaml:"flag,omitempty"`
}

type TilesetSpec struct {
	Name  string     `yaml:"name"`
	Tiles []TileSpec `yaml:"tiles"`
}

func LoadTilesetSpec(filename string) (*TilesetSpec, error) {
	spec, err := LoadSpec[TilesetSpec](filename)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// ToConfig converts the tileset into a tile configuration. Tiles without
// planes are written to both planes.
func (s *TilesetSpec) ToConfig() (*tile.Config, error) {
	cfg := &tile.Config{}
	if s == nil {
		return cfg, nil
	}
	for i, ts := range s.Tiles {
		if ts.ID < 0 || ts.ID >= tile.BaseCount {
			return nil, fmt.Errorf("prefabs: tile %d: id %d out of range", i, ts.ID)
		}
		base, err := ts.baseTile()
		if err != nil {
			return nil, fmt.Errorf("prefabs: tile %d: %w", ts.ID, err)
		}
		planes := ts.Planes
		if len(planes) == 0 {
			planes = []int{0, 1}
		}
		for _, p := range planes {
			if p < 0 || p >= tile.PlaneCount {
				return nil, fmt.Errorf("prefabs: tile %d: plane %d out of range", ts.ID, p)
			}
			cfg.Planes[p][ts.ID] = base
		}
	}
	return cfg, nil
}

func (ts TileSpec) baseTile() (tile.BaseTile, error) {
	b := tile.BaseTile{
		FlipY:          ts.FlipY,
		FloorAngle:     ts.Angles.Floor,
		LeftWallAngle:  ts.Angles.LeftWall,
		RightWallAngle: ts.Angles.RightWall,
		RoofAngle:      ts.Angles.Roof,
		Flag:           ts.Flag,
	}
	heights := strings.ReplaceAll(ts.Heights, " ", "")
	if len(heights) != tile.MaskSize {
		return b, fmt.Errorf("heights %q: want %d columns", ts.Heights, tile.MaskSize)
	}
	for c, ch := range heights {
		if ch == '.' {
			continue
		}
		h, err := strconv.ParseUint(string(ch), 16, 8)
		if err != nil {
			return b, fmt.Errorf("heights %q: column %d: %w", ts.Heights, c, err)
		}
		b.Heights[c] = uint8(h)
		b.Active[c] = true
	}
	return b, nil
}
