package levels

import (
	"fmt"
	"strings"

	"github.com/milk9111/pathgrip/collision"
	"github.com/milk9111/pathgrip/common"
	"github.com/milk9111/pathgrip/tile"
)

// TileLayers converts the level layers into tile layers.
func (l *Level) TileLayers() ([]*tile.Layer, error) {
	if l == nil {
		return nil, fmt.Errorf("levels: nil level")
	}
	if len(l.Layers) > collision.MaxLayers {
		return nil, fmt.Errorf("levels: %d layers, at most %d are supported", len(l.Layers), collision.MaxLayers)
	}

	out := make([]*tile.Layer, 0, len(l.Layers))
	for i, src := range l.Layers {
		layer, err := src.build()
		if err != nil {
			return nil, fmt.Errorf("levels: layer %d (%s): %w", i, src.Name, err)
		}
		out = append(out, layer)
	}
	return out, nil
}

// Stage builds a collision stage over table.
func (l *Level) Stage(table *tile.Table, rev collision.Revision) (*collision.Stage, error) {
	layers, err := l.TileLayers()
	if err != nil {
		return nil, err
	}
	return collision.NewStage(table, rev, layers...), nil
}

func (src Layer) build() (*tile.Layer, error) {
	if src.Width <= 0 || src.Height <= 0 {
		return nil, fmt.Errorf("invalid size %dx%d", src.Width, src.Height)
	}
	if len(src.Tiles) != src.Width*src.Height {
		return nil, fmt.Errorf("got %d tiles, want %d", len(src.Tiles), src.Width*src.Height)
	}
	solid, err := solidityBits(src.Solidity)
	if err != nil {
		return nil, err
	}

	layer := tile.NewLayer(src.Name, src.Width, src.Height)
	layer.Position = common.Vector2{X: common.ToFixed(int32(src.X)), Y: common.ToFixed(int32(src.Y))}
	for i, id := range src.Tiles {
		if id < 0 {
			continue
		}
		if id > 0xFFFF {
			return nil, fmt.Errorf("tile %d: id %#x out of range", i, id)
		}
		v := uint16(id)
		if solid != rawSolidity {
			v = v&tile.IndexMask | solid
		}
		if v == tile.Empty {
			continue
		}
		layer.Tiles[i] = v
	}
	return layer, nil
}

const rawSolidity uint16 = 0xFFFF

func solidityBits(name string) (uint16, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "all":
		return tile.SolidAll, nil
	case "top":
		return tile.SolidTop, nil
	case "none":
		return 0, nil
	case "raw":
		return rawSolidity, nil
	}
	return 0, fmt.Errorf("unknown solidity %q", name)
}
