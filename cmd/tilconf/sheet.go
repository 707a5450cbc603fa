package main

import (
	"fmt"
	"image"
	"math"

	"github.com/milk9111/pathgrip/prefabs"
	"github.com/milk9111/pathgrip/tile"
)

// sheetTiles reads a collision sheet: a grid of 16x16 cells in row-major
// order, cell n describing base tile n. A column's height is the first
// opaque pixel from the top; fully transparent columns are empty.
func sheetTiles(img image.Image, planes []int) (*prefabs.TilesetSpec, error) {
	b := img.Bounds()
	if b.Dx()%tile.MaskSize != 0 || b.Dy()%tile.MaskSize != 0 {
		return nil, fmt.Errorf("sheet is %dx%d, want multiples of %d", b.Dx(), b.Dy(), tile.MaskSize)
	}
	cols := b.Dx() / tile.MaskSize
	rows := b.Dy() / tile.MaskSize
	if cols*rows > tile.BaseCount {
		return nil, fmt.Errorf("sheet holds %d cells, at most %d tiles", cols*rows, tile.BaseCount)
	}

	isOpaque := func(x, y int) bool {
		_, _, _, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
		return a != 0
	}

	spec := &prefabs.TilesetSpec{Name: "sheet"}
	for id := 0; id < cols*rows; id++ {
		ox := (id % cols) * tile.MaskSize
		oy := (id / cols) * tile.MaskSize

		var heights [tile.MaskSize]int
		solid := false
		for c := 0; c < tile.MaskSize; c++ {
			heights[c] = -1
			for r := 0; r < tile.MaskSize; r++ {
				if isOpaque(ox+c, oy+r) {
					heights[c] = r
					solid = true
					break
				}
			}
		}
		if !solid {
			continue
		}
		spec.Tiles = append(spec.Tiles, prefabs.TileSpec{
			ID:      id,
			Planes:  planes,
			Heights: heightString(heights),
			Angles: prefabs.AngleSpec{
				Floor:     floorAngle(heights),
				LeftWall:  0xC0,
				RightWall: 0x40,
				Roof:      0x80,
			},
		})
	}
	return spec, nil
}

func heightString(h [tile.MaskSize]int) string {
	const digits = "0123456789abcdef"
	out := make([]byte, tile.MaskSize)
	for c, v := range h {
		if v < 0 {
			out[c] = '.'
			continue
		}
		out[c] = digits[v]
	}
	return string(out)
}

// floorAngle is the angle of the line through the outermost surface
// columns, in 1/256 turns with y pointing down.
func floorAngle(h [tile.MaskSize]int) uint8 {
	first, last := -1, -1
	for c, v := range h {
		if v < 0 {
			continue
		}
		if first < 0 {
			first = c
		}
		last = c
	}
	if first < 0 || first == last {
		return 0
	}
	rad := math.Atan2(float64(h[last]-h[first]), float64(last-first))
	return uint8(int(math.Round(rad*128/math.Pi)) & 0xFF)
}

// configSpec renders a decoded configuration as a tileset prefab. Tiles
// that are identical on both planes are written once. Heights of inactive
// columns never reach a mask and are not written; an active height above 15
// cannot be written as a hex digit and is an error.
func configSpec(cfg *tile.Config) (*prefabs.TilesetSpec, error) {
	spec := &prefabs.TilesetSpec{Name: "dump"}
	add := func(id int, planes []int, t tile.BaseTile) error {
		ts, err := tileSpec(id, planes, t)
		if err != nil {
			return err
		}
		spec.Tiles = append(spec.Tiles, ts)
		return nil
	}
	for id := 0; id < tile.BaseCount; id++ {
		a, b := cfg.Planes[0][id], cfg.Planes[1][id]
		if a == b {
			if !isBlank(a) {
				if err := add(id, nil, a); err != nil {
					return nil, err
				}
			}
			continue
		}
		if !isBlank(a) {
			if err := add(id, []int{0}, a); err != nil {
				return nil, err
			}
		}
		if !isBlank(b) {
			if err := add(id, []int{1}, b); err != nil {
				return nil, err
			}
		}
	}
	return spec, nil
}

func isBlank(t tile.BaseTile) bool {
	return t == tile.BaseTile{}
}

func tileSpec(id int, planes []int, t tile.BaseTile) (prefabs.TileSpec, error) {
	var h [tile.MaskSize]int
	for c := range h {
		h[c] = -1
		if !t.Active[c] {
			continue
		}
		if t.Heights[c] > 0xF {
			return prefabs.TileSpec{}, fmt.Errorf("tile %d column %d: height %d out of range", id, c, t.Heights[c])
		}
		h[c] = int(t.Heights[c])
	}
	return prefabs.TileSpec{
		ID:      id,
		Planes:  planes,
		Heights: heightString(h),
		FlipY:   t.FlipY,
		Angles: prefabs.AngleSpec{
			Floor:     t.FloorAngle,
			LeftWall:  t.LeftWallAngle,
			RightWall: t.RightWallAngle,
			Roof:      t.RoofAngle,
		},
		Flag: t.Flag,
	}, nil
}
