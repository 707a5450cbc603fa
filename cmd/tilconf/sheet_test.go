package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/milk9111/pathgrip/tile"
	"gopkg.in/yaml.v3"
)

// testSheet has an empty cell 0, a full block in cell 1 and a slope rising
// to the right in cell 2.
func testSheet() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 48, 16))
	black := color.NRGBA{A: 0xFF}
	for x := 0; x < 16; x++ {
		for y := 0; y < 16; y++ {
			img.SetNRGBA(16+x, y, black)
			if y >= 15-x {
				img.SetNRGBA(32+x, y, black)
			}
		}
	}
	return img
}

func TestSheetTiles(t *testing.T) {
	spec, err := sheetTiles(testSheet(), nil)
	if err != nil {
		t.Fatalf("sheetTiles: %v", err)
	}
	if len(spec.Tiles) != 2 {
		t.Fatalf("tiles = %d, want 2", len(spec.Tiles))
	}

	block, slope := spec.Tiles[0], spec.Tiles[1]
	if block.ID != 1 || block.Heights != "0000000000000000" || block.Angles.Floor != 0 {
		t.Fatalf("unexpected block: %+v", block)
	}
	if slope.ID != 2 || slope.Heights != "fedcba9876543210" {
		t.Fatalf("unexpected slope: %+v", slope)
	}
	if slope.Angles.Floor != 0xE0 {
		t.Fatalf("slope angle = %#x, want 0xe0", slope.Angles.Floor)
	}
}

func TestSheetTilesRejectsSize(t *testing.T) {
	if _, err := sheetTiles(image.NewNRGBA(image.Rect(0, 0, 20, 16)), nil); err == nil {
		t.Fatalf("expected error for a sheet that is not a whole number of cells")
	}
}

func TestSheetDecodesPNG(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, testSheet()); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	img, format, err := image.Decode(&buf)
	if err != nil || format != "png" {
		t.Fatalf("decode: %q %v", format, err)
	}
	spec, err := sheetTiles(img, []int{1})
	if err != nil {
		t.Fatalf("sheetTiles: %v", err)
	}
	cfg, err := spec.ToConfig()
	if err != nil {
		t.Fatalf("ToConfig: %v", err)
	}
	if cfg.Planes[0][1].Active[0] || !cfg.Planes[1][1].Active[0] {
		t.Fatalf("sheet should only fill plane B")
	}
}

func TestFloorAngle(t *testing.T) {
	flat := [tile.MaskSize]int{}
	var falling, single [tile.MaskSize]int
	for c := range falling {
		falling[c] = c
		single[c] = -1
	}
	single[4] = 3

	tests := []struct {
		name string
		h    [tile.MaskSize]int
		want uint8
	}{
		{name: "flat", h: flat, want: 0x00},
		{name: "falling", h: falling, want: 0x20},
		{name: "single_column", h: single, want: 0x00},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := floorAngle(tt.h); got != tt.want {
				t.Fatalf("floorAngle = %#x, want %#x", got, tt.want)
			}
		})
	}
}

func TestConfigSpecRoundTrip(t *testing.T) {
	var cfg tile.Config
	for c := 0; c < tile.MaskSize; c++ {
		cfg.Planes[0][3].Active[c] = true
		cfg.Planes[1][3].Active[c] = true
		cfg.Planes[1][5].Active[c] = c > 3
		cfg.Planes[1][5].Heights[c] = 7
	}
	cfg.Planes[0][3].RoofAngle = 0x80
	cfg.Planes[1][3].RoofAngle = 0x80
	cfg.Planes[1][5].FlipY = true
	cfg.Planes[1][5].Flag = 2

	dumped, err := configSpec(&cfg)
	if err != nil {
		t.Fatalf("configSpec: %v", err)
	}
	data, err := yaml.Marshal(dumped)
	if err != nil {
		t.Fatalf("yaml.Marshal: %v", err)
	}
	var spec struct {
		Tiles []struct {
			ID int `yaml:"id"`
		} `yaml:"tiles"`
	}
	if err := yaml.Unmarshal(data, &spec); err != nil {
		t.Fatalf("yaml.Unmarshal: %v", err)
	}
	if len(spec.Tiles) != 2 {
		t.Fatalf("dumped tiles = %d, want 2:\n%s", len(spec.Tiles), data)
	}

	back, err := dumped.ToConfig()
	if err != nil {
		t.Fatalf("ToConfig: %v", err)
	}
	// heights of inactive columns are not carried
	want := cfg
	for c := 0; c <= 3; c++ {
		want.Planes[1][5].Heights[c] = 0
	}
	if *back != want {
		t.Fatalf("round trip changed the configuration")
	}
}

func TestConfigSpecRejectsWideHeights(t *testing.T) {
	var cfg tile.Config
	cfg.Planes[0][9].Active[4] = true
	cfg.Planes[0][9].Heights[4] = 0x1F
	// the same byte in an inactive column is dropped, not rejected
	cfg.Planes[0][10].Active[0] = true
	cfg.Planes[0][10].Heights[1] = 0x1F

	if _, err := configSpec(&cfg); err == nil || !strings.Contains(err.Error(), "tile 9 column 4") {
		t.Fatalf("configSpec error = %v, want tile 9 column 4 out of range", err)
	}

	cfg.Planes[0][9] = tile.BaseTile{}
	spec, err := configSpec(&cfg)
	if err != nil {
		t.Fatalf("configSpec: %v", err)
	}
	if len(spec.Tiles) != 1 || spec.Tiles[0].ID != 10 {
		t.Fatalf("tiles = %+v, want only tile 10", spec.Tiles)
	}
}
