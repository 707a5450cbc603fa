package main

import (
	"bufio"
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/milk9111/pathgrip/logger"
	"github.com/milk9111/pathgrip/prefabs"
	"github.com/milk9111/pathgrip/tile"
	_ "golang.org/x/image/bmp"
	"gopkg.in/yaml.v3"
)

func main() {
	in := flag.String("in", "", "tileset YAML or collision sheet image (png, gif, bmp)")
	out := flag.String("out", "", "TIL file to write")
	plane := flag.String("plane", "both", "planes a collision sheet fills: a, b or both")
	dump := flag.String("dump", "", "print a TIL file as a tileset YAML")
	flag.Parse()

	logger.Init()
	log := logger.Log

	if *dump != "" {
		if err := dumpConfig(*dump); err != nil {
			log.Fatal(err)
		}
		return
	}
	if *in == "" || *out == "" {
		flag.Usage()
		os.Exit(2)
	}

	spec, err := readInput(*in, *plane)
	if err != nil {
		log.Fatal(err)
	}
	cfg, err := spec.ToConfig()
	if err != nil {
		log.Fatal(err)
	}
	if err := writeConfig(*out, cfg); err != nil {
		log.Fatal(err)
	}
	log.WithField("tiles", len(spec.Tiles)).Infof("tilconf: wrote %s", *out)
}

func readInput(path, plane string) (*prefabs.TilesetSpec, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var spec prefabs.TilesetSpec
		if err := yaml.Unmarshal(data, &spec); err != nil {
			return nil, fmt.Errorf("tilconf: %s: %w", path, err)
		}
		return &spec, nil
	}

	planes, err := parsePlanes(plane)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("tilconf: decode %s: %w", path, err)
	}
	return sheetTiles(img, planes)
}

func parsePlanes(s string) ([]int, error) {
	switch strings.ToLower(s) {
	case "", "both":
		return nil, nil
	case "a", "0":
		return []int{0}, nil
	case "b", "1":
		return []int{1}, nil
	}
	return nil, fmt.Errorf("tilconf: unknown plane %q", s)
}

func writeConfig(path string, cfg *tile.Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := tile.EncodeConfig(w, cfg); err != nil {
		_ = f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func dumpConfig(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	cfg, err := tile.DecodeConfig(bufio.NewReader(f))
	if err != nil {
		return err
	}
	spec, err := configSpec(cfg)
	if err != nil {
		return fmt.Errorf("dump %s: %w", path, err)
	}
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(spec); err != nil {
		return err
	}
	return enc.Close()
}
