package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
)

//go:embed *.json
var LevelsFS embed.FS

// Level is a JSON stage description: collision layers plus spawn points.
type Level struct {
	Name   string  `json:"name"`
	Layers []Layer `json:"layers"`
	Spawns []Spawn `json:"spawns,omitempty"`
}

// Layer tiles are row-major tile ids; -1 is an empty cell. Solidity applies
// to every non-empty cell: "all", "top", "none", or "raw" when the ids
// already carry their solidity bits.
type Layer struct {
	Name     string `json:"name"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	X        int    `json:"x,omitempty"`
	Y        int    `json:"y,omitempty"`
	Solidity string `json:"solidity,omitempty"`
	Tiles    []int  `json:"tiles"`
}

// Spawn places an actor prefab at a pixel position.
type Spawn struct {
	Prefab string         `json:"prefab"`
	X      int            `json:"x"`
	Y      int            `json:"y"`
	Props  map[string]any `json:"props,omitempty"`
}

func LoadLevelFromFS(name string) (*Level, error) {
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return parseLevel(data)
}

// LoadLevel reads name from disk when it exists and from the embedded
// levels otherwise.
func LoadLevel(name string) (*Level, error) {
	if data, err := os.ReadFile(name); err == nil {
		return parseLevel(data)
	}
	return LoadLevelFromFS(name)
}

func parseLevel(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	return &lvl, nil
}
