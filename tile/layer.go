package tile

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/milk9111/pathgrip/common"
)

// Layer is a grid of tile ids. Position is the Q16.16 pixel origin of the
// grid in world space.
type Layer struct {
	Name     string
	Width    int
	Height   int
	Position common.Vector2
	Tiles    []uint16
}

// NewLayer returns an empty width x height layer.
func NewLayer(name string, width, height int) *Layer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	l := &Layer{Name: name, Width: width, Height: height, Tiles: make([]uint16, width*height)}
	for i := range l.Tiles {
		l.Tiles[i] = Empty
	}
	return l
}

// Get returns the tile id at tile coordinates (x, y). Out of range cells
// and empty cells report ok == false.
func (l *Layer) Get(x, y int) (uint16, bool) {
	if l == nil || x < 0 || y < 0 || x >= l.Width || y >= l.Height {
		return Empty, false
	}
	id := l.Tiles[y*l.Width+x]
	return id, id != Empty
}

// Set stores id at (x, y); out of range writes are ignored.
func (l *Layer) Set(x, y int, id uint16) {
	if l == nil || x < 0 || y < 0 || x >= l.Width || y >= l.Height {
		return
	}
	l.Tiles[y*l.Width+x] = id
}

// Origin returns the layer origin in whole pixels.
func (l *Layer) Origin() (int32, int32) {
	return common.FromFixed(l.Position.X), common.FromFixed(l.Position.Y)
}

// ReadLayout fills the layer from a compressed little-endian u16 layout.
func ReadLayout(r io.Reader, l *Layer) error {
	data, err := ReadCompressed(r)
	if err != nil {
		return fmt.Errorf("tile: layout %s: %w", l.Name, err)
	}
	want := l.Width * l.Height * 2
	if len(data) < want {
		return fmt.Errorf("tile: layout %s: %w: %d bytes, need %d", l.Name, ErrTruncated, len(data), want)
	}
	if len(l.Tiles) != l.Width*l.Height {
		l.Tiles = make([]uint16, l.Width*l.Height)
	}
	for i := range l.Tiles {
		l.Tiles[i] = binary.LittleEndian.Uint16(data[i*2:])
	}
	return nil
}

// WriteLayout writes the layer tiles in the format ReadLayout expects.
func WriteLayout(w io.Writer, l *Layer) error {
	data := make([]byte, len(l.Tiles)*2)
	for i, id := range l.Tiles {
		binary.LittleEndian.PutUint16(data[i*2:], id)
	}
	return WriteCompressed(w, data)
}
