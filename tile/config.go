package tile

import (
	"bufio"
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// Signature opens every TIL tile configuration file.
const Signature uint32 = 0x4C4954

// tileRecordSize is 16 heights, 16 active flags, yflip, 4 angles and a flag.
const tileRecordSize = MaskSize*2 + 1 + 5

const configPayloadSize = PlaneCount * BaseCount * tileRecordSize

const maxBlockSize = 1 << 26

var (
	ErrBadSignature = errors.New("tile: bad TIL signature")
	ErrTruncated    = errors.New("tile: truncated tile config")
)

// BaseTile is one authored tile as stored in a tile configuration.
type BaseTile struct {
	Heights [MaskSize]uint8
	Active  [MaskSize]bool
	// FlipY marks tiles whose heights describe a surface hanging from the
	// top of the tile rather than rising from the bottom.
	FlipY bool

	FloorAngle     uint8
	LeftWallAngle  uint8
	RightWallAngle uint8
	RoofAngle      uint8
	Flag           uint8
}

// Config holds the base tiles of both collision planes.
type Config struct {
	Planes [PlaneCount][BaseCount]BaseTile
}

// Build derives the full lookup table, including the flipped variants, from
// the base tiles.
func (c *Config) Build() *Table {
	t := NewTable()
	if c == nil {
		return t
	}

	for p := 0; p < PlaneCount; p++ {
		for i := 0; i < BaseCount; i++ {
			m, info := deriveBase(&c.Planes[p][i])
			t.masks[p][i] = m
			t.info[p][i] = info

			fx, fxi := mirrorX(&m, info)
			t.masks[p][i|int(FlipX)] = fx
			t.info[p][i|int(FlipX)] = fxi

			fy, fyi := mirrorY(&m, info)
			t.masks[p][i|int(FlipY)] = fy
			t.info[p][i|int(FlipY)] = fyi

			fxy, fxyi := mirrorX(&fy, fyi)
			t.masks[p][i|int(FlipX|FlipY)] = fxy
			t.info[p][i|int(FlipX|FlipY)] = fxyi
		}
	}
	return t
}

func deriveBase(b *BaseTile) (Mask, Info) {
	var m Mask
	info := Info{
		FloorAngle:     b.FloorAngle,
		LeftWallAngle:  b.LeftWallAngle,
		RightWallAngle: b.RightWallAngle,
		RoofAngle:      b.RoofAngle,
		Flag:           b.Flag,
	}

	for c := 0; c < MaskSize; c++ {
		switch {
		case !b.Active[c]:
			m.Floor[c] = NoSurface
			m.Roof[c] = NoSurface
		case b.FlipY:
			m.Floor[c] = 0x00
			m.Roof[c] = b.Heights[c]
		default:
			m.Floor[c] = b.Heights[c]
			m.Roof[c] = 0x0F
		}
	}

	// Row r of a wall mask is the x of the first (left) or last (right)
	// column whose solid span covers row r.
	covers := func(col, row int) bool {
		if b.FlipY {
			h := m.Roof[col]
			return h != NoSurface && row <= int(h)
		}
		h := m.Floor[col]
		return h != NoSurface && row >= int(h)
	}
	for r := 0; r < MaskSize; r++ {
		m.LeftWall[r] = NoSurface
		for col := 0; col < MaskSize; col++ {
			if covers(col, r) {
				m.LeftWall[r] = uint8(col)
				break
			}
		}
		m.RightWall[r] = NoSurface
		for col := MaskSize - 1; col >= 0; col-- {
			if covers(col, r) {
				m.RightWall[r] = uint8(col)
				break
			}
		}
	}
	return m, info
}

// LoadTable reads a TIL file and builds its table. On failure the returned
// table has no surfaces at all, so callers can log the error and carry on.
func LoadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return NewTable(), fmt.Errorf("tile: open %s: %w", path, err)
	}
	defer f.Close()

	cfg, err := DecodeConfig(bufio.NewReader(f))
	if err != nil {
		return NewTable(), fmt.Errorf("tile: load %s: %w", path, err)
	}
	return cfg.Build(), nil
}

// DecodeConfig parses a TIL stream.
func DecodeConfig(r io.Reader) (*Config, error) {
	var sig uint32
	if err := binary.Read(r, binary.LittleEndian, &sig); err != nil {
		return nil, truncated(err)
	}
	if sig != Signature {
		return nil, fmt.Errorf("%w: %#x", ErrBadSignature, sig)
	}

	data, err := ReadCompressed(r)
	if err != nil {
		return nil, err
	}
	if len(data) < configPayloadSize {
		return nil, fmt.Errorf("%w: payload %d bytes, need %d", ErrTruncated, len(data), configPayloadSize)
	}

	cfg := &Config{}
	pos := 0
	for p := 0; p < PlaneCount; p++ {
		for i := 0; i < BaseCount; i++ {
			b := &cfg.Planes[p][i]
			copy(b.Heights[:], data[pos:pos+MaskSize])
			pos += MaskSize
			for c := 0; c < MaskSize; c++ {
				b.Active[c] = data[pos+c] != 0
			}
			pos += MaskSize
			b.FlipY = data[pos] != 0
			b.FloorAngle = data[pos+1]
			b.LeftWallAngle = data[pos+2]
			b.RightWallAngle = data[pos+3]
			b.RoofAngle = data[pos+4]
			b.Flag = data[pos+5]
			pos += 6
		}
	}
	return cfg, nil
}

// EncodeConfig writes cfg as a TIL stream.
func EncodeConfig(w io.Writer, cfg *Config) error {
	if cfg == nil {
		cfg = &Config{}
	}

	data := make([]byte, 0, configPayloadSize)
	for p := 0; p < PlaneCount; p++ {
		for i := 0; i < BaseCount; i++ {
			b := &cfg.Planes[p][i]
			data = append(data, b.Heights[:]...)
			for c := 0; c < MaskSize; c++ {
				data = append(data, boolByte(b.Active[c]))
			}
			data = append(data,
				boolByte(b.FlipY),
				b.FloorAngle,
				b.LeftWallAngle,
				b.RightWallAngle,
				b.RoofAngle,
				b.Flag,
			)
		}
	}

	if err := binary.Write(w, binary.LittleEndian, Signature); err != nil {
		return fmt.Errorf("tile: write signature: %w", err)
	}
	return WriteCompressed(w, data)
}

// ReadCompressed reads a size-prefixed zlib block: u32 LE compressed size
// (counting the raw size field), u32 BE raw size, then the zlib stream.
func ReadCompressed(r io.Reader) ([]byte, error) {
	var size uint32
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return nil, truncated(err)
	}
	if size < 4 {
		return nil, fmt.Errorf("%w: compressed size %d", ErrTruncated, size)
	}
	var rawSize uint32
	if err := binary.Read(r, binary.BigEndian, &rawSize); err != nil {
		return nil, truncated(err)
	}
	if size > maxBlockSize || rawSize > maxBlockSize {
		return nil, fmt.Errorf("tile: block too large (%d packed, %d raw)", size, rawSize)
	}

	packed := make([]byte, size-4)
	if _, err := io.ReadFull(r, packed); err != nil {
		return nil, truncated(err)
	}

	zr, err := zlib.NewReader(bytes.NewReader(packed))
	if err != nil {
		return nil, truncated(err)
	}
	defer zr.Close()

	raw := make([]byte, rawSize)
	if _, err := io.ReadFull(zr, raw); err != nil {
		return nil, truncated(err)
	}
	return raw, nil
}

// WriteCompressed writes data in the block format ReadCompressed expects.
func WriteCompressed(w io.Writer, data []byte) error {
	var packed bytes.Buffer
	zw := zlib.NewWriter(&packed)
	if _, err := zw.Write(data); err != nil {
		return fmt.Errorf("tile: zlib: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("tile: zlib: %w", err)
	}

	if err := binary.Write(w, binary.LittleEndian, uint32(packed.Len()+4)); err != nil {
		return fmt.Errorf("tile: write block: %w", err)
	}
	if err := binary.Write(w, binary.BigEndian, uint32(len(data))); err != nil {
		return fmt.Errorf("tile: write block: %w", err)
	}
	if _, err := w.Write(packed.Bytes()); err != nil {
		return fmt.Errorf("tile: write block: %w", err)
	}
	return nil
}

func truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	return fmt.Errorf("tile: read: %w", err)
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
