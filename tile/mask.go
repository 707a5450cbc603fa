package tile

const (
	// MaskSize is the number of columns (or rows) described by one mask.
	MaskSize = 16
	// BaseCount is the number of tiles stored in a tile configuration.
	BaseCount = 0x400
	// TableSize covers the base tiles plus their FlipX, FlipY and FlipXY
	// variants, addressable with id & IndexMask.
	TableSize = BaseCount * 4
	// PlaneCount is the number of alternate collision planes.
	PlaneCount = 2

	// NoSurface marks a column with no surface in it.
	NoSurface uint8 = 0xFF
)

// Tile ID bits as stored in layer layouts.
const (
	FlipX     uint16 = 0x0400
	FlipY     uint16 = 0x0800
	SolidTopA uint16 = 0x1000
	SolidAllA uint16 = 0x2000
	SolidTopB uint16 = 0x4000
	SolidAllB uint16 = 0x8000

	IndexMask uint16 = 0x0FFF
	BaseMask  uint16 = 0x03FF
	Empty     uint16 = 0xFFFF

	SolidAll = SolidTopA | SolidAllA | SolidTopB | SolidAllB
	SolidTop = SolidTopA | SolidTopB
)

// Side names the surface a probe looks for.
type Side uint8

const (
	Floor Side = iota
	LeftWall
	RightWall
	Roof
)

func (s Side) String() string {
	switch s {
	case Floor:
		return "floor"
	case LeftWall:
		return "left_wall"
	case RightWall:
		return "right_wall"
	case Roof:
		return "roof"
	}
	return "unknown"
}

// SolidBit returns the layout bit that makes a tile solid for the given side
// on the given collision plane. Floors only need the top-solid bit.
func SolidBit(s Side, plane uint8) uint16 {
	if s == Floor {
		if plane&1 != 0 {
			return SolidTopB
		}
		return SolidTopA
	}
	if plane&1 != 0 {
		return SolidAllB
	}
	return SolidAllA
}

// Mask holds the per-column intrusion depth of a tile's surfaces.
type Mask struct {
	Floor     [MaskSize]uint8
	LeftWall  [MaskSize]uint8
	RightWall [MaskSize]uint8
	Roof      [MaskSize]uint8
}

// Side returns the mask array probed for s.
func (m *Mask) Side(s Side) *[MaskSize]uint8 {
	switch s {
	case LeftWall:
		return &m.LeftWall
	case RightWall:
		return &m.RightWall
	case Roof:
		return &m.Roof
	}
	return &m.Floor
}

// Info holds per-tile surface angles and the behaviour flag.
type Info struct {
	FloorAngle     uint8
	LeftWallAngle  uint8
	RightWallAngle uint8
	RoofAngle      uint8
	Flag           uint8
}

// Angle returns the surface angle for s.
func (i Info) Angle(s Side) uint8 {
	switch s {
	case LeftWall:
		return i.LeftWallAngle
	case RightWall:
		return i.RightWallAngle
	case Roof:
		return i.RoofAngle
	}
	return i.FloorAngle
}

// Table is the read-only collision lookup for a loaded stage.
type Table struct {
	masks [PlaneCount][TableSize]Mask
	info  [PlaneCount][TableSize]Info
}

// NewTable returns a table where no tile has a surface.
func NewTable() *Table {
	t := &Table{}
	for p := range t.masks {
		for i := range t.masks[p] {
			fillMask(&t.masks[p][i], NoSurface)
		}
	}
	return t
}

// Mask returns the collision mask for a layout tile id on a plane.
func (t *Table) Mask(plane uint8, id uint16) *Mask {
	return &t.masks[plane&1][id&IndexMask]
}

// Info returns the angles and flag for a layout tile id on a plane.
func (t *Table) Info(plane uint8, id uint16) Info {
	return t.info[plane&1][id&IndexMask]
}

func fillMask(m *Mask, v uint8) {
	for c := 0; c < MaskSize; c++ {
		m.Floor[c] = v
		m.LeftWall[c] = v
		m.RightWall[c] = v
		m.Roof[c] = v
	}
}

func reflect(h uint8) uint8 {
	if h == NoSurface {
		return NoSurface
	}
	return 0xF - h
}

func negate(a uint8) uint8 {
	return uint8(-int8(a))
}

// mirrorX reflects a tile horizontally: floor and roof columns reverse,
// left and right faces trade places.
func mirrorX(m *Mask, i Info) (Mask, Info) {
	var out Mask
	for c := 0; c < MaskSize; c++ {
		out.RightWall[c] = reflect(m.LeftWall[c])
		out.LeftWall[c] = reflect(m.RightWall[c])
		out.Floor[c] = m.Floor[0xF-c]
		out.Roof[c] = m.Roof[0xF-c]
	}
	return out, Info{
		FloorAngle:     negate(i.FloorAngle),
		LeftWallAngle:  negate(i.RightWallAngle),
		RightWallAngle: negate(i.LeftWallAngle),
		RoofAngle:      negate(i.RoofAngle),
		Flag:           i.Flag,
	}
}

// mirrorY reflects a tile vertically: wall rows reverse, floor and roof
// trade places.
func mirrorY(m *Mask, i Info) (Mask, Info) {
	var out Mask
	for c := 0; c < MaskSize; c++ {
		out.Floor[c] = reflect(m.Roof[c])
		out.Roof[c] = reflect(m.Floor[c])
		out.LeftWall[c] = m.LeftWall[0xF-c]
		out.RightWall[c] = m.RightWall[0xF-c]
	}
	return out, Info{
		FloorAngle:     0x80 - i.RoofAngle,
		LeftWallAngle:  0x80 - i.LeftWallAngle,
		RightWallAngle: 0x80 - i.RightWallAngle,
		RoofAngle:      0x80 - i.FloorAngle,
		Flag:           i.Flag,
	}
}
