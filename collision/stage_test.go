package collision

import (
	"github.com/milk9111/pathgrip/common"
	"github.com/milk9111/pathgrip/tile"
)

const (
	blockTile uint16 = 1
	slopeTile uint16 = 2
	steepTile uint16 = 3
	gapTile   uint16 = 4
	ledgeTile uint16 = 5
)

var (
	testOuter = Hitbox{Left: -8, Top: -16, Right: 8, Bottom: 16}
	testInner = Hitbox{Left: -4, Top: -12, Right: 4, Bottom: 16}
)

func solidBlock(floorAngle uint8) tile.BaseTile {
	var b tile.BaseTile
	for c := 0; c < tile.MaskSize; c++ {
		b.Active[c] = true
	}
	b.FloorAngle = floorAngle
	b.LeftWallAngle = 0xC0
	b.RightWallAngle = 0x40
	b.RoofAngle = 0x80
	return b
}

func testTable() *tile.Table {
	var cfg tile.Config
	for p := 0; p < tile.PlaneCount; p++ {
		cfg.Planes[p][blockTile] = solidBlock(0x00)

		slope := solidBlock(0xE0)
		for c := 0; c < tile.MaskSize; c++ {
			slope.Heights[c] = uint8(0xF - c)
		}
		cfg.Planes[p][slopeTile] = slope

		cfg.Planes[p][steepTile] = solidBlock(0xB0)

		gap := solidBlock(0x00)
		gap.Active[5] = false
		cfg.Planes[p][gapTile] = gap

		ledge := solidBlock(0x00)
		for c := 0; c < tile.MaskSize; c++ {
			ledge.Heights[c] = 10
		}
		cfg.Planes[p][ledgeTile] = ledge
	}
	return cfg.Build()
}

// fill sets the inclusive tile rectangle to a fully solid id.
func fill(l *tile.Layer, x0, y0, x1, y1 int, id uint16) {
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			l.Set(x, y, id|tile.SolidAll)
		}
	}
}

// groundStage has a solid floor whose top is y = 128.
func groundStage(rev Revision) (*Stage, *tile.Layer) {
	l := tile.NewLayer("fg", 32, 16)
	fill(l, 0, 8, 31, 9, blockTile)
	return NewStage(testTable(), rev, l), l
}

func px(v int32) int32 { return common.ToFixed(v) }

func groundedActor(x, y int32) *Actor {
	return &Actor{
		Position:  common.Vector2{X: px(x), Y: px(y)},
		OnGround:  true,
		Layers:    1,
		Direction: DirectionDown,
	}
}

func airborneActor(x, y, vx, vy int32) *Actor {
	return &Actor{
		Position:  common.Vector2{X: px(x), Y: px(y)},
		Velocity:  common.Vector2{X: vx, Y: vy},
		GroundVel: vx,
		Layers:    1,
		Direction: DirectionDown,
	}
}
