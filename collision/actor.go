package collision

import (
	"fmt"
	"strings"

	"github.com/milk9111/pathgrip/common"
	"github.com/milk9111/pathgrip/tile"
)

// Mode is the surface an actor is currently attached to.
type Mode uint8

const (
	ModeFloor Mode = iota
	ModeLeftWall
	ModeRoof
	ModeRightWall
)

func (m Mode) String() string {
	switch m {
	case ModeFloor:
		return "floor"
	case ModeLeftWall:
		return "left_wall"
	case ModeRoof:
		return "roof"
	case ModeRightWall:
		return "right_wall"
	}
	return fmt.Sprintf("mode(%d)", uint8(m))
}

// Side returns the tile surface an actor in mode m stands on.
func (m Mode) Side() tile.Side {
	switch m {
	case ModeLeftWall:
		return tile.LeftWall
	case ModeRoof:
		return tile.Roof
	case ModeRightWall:
		return tile.RightWall
	}
	return tile.Floor
}

// Direction is the side of the actor that faces "down".
type Direction uint8

const (
	// DirectionNone disables tile collision; velocity is integrated as is.
	DirectionNone Direction = iota
	DirectionDown
	DirectionUp
)

func (d Direction) String() string {
	switch d {
	case DirectionNone:
		return "none"
	case DirectionDown:
		return "down"
	case DirectionUp:
		return "up"
	}
	return fmt.Sprintf("direction(%d)", uint8(d))
}

// ParseDirection maps a config name onto a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "down":
		return DirectionDown, nil
	case "up":
		return DirectionUp, nil
	case "none":
		return DirectionNone, nil
	}
	return DirectionNone, fmt.Errorf("collision: unknown direction %q", s)
}

// RestMode is the mode an airborne actor falls back to.
func (d Direction) RestMode() Mode {
	if d == DirectionUp {
		return ModeRoof
	}
	return ModeFloor
}

// RestAngle is the angle of an upright actor.
func (d Direction) RestAngle() int32 {
	if d == DirectionUp {
		return 0x80
	}
	return 0x00
}

// Hitbox is a box in pixels relative to the actor center.
type Hitbox struct {
	Left   int16 `yaml:"left" json:"left" msgpack:"l"`
	Top    int16 `yaml:"top" json:"top" msgpack:"t"`
	Right  int16 `yaml:"right" json:"right" msgpack:"r"`
	Bottom int16 `yaml:"bottom" json:"bottom" msgpack:"b"`
}

// Actor holds the fields the engine reads and writes each tick.
type Actor struct {
	Position  common.Vector2
	Velocity  common.Vector2
	GroundVel int32
	Angle     int32
	Mode      Mode
	Plane     uint8
	OnGround  bool
	Layers    uint16
	Direction Direction
}

// Sensor is a single probe point.
type Sensor struct {
	Position common.Vector2
	Collided bool
	Angle    int32
}

// RecomposeVelocity sets Velocity from Angle and GroundVel.
func (a *Actor) RecomposeVelocity() {
	a.Velocity.X = scale256(common.Cos256(a.Angle), a.GroundVel)
	a.Velocity.Y = scale256(common.Sin256(a.Angle), a.GroundVel)
}

func scale256(t, v int32) int32 {
	return int32((int64(t) * int64(v)) >> 8)
}
