package collision

import (
	"github.com/milk9111/pathgrip/common"
	"github.com/milk9111/pathgrip/tile"
)

const (
	// MaxLayers is the number of layers addressable by Actor.Layers.
	MaxLayers = 16

	lowTolerance = 8
	// probeDistance is the deepest penetration a probe cast accepts.
	probeDistance = 14
	// gripAngleTolerance bounds how far a gripped surface may turn in one cast.
	gripAngleTolerance = 0x20

	collisionOffset = 4
)

// Stage is the immutable collision data of a loaded stage. It is safe to
// share between goroutines.
type Stage struct {
	Table    *tile.Table
	Layers   []*tile.Layer
	Revision Revision
}

// NewStage returns a stage over table and layers. A nil table has no
// surfaces. Layers past MaxLayers can never be selected by an actor.
func NewStage(table *tile.Table, rev Revision, layers ...*tile.Layer) *Stage {
	if table == nil {
		table = tile.NewTable()
	}
	return &Stage{Table: table, Layers: layers, Revision: rev}
}

// LayerMask returns the Actor.Layers bits selecting the named layers.
func (s *Stage) LayerMask(names ...string) uint16 {
	var mask uint16
	for i, l := range s.Layers {
		if i >= MaxLayers || l == nil {
			continue
		}
		for _, n := range names {
			if l.Name == n {
				mask |= 1 << i
			}
		}
	}
	return mask
}

// Orientation returns the direction the stage collides an actor with; Up
// falls back to Down when the revision has no Up support.
func (s *Stage) Orientation(d Direction) Direction {
	if d == DirectionUp && (s == nil || !s.Revision.Capabilities().SupportsUp()) {
		return DirectionDown
	}
	return d
}

// Context is the scratch state of a single Process call.
type Context struct {
	stage *Stage
	caps  Capabilities
	actor *Actor

	outer Hitbox
	inner Hitbox

	direction Direction
	tolerance int32
	offset    int32
	airShift  uint

	sensors [6]Sensor
}

func newContext(stage *Stage, a *Actor, outer, inner Hitbox) *Context {
	caps := stage.Revision.Capabilities()
	dir := stage.Orientation(a.Direction)

	c := &Context{
		stage:     stage,
		caps:      caps,
		actor:     a,
		outer:     outer,
		inner:     inner,
		direction: dir,
		tolerance: SelectTolerance(stage.Revision, a.GroundVel, a.Angle),
		airShift:  17,
	}
	if outer.Bottom >= 14 {
		c.airShift = 19
		if a.OnGround && a.Angle == dir.RestAngle() {
			c.offset = common.ToFixed(collisionOffset)
		}
	}
	return c
}

// SelectTolerance returns the grip tolerance for a ground speed and angle.
func SelectTolerance(rev Revision, groundVel, angle int32) int32 {
	if common.Abs(groundVel) < common.ToFixed(6) && angle&0xFF == 0 {
		return lowTolerance
	}
	return rev.Capabilities().HighTolerance()
}
