package collision

import (
	"github.com/milk9111/pathgrip/common"
	"github.com/milk9111/pathgrip/tile"
)

// gripAxes orients the grip loop for one mode. The normal points from the
// actor center toward the surface it stands on; the tangent is the
// direction a positive GroundVel travels.
type gripAxes struct {
	surface  tile.Side
	normalY  bool
	nsign    int32
	tsign    int32
	forward  tile.Side // wall met when GroundVel > 0
	backward tile.Side // wall met when GroundVel < 0
}

var gripModes = [...]gripAxes{
	ModeFloor:     {surface: tile.Floor, normalY: true, nsign: 1, tsign: 1, forward: tile.LeftWall, backward: tile.RightWall},
	ModeLeftWall:  {surface: tile.LeftWall, normalY: false, nsign: 1, tsign: -1, forward: tile.Roof, backward: tile.Floor},
	ModeRoof:      {surface: tile.Roof, normalY: true, nsign: -1, tsign: -1, forward: tile.RightWall, backward: tile.LeftWall},
	ModeRightWall: {surface: tile.RightWall, normalY: false, nsign: -1, tsign: 1, forward: tile.Floor, backward: tile.Roof},
}

func gripFor(m Mode) gripAxes {
	if int(m) >= len(gripModes) {
		return gripModes[ModeFloor]
	}
	return gripModes[m]
}

// offset places a pixel extent k on the side given by sign. Mirrored
// extents land one pixel further out so that a box covering rows
// [top, bottom] stays the same size when flipped.
func offset(k, sign int32) int32 {
	if sign > 0 {
		return common.ToFixed(k)
	}
	return -common.ToFixed(k + 1)
}

func (g gripAxes) normal(v common.Vector2) int32 {
	if g.normalY {
		return v.Y
	}
	return v.X
}

func (g gripAxes) tangent(v common.Vector2) int32 {
	if g.normalY {
		return v.X
	}
	return v.Y
}

func (g gripAxes) point(n, t int32) common.Vector2 {
	if g.normalY {
		return common.Vector2{X: t, Y: n}
	}
	return common.Vector2{X: n, Y: t}
}

func (g gripAxes) setTangent(v *common.Vector2, t int32) {
	if g.normalY {
		v.X = t
	} else {
		v.Y = t
	}
}

func (g gripAxes) wall(groundVel int32) tile.Side {
	if groundVel < 0 {
		return g.backward
	}
	return g.forward
}

// reach is the extent of the outer box on the travel side.
func (c *Context) reach(groundVel int32) int32 {
	if groundVel < 0 {
		return int32(c.outer.Left) - 1
	}
	return int32(c.outer.Right)
}

// placeSensors lays out the three tracking sensors and the forward sensor
// around center for mode g.
func (c *Context) placeSensors(g gripAxes, center common.Vector2, angle int32) {
	cn, ct := g.normal(center), g.tangent(center)
	feet := cn + offset(int32(c.outer.Bottom), g.nsign)

	c.sensors[0].Position = g.point(feet, ct+offset(int32(c.inner.Left)-1, g.tsign))
	c.sensors[1].Position = g.point(feet, ct)
	c.sensors[2].Position = g.point(feet, ct+offset(int32(c.inner.Right), g.tsign))
	c.sensors[3].Position = g.point(cn+g.nsign*c.offset, ct+offset(c.reach(c.actor.GroundVel), g.tsign))
	for i := range c.sensors[:4] {
		c.sensors[i].Collided = false
		c.sensors[i].Angle = angle
	}
}

// pickTracking returns the index of the tracking sensor nearest the actor
// along the normal, or -1 when none collided.
func (c *Context) pickTracking(g gripAxes, mode Mode) int {
	win := -1
	var best int32
	for i := 0; i < 3; i++ {
		s := &c.sensors[i]
		if !s.Collided {
			continue
		}
		d := g.nsign * g.normal(s.Position)
		switch {
		case win < 0 || d < best:
			win, best = i, d
		case d == best && mode == c.direction.RestMode() && nearRest(s.Angle, c.direction):
			win = i
		}
	}
	return win
}

func nearRest(angle int32, dir Direction) bool {
	rel := (angle - dir.RestAngle()) & 0xFF
	return rel < 0x08 || rel > 0xF8
}

// enterMode switches the actor to m mid-move. The forward sensor lift only
// holds for the flat rest-mode start it was computed for, so it is dropped.
func (c *Context) enterMode(m Mode) gripAxes {
	c.actor.Mode = m
	c.offset = 0
	return gripFor(m)
}

// processGrip moves a grounded actor along its surface.
func (c *Context) processGrip() {
	a := c.actor
	g := gripFor(a.Mode)

	center := a.Position
	c.placeSensors(g, center, a.Angle)

	speed := common.Abs(a.GroundVel)
	steps := speed >> 18
	remainder := speed & 0x3FFFF

	wallHit := false
	wallAxes := g
	contact := true
	for n := steps; n >= 0; n-- {
		var vel common.Vector2
		if n > 0 {
			vel = common.Vector2{X: common.Cos256(a.Angle) << 10, Y: common.Sin256(a.Angle) << 10}
		} else {
			vel = common.Vector2{X: scale256(common.Cos256(a.Angle), remainder), Y: scale256(common.Sin256(a.Angle), remainder)}
		}
		if a.GroundVel < 0 {
			vel.X, vel.Y = -vel.X, -vel.Y
		}

		fwd := &c.sensors[3]
		if a.GroundVel != 0 {
			fwd.Position.X += vel.X
			fwd.Position.Y += vel.Y
			fwd.Collided = false
			c.cast(g.wall(a.GroundVel), fwd, castProbe)
			if fwd.Collided {
				g.setTangent(&vel, 0)
				wallHit = true
				wallAxes = g
			}
		}

		center.X += vel.X
		center.Y += vel.Y
		for i := 0; i < 3; i++ {
			s := &c.sensors[i]
			s.Position.X += vel.X
			s.Position.Y += vel.Y
			s.Collided = false
			c.cast(g.surface, s, castGrip)
		}

		win := c.pickTracking(g, a.Mode)
		if win < 0 {
			contact = false
			break
		}

		w := c.sensors[win]
		for i := 0; i < 3; i++ {
			c.sensors[i].Position = g.point(g.normal(w.Position), g.tangent(c.sensors[i].Position))
			c.sensors[i].Angle = w.Angle
		}
		center = g.point(g.normal(w.Position)-offset(int32(c.outer.Bottom), g.nsign), g.tangent(c.sensors[1].Position))
		a.Angle = w.Angle

		if next := NextMode(a.Mode, a.Angle, c.direction); next != a.Mode {
			g = c.enterMode(next)
		}
		if wallHit {
			break
		}
		c.placeSensors(g, center, a.Angle)
	}

	if !contact {
		c.releaseGrip(wallAxes, wallHit)
		return
	}

	if wallHit {
		wallAxes.setTangent(&center, wallAxes.tangent(c.sensors[3].Position)-offset(c.reach(a.GroundVel), wallAxes.tsign))
		a.GroundVel = 0
		wallAxes.setTangent(&a.Velocity, 0)
	}
	a.Position = center
}

// releaseGrip detaches the actor after the tracking sensors lost the
// surface and moves it ballistically for the rest of the tick.
func (c *Context) releaseGrip(g gripAxes, wallHit bool) {
	a := c.actor
	reach := c.reach(a.GroundVel)
	loseContact(a, c.direction)

	a.Position.X += a.Velocity.X
	a.Position.Y += a.Velocity.Y
	if wallHit {
		g.setTangent(&a.Position, g.tangent(c.sensors[3].Position)-offset(reach, g.tsign))
		g.setTangent(&a.Velocity, 0)
		a.GroundVel = a.Velocity.X
	}
}
