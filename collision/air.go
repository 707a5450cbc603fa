package collision

import (
	"github.com/milk9111/pathgrip/common"
	"github.com/milk9111/pathgrip/tile"
)

// airFrame maps the Down-oriented air rules onto the actor's direction.
// For Up actors every vertical quantity is mirrored.
type airFrame struct {
	up bool
}

// y offsets a world y by a local pixel extent k.
func (f airFrame) y(y, k int32) int32 {
	if f.up {
		return y + offset(k, -1)
	}
	return y + offset(k, 1)
}

func (f airFrame) ground() tile.Side {
	if f.up {
		return tile.Roof
	}
	return tile.Floor
}

func (f airFrame) ceiling() tile.Side {
	if f.up {
		return tile.Floor
	}
	return tile.Roof
}

func (f airFrame) flip(v int32) int32 {
	if f.up {
		return -v
	}
	return v
}

func (f airFrame) angle(a int32) int32 {
	if f.up {
		return (0x80 - a) & 0xFF
	}
	return a & 0xFF
}

func (f airFrame) mode(m Mode) Mode {
	if f.up {
		return mirrorMode(m)
	}
	return m
}

const (
	airRight = iota
	airLeft
	airGroundL
	airGroundR
	airCeilL
	airCeilR
)

// Progress of one sensor pair through the sub-steps.
const (
	airIdle = iota
	airActive
	airHit
	airDone
)

// processAir sweeps an airborne actor through its velocity in sub-steps.
func (c *Context) processAir() {
	a := c.actor
	f := airFrame{up: c.direction == DirectionUp}

	vx := a.Velocity.X
	vy := f.flip(a.Velocity.Y)

	right, left, down, up := airIdle, airIdle, airIdle, airIdle
	s := &c.sensors
	for i := range s {
		s[i] = Sensor{}
	}

	if vx >= 0 {
		right = airActive
		s[airRight].Position = common.Vector2{X: a.Position.X + common.ToFixed(int32(c.outer.Right)), Y: f.y(a.Position.Y, common.FromFixed(c.offset))}
	}
	if vx <= 0 {
		left = airActive
		s[airLeft].Position = common.Vector2{X: a.Position.X + common.ToFixed(int32(c.outer.Left)-1), Y: f.y(a.Position.Y, common.FromFixed(c.offset))}
	}

	footY := f.y(a.Position.Y, int32(c.outer.Bottom))
	headY := f.y(a.Position.Y, int32(c.outer.Top)-1)
	s[airGroundL].Position = common.Vector2{X: a.Position.X + common.ToFixed(int32(c.inner.Left)), Y: footY}
	s[airGroundR].Position = common.Vector2{X: a.Position.X + common.ToFixed(int32(c.inner.Right)), Y: footY}
	s[airCeilL].Position = common.Vector2{X: s[airGroundL].Position.X, Y: headY}
	s[airCeilR].Position = common.Vector2{X: s[airGroundR].Position.X, Y: headY}

	if vy >= 0 {
		down = airActive
	}
	if common.Abs(vx) > common.ToFixed(1) || vy < 0 {
		up = airActive
	}

	cnt := airSteps(vx, vy, c.airShift)

	stepX, stepY := a.Velocity.X/cnt, a.Velocity.Y/cnt
	lastX := a.Velocity.X - stepX*(cnt-1)
	lastY := a.Velocity.Y - stepY*(cnt-1)

	for cnt > 0 {
		if cnt < 2 {
			stepX, stepY = lastX, lastY
		}
		cnt--

		if right == airActive {
			advance(&s[airRight], stepX, stepY)
			c.cast(tile.LeftWall, &s[airRight], castProbe)
			if s[airRight].Collided {
				right = airHit
			}
		}
		if left == airActive {
			advance(&s[airLeft], stepX, stepY)
			c.cast(tile.RightWall, &s[airLeft], castProbe)
			if s[airLeft].Collided {
				left = airHit
			}
		}

		if right == airHit {
			a.Position.X = s[airRight].Position.X - common.ToFixed(int32(c.outer.Right))
			c.wallStop()
			stepX, lastX = 0, 0
			right = airDone
		}
		if left == airHit {
			a.Position.X = s[airLeft].Position.X - common.ToFixed(int32(c.outer.Left)-1)
			c.wallStop()
			stepX, lastX = 0, 0
			left = airDone
		}

		if down == airActive {
			for i := airGroundL; i <= airGroundR; i++ {
				advance(&s[i], stepX, stepY)
				c.cast(f.ground(), &s[i], castProbe)
			}
			if s[airGroundL].Collided || s[airGroundR].Collided {
				down = airHit
				cnt = 0
			}
		}
		if up == airActive {
			for i := airCeilL; i <= airCeilR; i++ {
				advance(&s[i], stepX, stepY)
				c.cast(f.ceiling(), &s[i], castProbe)
			}
			if s[airCeilL].Collided || s[airCeilR].Collided {
				up = airHit
				cnt = 0
			}
		}
	}

	if right < airHit && left < airHit {
		a.Position.X += a.Velocity.X
	}
	if down < airHit && up < airHit {
		a.Position.Y += a.Velocity.Y
		return
	}

	if down == airHit {
		c.land(f, c.pick(f, airGroundL, airGroundR, true))
	}
	if up == airHit {
		c.hitCeiling(f, c.pick(f, airCeilL, airCeilR, false))
	}
}

// airSteps is the number of sub-steps used to sweep velocity (vx, vy).
func airSteps(vx, vy int32, shift uint) int32 {
	n := common.Abs(vx)
	if ay := common.Abs(vy); ay > n {
		n = ay
	}
	return n>>shift + 1
}

func advance(s *Sensor, dx, dy int32) {
	if s.Collided {
		return
	}
	s.Position.X += dx
	s.Position.Y += dy
}

// wallStop kills horizontal motion and pulls the vertical sensors inside
// the wall the actor just met.
func (c *Context) wallStop() {
	a := c.actor
	a.Velocity.X = 0
	a.GroundVel = 0
	s := &c.sensors
	s[airGroundL].Position.X = a.Position.X + common.ToFixed(int32(c.outer.Left)+1)
	s[airGroundR].Position.X = a.Position.X + common.ToFixed(int32(c.outer.Right)-2)
	s[airCeilL].Position.X = s[airGroundL].Position.X
	s[airCeilR].Position.X = s[airGroundR].Position.X
}

// pick returns the collided sensor of a pair nearest the actor center:
// the higher ground or the lower ceiling in the local frame.
func (c *Context) pick(f airFrame, l, r int, ground bool) *Sensor {
	sl, sr := &c.sensors[l], &c.sensors[r]
	if !sl.Collided {
		return sr
	}
	if !sr.Collided {
		return sl
	}
	dl, dr := f.flip(sl.Position.Y), f.flip(sr.Position.Y)
	if ground {
		if dl >= dr {
			return sr
		}
		return sl
	}
	if dl <= dr {
		return sr
	}
	return sl
}

// land attaches the actor to the ground surface found by s.
func (c *Context) land(f airFrame, s *Sensor) {
	a := c.actor
	a.OnGround = true
	a.Position.Y = s.Position.Y - f.y(0, int32(c.outer.Bottom))
	a.Angle = s.Angle & 0xFF

	local := f.angle(a.Angle)
	switch {
	case local > 0xA0 && local < 0xDE:
		a.Mode = ModeLeftWall
		a.Position.X -= common.ToFixed(4)
	case local > 0x22 && local < 0x60:
		a.Mode = ModeRightWall
		a.Position.X += common.ToFixed(4)
	default:
		a.Mode = c.direction.RestMode()
	}

	speed := landingSpeed(local, a.Velocity.X, f.flip(a.Velocity.Y))
	speed = common.Clamp(speed, -common.ToFixed(24), common.ToFixed(24))
	a.Velocity.X = speed
	a.Velocity.Y = 0
	a.GroundVel = f.flip(speed)
}

// landingSpeed converts the impact velocity into ground speed for a
// surface at local angle a.
func landingSpeed(a, vx, vy int32) int32 {
	if a < 0x80 {
		switch {
		case a < 0x10:
			return vx
		case a >= 0x20:
			if common.Abs(vx) <= common.Abs(vy) {
				return vy
			}
			return vx
		default:
			if common.Abs(vx) <= common.Abs(vy>>1) {
				return vy >> 1
			}
			return vx
		}
	}

	switch {
	case a > 0xF0:
		return vx
	case a <= 0xE0:
		if common.Abs(vx) <= common.Abs(vy) {
			return -vy
		}
		return vx
	default:
		if common.Abs(vx) <= common.Abs(vy>>1) {
			return -(vy >> 1)
		}
		return vx
	}
}

// hitCeiling either attaches the actor to a steep ceiling or stops its
// upward motion.
func (c *Context) hitCeiling(f airFrame, s *Sensor) {
	a := c.actor
	a.Position.Y = s.Position.Y - f.y(0, int32(c.outer.Top)-1)

	local := f.angle(s.Angle)
	vy := f.flip(a.Velocity.Y)
	if local <= 0x5E || local >= 0xA2 {
		a.OnGround = true
		a.Angle = s.Angle & 0xFF
		a.Mode = f.mode(ModeRoof)
		gv := -vy
		if local < 0x80 {
			gv = vy
		}
		a.GroundVel = f.flip(gv)
		return
	}
	if vy < 0 {
		a.Velocity.Y = 0
	}
}
