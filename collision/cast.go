package collision

import (
	"github.com/milk9111/pathgrip/common"
	"github.com/milk9111/pathgrip/tile"
)

// castAxis describes how a side is searched: along y or x, and in which
// direction the search walks.
type castAxis struct {
	vertical bool
	dir      int32
}

var castAxes = [...]castAxis{
	tile.Floor:     {vertical: true, dir: 1},
	tile.LeftWall:  {vertical: false, dir: 1},
	tile.RightWall: {vertical: false, dir: -1},
	tile.Roof:      {vertical: true, dir: -1},
}

type castKind uint8

const (
	// castGrip looks for the surface being tracked, within tolerance and
	// close to the sensor's angle.
	castGrip castKind = iota
	// castProbe looks for a surface the sensor has penetrated.
	castProbe
)

// split returns the coordinate along the search axis and across it.
func (ax castAxis) split(x, y int32) (along, across int32) {
	if ax.vertical {
		return y, x
	}
	return x, y
}

func (ax castAxis) cell(along, across int32) (int, int) {
	if ax.vertical {
		return int(across >> 4), int(along >> 4)
	}
	return int(along >> 4), int(across >> 4)
}

func (ax castAxis) set(v *common.Vector2, along int32) {
	if ax.vertical {
		v.Y = along
	} else {
		v.X = along
	}
}

// nearer reports whether t is at least as close to the actor as best.
func (ax castAxis) nearer(t, best int32) bool {
	return ax.dir*t <= ax.dir*best
}

func angleWithin(a, b, tol int32) bool {
	d := (a & 0xFF) - (b & 0xFF)
	return common.Abs(d) <= tol || common.Abs(d+0x100) <= tol || common.Abs(d-0x100) <= tol
}

// cast walks the stage from the sensor toward side and updates the sensor
// on a hit. A miss leaves the sensor untouched.
//
// Ordinary casts take the first accepted surface per layer and keep the one
// nearest the actor across layers. Precise floor/roof probes instead keep,
// over every step and layer, the surface nearest the sensor's own position:
// the one it crossed most recently.
func (c *Context) cast(side tile.Side, s *Sensor, kind castKind) {
	castStage(c.stage, c.actor.Layers, c.actor.Plane, side, s, kind, c.tolerance, c.caps.PreciseProbes())
}

func castStage(stage *Stage, layers uint16, plane uint8, side tile.Side, s *Sensor, kind castKind, tolerance int32, precise bool) {
	ax := castAxes[side]
	solid := tile.SolidBit(side, plane)
	steps := int32(3)
	precise = precise && kind == castProbe && ax.vertical
	if precise {
		steps = 2
	}

	px, py := common.FromFixed(s.Position.X), common.FromFixed(s.Position.Y)
	hit := false
	var best, bestDepth int32
	for i, l := range stage.Layers {
		if i >= MaxLayers || l == nil || layers&(1<<i) == 0 {
			continue
		}

		ox, oy := l.Origin()
		along, across := ax.split(px-ox, py-oy)
		origin, _ := ax.split(ox, oy)
		sub := across & 0xF

		start := along&^0xF - tile.MaskSize*ax.dir
		for step := int32(0); step < steps; step++ {
			t0 := start + step*tile.MaskSize*ax.dir
			id, ok := l.Get(ax.cell(t0, across))
			if !ok || id&solid == 0 {
				continue
			}
			h := stage.Table.Mask(plane, id).Side(side)[sub]
			if h == tile.NoSurface {
				continue
			}

			t := t0 + int32(h)
			angle := int32(stage.Table.Info(plane, id).Angle(side))
			depth := common.Abs(along - t)
			switch {
			case !hit:
			case precise && depth > bestDepth:
				continue
			case !precise && !ax.nearer(t+origin, best):
				continue
			}

			switch kind {
			case castGrip:
				if depth > tolerance || !angleWithin(s.Angle, angle, gripAngleTolerance) {
					continue
				}
			case castProbe:
				if ax.dir*(along-t) < 0 || depth > probeDistance {
					continue
				}
			}

			hit = true
			s.Collided = true
			s.Angle = angle
			best, bestDepth = t+origin, depth
			ax.set(&s.Position, common.ToFixed(best))
			if !precise {
				break
			}
		}
	}
}
