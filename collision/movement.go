package collision

import (
	"github.com/milk9111/pathgrip/common"
	"github.com/milk9111/pathgrip/tile"
)

// Process runs tile collision for one actor for one tick. Calls on distinct
// actors may run concurrently against the same stage.
func Process(stage *Stage, a *Actor, outer, inner Hitbox) {
	if a == nil {
		return
	}
	if stage == nil || a.Direction == DirectionNone {
		a.Position.X += a.Velocity.X
		a.Position.Y += a.Velocity.Y
		return
	}

	a.Angle &= 0xFF
	c := newContext(stage, a, outer, inner)
	if a.OnGround {
		c.processGrip()
	} else {
		c.processAir()
	}

	if a.OnGround {
		a.RecomposeVelocity()
	} else {
		a.GroundVel = a.Velocity.X
	}
}

// ObjectTileGrip snaps pos onto the surface below (or beside, or above) it
// for mode. offset is the Q16.16 displacement from pos to the probe point;
// the surface is applied only when it lies within tolerance pixels. It
// reports whether a surface was applied.
func ObjectTileGrip(stage *Stage, pos *common.Vector2, layers uint16, mode Mode, plane uint8, offset common.Vector2, tolerance int32) bool {
	if stage == nil || pos == nil {
		return false
	}
	side := mode.Side()
	ax := castAxes[side]
	solid := tile.SolidBit(side, plane)

	px := common.FromFixed(pos.X + offset.X)
	py := common.FromFixed(pos.Y + offset.Y)
	point, _ := ax.split(px, py)
	collided := false

	for i, l := range stage.Layers {
		if i >= MaxLayers || l == nil || layers&(1<<i) == 0 {
			continue
		}
		ox, oy := l.Origin()
		origin, _ := ax.split(ox, oy)
		_, across := ax.split(px-ox, py-oy)
		along := point - origin

		start := along&^0xF - tile.MaskSize*ax.dir
		for step := int32(0); step < 3; step++ {
			t0 := start + step*tile.MaskSize*ax.dir
			id, ok := l.Get(ax.cell(t0, across))
			if !ok || id&solid == 0 {
				continue
			}
			h := stage.Table.Mask(plane, id).Side(side)[across&0xF]
			if h == tile.NoSurface {
				continue
			}
			if t := t0 + int32(h); common.Abs(along-t) <= tolerance {
				collided = true
				point = t + origin
			}
			break
		}
	}

	if collided {
		off, _ := ax.split(offset.X, offset.Y)
		ax.set(pos, common.ToFixed(point)-off)
	}
	return collided
}

// ObjectTileCollision reports whether the probe point pos+offset lies
// inside the surface of the tile under it for mode. With setPos the
// position is moved onto that surface.
func ObjectTileCollision(stage *Stage, pos *common.Vector2, layers uint16, mode Mode, plane uint8, offset common.Vector2, setPos bool) bool {
	if stage == nil || pos == nil {
		return false
	}
	side := mode.Side()
	ax := castAxes[side]
	solid := tile.SolidBit(side, plane)

	px := common.FromFixed(pos.X + offset.X)
	py := common.FromFixed(pos.Y + offset.Y)
	collided := false
	var surface int32

	for i, l := range stage.Layers {
		if i >= MaxLayers || l == nil || layers&(1<<i) == 0 {
			continue
		}
		ox, oy := l.Origin()
		origin, _ := ax.split(ox, oy)
		along, across := ax.split(px-ox, py-oy)

		id, ok := l.Get(ax.cell(along, across))
		if !ok || id&solid == 0 {
			continue
		}
		h := stage.Table.Mask(plane, id).Side(side)[across&0xF]
		if h == tile.NoSurface {
			continue
		}
		t := along&^0xF + int32(h)
		if ax.dir*(along-t) >= 0 {
			collided = true
			surface = t + origin
		}
	}

	if collided && setPos {
		off, _ := ax.split(offset.X, offset.Y)
		ax.set(pos, common.ToFixed(surface)-off)
	}
	return collided
}
