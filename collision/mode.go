package collision

import "github.com/milk9111/pathgrip/common"

// NextMode returns the mode a grounded actor in mode m moves to after
// gripping a surface at angle. Up actors use the same thresholds in the
// vertically mirrored frame, where Floor and Roof trade places.
func NextMode(m Mode, angle int32, dir Direction) Mode {
	if dir != DirectionUp {
		return nextModeDown(m, angle&0xFF)
	}
	return mirrorMode(nextModeDown(mirrorMode(m), (0x80-angle)&0xFF))
}

func nextModeDown(m Mode, a int32) Mode {
	switch m {
	case ModeFloor:
		if a > 0x80 && a < 0xDE {
			return ModeLeftWall
		}
		if a > 0x22 && a < 0x80 {
			return ModeRightWall
		}
	case ModeLeftWall:
		if a > 0xE2 {
			return ModeFloor
		}
		if a < 0x9E {
			return ModeRoof
		}
	case ModeRoof:
		if a > 0xA2 {
			return ModeLeftWall
		}
		if a < 0x5E {
			return ModeRightWall
		}
	case ModeRightWall:
		if a < 0x1E {
			return ModeFloor
		}
		if a > 0x62 {
			return ModeRoof
		}
	}
	return m
}

func mirrorMode(m Mode) Mode {
	switch m {
	case ModeFloor:
		return ModeRoof
	case ModeRoof:
		return ModeFloor
	}
	return m
}

// loseContact detaches a grounded actor and hands its ground speed back to
// the velocity.
func loseContact(a *Actor, dir Direction) {
	a.RecomposeVelocity()
	a.Velocity.Y = common.Clamp(a.Velocity.Y, -common.ToFixed(16), common.ToFixed(16))
	a.GroundVel = a.Velocity.X
	a.OnGround = false
	a.Mode = dir.RestMode()
	a.Angle = dir.RestAngle()
}
