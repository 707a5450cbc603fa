package system

import (
	"github.com/milk9111/pathgrip/collision"
	"github.com/milk9111/pathgrip/common"
	"github.com/milk9111/pathgrip/ecs"
	"github.com/milk9111/pathgrip/ecs/component"
)

// ControlSystem turns Input into ground speed or air drift and launches
// jumps away from the surface an actor stands on.
type ControlSystem struct {
	Stage *collision.Stage
}

func NewControlSystem(stage *collision.Stage) *ControlSystem {
	return &ControlSystem{Stage: stage}
}

func (s *ControlSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	ecs.ForEach3(w, component.BodyComponent.Kind(), component.InputComponent.Kind(), component.ControlComponent.Kind(), func(e ecs.Entity, body *component.Body, in *component.Input, ctl *component.Control) {
		if body == nil || in == nil || ctl == nil {
			return
		}
		a := &body.Actor
		move := common.Clamp(int32(in.MoveX), -1, 1)

		if a.OnGround {
			// Up actors stand on the roof, where positive ground speed
			// moves left.
			if s.Stage.Orientation(a.Direction) == collision.DirectionUp {
				move = -move
			}
			a.GroundVel = accelerate(a.GroundVel, move, ctl)
			if in.JumpPressed && ctl.Jump != 0 {
				launch(a, s.Stage.Orientation(a.Direction), ctl.Jump)
			}
		} else if move != 0 {
			a.Velocity.X = common.Clamp(a.Velocity.X+move*ctl.Accel*2, -ctl.TopSpeed, ctl.TopSpeed)
		}
		in.JumpPressed = false
	})
}

func accelerate(gv, move int32, ctl *component.Control) int32 {
	switch {
	case move == 0:
		if common.Abs(gv) <= ctl.Accel {
			return 0
		}
		if gv > 0 {
			return gv - ctl.Accel
		}
		return gv + ctl.Accel
	case gv != 0 && (gv > 0) != (move > 0):
		gv += move * ctl.Decel
		if (gv > 0) == (move > 0) {
			// turned around this tick
			return move * ctl.Decel
		}
		return gv
	}
	if move*gv >= ctl.TopSpeed {
		return gv
	}
	return common.Clamp(gv+move*ctl.Accel, -ctl.TopSpeed, ctl.TopSpeed)
}

// launch leaves the surface along its normal, keeping the ground speed as
// tangent velocity.
func launch(a *collision.Actor, dir collision.Direction, strength int32) {
	sin := common.Sin256(a.Angle)
	cos := common.Cos256(a.Angle)
	a.Velocity.X = int32((int64(a.GroundVel)*int64(cos) + int64(strength)*int64(sin)) >> 8)
	a.Velocity.Y = int32((int64(a.GroundVel)*int64(sin) - int64(strength)*int64(cos)) >> 8)
	a.GroundVel = a.Velocity.X
	a.OnGround = false
	a.Mode = dir.RestMode()
	a.Angle = dir.RestAngle()
}
