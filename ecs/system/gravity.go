package system

import (
	"github.com/milk9111/pathgrip/collision"
	"github.com/milk9111/pathgrip/common"
	"github.com/milk9111/pathgrip/ecs"
	"github.com/milk9111/pathgrip/ecs/component"
)

// maxSpeed bounds velocities pushed against gravity.
const maxSpeed = 16 << common.FixedShift

// GravitySystem pulls airborne bodies toward the direction the stage
// collides them with.
type GravitySystem struct {
	Stage *collision.Stage
}

func NewGravitySystem(stage *collision.Stage) *GravitySystem {
	return &GravitySystem{Stage: stage}
}

func (s *GravitySystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	ecs.ForEach2(w, component.BodyComponent.Kind(), component.GravityComponent.Kind(), func(e ecs.Entity, body *component.Body, g *component.Gravity) {
		if body == nil || g == nil || body.OnGround {
			return
		}
		switch s.Stage.Orientation(body.Direction) {
		case collision.DirectionDown:
			body.Velocity.Y += g.Accel
			if g.MaxFall > 0 {
				body.Velocity.Y = common.Clamp(body.Velocity.Y, -maxSpeed, g.MaxFall)
			}
		case collision.DirectionUp:
			body.Velocity.Y -= g.Accel
			if g.MaxFall > 0 {
				body.Velocity.Y = common.Clamp(body.Velocity.Y, -g.MaxFall, maxSpeed)
			}
		}
	})
}
