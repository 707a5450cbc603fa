package system

import (
	"github.com/milk9111/pathgrip/collision"
	"github.com/milk9111/pathgrip/ecs"
	"github.com/milk9111/pathgrip/ecs/component"
	"github.com/milk9111/pathgrip/logger"
	"github.com/sirupsen/logrus"
)

// MovementSystem runs tile collision for every body, one actor at a time in
// entity order, and reports contact changes as collision events.
type MovementSystem struct {
	Stage *collision.Stage
}

func NewMovementSystem(stage *collision.Stage) *MovementSystem {
	return &MovementSystem{Stage: stage}
}

func (s *MovementSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	ecs.ForEach2(w, component.BodyComponent.Kind(), component.HitboxComponent.Kind(), func(e ecs.Entity, body *component.Body, hb *component.Hitbox) {
		if body == nil || hb == nil {
			return
		}
		prev := body.Actor
		collision.Process(s.Stage, &body.Actor, hb.Outer, hb.Inner)
		s.report(w, e, &prev, &body.Actor)
	})
}

func (s *MovementSystem) report(w *ecs.World, e ecs.Entity, prev, cur *collision.Actor) {
	var kinds []ecs.CollisionEventKind
	switch {
	case !prev.OnGround && cur.OnGround:
		kinds = append(kinds, ecs.CollisionEventLanded)
	case prev.OnGround && !cur.OnGround:
		kinds = append(kinds, ecs.CollisionEventAirborne)
	case cur.OnGround && prev.GroundVel != 0 && cur.GroundVel == 0:
		kinds = append(kinds, ecs.CollisionEventWall)
	case !cur.OnGround && prev.Velocity.X != 0 && cur.Velocity.X == 0:
		kinds = append(kinds, ecs.CollisionEventWall)
	}
	if cur.OnGround && prev.Mode != cur.Mode {
		kinds = append(kinds, ecs.CollisionEventMode)
	}

	for _, kind := range kinds {
		evt := ecs.CollisionEvent{
			Entity: e,
			Kind:   kind,
			Tick:   w.Tick(),
			Mode:   cur.Mode.String(),
			Angle:  cur.Angle,
		}
		w.Events().Push(ecs.Event{Type: ecs.CollisionEventType, Data: evt})
		logger.Log.WithFields(logrus.Fields{
			"entity": e.String(),
			"tick":   evt.Tick,
			"mode":   evt.Mode,
			"angle":  evt.Angle,
		}).Debugf("movement: %s", kind)
	}
}
