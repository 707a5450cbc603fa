package system

import (
	"github.com/milk9111/pathgrip/ecs"
	"github.com/milk9111/pathgrip/ecs/component"
	"github.com/milk9111/pathgrip/replay"
)

// TraceSystem appends the state of every traced body to a recorder after
// movement has run.
type TraceSystem struct {
	Recorder *replay.Recorder
	samples  []replay.Sample
}

func NewTraceSystem(rec *replay.Recorder) *TraceSystem {
	return &TraceSystem{Recorder: rec}
}

func (s *TraceSystem) Update(w *ecs.World) {
	if s == nil || s.Recorder == nil || w == nil {
		return
	}

	s.samples = s.samples[:0]
	ecs.ForEach2(w, component.TraceTagComponent.Kind(), component.BodyComponent.Kind(), func(e ecs.Entity, _ *component.TraceTag, body *component.Body) {
		if body == nil {
			return
		}
		sample := replay.Sample{
			Entity:    uint64(e.Index()),
			X:         body.Position.X,
			Y:         body.Position.Y,
			VX:        body.Velocity.X,
			VY:        body.Velocity.Y,
			GroundVel: body.GroundVel,
			Angle:     body.Angle,
			Mode:      uint8(body.Mode),
			OnGround:  body.OnGround,
		}
		if tag, ok := ecs.Get(w, e, component.ActorTagComponent.Kind()); ok && tag != nil {
			sample.Name = tag.Name
		}
		s.samples = append(s.samples, sample)
	})
	s.Recorder.Record(w.Tick(), s.samples)
}
