package replay

import "fmt"

// Divergence is the first difference between two traces.
type Divergence struct {
	Tick   uint64
	Entity uint64
	Field  string
	Want   any
	Got    any
}

func (d *Divergence) String() string {
	if d == nil {
		return "no divergence"
	}
	return fmt.Sprintf("tick %d entity %d: %s = %v, want %v", d.Tick, d.Entity, d.Field, d.Got, d.Want)
}

// Compare walks both traces frame by frame and returns the first
// difference, or nil when they match.
func Compare(want, got *Trace) *Divergence {
	if want == nil || got == nil {
		if want == got {
			return nil
		}
		return &Divergence{Field: "trace", Want: want != nil, Got: got != nil}
	}

	n := min(len(want.Frames), len(got.Frames))
	for i := 0; i < n; i++ {
		if d := compareFrame(&want.Frames[i], &got.Frames[i]); d != nil {
			return d
		}
	}
	if len(want.Frames) != len(got.Frames) {
		var tick uint64
		if n > 0 {
			tick = want.Frames[n-1].Tick
		}
		return &Divergence{Tick: tick, Field: "frames", Want: len(want.Frames), Got: len(got.Frames)}
	}
	return nil
}

func compareFrame(want, got *Frame) *Divergence {
	if want.Tick != got.Tick {
		return &Divergence{Tick: want.Tick, Field: "tick", Want: want.Tick, Got: got.Tick}
	}
	if len(want.Samples) != len(got.Samples) {
		return &Divergence{Tick: want.Tick, Field: "samples", Want: len(want.Samples), Got: len(got.Samples)}
	}
	for i := range want.Samples {
		w, g := &want.Samples[i], &got.Samples[i]
		field, wv, gv := diffSample(w, g)
		if field == "" {
			continue
		}
		return &Divergence{Tick: want.Tick, Entity: w.Entity, Field: field, Want: wv, Got: gv}
	}
	return nil
}

func diffSample(w, g *Sample) (string, any, any) {
	switch {
	case w.Entity != g.Entity:
		return "entity", w.Entity, g.Entity
	case w.X != g.X:
		return "x", w.X, g.X
	case w.Y != g.Y:
		return "y", w.Y, g.Y
	case w.VX != g.VX:
		return "vx", w.VX, g.VX
	case w.VY != g.VY:
		return "vy", w.VY, g.VY
	case w.GroundVel != g.GroundVel:
		return "ground_vel", w.GroundVel, g.GroundVel
	case w.Angle != g.Angle:
		return "angle", w.Angle, g.Angle
	case w.Mode != g.Mode:
		return "mode", w.Mode, g.Mode
	case w.OnGround != g.OnGround:
		return "on_ground", w.OnGround, g.OnGround
	}
	return "", nil, nil
}
