package entity

import (
	"fmt"
	"sort"

	"github.com/milk9111/pathgrip/collision"
	"github.com/milk9111/pathgrip/common"
	"github.com/milk9111/pathgrip/ecs"
	"github.com/milk9111/pathgrip/ecs/component"
	"github.com/milk9111/pathgrip/prefabs"
)

type buildContext struct {
	PrefabPath string
	Name       string
	Stage      *collision.Stage
	X, Y       int32
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"actor_tag": addActorTag,
	"trace":     addTraceTag,
	"body":      addBody,
	"hitbox":    addHitbox,
	"gravity":   addGravity,
	"control":   addControl,
	"input":     addInput,
	"driver":    addDriver,
}

// body must exist before anything that reads it.
var componentBuildOrder = []string{
	"actor_tag",
	"trace",
	"body",
	"hitbox",
	"gravity",
	"control",
	"input",
	"driver",
}

// BuildActor creates an actor from a prefab with its center at pixel
// (x, y). Layer names in the prefab are resolved against stage.
func BuildActor(w *ecs.World, stage *collision.Stage, prefabPath string, x, y int) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build actor: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build actor: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build actor: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath, Name: spec.Name, Stage: stage, X: int32(x), Y: int32(y)}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build actor: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build actor: %q: no builder for component %q", prefabPath, names[0])
	}

	if !ecs.Has(w, e, component.BodyComponent.Kind()) {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build actor: %q: prefab has no body", prefabPath)
	}
	return e, nil
}

func addActorTag(w *ecs.World, e ecs.Entity, _ any, ctx *buildContext) error {
	return ecs.Add(w, e, component.ActorTagComponent.Kind(), &component.ActorTag{Name: ctx.Name, Prefab: ctx.PrefabPath})
}

func addTraceTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.TraceTagComponent.Kind(), &component.TraceTag{})
}

type bodySpec = prefabs.BodyComponentSpec

func addBody(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[bodySpec](raw)
	if err != nil {
		return fmt.Errorf("decode body spec: %w", err)
	}
	dir, err := collision.ParseDirection(spec.Direction)
	if err != nil {
		return err
	}
	if spec.Plane >= 2 {
		return fmt.Errorf("plane %d out of range", spec.Plane)
	}

	layers := uint16(0xFFFF)
	if len(spec.Layers) > 0 {
		if ctx.Stage == nil {
			return fmt.Errorf("layers %v need a stage", spec.Layers)
		}
		layers = ctx.Stage.LayerMask(spec.Layers...)
		if layers == 0 {
			return fmt.Errorf("no stage layer matches %v", spec.Layers)
		}
	}

	body := &component.Body{Actor: collision.Actor{
		Position:  common.Vector2{X: common.ToFixed(ctx.X), Y: common.ToFixed(ctx.Y)},
		Velocity:  common.Vector2{X: common.FloatToFixed(spec.VelX), Y: common.FloatToFixed(spec.VelY)},
		GroundVel: common.FloatToFixed(spec.GroundVel),
		Angle:     dir.RestAngle(),
		Mode:      dir.RestMode(),
		Plane:     spec.Plane,
		OnGround:  spec.OnGround,
		Layers:    layers,
		Direction: dir,
	}}
	return ecs.Add(w, e, component.BodyComponent.Kind(), body)
}

type hitboxSpec = prefabs.HitboxComponentSpec

func addHitbox(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[hitboxSpec](raw)
	if err != nil {
		return fmt.Errorf("decode hitbox spec: %w", err)
	}
	outer := toHitbox(spec.Outer)
	if outer.Left > outer.Right || outer.Top > outer.Bottom {
		return fmt.Errorf("outer hitbox %+v is inverted", outer)
	}
	inner := outer
	if spec.Inner != nil {
		inner = toHitbox(*spec.Inner)
	}
	return ecs.Add(w, e, component.HitboxComponent.Kind(), &component.Hitbox{Outer: outer, Inner: inner})
}

func toHitbox(s prefabs.HitboxSpec) collision.Hitbox {
	return collision.Hitbox{Left: s.Left, Top: s.Top, Right: s.Right, Bottom: s.Bottom}
}

func addGravity(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.GravityComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode gravity spec: %w", err)
	}
	return ecs.Add(w, e, component.GravityComponent.Kind(), &component.Gravity{
		Accel:   common.FloatToFixed(spec.Accel),
		MaxFall: common.FloatToFixed(spec.MaxFall),
	})
}

func addControl(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ControlComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode control spec: %w", err)
	}
	return ecs.Add(w, e, component.ControlComponent.Kind(), &component.Control{
		Accel:    common.FloatToFixed(spec.Accel),
		Decel:    common.FloatToFixed(spec.Decel),
		TopSpeed: common.FloatToFixed(spec.TopSpeed),
		Jump:     common.FloatToFixed(spec.Jump),
	})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

func addDriver(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.DriverComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode driver spec: %w", err)
	}
	if spec.Script == "" {
		return fmt.Errorf("driver needs a script")
	}
	if !ecs.Has(w, e, component.InputComponent.Kind()) {
		if err := addInput(w, e, nil, nil); err != nil {
			return err
		}
	}
	return ecs.Add(w, e, component.DriverComponent.Kind(), &component.Driver{Script: spec.Script, Params: spec.Params})
}
