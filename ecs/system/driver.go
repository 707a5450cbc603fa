package system

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/pathgrip/common"
	"github.com/milk9111/pathgrip/ecs"
	"github.com/milk9111/pathgrip/ecs/component"
	"github.com/milk9111/pathgrip/logger"
	"github.com/milk9111/pathgrip/prefabs"
)

const driverDispatchScript = `
update(__engine, __state)
`

// ScriptLoader returns the source of a driver script.
type ScriptLoader func(path string) ([]byte, error)

type driverRuntime struct {
	scriptPath string
	compiled   *tengo.Compiled
	stateData  *tengo.Map
	err        error
}

// DriverSystem runs each actor's driver script once per tick. Scripts fill
// in the actor's Input through the engine functions they receive.
type DriverSystem struct {
	Load        ScriptLoader
	scriptCache map[ecs.Entity]*driverRuntime
}

func NewDriverSystem() *DriverSystem {
	return &DriverSystem{Load: prefabs.LoadScript}
}

// Invalidate drops compiled scripts so the next tick reloads them. Script
// state is lost.
func (s *DriverSystem) Invalidate() {
	if s == nil {
		return
	}
	s.scriptCache = nil
}

func (s *DriverSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	ecs.ForEach3(w, component.DriverComponent.Kind(), component.BodyComponent.Kind(), component.InputComponent.Kind(), func(e ecs.Entity, drv *component.Driver, body *component.Body, in *component.Input) {
		if drv == nil || body == nil || in == nil {
			return
		}
		rt := s.runtime(e, drv)
		if rt.err != nil {
			return
		}

		in.MoveX = 0
		in.Jump = false
		engine := buildDriverEngine(w, e, drv, body, in)
		if err := rt.run(engine); err != nil {
			logger.Log.WithError(err).Warnf("driver: entity=%s script %s update error", e, rt.scriptPath)
		}
	})

	for e := range s.scriptCache {
		if !ecs.IsAlive(w, e) {
			delete(s.scriptCache, e)
		}
	}
}

func (s *DriverSystem) runtime(e ecs.Entity, drv *component.Driver) *driverRuntime {
	if s.scriptCache == nil {
		s.scriptCache = map[ecs.Entity]*driverRuntime{}
	}
	if rt, ok := s.scriptCache[e]; ok && rt.scriptPath == drv.Script {
		return rt
	}

	rt, err := s.compile(drv.Script)
	if err != nil {
		logger.Log.WithError(err).Warnf("driver: entity=%s load script %q", e, drv.Script)
		rt = &driverRuntime{scriptPath: drv.Script, err: err}
	}
	s.scriptCache[e] = rt
	return rt
}

func (s *DriverSystem) compile(path string) (*driverRuntime, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("driver: empty script path")
	}
	load := s.Load
	if load == nil {
		load = prefabs.LoadScript
	}
	scriptBytes, err := load(path)
	if err != nil {
		return nil, err
	}

	src := string(scriptBytes) + "\n" + driverDispatchScript
	script := tengo.NewScript([]byte(src))
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})

	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, err
	}

	return &driverRuntime{
		scriptPath: path,
		compiled:   compiled,
		stateData:  &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

func (rt *driverRuntime) run(engine *tengo.ImmutableMap) error {
	if rt == nil || rt.compiled == nil {
		return fmt.Errorf("nil script runtime")
	}
	if err := rt.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.stateData); err != nil {
		return err
	}
	return rt.compiled.Run()
}

func buildDriverEngine(w *ecs.World, e ecs.Entity, drv *component.Driver, body *component.Body, in *component.Input) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	getter := func(name string, get func() tengo.Object) {
		values[name] = &tengo.UserFunction{Name: name, Value: func(args ...tengo.Object) (tengo.Object, error) {
			return get(), nil
		}}
	}

	getter("tick", func() tengo.Object { return &tengo.Int{Value: int64(w.Tick())} })
	getter("x", func() tengo.Object { return &tengo.Int{Value: int64(common.FromFixed(body.Position.X))} })
	getter("y", func() tengo.Object { return &tengo.Int{Value: int64(common.FromFixed(body.Position.Y))} })
	getter("ground_vel", func() tengo.Object { return &tengo.Float{Value: common.FixedToFloat(body.GroundVel)} })
	getter("angle", func() tengo.Object { return &tengo.Int{Value: int64(body.Angle & 0xFF)} })
	getter("mode", func() tengo.Object { return &tengo.String{Value: body.Mode.String()} })
	getter("on_ground", func() tengo.Object {
		if body.OnGround {
			return tengo.TrueValue
		}
		return tengo.FalseValue
	})

	values["param"] = &tengo.UserFunction{Name: "param", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.UndefinedValue, nil
		}
		fallback := tengo.Object(tengo.UndefinedValue)
		if len(args) > 1 {
			fallback = args[1]
		}
		raw, ok := drv.Params[objectAsString(args[0])]
		if !ok {
			return fallback, nil
		}
		obj, err := tengo.FromInterface(raw)
		if err != nil {
			return fallback, nil
		}
		return obj, nil
	}}

	values["move"] = &tengo.UserFunction{Name: "move", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		dir, ok := objectAsSign(args[0])
		if !ok {
			return tengo.FalseValue, nil
		}
		in.MoveX = dir
		return tengo.TrueValue, nil
	}}

	values["jump"] = &tengo.UserFunction{Name: "jump", Value: func(args ...tengo.Object) (tengo.Object, error) {
		in.Jump = true
		in.JumpPressed = true
		return tengo.TrueValue, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, arg := range args {
			parts = append(parts, objectAsString(arg))
		}
		logger.Log.Debugf("driver: entity=%s %s", e, strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

func objectAsSign(obj tengo.Object) (int, bool) {
	var f float64
	switch v := obj.(type) {
	case *tengo.Int:
		f = float64(v.Value)
	case *tengo.Float:
		f = v.Value
	default:
		return 0, false
	}
	switch {
	case f > 0:
		return 1, true
	case f < 0:
		return -1, true
	}
	return 0, true
}
