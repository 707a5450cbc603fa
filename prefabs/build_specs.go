package prefabs

import "gopkg.in/yaml.v3"

// EntityBuildSpec is an actor prefab: a name plus raw component blocks keyed
// by component name.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

// BodyComponentSpec sets up the collision state of an actor. Layers names
// the stage layers the actor collides with; empty means all of them.
type BodyComponentSpec struct {
	Direction string   `yaml:"direction"`
	Plane     uint8    `yaml:"plane"`
	Layers    []string `yaml:"layers"`
	OnGround  bool     `yaml:"on_ground"`
	GroundVel float64  `yaml:"ground_vel"`
	VelX      float64  `yaml:"vel_x"`
	VelY      float64  `yaml:"vel_y"`
}

type HitboxSpec struct {
	Left   int16 `yaml:"left"`
	Top    int16 `yaml:"top"`
	Right  int16 `yaml:"right"`
	Bottom int16 `yaml:"bottom"`
}

// HitboxComponentSpec defaults Inner to Outer when omitted.
type HitboxComponentSpec struct {
	Outer HitboxSpec  `yaml:"outer"`
	Inner *HitboxSpec `yaml:"inner"`
}

// GravityComponentSpec values are pixels per tick.
type GravityComponentSpec struct {
	Accel   float64 `yaml:"accel"`
	MaxFall float64 `yaml:"max_fall"`
}

// ControlComponentSpec values are pixels per tick.
type ControlComponentSpec struct {
	Accel    float64 `yaml:"accel"`
	Decel    float64 `yaml:"decel"`
	TopSpeed float64 `yaml:"top_speed"`
	Jump     float64 `yaml:"jump"`
}

type DriverComponentSpec struct {
	Script string         `yaml:"script"`
	Params map[string]any `yaml:"params"`
}
