package component

// Gravity accelerates an airborne body toward its collision direction.
// Values are Q16.16 per tick.
type Gravity struct {
	Accel   int32
	MaxFall int32
}

var GravityComponent = NewComponent[Gravity]()
