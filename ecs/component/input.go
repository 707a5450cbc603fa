package component

// Input stores per-tick control state for an actor.
type Input struct {
	MoveX       int
	Jump        bool
	JumpPressed bool
}

var InputComponent = NewComponent[Input]()

// Control turns Input into ground speed. Values are Q16.16.
type Control struct {
	Accel    int32
	Decel    int32
	TopSpeed int32
	Jump     int32
}

var ControlComponent = NewComponent[Control]()
