package component

// Driver runs a script every tick to produce Input.
type Driver struct {
	Script string
	Params map[string]any
}

var DriverComponent = NewComponent[Driver]()
