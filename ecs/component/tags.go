package component

// ActorTag names an actor spawned from a prefab.
type ActorTag struct {
	Name   string
	Prefab string
}

var ActorTagComponent = NewComponent[ActorTag]()

// TraceTag marks actors whose state is written to the replay trace.
type TraceTag struct{}

var TraceTagComponent = NewComponent[TraceTag]()
