package component

import "github.com/milk9111/pathgrip/collision"

// Body is the tile collision state of an actor.
type Body struct {
	collision.Actor
}

var BodyComponent = NewComponent[Body]()
