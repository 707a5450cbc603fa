package component

import "github.com/milk9111/pathgrip/collision"

// Hitbox holds the boxes the movement system collides with. Outer bounds
// the actor; Inner places the tracking sensors.
type Hitbox struct {
	Outer collision.Hitbox
	Inner collision.Hitbox
}

var HitboxComponent = NewComponent[Hitbox]()
