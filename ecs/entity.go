package ecs

import "strconv"

// Entity packs a slot index in the low 32 bits and the slot generation in
// the high 32 bits. Destroying an entity bumps the generation, so stale
// handles stop matching.
type Entity uint64

type entityID uint32
type generation uint32

const entityIDBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(uint32(e))
}

func (e Entity) generation() generation {
	return generation(uint32(uint64(e) >> entityIDBits))
}

// Index returns the slot index, which is stable for the entity's lifetime
// and is the key of deterministic iteration order.
func (e Entity) Index() uint32 {
	return uint32(e.id())
}

func (e Entity) String() string {
	return strconv.FormatUint(uint64(e.id()), 10) + "v" + strconv.FormatUint(uint64(e.generation()), 10)
}

// Valid reports whether e was ever issued; zero is the nil entity.
func (e Entity) Valid() bool {
	return e.id() > 0
}
