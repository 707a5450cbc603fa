package system

import (
	"testing"

	"github.com/milk9111/pathgrip/collision"
	"github.com/milk9111/pathgrip/common"
	"github.com/milk9111/pathgrip/ecs"
	"github.com/milk9111/pathgrip/ecs/component"
	"github.com/milk9111/pathgrip/tile"
)

var (
	testOuter = collision.Hitbox{Left: -8, Top: -16, Right: 8, Bottom: 16}
	testInner = collision.Hitbox{Left: -4, Top: -12, Right: 4, Bottom: 16}
)

// floorStage has a flat solid floor whose top is y = 64.
func floorStage(rev collision.Revision) *collision.Stage {
	var cfg tile.Config
	for p := 0; p < tile.PlaneCount; p++ {
		b := &cfg.Planes[p][1]
		for c := 0; c < tile.MaskSize; c++ {
			b.Active[c] = true
		}
		b.LeftWallAngle = 0xC0
		b.RightWallAngle = 0x40
		b.RoofAngle = 0x80
	}
	l := tile.NewLayer("fg", 16, 8)
	for y := 4; y <= 5; y++ {
		for x := 0; x < 16; x++ {
			l.Set(x, y, 1|tile.SolidAll)
		}
	}
	return collision.NewStage(cfg.Build(), rev, l)
}

func px(v int32) int32 { return common.ToFixed(v) }

func spawnBody(t *testing.T, w *ecs.World, a collision.Actor) (ecs.Entity, *component.Body) {
	t.Helper()
	e := ecs.CreateEntity(w)
	body := &component.Body{Actor: a}
	if err := ecs.Add(w, e, component.BodyComponent.Kind(), body); err != nil {
		t.Fatalf("add body: %v", err)
	}
	if err := ecs.Add(w, e, component.HitboxComponent.Kind(), &component.Hitbox{Outer: testOuter, Inner: testInner}); err != nil {
		t.Fatalf("add hitbox: %v", err)
	}
	return e, body
}
