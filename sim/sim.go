package sim

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/milk9111/pathgrip/collision"
	"github.com/milk9111/pathgrip/ecs"
	"github.com/milk9111/pathgrip/ecs/component"
	"github.com/milk9111/pathgrip/ecs/entity"
	"github.com/milk9111/pathgrip/ecs/system"
	"github.com/milk9111/pathgrip/levels"
	"github.com/milk9111/pathgrip/logger"
	"github.com/milk9111/pathgrip/prefabs"
	"github.com/milk9111/pathgrip/replay"
	"github.com/milk9111/pathgrip/tile"
	"github.com/sirupsen/logrus"
)

// Config selects what a simulation runs. Empty fields fall back to the
// engine prefab.
type Config struct {
	Engine   prefabs.EngineSpec
	Revision string
	Level    string
	Tileset  string
	Record   bool
}

// Sim is a headless world running tile collision over one stage.
type Sim struct {
	cfg      Config
	World    *ecs.World
	Stage    *collision.Stage
	Level    *levels.Level
	Recorder *replay.Recorder
	Events   map[ecs.CollisionEventKind]int

	driver *system.DriverSystem
}

func New(cfg Config) (*Sim, error) {
	if cfg.Revision == "" {
		cfg.Revision = cfg.Engine.Revision
	}
	if cfg.Level == "" {
		cfg.Level = cfg.Engine.Level
	}
	if cfg.Tileset == "" {
		cfg.Tileset = cfg.Engine.Tileset
	}
	return build(cfg)
}

func build(cfg Config) (*Sim, error) {
	s := &Sim{cfg: cfg}
	rev, err := collision.ParseRevision(cfg.Revision)
	if err != nil {
		return nil, err
	}
	table, err := LoadTileset(cfg.Tileset)
	if err != nil {
		return nil, err
	}
	lvl, err := levels.LoadLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("sim: level %s: %w", cfg.Level, err)
	}
	stage, err := lvl.Stage(table, rev)
	if err != nil {
		return nil, err
	}

	w := ecs.NewWorld()
	s.driver = system.NewDriverSystem()
	w.AddSystem(s.driver)
	w.AddSystem(system.NewControlSystem(stage))
	w.AddSystem(system.NewGravitySystem(stage))
	w.AddSystem(system.NewMovementSystem(stage))
	if cfg.Record {
		s.Recorder = replay.NewRecorder(cfg.Level, rev.String())
		w.AddSystem(system.NewTraceSystem(s.Recorder))
	}
	s.Events = map[ecs.CollisionEventKind]int{}
	w.AddSystem(eventCounter{counts: s.Events})
	logger.Log.WithField("systems", strings.Join(w.Systems(), ",")).Debug("sim: system order")

	for i, sp := range lvl.Spawns {
		e, err := entity.BuildActor(w, stage, sp.Prefab, sp.X, sp.Y)
		if err != nil {
			return nil, fmt.Errorf("sim: spawn %d: %w", i, err)
		}
		logger.Log.WithFields(logrus.Fields{
			"entity": e.String(),
			"prefab": sp.Prefab,
			"x":      sp.X,
			"y":      sp.Y,
		}).Debug("sim: spawned actor")
	}

	s.World = w
	s.Stage = stage
	s.Level = lvl
	return s, nil
}

// Step advances the world by one tick.
func (s *Sim) Step() {
	if s == nil {
		return
	}
	s.World.Update()
}

func (s *Sim) Run(ticks int) {
	for i := 0; i < ticks; i++ {
		s.Step()
	}
}

// Reload applies a changed file between ticks. Script changes recompile
// drivers in place; anything else rebuilds the world from scratch.
func (s *Sim) Reload(change prefabs.Change) error {
	if s == nil {
		return nil
	}
	if change.Kind == prefabs.ChangeScript {
		s.driver.Invalidate()
		logger.Log.WithField("path", change.Path).Info("sim: reloaded scripts")
		return nil
	}
	next, err := build(s.cfg)
	if err != nil {
		return err
	}
	*s = *next
	logger.Log.WithField("path", change.Path).Info("sim: rebuilt world")
	return nil
}

// Bodies returns every actor body in entity order.
func (s *Sim) Bodies() []*component.Body {
	var out []*component.Body
	ecs.ForEach(s.World, component.BodyComponent.Kind(), func(_ ecs.Entity, b *component.Body) {
		out = append(out, b)
	})
	return out
}

// LoadTileset builds a collision table from a compiled .til file or a
// tileset prefab. An unreadable .til yields an empty table and a logged
// warning.
func LoadTileset(path string) (*tile.Table, error) {
	if path == "" {
		return tile.NewTable(), nil
	}
	if strings.EqualFold(filepath.Ext(path), ".til") {
		table, err := tile.LoadTable(path)
		if err != nil {
			logger.Log.WithError(err).Warn("sim: tile config unreadable, stage has no surfaces")
		}
		return table, nil
	}
	spec, err := prefabs.LoadTilesetSpec(path)
	if err != nil {
		return nil, err
	}
	cfg, err := spec.ToConfig()
	if err != nil {
		return nil, err
	}
	return cfg.Build(), nil
}

// eventCounter drains collision events after movement so they survive the
// end-of-tick flush as counts.
type eventCounter struct {
	counts map[ecs.CollisionEventKind]int
}

func (eventCounter) Name() string { return "events" }

func (c eventCounter) Update(w *ecs.World) {
	for _, evt := range w.Events().Drain() {
		if ce, ok := evt.Data.(ecs.CollisionEvent); ok {
			c.counts[ce.Kind]++
		}
	}
}
