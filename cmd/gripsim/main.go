package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/milk9111/pathgrip/common"
	"github.com/milk9111/pathgrip/ecs"
	"github.com/milk9111/pathgrip/ecs/component"
	"github.com/milk9111/pathgrip/logger"
	"github.com/milk9111/pathgrip/prefabs"
	"github.com/milk9111/pathgrip/replay"
	"github.com/milk9111/pathgrip/sim"
	"github.com/sirupsen/logrus"
)

func main() {
	levelName := flag.String("level", "", "stage JSON (disk path or embedded name); defaults to engine.yaml")
	tileset := flag.String("tileset", "", "tileset prefab (.yaml) or compiled .til file")
	revision := flag.String("revision", "", "collision revision: classic or extended")
	ticks := flag.Int("ticks", 0, "ticks to run; 0 uses engine.yaml, or runs until interrupted with -watch")
	record := flag.String("record", "", "write a msgpack trace of the run to this file")
	verify := flag.String("verify", "", "compare the run against a recorded trace")
	watch := flag.Bool("watch", false, "run in real time and reload prefabs, scripts and levels on change")
	flag.Parse()

	logger.Init()
	log := logger.Log

	engine, err := prefabs.LoadEngineSpec()
	if err != nil {
		log.Fatal(err)
	}
	if *ticks == 0 && !*watch {
		*ticks = engine.Ticks
	}

	s, err := sim.New(sim.Config{
		Engine:   *engine,
		Revision: *revision,
		Level:    *levelName,
		Tileset:  *tileset,
		Record:   *record != "" || *verify != "",
	})
	if err != nil {
		log.Fatal(err)
	}

	if *watch {
		runWatched(s, *ticks)
	} else {
		s.Run(*ticks)
	}

	printSummary(s)

	if *record != "" {
		if err := replay.Save(*record, s.Recorder.Trace()); err != nil {
			log.Fatal(err)
		}
		log.WithFields(logrus.Fields{"path": *record, "frames": s.Recorder.Len()}).Info("gripsim: trace written")
	}
	if *verify != "" {
		want, err := replay.Load(*verify)
		if err != nil {
			log.Fatal(err)
		}
		if d := replay.Compare(want, s.Recorder.Trace()); d != nil {
			log.Errorf("gripsim: trace diverges: %s", d)
			os.Exit(1)
		}
		log.WithField("path", *verify).Info("gripsim: trace matches")
	}
}

// runWatched steps at 60 ticks per second and applies file changes between
// ticks. ticks <= 0 runs until the watcher fails.
func runWatched(s *sim.Sim, ticks int) {
	log := logger.Log
	var dirs []string
	for _, dir := range []string{prefabs.Dir, filepath.Join(prefabs.Dir, "scripts"), "levels"} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	w, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		log.Fatal(err)
	}
	defer w.Close()
	log.WithField("dirs", dirs).Info("gripsim: watching for changes")

	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()

	for n := 0; ticks <= 0 || n < ticks; {
		select {
		case change, ok := <-w.Events:
			if !ok {
				return
			}
			if err := s.Reload(change); err != nil {
				log.WithError(err).Warn("gripsim: reload failed, keeping current world")
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.WithError(err).Warn("gripsim: watcher error")
		case <-ticker.C:
			s.Step()
			n++
		}
	}
}

func printSummary(s *sim.Sim) {
	fmt.Printf("tick %d\n", s.World.Tick())
	ecs.ForEach2(s.World, component.ActorTagComponent.Kind(), component.BodyComponent.Kind(), func(e ecs.Entity, tag *component.ActorTag, b *component.Body) {
		fmt.Printf("%-10s %-6s x=%8.2f y=%8.2f gv=%6.2f angle=%#02x mode=%-10s ground=%v\n",
			tag.Name, e, common.FixedToFloat(b.Position.X), common.FixedToFloat(b.Position.Y),
			common.FixedToFloat(b.GroundVel), b.Angle, b.Mode, b.OnGround)
	})
	for _, kind := range []ecs.CollisionEventKind{ecs.CollisionEventLanded, ecs.CollisionEventAirborne, ecs.CollisionEventMode, ecs.CollisionEventWall} {
		fmt.Printf("%-8s %d\n", kind, s.Events[kind])
	}
}
