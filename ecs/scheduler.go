package ecs

import (
	"fmt"
	"strings"
)

// System updates a world each tick.
type System interface {
	Update(w *World)
}

// Named is implemented by systems that report a stable name for logs.
type Named interface {
	Name() string
}

type phase struct {
	name   string
	system System
}

// Scheduler runs systems in the order they were added. Order matters:
// drivers before control, control before gravity, gravity before movement.
type Scheduler struct {
	phases []phase
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.phases = append(s.phases, phase{name: systemName(system), system: system})
}

func (s *Scheduler) Update(w *World) {
	for _, p := range s.phases {
		p.system.Update(w)
	}
}

func (s *Scheduler) Len() int {
	return len(s.phases)
}

// Names returns the system names in update order.
func (s *Scheduler) Names() []string {
	names := make([]string, 0, len(s.phases))
	for _, p := range s.phases {
		names = append(names, p.name)
	}
	return names
}

func systemName(system System) string {
	if n, ok := system.(Named); ok {
		return n.Name()
	}
	name := fmt.Sprintf("%T", system)
	name = strings.TrimPrefix(name, "*")
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, "System")
}
