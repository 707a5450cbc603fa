package collision

import (
	"fmt"
	"strings"
)

// Revision selects which variant of the collision rules a stage runs with.
type Revision uint8

const (
	// RevisionClassic runs single-orientation collision with 3-step probes.
	RevisionClassic Revision = iota
	// RevisionExtended adds the Up orientation and precise floor/roof probes.
	RevisionExtended
)

// Capabilities describes the behaviour that differs between revisions.
type Capabilities interface {
	// HighTolerance is the grip tolerance used for fast or tilted actors.
	HighTolerance() int32
	// SupportsUp reports whether actors may collide with Up as down.
	SupportsUp() bool
	// PreciseProbes reports whether floor/roof probes examine only the two
	// tiles that can hold a penetrated surface and keep the shallowest
	// penetration among them instead of the first hit from the actor side.
	PreciseProbes() bool
}

type classicCaps struct{}

func (classicCaps) HighTolerance() int32 { return 15 }
func (classicCaps) SupportsUp() bool     { return false }
func (classicCaps) PreciseProbes() bool  { return false }

type extendedCaps struct{}

func (extendedCaps) HighTolerance() int32 { return 14 }
func (extendedCaps) SupportsUp() bool     { return true }
func (extendedCaps) PreciseProbes() bool  { return true }

// Capabilities returns the rule set for r. Unknown revisions behave as
// Classic.
func (r Revision) Capabilities() Capabilities {
	if r == RevisionExtended {
		return extendedCaps{}
	}
	return classicCaps{}
}

func (r Revision) String() string {
	switch r {
	case RevisionClassic:
		return "classic"
	case RevisionExtended:
		return "extended"
	}
	return fmt.Sprintf("revision(%d)", uint8(r))
}

// ParseRevision maps a config name onto a Revision.
func ParseRevision(s string) (Revision, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "classic":
		return RevisionClassic, nil
	case "extended":
		return RevisionExtended, nil
	}
	return RevisionClassic, fmt.Errorf("collision: unknown revision %q", s)
}
