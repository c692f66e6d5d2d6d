package world

import (
	"sync/atomic"

	"unlimitedworlds.ai/internal/sim/grid"
)

// nextUID is the process-wide id allocator. Uids are unique and strictly
// increasing for the lifetime of the process; they are never reused, not
// even across world resets.
var nextUID atomic.Uint64

func allocUID() uint64 {
	return nextUID.Add(1)
}

// Entity is the base of everything placeable on a grid. An entity starts
// detached; Spawn attaches it to exactly one world for its lifetime.
type Entity struct {
	uid uint64

	world  *World
	pos    grid.Pos
	placed bool
}

func newEntity() Entity {
	return Entity{uid: allocUID()}
}

// UID returns the entity's process-unique identifier.
func (e *Entity) UID() uint64 { return e.uid }

// World returns the world the entity is spawned in, or nil while detached.
func (e *Entity) World() *World { return e.world }

// Pos returns the entity's position. ok is false while the entity is not
// placed on any grid.
func (e *Entity) Pos() (grid.Pos, bool) {
	if !e.placed {
		return grid.Pos{}, false
	}
	return e.pos, true
}
