package world

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"unlimitedworlds.ai/internal/sim/grid"
)

// CollisionPolicy governs conflicting resolved moves.
type CollisionPolicy string

const (
	// CollisionBlock cancels every move involved in a conflict. No
	// priority, no partial movement, no retry.
	CollisionBlock CollisionPolicy = "block"
)

// ErrInvalidOperation covers caller mistakes: double-spawn, spawning onto a
// non-walkable tile, observing an agent not placed in this world. The failed
// call leaves the world untouched.
var ErrInvalidOperation = errors.New("invalid operation")

// WorldState is a compact snapshot of observable world state. Immutable once
// produced; a pure function of the world at the moment of capture.
type WorldState struct {
	Tick      uint64              `json:"tick"`
	Positions map[uint64]grid.Pos `json:"positions"`
}

// Tick is the return value of World.Tick.
type Tick struct {
	State  WorldState `json:"state"`
	Events []Event    `json:"events"`
}

// TickContext is per-tick scratch state shared with system hooks. It lives
// only for the duration of one Tick call.
type TickContext struct {
	Tick    uint64
	Actions map[uint64]Action
	Events  []Event
	Rng     *rand.Rand
}

// World is a single-threaded authoritative simulation over one grid. All
// state must be accessed from one goroutine; Tick and Observe never block
// and never run concurrently with each other by contract.
type World struct {
	grid   *grid.Grid
	policy CollisionPolicy

	systems []System

	seed   int64
	seeded bool
	rng    *rand.Rand

	tick   uint64
	agents []*Agent

	// Optional tick log sink (may be nil). Implemented in
	// internal/persistence/log.
	tickLogger TickLogger
}

// New builds a world over g with the given collision policy.
func New(g *grid.Grid, policy CollisionPolicy) *World {
	return &World{
		grid:   g,
		policy: policy,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (w *World) Grid() *grid.Grid           { return w.grid }
func (w *World) Policy() CollisionPolicy    { return w.policy }
func (w *World) TickCount() uint64          { return w.tick }
func (w *World) Rng() *rand.Rand            { return w.rng }
func (w *World) SetTickLogger(l TickLogger) { w.tickLogger = l }

// Seed returns the active seed. ok is false after a non-deterministic reset.
func (w *World) Seed() (int64, bool) { return w.seed, w.seeded }

// Reset clears runtime state and reseeds the RNG deterministically.
// Registered systems are kept.
func (w *World) Reset(seed int64) {
	w.resetState()
	w.seed = seed
	w.seeded = true
	w.rng = rand.New(rand.NewSource(seed))
}

// ResetRandom clears runtime state and reseeds from the clock.
func (w *World) ResetRandom() {
	w.resetState()
	w.seed = 0
	w.seeded = false
	w.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
}

func (w *World) resetState() {
	w.tick = 0
	w.agents = w.agents[:0]
}

// AddSystem registers a system. Registration order is the sole ordering
// contract between systems at every hook point.
func (w *World) AddSystem(s System) {
	w.systems = append(w.systems, s)
}

// Spawn attaches agent to this world at the given position and adds it to
// the roster. There is no matching removal.
func (w *World) Spawn(a *Agent, at grid.Pos) error {
	if a.world != nil {
		return fmt.Errorf("%w: agent %d is already spawned in a world", ErrInvalidOperation, a.uid)
	}
	if !w.grid.IsWalkable(at, a) {
		return fmt.Errorf("%w: cannot spawn at non-walkable tile %s", ErrInvalidOperation, at)
	}

	a.world = w
	a.pos = at
	a.placed = true
	w.agents = append(w.agents, a)
	return nil
}

// Snapshot returns the current world state without advancing the tick
// counter. Callable at any time, including before the first tick.
func (w *World) Snapshot() WorldState {
	positions := make(map[uint64]grid.Pos, len(w.agents))
	for _, a := range w.agents {
		if a.placed {
			positions[a.uid] = a.pos
		}
	}
	return WorldState{Tick: w.tick, Positions: positions}
}

// Agents returns the roster sorted by ascending uid.
func (w *World) Agents() []*Agent {
	out := make([]*Agent, len(w.agents))
	copy(out, w.agents)
	sortAgents(out)
	return out
}

func (w *World) agentByUID(uid uint64) *Agent {
	for _, a := range w.agents {
		if a.uid == uid {
			return a
		}
	}
	return nil
}
