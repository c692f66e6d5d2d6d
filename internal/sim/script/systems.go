package script

import (
	"fmt"

	"unlimitedworlds.ai/internal/sim/world"
)

// PulseSystem emits a "pulse" event with one RNG draw every Every ticks.
// It exists so scenarios can exercise the system hook protocol and the
// shared seeded RNG; with a fixed seed the pulse values replay exactly.
type PulseSystem struct {
	world.NopSystem
	Every uint64
}

func (s *PulseSystem) PostTick(w *world.World, ctx *world.TickContext) {
	if s.Every == 0 || ctx.Tick%s.Every != 0 {
		return
	}
	ctx.Emit("pulse", map[string]any{"x": ctx.Rng.Float64()})
}

// BuildSystems instantiates the scenario's systems in declaration order.
// Registration order is the hook ordering contract, so sandbox and replay
// must both go through this.
func (sc *Scenario) BuildSystems() ([]world.System, error) {
	var out []world.System
	for _, spec := range sc.Systems {
		switch spec.Kind {
		case "pulse":
			every := spec.Every
			if every == 0 {
				every = 1
			}
			out = append(out, &PulseSystem{Every: every})
		default:
			return nil, fmt.Errorf("unknown system kind %q", spec.Kind)
		}
	}
	return out, nil
}

// NewWorld builds a fully wired world for this scenario: grid, seed,
// systems, roster. Both cmd/sandbox and cmd/replay start from here so their
// digest chains are comparable.
func (sc *Scenario) NewWorld() (*world.World, map[string]*world.Agent, error) {
	g, err := sc.BuildGrid()
	if err != nil {
		return nil, nil, err
	}
	w := world.New(g, world.CollisionBlock)
	w.Reset(sc.Seed)

	systems, err := sc.BuildSystems()
	if err != nil {
		return nil, nil, err
	}
	for _, s := range systems {
		w.AddSystem(s)
	}

	agents, err := sc.Spawn(w)
	if err != nil {
		return nil, nil, err
	}
	return w, agents, nil
}
