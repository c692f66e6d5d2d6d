package world

import (
	"sort"

	"unlimitedworlds.ai/internal/sim/grid"
)

func sortAgents(agents []*Agent) {
	sort.Slice(agents, func(i, j int) bool { return agents[i].uid < agents[j].uid })
}

// Tick advances the simulation by exactly one step.
//
// Pipeline: collect intents (ascending uid, missing intent becomes wait) ->
// system PreTick hooks -> movement resolution against a pre-move position
// snapshot -> apply phase (one event per agent, ascending uid) -> system
// Resolve hooks -> system PostTick hooks -> snapshot. Collision decisions
// compare against the pre-move snapshot, so they never depend on processing
// order.
func (w *World) Tick() Tick {
	w.tick++

	agents := w.Agents()

	// Drain the single-slot intent buffers and rewrite mailboxes: messages
	// from the previous tick are replaced by this tick's traffic.
	actions := make(map[uint64]Action, len(agents))
	for _, a := range agents {
		act, ok := a.takeQueued()
		if !ok {
			act = Wait()
		}
		actions[a.uid] = act
		a.mailbox = nil
	}

	ctx := &TickContext{Tick: w.tick, Actions: actions, Rng: w.rng}

	for _, s := range w.systems {
		s.PreTick(w, ctx)
	}

	// Pre-move snapshot for collision/swap comparisons.
	positions := make(map[uint64]grid.Pos, len(agents))
	for _, a := range agents {
		if a.placed {
			positions[a.uid] = a.pos
		}
	}

	desired := make(map[uint64]grid.Pos)
	blocked := make(map[uint64]grid.Pos)
	for _, a := range agents {
		if !a.placed {
			continue
		}
		act := actions[a.uid]
		if act.Kind != ActMove {
			continue
		}
		dx, dy := act.Dir.Offset()
		next := a.pos.Add(dx, dy)
		if w.grid.IsWalkable(next, a) {
			desired[a.uid] = next
		} else {
			blocked[a.uid] = next
		}
	}

	colliding := w.detectCollisions(agents, positions, desired)

	// Apply phase: ascending uid, one event per agent.
	for _, a := range agents {
		if !a.placed {
			continue
		}
		act := actions[a.uid]

		switch act.Kind {
		case ActWait:
			ctx.Emit("waited", map[string]any{"agent": a.uid})

		case ActMove:
			if to, ok := blocked[a.uid]; ok {
				ctx.Emit("blocked", map[string]any{"agent": a.uid, "to": to})
				continue
			}
			if colliding[a.uid] {
				ctx.Emit("collision", map[string]any{"agent": a.uid, "to": desired[a.uid]})
				continue
			}
			if to, ok := desired[a.uid]; ok {
				a.pos = to
				ctx.Emit("moved", map[string]any{"agent": a.uid, "to": to})
			}

		case ActSend:
			w.deliver(ctx, a, act)

		default:
			name := act.Raw
			if name == "" {
				name = string(act.Kind)
			}
			ctx.Emit("unknown_action", map[string]any{"agent": a.uid, "name": name})
		}
	}

	for _, s := range w.systems {
		s.Resolve(w, ctx)
	}
	for _, s := range w.systems {
		s.PostTick(w, ctx)
	}

	out := Tick{State: w.Snapshot(), Events: ctx.Events}

	if w.tickLogger != nil {
		_ = w.tickLogger.WriteTick(TickLogEntry{
			Tick:   w.tick,
			Events: out.Events,
			Digest: w.StateDigest(),
		})
	}
	return out
}

// detectCollisions marks uids whose desired moves conflict. Two cases:
// contention (several claimants of one destination) and swaps (two agents
// exchanging cells, each destination individually uncontested). Resolution
// is all-or-nothing: every marked move is cancelled for this tick.
func (w *World) detectCollisions(agents []*Agent, positions, desired map[uint64]grid.Pos) map[uint64]bool {
	colliding := make(map[uint64]bool)
	if w.policy != CollisionBlock {
		return colliding
	}

	claimants := make(map[grid.Pos][]uint64)
	for _, a := range agents {
		if target, ok := desired[a.uid]; ok {
			claimants[target] = append(claimants[target], a.uid)
		}
	}
	for _, uids := range claimants {
		if len(uids) > 1 {
			for _, uid := range uids {
				colliding[uid] = true
			}
		}
	}

	// Ascending uid so stacked agents resolve to a deterministic occupant.
	occupant := make(map[grid.Pos]uint64, len(positions))
	for _, a := range agents {
		if pos, ok := positions[a.uid]; ok {
			occupant[pos] = a.uid
		}
	}
	for _, a := range agents {
		uid := a.uid
		target, ok := desired[uid]
		if !ok {
			continue
		}
		other, ok := occupant[target]
		if !ok || other == uid {
			continue
		}
		if otherTarget, ok := desired[other]; ok && otherTarget == positions[uid] {
			colliding[uid] = true
			colliding[other] = true
		}
	}
	return colliding
}
