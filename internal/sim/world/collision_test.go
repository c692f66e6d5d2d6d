package world

import (
	"testing"

	"unlimitedworlds.ai/internal/sim/grid"
)

func TestCollision_ContestedDestinationCancelsAll(t *testing.T) {
	w := openWorld(t, 3, 1)
	a := NewAgent()
	b := NewAgent()
	mustSpawn(t, w, a, grid.Pos{X: 0, Y: 0})
	mustSpawn(t, w, b, grid.Pos{X: 2, Y: 0})

	a.Act(Move(East))
	b.Act(Move(West))
	out := w.Tick()

	collisions := out.EventsNamed("collision")
	if len(collisions) != 2 {
		t.Fatalf("events = %+v, want two collisions", out.Events)
	}
	if pa, _ := a.Pos(); pa != (grid.Pos{X: 0, Y: 0}) {
		t.Fatalf("a moved to %v", pa)
	}
	if pb, _ := b.Pos(); pb != (grid.Pos{X: 2, Y: 0}) {
		t.Fatalf("b moved to %v", pb)
	}
	for _, e := range collisions {
		if e.Data["to"] != (grid.Pos{X: 1, Y: 0}) {
			t.Fatalf("collision target = %v, want (1,0)", e.Data["to"])
		}
	}
}

func TestCollision_ThreeWayContention(t *testing.T) {
	w := openWorld(t, 3, 3)
	a := NewAgent()
	b := NewAgent()
	c := NewAgent()
	mustSpawn(t, w, a, grid.Pos{X: 0, Y: 1})
	mustSpawn(t, w, b, grid.Pos{X: 2, Y: 1})
	mustSpawn(t, w, c, grid.Pos{X: 1, Y: 0})

	a.Act(Move(East))
	b.Act(Move(West))
	c.Act(Move(South))
	out := w.Tick()

	if len(out.EventsNamed("collision")) != 3 {
		t.Fatalf("all three claimants must collide: %+v", out.Events)
	}
	snap := w.Snapshot()
	if snap.Positions[a.UID()] != (grid.Pos{X: 0, Y: 1}) ||
		snap.Positions[b.UID()] != (grid.Pos{X: 2, Y: 1}) ||
		snap.Positions[c.UID()] != (grid.Pos{X: 1, Y: 0}) {
		t.Fatalf("no claimant may move: %+v", snap.Positions)
	}
}

func TestCollision_SwapIsSymmetric(t *testing.T) {
	w := openWorld(t, 2, 1)
	a := NewAgent()
	b := NewAgent()
	mustSpawn(t, w, a, grid.Pos{X: 0, Y: 0})
	mustSpawn(t, w, b, grid.Pos{X: 1, Y: 0})

	a.Act(Move(East))
	b.Act(Move(West))
	out := w.Tick()

	// Destinations are individually uncontested, but exchanging cells is
	// still a collision for both.
	if len(out.EventsNamed("collision")) != 2 {
		t.Fatalf("swap must cancel both moves: %+v", out.Events)
	}
	if pa, _ := a.Pos(); pa != (grid.Pos{X: 0, Y: 0}) {
		t.Fatalf("a moved to %v", pa)
	}
	if pb, _ := b.Pos(); pb != (grid.Pos{X: 1, Y: 0}) {
		t.Fatalf("b moved to %v", pb)
	}
}

func TestCollision_TrainDoesNotCollide(t *testing.T) {
	// a follows b moving in the same direction: b vacates the cell a wants.
	// The pre-move snapshot makes this a collision-free train.
	w := openWorld(t, 3, 1)
	a := NewAgent()
	b := NewAgent()
	mustSpawn(t, w, a, grid.Pos{X: 0, Y: 0})
	mustSpawn(t, w, b, grid.Pos{X: 1, Y: 0})

	a.Act(Move(East))
	b.Act(Move(East))
	out := w.Tick()

	if len(out.EventsNamed("moved")) != 2 {
		t.Fatalf("train must move: %+v", out.Events)
	}
	if pa, _ := a.Pos(); pa != (grid.Pos{X: 1, Y: 0}) {
		t.Fatalf("a at %v, want (1,0)", pa)
	}
	if pb, _ := b.Pos(); pb != (grid.Pos{X: 2, Y: 0}) {
		t.Fatalf("b at %v, want (2,0)", pb)
	}
}

func TestCollision_MoveIntoStationaryAgentIsAllowed(t *testing.T) {
	// The base rules only block contested destinations and swaps; a cell
	// occupied by a waiting agent is still walkable terrain.
	w := openWorld(t, 2, 1)
	a := NewAgent()
	b := NewAgent()
	mustSpawn(t, w, a, grid.Pos{X: 0, Y: 0})
	mustSpawn(t, w, b, grid.Pos{X: 1, Y: 0})

	a.Act(Move(East))
	out := w.Tick()

	if len(out.EventsNamed("moved")) != 1 {
		t.Fatalf("move onto stationary agent should succeed: %+v", out.Events)
	}
	snap := w.Snapshot()
	if snap.Positions[a.UID()] != snap.Positions[b.UID()] {
		t.Fatalf("expected stacked agents, got %+v", snap.Positions)
	}
}
