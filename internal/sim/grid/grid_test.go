package grid

import (
	"errors"
	"testing"
)

func TestGrid_BoundsAndIndexing(t *testing.T) {
	g := New(3, 2, nil)

	if !g.InBounds(Pos{X: 0, Y: 0}) || !g.InBounds(Pos{X: 2, Y: 1}) {
		t.Fatalf("corners should be in bounds")
	}
	for _, p := range []Pos{{X: -1, Y: 0}, {X: 3, Y: 0}, {X: 0, Y: 2}, {X: 0, Y: -1}} {
		if g.InBounds(p) {
			t.Fatalf("%s should be out of bounds", p)
		}
	}
}

func TestGrid_GetSetOutOfBounds(t *testing.T) {
	g := New(2, 2, nil)

	if _, err := g.Get(Pos{X: 5, Y: 0}); err == nil {
		t.Fatalf("expected out of bounds error")
	} else {
		var oob OutOfBoundsError
		if !errors.As(err, &oob) {
			t.Fatalf("expected OutOfBoundsError, got %v", err)
		}
	}

	if err := g.Set(Pos{X: 0, Y: 5}, Wall{}); err == nil {
		t.Fatalf("expected out of bounds error on set")
	}
}

func TestGrid_WalkabilityFollowsTiles(t *testing.T) {
	g := New(3, 3, nil)

	p := Pos{X: 1, Y: 1}
	if !g.IsWalkable(p, nil) {
		t.Fatalf("default floor should be walkable")
	}

	if err := g.Set(p, Wall{}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if g.IsWalkable(p, nil) {
		t.Fatalf("wall should not be walkable")
	}
	tile, err := g.Get(p)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if tile.Kind() != "wall" {
		t.Fatalf("kind = %q, want wall", tile.Kind())
	}

	// Out of bounds is not walkable, and not an error.
	if g.IsWalkable(Pos{X: -1, Y: -1}, nil) {
		t.Fatalf("out of bounds should not be walkable")
	}
}

type testMover uint64

func (m testMover) UID() uint64 { return uint64(m) }

func TestGrid_WalkabilityIgnoresMover(t *testing.T) {
	g := New(2, 2, nil)
	if !g.IsWalkable(Pos{X: 0, Y: 0}, testMover(7)) {
		t.Fatalf("floor should be walkable regardless of mover")
	}
	if err := g.Set(Pos{X: 1, Y: 1}, Wall{}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if g.IsWalkable(Pos{X: 1, Y: 1}, testMover(7)) {
		t.Fatalf("wall should block any mover")
	}
}

func TestGrid_DefaultTileApplied(t *testing.T) {
	g := New(2, 2, Wall{})
	if g.IsWalkable(Pos{X: 0, Y: 0}, nil) {
		t.Fatalf("wall-filled grid should not be walkable")
	}
}
