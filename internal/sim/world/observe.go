package world

import (
	"fmt"

	"unlimitedworlds.ai/internal/sim/grid"
)

// VisibleTile is one cell in an agent's field of view. Kind is "floor" or
// "wall" as reported by the grid's walkability.
type VisibleTile struct {
	Pos  grid.Pos `json:"pos"`
	Kind string   `json:"kind"`
}

// VisibleEntity is one entity inside an agent's field of view.
type VisibleEntity struct {
	UID  uint64   `json:"uid"`
	Kind string   `json:"kind"`
	Pos  grid.Pos `json:"pos"`
}

// Observation is an agent-scoped partial view of the world. Recomputed fresh
// on every Observe call, never cached.
type Observation struct {
	Tick     uint64          `json:"tick"`
	SelfUID  uint64          `json:"self_uid"`
	SelfPos  grid.Pos        `json:"self_pos"`
	Tiles    []VisibleTile   `json:"tiles"`
	Entities []VisibleEntity `json:"entities"`
	Messages []Message       `json:"messages"`
}

// Observe computes the agent's sensor-limited view: admitted in-bounds cells
// (outer dy ascending, inner dx ascending), every agent standing on an
// admitted cell in ascending uid order, and the agent's current mailbox.
// Visibility is purely range/shape based; walls do not occlude.
func (w *World) Observe(a *Agent) (Observation, error) {
	if a.world != w {
		return Observation{}, fmt.Errorf("%w: agent %d is not spawned in this world", ErrInvalidOperation, a.uid)
	}
	if !a.placed {
		return Observation{}, fmt.Errorf("%w: agent %d has no position", ErrInvalidOperation, a.uid)
	}

	center := a.pos
	radius := a.sensor.Radius
	shape := a.sensor.Shape

	var tiles []VisibleTile
	visible := make(map[grid.Pos]bool)

	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			switch shape {
			case ShapeManhattan:
				if abs(dx)+abs(dy) > radius {
					continue
				}
			case ShapeSquare:
				if max(abs(dx), abs(dy)) > radius {
					continue
				}
			default:
				continue
			}

			pos := center.Add(dx, dy)
			if !w.grid.InBounds(pos) {
				continue
			}

			kind := "wall"
			if w.grid.IsWalkable(pos, a) {
				kind = "floor"
			}
			tiles = append(tiles, VisibleTile{Pos: pos, Kind: kind})
			visible[pos] = true
		}
	}

	var entities []VisibleEntity
	for _, other := range w.Agents() {
		if !other.placed {
			continue
		}
		if visible[other.pos] {
			entities = append(entities, VisibleEntity{UID: other.uid, Kind: "agent", Pos: other.pos})
		}
	}

	return Observation{
		Tick:     w.tick,
		SelfUID:  a.uid,
		SelfPos:  center,
		Tiles:    tiles,
		Entities: entities,
		Messages: a.mailbox,
	}, nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
