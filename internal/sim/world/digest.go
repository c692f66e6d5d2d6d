package world

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"hash"

	"unlimitedworlds.ai/internal/sim/grid"
)

// StateDigest returns a sha256 over the canonical world state: tick, grid
// walkability, the roster (ascending uid) and mailboxes. Two worlds driven
// by the same seed, actions and systems produce identical digest chains;
// tests, the tick log and cmd/replay rely on that.
func (w *World) StateDigest() string {
	h := sha256.New()
	var tmp [8]byte

	digestU64(h, &tmp, w.tick)

	digestU64(h, &tmp, uint64(w.grid.Width()))
	digestU64(h, &tmp, uint64(w.grid.Height()))
	for y := 0; y < w.grid.Height(); y++ {
		for x := 0; x < w.grid.Width(); x++ {
			if w.grid.IsWalkable(grid.Pos{X: x, Y: y}, nil) {
				h.Write([]byte{1})
			} else {
				h.Write([]byte{0})
			}
		}
	}

	agents := w.Agents()
	digestU64(h, &tmp, uint64(len(agents)))
	for _, a := range agents {
		digestU64(h, &tmp, a.uid)
		if a.placed {
			h.Write([]byte{1})
			digestU64(h, &tmp, uint64(int64(a.pos.X)))
			digestU64(h, &tmp, uint64(int64(a.pos.Y)))
		} else {
			h.Write([]byte{0})
		}
		digestU64(h, &tmp, uint64(a.sensor.Radius))
		h.Write([]byte(a.sensor.Shape))
		digestU64(h, &tmp, uint64(len(a.mailbox)))
		for _, m := range a.mailbox {
			digestU64(h, &tmp, m.SrcUID)
			h.Write([]byte(m.Payload))
		}
	}

	return hex.EncodeToString(h.Sum(nil))
}

func digestU64(h hash.Hash, tmp *[8]byte, v uint64) {
	binary.LittleEndian.PutUint64(tmp[:], v)
	h.Write(tmp[:])
}
