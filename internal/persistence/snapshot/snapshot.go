// Package snapshot writes and reads world snapshots as zstd-compressed
// JSON (.snap.zst). Snapshots are an export for tooling; the in-memory
// world remains the authority.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"unlimitedworlds.ai/internal/sim/grid"
	"unlimitedworlds.ai/internal/sim/world"
)

const FormatVersion = 1

type Header struct {
	Version int    `json:"version"`
	Name    string `json:"name"`
	Tick    uint64 `json:"tick"`
}

type AgentV1 struct {
	UID     uint64           `json:"uid"`
	Pos     [2]int           `json:"pos"`
	Sensor  world.SensorSpec `json:"sensor"`
	Mailbox []world.Message  `json:"mailbox,omitempty"`
}

type SnapshotV1 struct {
	Header Header `json:"header"`

	Seed   int64 `json:"seed"`
	Seeded bool  `json:"seeded"`

	Width  int      `json:"width"`
	Height int      `json:"height"`
	Walls  [][2]int `json:"walls"`

	Agents []AgentV1 `json:"agents"`

	Digest string `json:"digest"`
}

// Capture builds a snapshot of w. Agents appear in ascending uid order,
// walls in row-major order, so equal worlds capture to equal snapshots.
func Capture(w *world.World, name string) SnapshotV1 {
	g := w.Grid()

	var walls [][2]int
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			if !g.IsWalkable(grid.Pos{X: x, Y: y}, nil) {
				walls = append(walls, [2]int{x, y})
			}
		}
	}

	var agents []AgentV1
	for _, a := range w.Agents() {
		pos, ok := a.Pos()
		if !ok {
			continue
		}
		agents = append(agents, AgentV1{
			UID:     a.UID(),
			Pos:     [2]int{pos.X, pos.Y},
			Sensor:  a.Sensor(),
			Mailbox: a.Mailbox(),
		})
	}

	seed, seeded := w.Seed()
	return SnapshotV1{
		Header: Header{Version: FormatVersion, Name: name, Tick: w.TickCount()},
		Seed:   seed,
		Seeded: seeded,
		Width:  g.Width(),
		Height: g.Height(),
		Walls:  walls,
		Agents: agents,
		Digest: w.StateDigest(),
	}
}

func Write(path string, snap SnapshotV1) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f)
	if err != nil {
		return err
	}
	if err := json.NewEncoder(enc).Encode(snap); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

func Read(path string) (SnapshotV1, error) {
	var snap SnapshotV1
	f, err := os.Open(path)
	if err != nil {
		return snap, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return snap, err
	}
	defer dec.Close()

	if err := json.NewDecoder(dec).Decode(&snap); err != nil {
		return snap, err
	}
	if snap.Header.Version != FormatVersion {
		return snap, fmt.Errorf("unsupported snapshot version %d", snap.Header.Version)
	}
	return snap, nil
}
