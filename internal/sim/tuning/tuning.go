package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning carries operational sandbox parameters. Scenario-specific state
// (map, agents, scripted actions, seed) lives in the scenario file; this is
// the knob set an operator edits between runs.
type Tuning struct {
	OutDir string `yaml:"out_dir"`

	SnapshotEveryTicks int    `yaml:"snapshot_every_ticks"`
	IndexDBPath        string `yaml:"index_db_path"`
}

// Load reads a tuning file and applies defaults for unset fields.
func Load(path string) (Tuning, error) {
	var t Tuning
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning: %w", err)
	}
	t.applyDefaults()
	return t, nil
}

// Default returns the tuning used when no file is given.
func Default() Tuning {
	var t Tuning
	t.applyDefaults()
	return t
}

func (t *Tuning) applyDefaults() {
	if t.OutDir == "" {
		t.OutDir = "./runs"
	}
	if t.SnapshotEveryTicks <= 0 {
		t.SnapshotEveryTicks = 50
	}
}
