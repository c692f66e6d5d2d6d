// Package script loads and runs scenario files: a declarative map, roster
// and per-tick action schedule for a world. The sandbox runs scenarios to
// produce logs and snapshots; replay re-runs them to verify digests.
package script

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"unlimitedworlds.ai/internal/sim/grid"
	"unlimitedworlds.ai/internal/sim/world"
)

type Scenario struct {
	Name  string `yaml:"name"`
	Seed  int64  `yaml:"seed"`
	Ticks uint64 `yaml:"ticks"`

	Grid    GridSpec     `yaml:"grid"`
	Agents  []AgentSpec  `yaml:"agents"`
	Systems []SystemSpec `yaml:"systems"`
	Steps   []Step       `yaml:"steps"`
}

type GridSpec struct {
	Width  int      `yaml:"width"`
	Height int      `yaml:"height"`
	Walls  [][2]int `yaml:"walls"`
}

type AgentSpec struct {
	ID     string            `yaml:"id"`
	At     [2]int            `yaml:"at"`
	Sensor *world.SensorSpec `yaml:"sensor"`
}

type SystemSpec struct {
	Kind  string `yaml:"kind"`
	Every uint64 `yaml:"every"`
}

type Step struct {
	Tick uint64    `yaml:"tick"`
	Acts []ActSpec `yaml:"acts"`
}

type ActSpec struct {
	Agent   string `yaml:"agent"`
	Action  string `yaml:"action"`
	Dir     string `yaml:"dir"`
	To      string `yaml:"to"`
	Payload string `yaml:"payload"`
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(raw, &sc); err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}
	if err := sc.validate(); err != nil {
		return nil, fmt.Errorf("scenario %q: %w", sc.Name, err)
	}
	return &sc, nil
}

func (sc *Scenario) validate() error {
	if sc.Grid.Width <= 0 || sc.Grid.Height <= 0 {
		return fmt.Errorf("grid must have positive dimensions")
	}
	if sc.Ticks == 0 {
		return fmt.Errorf("ticks must be > 0")
	}
	ids := make(map[string]bool, len(sc.Agents))
	for _, a := range sc.Agents {
		if a.ID == "" {
			return fmt.Errorf("agent without id")
		}
		if ids[a.ID] {
			return fmt.Errorf("duplicate agent id %q", a.ID)
		}
		ids[a.ID] = true
	}
	for _, st := range sc.Steps {
		for _, act := range st.Acts {
			if !ids[act.Agent] {
				return fmt.Errorf("step tick %d: unknown agent %q", st.Tick, act.Agent)
			}
		}
	}
	return nil
}

// BuildGrid materializes the scenario map.
func (sc *Scenario) BuildGrid() (*grid.Grid, error) {
	g := grid.New(sc.Grid.Width, sc.Grid.Height, grid.Floor{})
	for _, wall := range sc.Grid.Walls {
		if err := g.Set(grid.Pos{X: wall[0], Y: wall[1]}, grid.Wall{}); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Spawn creates the scenario roster in declaration order and spawns it into
// w. Declaration order fixes uid order, which the action schedule and
// digest chain depend on.
func (sc *Scenario) Spawn(w *world.World) (map[string]*world.Agent, error) {
	agents := make(map[string]*world.Agent, len(sc.Agents))
	for _, spec := range sc.Agents {
		var a *world.Agent
		if spec.Sensor != nil {
			a = world.NewAgentWithSensor(*spec.Sensor)
		} else {
			a = world.NewAgent()
		}
		if err := w.Spawn(a, grid.Pos{X: spec.At[0], Y: spec.At[1]}); err != nil {
			return nil, fmt.Errorf("spawn %q: %w", spec.ID, err)
		}
		agents[spec.ID] = a
	}
	return agents, nil
}

// QueueActs submits the scheduled actions for the given tick number
// (1-based, the tick about to run).
func (sc *Scenario) QueueActs(tick uint64, agents map[string]*world.Agent) error {
	for _, st := range sc.Steps {
		if st.Tick != tick {
			continue
		}
		for _, spec := range st.Acts {
			act, err := spec.Build(agents)
			if err != nil {
				return fmt.Errorf("tick %d: %w", tick, err)
			}
			agents[spec.Agent].Act(act)
		}
	}
	return nil
}

// Build translates an action spec into an engine action. Unrecognized
// action names become Unknown actions on purpose: scenarios are allowed to
// exercise the forward-compatibility path.
func (spec ActSpec) Build(agents map[string]*world.Agent) (world.Action, error) {
	switch spec.Action {
	case "wait":
		return world.Wait(), nil
	case "move":
		return world.Move(world.Dir(spec.Dir)), nil
	case "send":
		dst, ok := agents[spec.To]
		if !ok {
			return world.Action{}, fmt.Errorf("send from %q: unknown recipient %q", spec.Agent, spec.To)
		}
		return world.Send(dst.UID(), spec.Payload), nil
	default:
		return world.Unknown(spec.Action), nil
	}
}
