package world

// SensorShape selects the cell-admission rule for an agent's sensor.
type SensorShape string

const (
	// ShapeManhattan admits offsets with |dx|+|dy| <= radius.
	ShapeManhattan SensorShape = "manhattan"
	// ShapeSquare admits offsets with max(|dx|,|dy|) <= radius.
	ShapeSquare SensorShape = "square"
)

// SensorSpec is an agent's field-of-view configuration.
type SensorSpec struct {
	Radius int         `json:"radius" yaml:"radius"`
	Shape  SensorShape `json:"shape" yaml:"shape"`
}

// DefaultSensor is the sensor agents get when the caller does not care:
// manhattan, radius 2.
func DefaultSensor() SensorSpec {
	return SensorSpec{Radius: 2, Shape: ShapeManhattan}
}

// Agent is an actor entity. It may exist detached from any world; external
// code enqueues intents via Act and the world consumes them on Tick.
type Agent struct {
	Entity

	sensor SensorSpec

	// Single-slot intent buffer: last write before the tick wins,
	// consumed exactly once per tick.
	queued    Action
	hasQueued bool

	// Inbound messages from the most recent tick. Rewritten each tick.
	mailbox []Message
}

// NewAgent allocates an agent with a fresh uid and the default sensor.
func NewAgent() *Agent {
	return &Agent{Entity: newEntity(), sensor: DefaultSensor()}
}

// NewAgentWithSensor allocates an agent with the given sensor spec.
func NewAgentWithSensor(s SensorSpec) *Agent {
	return &Agent{Entity: newEntity(), sensor: s}
}

func (a *Agent) Sensor() SensorSpec { return a.sensor }

// Act enqueues an action for the next tick. Calling Act again before the
// tick replaces the previous action; there is no deeper queue. Nothing is
// validated here — validation happens during tick resolution.
func (a *Agent) Act(act Action) {
	a.queued = act
	a.hasQueued = true
}

// takeQueued consumes the pending action for this tick.
func (a *Agent) takeQueued() (Action, bool) {
	if !a.hasQueued {
		return Action{}, false
	}
	act := a.queued
	a.queued = Action{}
	a.hasQueued = false
	return act, true
}
