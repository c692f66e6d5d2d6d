package world

// Event is an immutable record emitted during a tick. Events support
// external UI/logging/replay without embedding those concerns in the core.
type Event struct {
	Name string         `json:"name"`
	Data map[string]any `json:"data"`
}

// Emit appends an event to the tick's ordered sequence. The sequence is
// never reordered after emission.
func (c *TickContext) Emit(name string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	c.Events = append(c.Events, Event{Name: name, Data: data})
}

// EventsNamed filters a tick result's events by name, preserving order.
func (t Tick) EventsNamed(name string) []Event {
	var out []Event
	for _, e := range t.Events {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}
