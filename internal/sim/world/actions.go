package world

// Dir is a cardinal movement direction.
type Dir string

const (
	North Dir = "N"
	East  Dir = "E"
	South Dir = "S"
	West  Dir = "W"
)

// Offset returns the (dx, dy) cell delta for the direction. Unknown
// directions move nowhere.
func (d Dir) Offset() (int, int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	}
	return 0, 0
}

// ActionKind discriminates the Action variant.
type ActionKind string

const (
	ActWait ActionKind = "wait"
	ActMove ActionKind = "move"
	ActSend ActionKind = "send"
	// ActUnknown carries an action kind the engine does not recognize.
	// Unknown kinds are valid forward-compatible data, not malformed input;
	// the tick surfaces them as "unknown_action" events.
	ActUnknown ActionKind = "unknown"
)

// MaxMessageLen bounds a send payload in bytes. Longer payloads are
// truncated to this prefix on delivery.
const MaxMessageLen = 256

// Action is a tagged intent. Only the fields of the active variant are
// meaningful: Dir for move, Dst/Payload for send, Raw for unknown.
type Action struct {
	Kind    ActionKind `json:"kind"`
	Dir     Dir        `json:"dir,omitempty"`
	Dst     uint64     `json:"dst,omitempty"`
	Payload string     `json:"payload,omitempty"`
	Raw     string     `json:"raw,omitempty"`
}

// Wait requests doing nothing this tick.
func Wait() Action {
	return Action{Kind: ActWait}
}

// Move requests a one-cell move in the given direction.
func Move(d Dir) Action {
	return Action{Kind: ActMove, Dir: d}
}

// Send requests delivery of payload to the agent with uid dst.
func Send(dst uint64, payload string) Action {
	return Action{Kind: ActSend, Dst: dst, Payload: payload}
}

// Unknown wraps an unrecognized action kind, preserving its raw name.
func Unknown(name string) Action {
	return Action{Kind: ActUnknown, Raw: name}
}
