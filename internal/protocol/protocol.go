// Package protocol defines the JSON boundary for external collaborators:
// transports, storage and front-ends serialize world state, events and
// observations through these message shapes. The simulation core never
// depends on this package.
package protocol

import "encoding/json"

const Version = "1.0"

// Message types.
const (
	TypeState = "STATE"
	TypeEvent = "EVENT"
	TypeObs   = "OBS"
)

// BaseMessage lets us route unknown JSON messages by type.
type BaseMessage struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version,omitempty"`
}

func DecodeBase(b []byte) (BaseMessage, error) {
	var m BaseMessage
	err := json.Unmarshal(b, &m)
	return m, err
}
