package protocol

import (
	"sort"

	"unlimitedworlds.ai/internal/sim/world"
)

// AgentPos is one roster entry in a STATE message, position as [x, y].
type AgentPos struct {
	UID uint64 `json:"uid"`
	Pos [2]int `json:"pos"`
}

// StateMsg serializes a WorldState. Agents are listed in ascending uid
// order so equal states encode to identical bytes.
type StateMsg struct {
	Type            string     `json:"type"`
	ProtocolVersion string     `json:"protocol_version"`
	Tick            uint64     `json:"tick"`
	Agents          []AgentPos `json:"agents"`
}

func EncodeState(ws world.WorldState) StateMsg {
	agents := make([]AgentPos, 0, len(ws.Positions))
	for uid, pos := range ws.Positions {
		agents = append(agents, AgentPos{UID: uid, Pos: [2]int{pos.X, pos.Y}})
	}
	sort.Slice(agents, func(i, j int) bool { return agents[i].UID < agents[j].UID })
	return StateMsg{
		Type:            TypeState,
		ProtocolVersion: Version,
		Tick:            ws.Tick,
		Agents:          agents,
	}
}

// EventMsg serializes one tick event.
type EventMsg struct {
	Type            string         `json:"type"`
	ProtocolVersion string         `json:"protocol_version"`
	Tick            uint64         `json:"tick"`
	Name            string         `json:"name"`
	Data            map[string]any `json:"data"`
}

func EncodeEvent(tick uint64, e world.Event) EventMsg {
	return EventMsg{
		Type:            TypeEvent,
		ProtocolVersion: Version,
		Tick:            tick,
		Name:            e.Name,
		Data:            e.Data,
	}
}

// TileObs is one visible cell in an OBS message.
type TileObs struct {
	Pos  [2]int `json:"pos"`
	Kind string `json:"kind"`
}

// EntityObs is one visible entity in an OBS message.
type EntityObs struct {
	UID  uint64 `json:"uid"`
	Kind string `json:"kind"`
	Pos  [2]int `json:"pos"`
}

// MessageObs is one mailbox entry in an OBS message.
type MessageObs struct {
	SrcUID  uint64 `json:"src_uid"`
	Payload string `json:"payload"`
}

// ObsMsg serializes an Observation. Sequence order is preserved from the
// engine (tiles dy/dx scan order, entities and messages ascending src uid).
type ObsMsg struct {
	Type            string       `json:"type"`
	ProtocolVersion string       `json:"protocol_version"`
	Tick            uint64       `json:"tick"`
	SelfUID         uint64       `json:"self_uid"`
	SelfPos         [2]int       `json:"self_pos"`
	Tiles           []TileObs    `json:"tiles"`
	Entities        []EntityObs  `json:"entities"`
	Messages        []MessageObs `json:"messages"`
}

func EncodeObs(o world.Observation) ObsMsg {
	tiles := make([]TileObs, 0, len(o.Tiles))
	for _, t := range o.Tiles {
		tiles = append(tiles, TileObs{Pos: [2]int{t.Pos.X, t.Pos.Y}, Kind: t.Kind})
	}
	entities := make([]EntityObs, 0, len(o.Entities))
	for _, e := range o.Entities {
		entities = append(entities, EntityObs{UID: e.UID, Kind: e.Kind, Pos: [2]int{e.Pos.X, e.Pos.Y}})
	}
	messages := make([]MessageObs, 0, len(o.Messages))
	for _, m := range o.Messages {
		messages = append(messages, MessageObs{SrcUID: m.SrcUID, Payload: m.Payload})
	}
	return ObsMsg{
		Type:            TypeObs,
		ProtocolVersion: Version,
		Tick:            o.Tick,
		SelfUID:         o.SelfUID,
		SelfPos:         [2]int{o.SelfPos.X, o.SelfPos.Y},
		Tiles:           tiles,
		Entities:        entities,
		Messages:        messages,
	}
}
