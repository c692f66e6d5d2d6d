package world

// TickLogger is an optional per-tick sink. Implemented in
// internal/persistence/log; the world never blocks on it and ignores write
// failures (persistence is advisory, simulation state is authoritative).
type TickLogger interface {
	WriteTick(entry TickLogEntry) error
}

// TickLogEntry is one tick log record.
type TickLogEntry struct {
	Tick   uint64  `json:"tick"`
	Events []Event `json:"events,omitempty"`
	Digest string  `json:"digest"`
}
