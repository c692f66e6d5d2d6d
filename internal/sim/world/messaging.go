package world

// Message is one delivered mailbox entry.
type Message struct {
	SrcUID  uint64 `json:"src_uid"`
	Payload string `json:"payload"`
}

// deliver resolves a send action during the apply phase. Payloads are
// truncated to MaxMessageLen bytes, keeping the prefix. Because the apply
// phase walks agents in ascending uid order, a recipient's mailbox for one
// tick is ordered by ascending source uid with no extra sorting.
//
// A send to a uid not spawned in this world is not an error: it surfaces as
// a "send_failed" event, mirroring the unknown_action contract.
func (w *World) deliver(ctx *TickContext, src *Agent, act Action) {
	dst := w.agentByUID(act.Dst)
	if dst == nil {
		ctx.Emit("send_failed", map[string]any{"agent": src.uid, "to": act.Dst})
		return
	}

	payload := act.Payload
	if len(payload) > MaxMessageLen {
		payload = payload[:MaxMessageLen]
	}
	dst.mailbox = append(dst.mailbox, Message{SrcUID: src.uid, Payload: payload})
	ctx.Emit("sent", map[string]any{"agent": src.uid, "to": dst.uid, "len": len(payload)})
}

// Mailbox returns the agent's inbound messages from the most recent tick.
// The slice is shared; callers must not mutate it.
func (a *Agent) Mailbox() []Message {
	return a.mailbox
}
