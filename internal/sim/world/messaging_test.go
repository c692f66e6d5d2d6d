package world

import (
	"strings"
	"testing"

	"unlimitedworlds.ai/internal/sim/grid"
)

func TestMessaging_DeliveredSameTickObservableAfter(t *testing.T) {
	w := openWorld(t, 3, 3)
	a := NewAgent()
	b := NewAgent()
	mustSpawn(t, w, a, grid.Pos{X: 1, Y: 1})
	mustSpawn(t, w, b, grid.Pos{X: 2, Y: 1})

	a.Act(Send(b.UID(), "hi"))
	out := w.Tick()

	if len(out.EventsNamed("sent")) != 1 {
		t.Fatalf("events = %+v, want sent", out.Events)
	}

	obs, err := w.Observe(b)
	if err != nil {
		t.Fatalf("observe: %v", err)
	}
	found := false
	for _, m := range obs.Messages {
		if m.SrcUID == a.UID() && m.Payload == "hi" {
			found = true
		}
	}
	if !found {
		t.Fatalf("message not delivered: %+v", obs.Messages)
	}
}

func TestMessaging_OrderedByAscendingSourceUID(t *testing.T) {
	w := openWorld(t, 4, 1)
	s1 := NewAgent()
	s2 := NewAgent()
	s3 := NewAgent()
	recv := NewAgent()
	mustSpawn(t, w, s1, grid.Pos{X: 0, Y: 0})
	mustSpawn(t, w, s2, grid.Pos{X: 1, Y: 0})
	mustSpawn(t, w, s3, grid.Pos{X: 2, Y: 0})
	mustSpawn(t, w, recv, grid.Pos{X: 3, Y: 0})

	// Submit in shuffled order; delivery order follows uid, not submit order.
	s3.Act(Send(recv.UID(), "three"))
	s1.Act(Send(recv.UID(), "one"))
	s2.Act(Send(recv.UID(), "two"))
	w.Tick()

	obs, err := w.Observe(recv)
	if err != nil {
		t.Fatalf("observe: %v", err)
	}
	if len(obs.Messages) != 3 {
		t.Fatalf("messages = %+v, want 3", obs.Messages)
	}
	for i := 1; i < len(obs.Messages); i++ {
		if obs.Messages[i-1].SrcUID >= obs.Messages[i].SrcUID {
			t.Fatalf("messages not in ascending src uid order: %+v", obs.Messages)
		}
	}
	if obs.Messages[0].Payload != "one" || obs.Messages[2].Payload != "three" {
		t.Fatalf("unexpected payload order: %+v", obs.Messages)
	}
}

func TestMessaging_PayloadTruncatedToBound(t *testing.T) {
	w := openWorld(t, 3, 3)
	a := NewAgent()
	b := NewAgent()
	mustSpawn(t, w, a, grid.Pos{X: 0, Y: 0})
	mustSpawn(t, w, b, grid.Pos{X: 1, Y: 0})

	a.Act(Send(b.UID(), strings.Repeat("x", MaxMessageLen+10)))
	w.Tick()

	obs, err := w.Observe(b)
	if err != nil {
		t.Fatalf("observe: %v", err)
	}
	if len(obs.Messages) != 1 {
		t.Fatalf("messages = %+v", obs.Messages)
	}
	if got := len(obs.Messages[0].Payload); got != MaxMessageLen {
		t.Fatalf("payload length = %d, want %d", got, MaxMessageLen)
	}
}

func TestMessaging_MailboxRewrittenEachTick(t *testing.T) {
	w := openWorld(t, 3, 3)
	a := NewAgent()
	b := NewAgent()
	mustSpawn(t, w, a, grid.Pos{X: 0, Y: 0})
	mustSpawn(t, w, b, grid.Pos{X: 1, Y: 0})

	a.Act(Send(b.UID(), "first"))
	w.Tick()

	// An idle tick clears the unread message.
	w.Tick()
	obs, err := w.Observe(b)
	if err != nil {
		t.Fatalf("observe: %v", err)
	}
	if len(obs.Messages) != 0 {
		t.Fatalf("mailbox must be rewritten each tick, got %+v", obs.Messages)
	}

	// New traffic replaces, never appends across ticks.
	a.Act(Send(b.UID(), "second"))
	w.Tick()
	obs, err = w.Observe(b)
	if err != nil {
		t.Fatalf("observe: %v", err)
	}
	if len(obs.Messages) != 1 || obs.Messages[0].Payload != "second" {
		t.Fatalf("messages = %+v, want only second", obs.Messages)
	}
}

func TestMessaging_UnknownRecipientIsNonFatal(t *testing.T) {
	w := openWorld(t, 3, 3)
	a := NewAgent()
	mustSpawn(t, w, a, grid.Pos{X: 0, Y: 0})

	a.Act(Send(99999999, "void"))
	out := w.Tick()

	if len(out.EventsNamed("send_failed")) != 1 {
		t.Fatalf("events = %+v, want send_failed", out.Events)
	}
	if w.TickCount() != 1 {
		t.Fatalf("tick must complete")
	}
}

func TestMessaging_SelfSendDelivers(t *testing.T) {
	w := openWorld(t, 3, 3)
	a := NewAgent()
	mustSpawn(t, w, a, grid.Pos{X: 0, Y: 0})

	a.Act(Send(a.UID(), "note to self"))
	w.Tick()

	obs, err := w.Observe(a)
	if err != nil {
		t.Fatalf("observe: %v", err)
	}
	if len(obs.Messages) != 1 || obs.Messages[0].SrcUID != a.UID() {
		t.Fatalf("messages = %+v", obs.Messages)
	}
}
