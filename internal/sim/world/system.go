package world

// System is a pluggable unit of behavior invoked at fixed points around core
// tick resolution. Hooks run strictly in system-registration order: every
// PreTick across all systems completes before the core apply phase, every
// Resolve runs after positions are final, every PostTick runs last.
//
// Systems read and append to the TickContext; events they emit interleave
// with core events in exactly the order the hooks ran.
type System interface {
	PreTick(w *World, ctx *TickContext)
	Resolve(w *World, ctx *TickContext)
	PostTick(w *World, ctx *TickContext)
}

// NopSystem is an embeddable no-op base so systems implement only the hooks
// they care about.
type NopSystem struct{}

func (NopSystem) PreTick(*World, *TickContext)  {}
func (NopSystem) Resolve(*World, *TickContext)  {}
func (NopSystem) PostTick(*World, *TickContext) {}
