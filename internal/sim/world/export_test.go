package world

// resetUIDCounter rewinds the process-wide id allocator so two in-process
// worlds can be built with identical uid sequences, the way two fresh
// processes would. Test-only; production code never rewinds uids.
func resetUIDCounter() {
	nextUID.Store(0)
}
