package services

import "sync/atomic"

// BusyGate is the single mutual-exclusion primitive of the orchestrator:
// at most one top-level workflow may hold it. TryBegin never blocks; a
// rejected caller must treat its request as a no-op.
type BusyGate struct {
	held atomic.Bool
}

// NewBusyGate creates a free gate
func NewBusyGate() *BusyGate {
	return &BusyGate{}
}

// TryBegin acquires the gate, returning false if it is already held
func (g *BusyGate) TryBegin() bool {
	return g.held.CompareAndSwap(false, true)
}

// End releases the gate. Callers defer End immediately after a
// successful TryBegin so release runs on every exit path.
func (g *BusyGate) End() {
	g.held.Store(false)
}

// Busy reports whether the gate is currently held
func (g *BusyGate) Busy() bool {
	return g.held.Load()
}
