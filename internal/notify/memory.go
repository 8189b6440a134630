package notify

import (
	"context"
	"sync"
)

// NopPort discards all events. Used when no broker is configured.
type NopPort struct{}

func (NopPort) Emit(context.Context, Event) error {
	return nil
}

// MemoryPort records all emitted events. Used in tests and for local
// development without a broker.
type MemoryPort struct {
	mu     sync.Mutex
	events []Event

	// Err, if set, is returned by every Emit call after recording.
	Err error
}

func (p *MemoryPort) Emit(_ context.Context, event Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, event)
	return p.Err
}

// Events returns a copy of all recorded events.
func (p *MemoryPort) Events() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()

	events := make([]Event, len(p.events))
	copy(events, p.events)
	return events
}
