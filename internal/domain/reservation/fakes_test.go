package reservation

import (
	"context"
	"sync"
)

type mutexLocker struct {
	locks sync.Map
}

func (l *mutexLocker) Lock(_ context.Context, key string) (func(), error) {
	v, _ := l.locks.LoadOrStore(key, &sync.Mutex{})
	m := v.(*sync.Mutex)
	m.Lock()
	return m.Unlock, nil
}

type countingRecorder struct {
	mu        sync.Mutex
	outcomes  map[string]int
	cancelled int
}

func (r *countingRecorder) BookingAttempt(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes[outcome]++
}

func (r *countingRecorder) ReservationCancelled() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cancelled++
}

func (r *countingRecorder) get(outcome string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.outcomes[outcome]
}

type capturingBroadcaster struct {
	mu     sync.Mutex
	events []Event
}

func (b *capturingBroadcaster) Broadcast(v any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if e, ok := v.(Event); ok {
		b.events = append(b.events, e)
	}
}

func (b *capturingBroadcaster) types() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, 0, len(b.events))
	for _, e := range b.events {
		out = append(out, e.Type)
	}
	return out
}
