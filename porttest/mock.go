// Package porttest provides a controllable Port implementation for driving
// the scheduler and awaiter deterministically in tests (spec.md's end-to-end
// scenarios assume "time_tick is a controllable mock").
package porttest

import "sync"

// Mock is a Port whose tick is advanced explicitly by the test rather than
// by wall-clock time.
type Mock struct {
	mu   sync.Mutex
	tick uint64
}

// NewMock constructs a Mock starting at tick 0.
func NewMock() *Mock {
	return &Mock{}
}

// Now implements port.Port.
func (m *Mock) Now() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tick
}

// Advance moves the mock tick forward by delta milliseconds and returns the
// new tick.
func (m *Mock) Advance(delta uint64) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tick += delta
	return m.tick
}

// Set pins the mock tick to an absolute value.
func (m *Mock) Set(tick uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tick = tick
}
