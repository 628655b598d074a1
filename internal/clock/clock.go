// Package clock provides the time source used to stamp notes.
package clock

import (
	"sync"
	"time"
)

// Clock is a source of the current time.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock in UTC.
type System struct{}

// Now returns the current wall time in UTC (without a monotonic reading).
func (System) Now() time.Time {
	return time.Now().UTC()
}

// Monotonic оборачивает другой Clock и гарантирует строго возрастающие
// значения в пределах процесса: если источник вернул время не позже
// предыдущего, результат сдвигается на 1ns вперед.
type Monotonic struct {
	last   time.Time  // последнее выданное значение
	source Clock      // источник физического времени
	mu     sync.Mutex // мьютекс для потокобезопасности
}

// NewMonotonic создает монотонные часы поверх source.
// nil source означает System.
func NewMonotonic(source Clock) *Monotonic {
	if source == nil {
		source = System{}
	}
	return &Monotonic{source: source}
}

// Now returns a timestamp strictly greater than every value returned or
// observed before.
func (m *Monotonic) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := m.source.Now()
	if !t.After(m.last) {
		t = m.last.Add(time.Nanosecond)
	}
	m.last = t

	return t
}

// Observe advances the clock past a timestamp seen elsewhere (for example in
// persisted notes), so later stamps sort after it even if the wall clock
// went backwards. Аналог Update у часов Лампорта: last = max(last, t).
func (m *Monotonic) Observe(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if t.After(m.last) {
		m.last = t
	}
}

// Last returns the most recent value handed out or observed.
func (m *Monotonic) Last() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.last
}

// Manual is a Clock controlled by the caller. Used in tests.
type Manual struct {
	now time.Time
	mu  sync.Mutex
}

// NewManual creates a Manual clock set to t.
func NewManual(t time.Time) *Manual {
	return &Manual{now: t}
}

// Now returns the current manual time.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.now
}

// Set moves the clock to t.
func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.now = t
}

// Advance moves the clock forward by d.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.now = m.now.Add(d)
}
