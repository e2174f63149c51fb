package clock

import "sync/atomic"

// Manual is a tick source advanced explicitly by the caller. It backs
// deterministic tests and the simulated sensor's time axis.
type Manual struct {
	ticks uint32

	// IdleStep is how many ticks each Idle call advances. Zero means
	// Idle is a no-op; set it to 1 to let blocked Sleep calls make
	// progress without a real timer.
	IdleStep Ticks
}

// NewManual creates a Manual source starting at t.
func NewManual(t Ticks) *Manual {
	return &Manual{ticks: uint32(t)}
}

// Now implements Source.
func (m *Manual) Now() Ticks {
	return Ticks(atomic.LoadUint32(&m.ticks))
}

// Idle implements Source.
func (m *Manual) Idle() {
	if m.IdleStep > 0 {
		m.Advance(m.IdleStep)
	}
}

// Advance moves the counter forward by d ticks.
func (m *Manual) Advance(d Ticks) {
	atomic.AddUint32(&m.ticks, uint32(d))
}
