package clock

import (
	"context"
	"sync/atomic"
	"time"
)

// TickInterval is the real-time quantum of one tick.
const TickInterval = time.Millisecond

// SysClock is the process-wide tick source. A single goroutine
// (started by Run) advances the counter once per TickInterval, playing
// the role of the tick interrupt; any number of goroutines may read it.
type SysClock struct {
	ticks uint32
}

// NewSysClock creates a SysClock with the counter at zero.
func NewSysClock() *SysClock {
	return &SysClock{}
}

// Now implements Source.
func (c *SysClock) Now() Ticks {
	return Ticks(atomic.LoadUint32(&c.ticks))
}

// Idle implements Source. It sleeps a fraction of a tick so polling
// loops observe every counter increment without pinning a CPU.
func (c *SysClock) Idle() {
	time.Sleep(TickInterval / 5)
}

// Name implements framework.Named.
func (c *SysClock) Name() string {
	return "sysclock"
}

// Run advances the counter until the context is canceled.
// It implements framework.Runnable.
func (c *SysClock) Run(ctx context.Context) error {
	ticker := time.NewTicker(TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			atomic.AddUint32(&c.ticks, 1)
		}
	}
}
