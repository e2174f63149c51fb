package clock

// Ticks counts milliseconds since boot. It wraps around at 2^32.
type Ticks uint32

// Source provides the current tick count.
type Source interface {
	// Now returns the current tick count.
	Now() Ticks
	// Idle hints the source that the caller has nothing to do until
	// the counter advances. On a hosted OS this yields the CPU; on a
	// bare-metal target it would be a plain spin.
	Idle()
}

// Elapsed computes now - since with wrapping subtraction.
// The result is valid across a counter wraparound as long as the true
// interval is below the full counter range.
func Elapsed(now, since Ticks) Ticks {
	return now - since
}

// Sleep blocks until at least d ticks have elapsed on src.
// It busy-polls Now and is not cancellable. It assumes the source
// keeps advancing; if the tick writer stops, Sleep never returns.
func Sleep(src Source, d Ticks) {
	start := src.Now()
	for Elapsed(src.Now(), start) < d {
		src.Idle()
	}
}
