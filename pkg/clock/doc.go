// Package clock provides the millisecond tick time base for the
// control loop.
//
// The tick counter mirrors a SysTick-style counter on a bare-metal
// target: a single 32-bit cell advanced by one writer (the tick
// interrupt, here a ticker goroutine) and read by everything else.
// Readers never touch the cell directly; they go through a Source and
// compute elapsed time with wrapping subtraction, so correctness holds
// across counter wraparound as long as the true interval fits in 32
// bits of milliseconds (about 49.7 days).
package clock
