// Package firmware implements the device control loop: a single
// cooperative thread that interleaves serial command handling with
// periodic temperature reporting.
//
// The loop owns no goroutines of its own. Command handling and
// temperature reporting are mutually exclusive within one pass: each
// runs to completion, including its blocking delays, before the other
// starts. The only concurrent actor is the tick writer behind the
// clock source.
package firmware
