package firmware

import (
	"fmt"

	"github.com/microbots/thermo.go/pkg/clock"
)

// Command and timing constants, in ticks (milliseconds).
const (
	digitTimeout clock.Ticks = 5000 // give up on an abandoned L entry
	digitSettle  clock.Ticks = 5    // pause after each accepted digit
	maxDigits                = 2
	maxDuty                  = 99
)

type dispatchState int

const (
	stateIdle dispatchState = iota
	stateAwaitingDigits
)

// Dispatcher decides what a received byte means and drives the
// resulting sub-flow. It recognizes two commands:
//
//	T/t  toggle temperature monitoring
//	L/l  collect up to two digits and set the LED duty
type Dispatcher struct {
	Serial Serial
	LED    PWM
	Clock  clock.Source

	monitoring bool

	state dispatchState
	start clock.Ticks // L sub-flow deadline reference
	buf   [maxDigits]byte
	n     int
}

// Monitoring reports whether periodic temperature reporting is active.
func (d *Dispatcher) Monitoring() bool {
	return d.monitoring
}

// Poll handles at most one command. A digit-entry sub-flow runs to
// completion before Poll returns, so no other loop work interleaves
// with it. It reports whether any input was consumed.
func (d *Dispatcher) Poll() bool {
	if !d.Serial.ByteAvailable() {
		return false
	}
	d.dispatch(d.Serial.ReceiveByte())
	for d.state == stateAwaitingDigits {
		d.step()
	}
	return true
}

func (d *Dispatcher) dispatch(b byte) {
	switch b {
	case 'T', 't':
		d.monitoring = !d.monitoring
		if d.monitoring {
			d.Serial.SendString("Temperature reading ON\r\n")
		} else {
			d.Serial.SendString("Temperature reading OFF\r\n")
		}
	case 'L', 'l':
		d.Serial.SendString("LED command received, waiting for digits...\r\n")
		d.start = d.Clock.Now()
		d.n = 0
		d.state = stateAwaitingDigits
	default:
		// not a command, stay idle
	}
}

// step performs one digit-entry transition: finish on buffer-full or
// timeout, otherwise consume and echo one byte if available. A
// non-digit byte aborts the sub-flow.
func (d *Dispatcher) step() {
	if d.n >= maxDigits || clock.Elapsed(d.Clock.Now(), d.start) >= digitTimeout {
		d.finish()
		return
	}
	if !d.Serial.ByteAvailable() {
		d.Clock.Idle()
		return
	}
	b := d.Serial.ReceiveByte()
	d.Serial.SendByte(b) // echo for operator feedback
	if b < '0' || b > '9' {
		d.finish()
		return
	}
	d.buf[d.n] = b
	d.n++
	clock.Sleep(d.Clock, digitSettle)
}

// finish applies the accumulated digits, if any, and returns to idle.
func (d *Dispatcher) finish() {
	if d.n > 0 {
		duty := clampDuty(parseDigits(d.buf[:d.n]))
		d.LED.SetDuty(duty)
		d.Serial.SendString(fmt.Sprintf("\r\nLED brightness set to %d%%\r\n", duty))
	} else {
		d.Serial.SendString("No digits received after L command\r\n")
	}
	d.n = 0
	d.state = stateIdle
}

func parseDigits(digits []byte) int {
	v := 0
	for _, b := range digits {
		v = v*10 + int(b-'0')
	}
	return v
}

func clampDuty(v int) int {
	if v > maxDuty {
		return maxDuty
	}
	if v < 0 {
		return 0
	}
	return v
}
