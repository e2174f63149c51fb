package firmware

import (
	"context"
	"fmt"

	"github.com/microbots/thermo.go/pkg/clock"
)

// settleDelay follows peripheral bring-up before the banner goes out.
const settleDelay clock.Ticks = 50

var bannerLines = []string{
	"Thermo Demo\r\n",
	"T - to toggle temperature reading\r\n",
	"L<0-99> - to set LED brightness\r\n",
}

// Loop composes the dispatcher and reporter into the forever-running
// control loop.
type Loop struct {
	Serial Serial
	LED    PWM
	Sensor TempSensor
	Clock  clock.Source

	dispatcher Dispatcher
	reporter   Reporter
}

// NewLoop wires a Loop over the given drivers and tick source.
func NewLoop(serial Serial, led PWM, sensor TempSensor, clk clock.Source) *Loop {
	l := &Loop{Serial: serial, LED: led, Sensor: sensor, Clock: clk}
	l.dispatcher = Dispatcher{Serial: serial, LED: led, Clock: clk}
	l.reporter = Reporter{
		Serial: serial,
		Sensor: sensor,
		Clock:  clk,
		Active: l.dispatcher.Monitoring,
	}
	return l
}

// Name implements framework.Named.
func (l *Loop) Name() string {
	return "firmware"
}

// Run boots the drivers and runs the control loop until the context
// is canceled. Cancellation is only observed between passes; the
// blocking waits inside a pass are not interruptible.
func (l *Loop) Run(ctx context.Context) error {
	if err := l.boot(); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		busy := l.dispatcher.Poll()
		busy = l.reporter.Poll() || busy
		if !busy {
			l.Clock.Idle()
		}
	}
}

// boot configures the peripherals, drops stale input, and prints the
// help banner.
func (l *Loop) boot() error {
	if err := l.Serial.Configure(); err != nil {
		return fmt.Errorf("serial: %v", err)
	}
	if err := l.LED.Configure(); err != nil {
		return fmt.Errorf("led: %v", err)
	}
	if err := l.Sensor.Configure(); err != nil {
		return fmt.Errorf("sensor: %v", err)
	}

	for l.Serial.ByteAvailable() {
		l.Serial.ReceiveByte()
	}
	clock.Sleep(l.Clock, settleDelay)

	for _, line := range bannerLines {
		l.Serial.SendString(line)
	}
	return nil
}
