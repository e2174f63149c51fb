// Package sim provides a simulated board: UART, PWM LED and ADC
// temperature sensor implementations backing the firmware's driver
// interfaces without hardware.
package sim

import (
	"context"
	"io"

	"github.com/microbots/thermo.go/pkg/clock"
)

// Board bundles the simulated peripherals.
type Board struct {
	UART   *UART
	LED    *PWM
	Sensor *ADC
}

// NewBoard assembles a board from the configuration, with the serial
// wire carrying the operator-facing byte stream.
func (c Config) NewBoard(wire io.ReadWriter, clk clock.Source) *Board {
	return &Board{
		UART:   NewUART(wire, c.UART),
		LED:    NewPWM(),
		Sensor: NewADC(c.Sensor, clk),
	}
}

// Name implements framework.Named.
func (b *Board) Name() string {
	return "board"
}

// Run pumps the board's background activity (the UART receive path)
// until the context is canceled. It implements framework.Runnable.
func (b *Board) Run(ctx context.Context) error {
	return b.UART.Run(ctx)
}
