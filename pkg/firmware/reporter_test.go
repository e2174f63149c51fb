package firmware

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/microbots/thermo.go/pkg/clock"
)

func newTestReporter(active bool) (*Reporter, *fakeSerial, *clock.Manual) {
	serial := &fakeSerial{}
	clk := clock.NewManual(0)
	clk.IdleStep = 1
	r := &Reporter{
		Serial: serial,
		Sensor: &fakeSensor{raw: 245},
		Clock:  clk,
		Active: func() bool { return active },
	}
	return r, serial, clk
}

func TestReporterInactive(t *testing.T) {
	r, serial, clk := newTestReporter(false)
	require.False(t, r.Poll())
	require.Empty(t, serial.out.String())
	require.Equal(t, clock.Ticks(0), clk.Now(), "no cadence delay when off")
}

func TestReporterEmitsAndPaces(t *testing.T) {
	r, serial, clk := newTestReporter(true)
	require.True(t, r.Poll())
	require.Equal(t, "Temp: 24 degC\r\n", serial.out.String())
	require.True(t, clock.Elapsed(clk.Now(), 0) >= reportCadence)
}

func TestReporterNegativeTemperature(t *testing.T) {
	serial := &fakeSerial{}
	clk := clock.NewManual(0)
	clk.IdleStep = 1
	r := &Reporter{
		Serial: serial,
		Sensor: &fakeSensor{raw: -150},
		Clock:  clk,
		Active: func() bool { return true },
	}
	require.True(t, r.Poll())
	require.Equal(t, "Temp: -15 degC\r\n", serial.out.String())
}
