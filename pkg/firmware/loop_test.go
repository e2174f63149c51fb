package firmware

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/microbots/thermo.go/pkg/clock"
)

func newTestLoop(in string) (*Loop, *fakeSerial, *fakePWM, *clock.Manual) {
	serial := &fakeSerial{in: []byte(in)}
	led := &fakePWM{}
	clk := clock.NewManual(0)
	clk.IdleStep = 1
	return NewLoop(serial, led, &fakeSensor{raw: 300}, clk), serial, led, clk
}

func TestLoopBoot(t *testing.T) {
	l, serial, led, clk := newTestLoop("zz") // stale bytes from before reset
	require.NoError(t, l.boot())

	require.True(t, serial.configured)
	require.True(t, led.configured)
	require.False(t, serial.ByteAvailable(), "stale input must be drained")
	require.True(t, clock.Elapsed(clk.Now(), 0) >= settleDelay)
	require.Equal(t,
		"Thermo Demo\r\n"+
			"T - to toggle temperature reading\r\n"+
			"L<0-99> - to set LED brightness\r\n",
		serial.out.String())
}

func TestLoopCommandAndReportExclusion(t *testing.T) {
	// With monitoring on, a digit-entry sub-flow must suppress
	// temperature output until it completes, even though more than one
	// cadence elapses while waiting.
	l, serial, _, _ := newTestLoop("T")

	require.True(t, l.dispatcher.Poll())
	require.True(t, l.dispatcher.Monitoring())
	serial.out.Reset()

	serial.in = []byte("L") // no digits follow; waits out the timeout
	require.True(t, l.dispatcher.Poll())

	waitOut := serial.out.String()
	require.NotContains(t, waitOut, "Temp:")
	require.True(t, strings.HasSuffix(waitOut, "No digits received after L command\r\n"))

	// Next pass resumes reporting.
	serial.out.Reset()
	require.True(t, l.reporter.Poll())
	require.Equal(t, "Temp: 30 degC\r\n", serial.out.String())
}

func TestLoopTogglePacesReports(t *testing.T) {
	l, serial, _, clk := newTestLoop("T")
	require.True(t, l.dispatcher.Poll())

	start := clk.Now()
	for i := 0; i < 3; i++ {
		require.True(t, l.reporter.Poll())
	}
	require.True(t, clock.Elapsed(clk.Now(), start) >= 3*reportCadence)
	require.Equal(t, 3, strings.Count(serial.out.String(), "Temp: 30 degC\r\n"))

	serial.in = []byte("T")
	require.True(t, l.dispatcher.Poll())
	require.False(t, l.reporter.Poll(), "no emission once toggled off")
}

func TestLoopRunCancel(t *testing.T) {
	l, serial, _, _ := newTestLoop("")
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() { errCh <- l.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()
	select {
	case err := <-errCh:
		require.Equal(t, context.Canceled, err)
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop")
	}
	require.Contains(t, serial.out.String(), "Thermo Demo\r\n")
}
