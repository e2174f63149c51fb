// thermd runs the simulated temperature/LED device: the firmware
// control loop over a simulated board, with the serial line exposed to
// operators over stdio, TCP, websocket or MQTT.
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"net"
	"net/http"
	"os"

	"github.com/golang/glog"

	"github.com/microbots/thermo.go/pkg/board/sim"
	"github.com/microbots/thermo.go/pkg/clock"
	"github.com/microbots/thermo.go/pkg/comm/mqtt"
	"github.com/microbots/thermo.go/pkg/comm/stream"
	"github.com/microbots/thermo.go/pkg/comm/ws"
	"github.com/microbots/thermo.go/pkg/env"
	"github.com/microbots/thermo.go/pkg/firmware"
	fx "github.com/microbots/thermo.go/pkg/framework"
)

var (
	boardFile string
	listenTCP string
	listenWS  string
	mqttURL   string
	device    string
	useStdio  bool
)

func init() {
	if val := os.Getenv("THERMO_MQTT_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&boardFile, "board", "", "Board description YAML; default is a room-temperature board.")
	flag.StringVar(&listenTCP, "listen", "", "TCP address serving the serial line.")
	flag.StringVar(&listenWS, "listen-ws", "", "HTTP address serving the serial line over websocket at /serial.")
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL bridging the serial line.")
	flag.StringVar(&device, "device", "", "Device name for MQTT topics; default derives from the machine ID.")
	flag.BoolVar(&useStdio, "stdio", false, "Attach the serial line to stdin/stdout.")
}

// stdio adapts the process streams to the connection interface the
// stream server expects.
type stdio struct{}

func (stdio) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdio) Write(p []byte) (int, error) { return os.Stdout.Write(p) }
func (stdio) Close() error                { return nil }

// transportConflict reports a flag combination the serial line cannot
// satisfy: MQTT replaces the stream server, leaving nothing to attach
// stdio to.
func transportConflict(mqttURL string, stdio bool) error {
	if stdio && mqttURL != "" {
		return errors.New("cannot combine -stdio with -mqtt")
	}
	return nil
}

func main() {
	flag.Parse()
	if err := transportConflict(mqttURL, useStdio); err != nil {
		glog.Exit(err)
	}

	conf := sim.DefaultConfig()
	if boardFile != "" {
		var err error
		if conf, err = sim.LoadConfig(boardFile); err != nil {
			glog.Exitf("board config: %v", err)
		}
	}

	runner := fx.NewRunner().HandleSignals()

	wire := serialWire(runner)

	clk := clock.NewSysClock()
	board := conf.NewBoard(wire, clk)
	loop := firmware.NewLoop(board.UART, board.LED, board.Sensor, clk)

	runner.Go(clk, board, loop)
	if err := runner.Wait(); err != nil {
		glog.Exit(err)
	}
}

// serialWire picks the operator-facing transport and registers its
// runners.
func serialWire(runner *fx.Runner) io.ReadWriter {
	if mqttURL != "" {
		name := device
		if name == "" {
			name = env.DeviceName()
		}
		wire, err := mqtt.NewWire(mqttURL, name, name)
		if err != nil {
			glog.Exitf("mqtt: %v", err)
		}
		glog.Infof("serial line on mqtt device %q", name)
		runner.Go(wire)
		return wire
	}

	srv := stream.NewServer()
	runner.Go(srv)
	attached := false
	if listenTCP != "" {
		ln, err := net.Listen("tcp", listenTCP)
		if err != nil {
			glog.Exitf("listen: %v", err)
		}
		glog.Infof("serial line on tcp %s", ln.Addr())
		runner.Go(srv.Serve(ln))
		attached = true
	}
	if listenWS != "" {
		mux := http.NewServeMux()
		mux.Handle("/serial", ws.Handler(srv))
		hs := &http.Server{Addr: listenWS, Handler: mux}
		glog.Infof("serial line on ws://%s/serial", listenWS)
		runner.Go(fx.NamedRun("ws", fx.RunFunc(func(ctx context.Context) error {
			return fx.RunWithContextCloser(ctx, hs, hs.ListenAndServe)
		})))
		attached = true
	}
	if useStdio || !attached {
		go srv.Attach(stdio{})
	}
	return srv
}
