// thermcli is the interactive operator console for a thermo device:
// it speaks the single-character serial command language over TCP or
// MQTT and prints whatever the device says.
package main

import (
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"

	"github.com/abiosoft/ishell"
	"github.com/golang/glog"

	"github.com/microbots/thermo.go/pkg/comm/mqtt"
	"github.com/microbots/thermo.go/pkg/env"
)

var (
	connectTCP string
	mqttURL    string
	device     string
)

func init() {
	if val := os.Getenv("THERMO_MQTT_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&connectTCP, "connect", "", "TCP address of the device serial line.")
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL.")
	flag.StringVar(&device, "device", "", "Device name on the broker; default derives from the machine ID.")
}

func main() {
	flag.Parse()

	wire, err := dial()
	if err != nil {
		glog.Exit(err)
	}
	// everything the device says goes straight to the terminal
	go io.Copy(os.Stdout, wire)

	shell := ishell.New()
	shell.SetPrompt("thermo> ")
	shell.AddCmd(&ishell.Cmd{
		Name: "toggle",
		Help: "toggle temperature monitoring",
		Func: func(c *ishell.Context) {
			send(c, wire, "T")
		},
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "led",
		Help: "led <0-99>: set LED brightness",
		Func: func(c *ishell.Context) {
			if len(c.Args) != 1 {
				c.Err(fmt.Errorf("usage: led <0-99>"))
				return
			}
			v, err := strconv.Atoi(c.Args[0])
			if err != nil || v < 0 || v > 99 {
				c.Err(fmt.Errorf("brightness must be 0-99"))
				return
			}
			send(c, wire, "L"+c.Args[0])
		},
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "send",
		Help: "send <bytes>: write raw bytes to the serial line",
		Func: func(c *ishell.Context) {
			for _, arg := range c.Args {
				send(c, wire, arg)
			}
		},
	})

	if flag.NArg() > 0 {
		if err := shell.Process(flag.Args()...); err != nil {
			glog.Exit(err)
		}
		return
	}
	shell.Run()
}

func send(c *ishell.Context, wire io.Writer, s string) {
	if _, err := io.WriteString(wire, s); err != nil {
		c.Err(err)
	}
}

func dial() (io.ReadWriter, error) {
	if connectTCP != "" {
		return net.Dial("tcp", connectTCP)
	}
	if mqttURL == "" {
		return nil, fmt.Errorf("one of -connect or -mqtt is required")
	}
	name := device
	if name == "" {
		name = env.DeviceName()
	}
	wire, err := mqtt.NewWire(mqttURL, name, name+"-cli")
	if err != nil {
		return nil, err
	}
	wire.ForConsole()
	if err := wire.Connect(); err != nil {
		return nil, err
	}
	return wire, nil
}
