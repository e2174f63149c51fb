// thermmon watches every thermo device on a broker and logs what they
// say on their serial lines.
package main

import (
	"flag"
	"log"
	"os"
	"strings"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/microbots/thermo.go/pkg/comm/mqtt"
)

var (
	mqttURL = "mqtt://localhost:1883/"
)

func init() {
	if val := os.Getenv("THERMO_MQTT_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL.")
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds)

	client, prefix, err := mqtt.Dial(mqttURL, "thermmon")
	if err != nil {
		log.Fatalln(err)
	}

	token := client.Subscribe(prefix+"+/msg", 0, func(_ paho.Client, msg paho.Message) {
		device := strings.TrimSuffix(strings.TrimPrefix(msg.Topic(), prefix), "/msg")
		for _, line := range strings.Split(string(msg.Payload()), "\r\n") {
			if line != "" {
				log.Printf("%s: %s", device, line)
			}
		}
	})
	if token.Wait() && token.Error() != nil {
		log.Fatalln(token.Error())
	}
	<-(chan struct{})(nil)
}
