package firmware

import (
	"fmt"

	"github.com/microbots/thermo.go/pkg/clock"
)

// reportCadence is the interval between temperature emissions, paced
// by a full blocking delay after each emission.
const reportCadence clock.Ticks = 1000

// Reporter emits one temperature line per cadence while monitoring is
// active. The post-emission delay blocks the whole loop; a command
// byte arriving during it sits in the UART receive buffer until the
// next pass.
type Reporter struct {
	Serial Serial
	Sensor TempSensor
	Clock  clock.Source

	// Active gates reporting; wired to Dispatcher.Monitoring.
	Active func() bool
}

// Poll emits a reading if monitoring is active and reports whether it
// did.
func (r *Reporter) Poll() bool {
	if !r.Active() {
		return false
	}
	t := r.Sensor.Celsius(r.Sensor.ReadRaw())
	r.Serial.SendString(fmt.Sprintf("Temp: %d degC\r\n", t))
	clock.Sleep(r.Clock, reportCadence)
	return true
}
