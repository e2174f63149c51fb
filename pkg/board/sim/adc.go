package sim

import (
	"math"
	"math/rand"

	"github.com/microbots/thermo.go/pkg/clock"
)

// STM32F0 internal temperature sensor characteristics. The conversion
// mirrors the reference formula
//
//	degC = (raw*vddAppli/vddCalib - cal30) * 1000 / avgSlope + 30
//
// with the factory 30-degree calibration point taken from config.
const (
	vddCalib     = 3300 // calibration supply, mV
	vddAppli     = 3300 // application supply, mV
	avgSlope     = 5336 // uV per degree
	defaultCal30 = 1742
)

// ADC simulates the temperature sensing pipeline: the raw sample is
// synthesized from an ambient model evaluated at the current tick, and
// converted back with the integer formula the firmware relies on.
type ADC struct {
	conf SensorConfig
	clk  clock.Source
	rng  *rand.Rand
}

// NewADC creates an ADC over the given model and tick source.
func NewADC(conf SensorConfig, clk clock.Source) *ADC {
	if conf.Cal30 == 0 {
		conf.Cal30 = defaultCal30
	}
	if conf.PeriodMs == 0 {
		conf.PeriodMs = 60000
	}
	return &ADC{conf: conf, clk: clk, rng: rand.New(rand.NewSource(conf.Seed))}
}

// Configure implements firmware.TempSensor. The real peripheral
// calibrates and settles here; the model is always ready.
func (a *ADC) Configure() error {
	a.rng = rand.New(rand.NewSource(a.conf.Seed))
	return nil
}

// ReadRaw implements firmware.TempSensor.
func (a *ADC) ReadRaw() int {
	degC := a.modelAt(a.clk.Now())
	return int((degC-30)*avgSlope/1000 + float64(a.conf.Cal30))
}

// Celsius implements firmware.TempSensor.
func (a *ADC) Celsius(raw int) int {
	return (raw*vddAppli/vddCalib-a.conf.Cal30)*1000/avgSlope + 30
}

// modelAt evaluates the ambient temperature at a tick: a sinusoidal
// swing around the mean plus uniform noise.
func (a *ADC) modelAt(t clock.Ticks) float64 {
	degC := a.conf.AmbientC
	if a.conf.AmplitudeC != 0 {
		phase := float64(uint32(t)%a.conf.PeriodMs) / float64(a.conf.PeriodMs)
		degC += a.conf.AmplitudeC * math.Sin(2*math.Pi*phase)
	}
	if a.conf.NoiseC != 0 {
		degC += (a.rng.Float64()*2 - 1) * a.conf.NoiseC
	}
	return degC
}
