package sim

import (
	"io/ioutil"

	"gopkg.in/yaml.v3"
)

// Config describes the simulated peripherals.
type Config struct {
	UART   UARTConfig   `yaml:"uart"`
	Sensor SensorConfig `yaml:"sensor"`
}

// UARTConfig describes the simulated UART.
type UARTConfig struct {
	// RxDepth is the receive buffer depth in bytes. Bytes arriving on
	// a full buffer are dropped as overruns. Real USART2 hardware
	// holds a single byte, but the firmware thread on a real target
	// also polls far faster than a hosted goroutine; the default
	// leaves room for a whole command burst.
	RxDepth int `yaml:"rxDepth"`
	// Baud paces received bytes at the wire rate, one 10-bit frame
	// per byte. Host transports deliver a command in a single burst;
	// without pacing a depth-1 buffer would drop everything after the
	// first byte. Zero disables pacing.
	Baud int `yaml:"baud"`
}

const (
	defaultRxDepth = 8
	defaultBaud    = 115200
)

// SensorConfig describes the ambient temperature model and the ADC
// calibration.
type SensorConfig struct {
	// AmbientC is the mean temperature in degrees Celsius.
	AmbientC float64 `yaml:"ambientC"`
	// AmplitudeC swings the temperature sinusoidally around the mean.
	AmplitudeC float64 `yaml:"amplitudeC"`
	// PeriodMs is the swing period in milliseconds.
	PeriodMs uint32 `yaml:"periodMs"`
	// NoiseC adds uniform noise of +/- NoiseC degrees per sample.
	NoiseC float64 `yaml:"noiseC"`
	// Seed makes the noise deterministic. Zero seeds from the value
	// itself, which is fine for a simulation.
	Seed int64 `yaml:"seed"`
	// Cal30 is the factory ADC reading at 30 degrees Celsius.
	Cal30 int `yaml:"cal30"`
}

// DefaultConfig returns a room-temperature board.
func DefaultConfig() Config {
	return Config{
		UART: UARTConfig{RxDepth: defaultRxDepth, Baud: defaultBaud},
		Sensor: SensorConfig{
			AmbientC:   24,
			AmplitudeC: 2,
			PeriodMs:   60000,
			NoiseC:     0.5,
			Cal30:      defaultCal30,
		},
	}
}

// LoadConfig reads a YAML board description, with defaults applied to
// omitted fields.
func LoadConfig(path string) (Config, error) {
	conf := DefaultConfig()
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return conf, err
	}
	if err := yaml.Unmarshal(data, &conf); err != nil {
		return conf, err
	}
	if conf.UART.RxDepth <= 0 {
		conf.UART.RxDepth = defaultRxDepth
	}
	return conf, nil
}
