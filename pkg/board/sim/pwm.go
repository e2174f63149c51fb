package sim

import (
	"sync/atomic"

	"github.com/golang/glog"
)

// PWM simulates the LED timer channel: a single duty register.
type PWM struct {
	duty int32
}

// NewPWM creates a PWM with the LED off.
func NewPWM() *PWM {
	return &PWM{}
}

// Configure implements firmware.PWM.
func (p *PWM) Configure() error {
	atomic.StoreInt32(&p.duty, 0)
	return nil
}

// SetDuty implements firmware.PWM. The register clamps at 99 even if
// the caller misbehaves, like the hardware compare register topping
// out at the auto-reload value.
func (p *PWM) SetDuty(percent int) {
	if percent > 99 {
		percent = 99
	}
	if percent < 0 {
		percent = 0
	}
	atomic.StoreInt32(&p.duty, int32(percent))
	glog.V(1).Infof("led duty %d%%", percent)
}

// Duty returns the current duty register value.
func (p *PWM) Duty() int {
	return int(atomic.LoadInt32(&p.duty))
}
