// Package env derives the device identity from the host environment.
package env

import (
	"github.com/denisbrodbeck/machineid"
)

// MachineID retrieves the unique ID identifying the machine.
func MachineID() string {
	id, err := machineid.ID()
	if err != nil {
		panic(err)
	}
	return id
}

// DeviceName returns the default device name, derived from the
// machine ID so two simulators on different hosts don't collide on a
// shared broker.
func DeviceName() string {
	id := MachineID()
	if len(id) > 8 {
		id = id[:8]
	}
	return "thermo-" + id
}
