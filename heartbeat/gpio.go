//go:build tinygo

package heartbeat

import "machine"

// GPIO is a Heartbeater that toggles a single board pin, driving it
// through the bare, unqualified "machine" import rather than a vendored
// driver.
type GPIO struct {
	pin machine.Pin
}

// NewGPIO configures pin as a push-pull output and returns a Heartbeater
// that toggles it on every call to Tick.
func NewGPIO(pin machine.Pin) *GPIO {
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	return &GPIO{pin: pin}
}

func (g *GPIO) Tick() {
	g.pin.Toggle()
}
