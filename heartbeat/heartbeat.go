// Package heartbeat is a named external collaborator kept outside the
// kernel's scope: a standalone module toggling a GPIO pin at a configured
// sub-multiple of the tick. The kernel's only coupling to it is calling
// Tick() once every Config.HeartbeatDivisor ticks (kernel/tick.go), when
// enabled.
package heartbeat

// Heartbeater is the kernel's entire contract with the is-alive feature.
type Heartbeater interface {
	// Tick toggles the heartbeat output. Called from the tick handler, so
	// implementations must not block or allocate.
	Tick()
}

// Noop is the zero-cost default the kernel installs when Init is given a
// nil Heartbeater. When Config.HeartbeatEnabled is false, TickHandler
// does not call the Heartbeater at all.
type Noop struct{}

func (Noop) Tick() {}
