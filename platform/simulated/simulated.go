// Package simulated is a host-side stand-in for platform.Platform, built
// for running the kernel's own tests and cmd/tracesim without a Cortex-M
// target. It is a bookkeeping double, not an emulator: it never executes a
// task body, it only tracks the same values the kernel's two-phase switch
// protocol would read and write on real hardware, so the protocol's data
// flow (who reads whose saved SP, when) can be exercised and asserted on.
//
// The shape owes more to host-side simulators like Jen1us's
// instruction-level uPIMulator and QubicOS-Spark's desktop board
// simulation than to any single register-level driver file.
package simulated

import "unsafe"

// frameMagic marks the slot below the seeded entry address, standing in
// for the xPSR/THUMB-bit word a real Cortex-M frame would carry there.
// Nothing reads it back; it exists so a seeded frame looks like two
// populated words rather than one, the way a real initial frame does.
const frameMagic = 0x01000000

// Platform implements platform.Platform entirely in Go-visible state. It
// is not safe for concurrent use; the kernel never calls it that way
// outside of a single interrupt-masked critical section, and tests drive
// it from one goroutine.
type Platform struct {
	// OnPendSwitch is invoked synchronously by PendSwitch, standing in for
	// the lowest-priority deferred-switch exception firing "as soon as
	// all higher-priority work drains." Since this simulated platform has
	// no other interrupt sources, that moment is always immediately after
	// PendSwitch is called, so delivery can happen inline rather than
	// needing a separate pump step in every test. Tests wire this to
	// kernel.PendSVHandler.
	OnPendSwitch func()

	activeSP       uintptr
	pending        bool
	disableDepth   uintptr
	periodUs       uint32
	cpuHz          uint32
	reloadCount    int
	tickInitCalled bool
}

// New returns a Platform with no OnPendSwitch wired yet; callers set it
// before the first CreateTask/StartScheduler call that can trigger a
// switch.
func New() *Platform {
	return &Platform{}
}

func (p *Platform) TickInit(periodUs, cpuHz uint32) {
	p.periodUs = periodUs
	p.cpuHz = cpuHz
	p.tickInitCalled = true
}

func (p *Platform) TickReload() {
	p.reloadCount++
}

// ReloadCount is the number of times TickReload has been called, exposed
// for tests asserting the tick handler rearms the timer exactly once per
// tick.
func (p *Platform) ReloadCount() int { return p.reloadCount }

func (p *Platform) PendSwitch() {
	p.pending = true
	if p.OnPendSwitch != nil {
		p.OnPendSwitch()
	}
}

func (p *Platform) ClearSwitchPending() {
	p.pending = false
}

// Pending reports whether a switch request is outstanding. Only ever true
// between PendSwitch and ClearSwitchPending if OnPendSwitch is nil; with
// OnPendSwitch wired it never observably holds, since delivery is inline.
func (p *Platform) Pending() bool { return p.pending }

func (p *Platform) ReadSP() uintptr {
	return p.activeSP
}

func (p *Platform) WriteSP(sp uintptr) {
	p.activeSP = sp
}

// SeedInitialFrame writes an entry marker into the last two words of
// stack and returns a pointer to the first of them, so the simulated
// "stack pointer" is a real, strictly-inside-the-slice address that
// exercises the same invariant a hardware frame's SP would have to
// satisfy.
func (p *Platform) SeedInitialFrame(stack []uintptr, entry uintptr) uintptr {
	top := len(stack) - 1
	stack[top] = entry
	stack[top-1] = frameMagic
	return uintptr(unsafe.Pointer(&stack[top-1]))
}

func (p *Platform) DisableInterrupts() uintptr {
	prev := p.disableDepth
	p.disableDepth++
	return prev
}

func (p *Platform) EnableInterrupts(state uintptr) {
	p.disableDepth = state
}

// InterruptsDisabled reports whether a DisableInterrupts call is currently
// unmatched, for tests asserting withTickMasked always restores the prior
// depth rather than unconditionally clearing it.
func (p *Platform) InterruptsDisabled() bool { return p.disableDepth > 0 }
