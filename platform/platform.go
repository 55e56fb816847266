// Package platform defines the contract the kernel needs from the board:
// program the tick source, pend/clear the deferred-switch exception, read
// and write the CPU's active stack pointer, and seed a task's initial
// exception frame. See platform/cortexm for the real Cortex-M
// implementation and platform/simulated for the host-side test double.
package platform

// Platform is the only contract the kernel depends on for hardware access.
// Implementations must be idempotent across repeated TickInit calls and
// must not allocate.
type Platform interface {
	// TickInit configures a periodic decrementing tick source that raises
	// an interrupt on reload, given the desired period in microseconds and
	// the CPU core frequency used to compute the reload value. Called
	// exactly once, before StartScheduler returns.
	TickInit(periodUs, cpuHz uint32)

	// TickReload rearms the tick source for the next period.
	TickReload()

	// PendSwitch requests the lowest-priority deferred-switch exception.
	PendSwitch()

	// ClearSwitchPending clears the pending bit; called on entry to the
	// deferred-switch handler.
	ClearSwitchPending()

	// ReadSP returns the CPU's currently active stack pointer. Valid only
	// inside a handler.
	ReadSP() uintptr

	// WriteSP installs sp as the CPU's active stack pointer. Valid only
	// inside the deferred-switch handler; the subsequent exception-return
	// consumes the frame found there.
	WriteSP(sp uintptr)

	// SeedInitialFrame writes a frame into the top of stack such that a
	// normal exception-return, performed with that frame as the active
	// stack, resumes execution at entry with a default status word. It
	// returns the resulting stack pointer to record in the new TCB.
	SeedInitialFrame(stack []uintptr, entry uintptr) uintptr

	// DisableInterrupts masks interrupts at or above tick priority and
	// returns an opaque previous-state token.
	DisableInterrupts() uintptr

	// EnableInterrupts restores a previous-state token from DisableInterrupts.
	EnableInterrupts(state uintptr)
}
