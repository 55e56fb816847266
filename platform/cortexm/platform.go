//go:build tinygo

// Package cortexm is the real ARM Cortex-M implementation of
// platform.Platform: SysTick as the tick source, PendSV as the
// deferred-switch exception, and a callee-saved register trampoline in
// place of any stack-pointer arithmetic. Register shapes follow the
// runtime/volatile.Register32 style already used in the bcm2835/
// arm-cortex-a53 hardware packages; everything that reaches past what
// runtime/volatile and device/arm cover follows the lib/upbeat
// inline-assembly style.
package cortexm

import "device/arm"

// pendSVPriority is the exception priority system's lowest value (highest
// numeric value for an implementation with the full 8 priority bits), and
// tickPriority sits one step above it; PendSV must never be programmed
// above SysTick's priority, or the deferred
// switch could itself be preempted by the next tick before it installs
// the new stack pointer.
const (
	pendSVPriority = 0xFF
	tickPriority   = 0xFE
)

// Platform implements platform.Platform for Cortex-M targets built with
// TinyGo. It has no fields: all of its state lives in the SCS/SysTick
// memory-mapped registers, which are themselves process-wide singletons,
// so a zero-value Platform is always ready to use.
type Platform struct{}

// New returns a Platform bound to this core's SCS and SysTick registers.
func New() *Platform {
	return &Platform{}
}

func (Platform) TickInit(periodUs, cpuHz uint32) {
	setPendSVPriority(pendSVPriority)
	scs.SHPR3.Set(scs.SHPR3.Get()&^(0xFF<<24) | uint32(tickPriority)<<24)
	tickInit(periodUs, cpuHz)
}

func (Platform) TickReload() {
	tickReload()
}

func (Platform) PendSwitch() {
	pendSwitch()
}

func (Platform) ClearSwitchPending() {
	clearSwitchPending()
}

// ReadSP returns the process stack pointer (PSP), the stack register
// task code runs on; the main stack pointer (MSP) is reserved for
// exception handlers themselves and is never part of a TCB.
func (Platform) ReadSP() uintptr {
	return arm.ReadRegister("psp")
}

func (Platform) WriteSP(sp uintptr) {
	arm.AsmFull("msr PSP, {sp}", map[string]interface{}{"sp": uint32(sp)})
}

func (Platform) SeedInitialFrame(stack []uintptr, entry uintptr) uintptr {
	return seedInitialFrame(stack, entry)
}

func (Platform) DisableInterrupts() uintptr {
	return disableInterrupts()
}

func (Platform) EnableInterrupts(state uintptr) {
	enableInterrupts(state)
}
