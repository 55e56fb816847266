//go:build tinygo

package cortexm

import (
	"unsafe"

	"runtime/volatile"
)

// systemControlSpace is the fixed Cortex-M SCS register block, the same
// style of memory-mapped struct bcm2835.GPIORegisterMap and
// arm_cortex_a53.QuadA7RegisterMap use for their own peripherals. Only the
// fields this kernel touches are named; the rest are padding at their
// real byte offsets.
type systemControlSpace struct {
	CPUID volatile.Register32 // 0xE000ED00
	ICSR  volatile.Register32 // 0xE000ED04
	_     [4]volatile.Register32
	SHPR1 volatile.Register32 // 0xE000ED18
	SHPR2 volatile.Register32 // 0xE000ED1C
	SHPR3 volatile.Register32 // 0xE000ED20
}

var scs = (*systemControlSpace)(unsafe.Pointer(uintptr(0xE000ED00)))

const (
	icsrPendSVSet   = 1 << 28
	icsrPendSVClear = 1 << 27
)

// pendSwitch requests the PendSV exception.
func pendSwitch() {
	scs.ICSR.Set(scs.ICSR.Get() | icsrPendSVSet)
}

// clearSwitchPending clears the PendSV pending bit. Harmless to call from
// inside PendSV itself, where the bit is already being serviced.
func clearSwitchPending() {
	scs.ICSR.Set(scs.ICSR.Get() | icsrPendSVClear)
}

// setPendSVPriority writes PendSV's byte in SHPR3 (exception 14, bits
// [23:16]). Callers program it to the lowest priority so it only runs
// once every other handler has drained, the deferred-switch property the
// rest of the kernel depends on.
func setPendSVPriority(priority uint8) {
	v := scs.SHPR3.Get()
	v &^= 0xFF << 16
	v |= uint32(priority) << 16
	scs.SHPR3.Set(v)
}
