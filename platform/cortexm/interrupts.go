//go:build tinygo

package cortexm

import "device/arm"

// disableInterrupts masks interrupts at or above tick priority via
// Cortex-M's PRIMASK, mirroring the MaskDAIF/UnmaskDAIF pair in
// lib/upbeat/interrupt_support.go, translated from AArch64's DAIF bits
// to Cortex-M's single PRIMASK bit. The previous value is returned so
// nested callers can restore exactly what they found rather than
// unconditionally re-enabling.
func disableInterrupts() uintptr {
	var primask uint32
	arm.AsmFull(
		"mrs {prev}, PRIMASK\ncpsid i",
		map[string]interface{}{"prev": &primask},
	)
	return uintptr(primask)
}

// enableInterrupts restores a PRIMASK value captured by disableInterrupts.
func enableInterrupts(state uintptr) {
	arm.AsmFull(
		"msr PRIMASK, {prev}",
		map[string]interface{}{"prev": uint32(state)},
	)
}
