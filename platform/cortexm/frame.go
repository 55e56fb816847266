//go:build tinygo

package cortexm

import "unsafe"

// calleeSaved is the block the switch trampoline pushes and pops by hand;
// the hardware never touches it. Cortex-M's exception entry/exit only
// auto-saves R0-R3, R12, LR, PC and xPSR.
type calleeSaved struct {
	R4, R5, R6, R7, R8, R9, R10, R11 uintptr
}

// exceptionFrame is the hardware-defined layout Cortex-M's exception
// entry pushes and exception return pops: R0-R3, R12, LR, the return PC,
// and xPSR, in that order from the stack pointer upward. Laid out the
// same way as waj334-sigo's exceptionStack, minus its goroutine-specific
// fields.
type exceptionFrame struct {
	R0, R1, R2, R3, R12 uintptr
	LR                  uintptr
	PC                  uintptr
	PSR                 uintptr
}

// psrThumbBit marks the frame's saved xPSR so exception return resumes
// in Thumb state; required on every Cortex-M that doesn't implement the
// (32-bit only) ARM instruction set.
const psrThumbBit = 0x01000000

// seedInitialFrame writes calleeSaved followed by exceptionFrame at the
// top of stack, exactly as the switch trampoline's restore sequence
// expects to find them, and returns the resulting stack pointer. A task
// that has never run yet looks, from the trampoline's point of view,
// identical to one that was switched out normally.
func seedInitialFrame(stack []uintptr, entry uintptr) uintptr {
	frameWords := int(unsafe.Sizeof(exceptionFrame{})/unsafe.Sizeof(uintptr(0)) +
		unsafe.Sizeof(calleeSaved{})/unsafe.Sizeof(uintptr(0)))
	top := len(stack)
	base := top - frameWords

	saved := (*calleeSaved)(unsafe.Pointer(&stack[base]))
	*saved = calleeSaved{}

	excOffset := base + int(unsafe.Sizeof(calleeSaved{})/unsafe.Sizeof(uintptr(0)))
	exc := (*exceptionFrame)(unsafe.Pointer(&stack[excOffset]))
	*exc = exceptionFrame{
		PC:  entry,
		PSR: psrThumbBit,
	}

	return uintptr(unsafe.Pointer(saved))
}
