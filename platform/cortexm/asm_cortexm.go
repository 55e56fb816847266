//go:build tinygo

package cortexm

import (
	"device/arm"

	"corertos/kernel"
)

// pushCalleeSaved pushes R4-R11 onto the currently active process stack
// and lowers PSP by the same eight words, so that a subsequent call to
// Platform.ReadSP() sees exactly the calleeSaved block seedInitialFrame
// lays out: the kernel never has to know these registers exist, only
// that "the current SP" moved.
func pushCalleeSaved() {
	arm.AsmFull(
		"mrs r0, psp\n"+
			"stmdb r0!, {r4-r11}\n"+
			"msr psp, r0",
		map[string]interface{}{},
	)
}

// popCalleeSaved restores R4-R11 from whatever PSP now points at (the
// incoming task's saved frame, installed by Platform.WriteSP inside
// kernel.PendSVHandler) and raises PSP past them, leaving it pointing at
// the hardware exception frame for the exception return to consume.
func popCalleeSaved() {
	arm.AsmFull(
		"mrs r0, psp\n"+
			"ldmia r0!, {r4-r11}\n"+
			"msr psp, r0",
		map[string]interface{}{},
	)
}

// SysTick_Handler is installed in the vector table as the SysTick
// exception entry. R4-R11 are saved before kernel.TickHandler runs
// because TickHandler may dispatch a switch, whose caller-phase
// immediately reads the now-adjusted PSP as "the outgoing task's SP".
//
//go:export SysTick_Handler
func SysTick_Handler() {
	pushCalleeSaved()
	kernel.TickHandler()
}

// PendSV_Handler is installed at the lowest exception priority so it
// only runs once every higher-priority handler, including SysTick, has
// drained. kernel.PendSVHandler installs the incoming task's saved SP;
// popCalleeSaved then restores that task's R4-R11 and leaves PSP pointing
// at its hardware exception frame for the return-from-exception to
// resume it.
//
//go:export PendSV_Handler
func PendSV_Handler() {
	kernel.PendSVHandler()
	popCalleeSaved()
}
