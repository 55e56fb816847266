//go:build tinygo

package cortexm

import (
	"unsafe"

	"runtime/volatile"
)

// systickRegisters is the Cortex-M SysTick block at 0xE000E010.
type systickRegisters struct {
	CSR   volatile.Register32
	RVR   volatile.Register32
	CVR   volatile.Register32
	CALIB volatile.Register32
}

var systick = (*systickRegisters)(unsafe.Pointer(uintptr(0xE000E010)))

const (
	csrEnable    = 1 << 0
	csrTickInt   = 1 << 1
	csrClkSource = 1 << 2 // processor clock rather than an external reference
	rvrMax       = 0x00FFFFFF
)

// tickInit programs SysTick for a period of periodUs microseconds given a
// core clock of cpuHz, and enables it with interrupts on. The reload
// register is 24 bits; periods that would overflow it are clamped rather
// than silently wrapping, since a wrapped reload would produce a tick
// period orders of magnitude shorter than configured.
func tickInit(periodUs, cpuHz uint32) {
	reload := uint64(cpuHz) * uint64(periodUs) / 1000000
	if reload == 0 {
		reload = 1
	}
	if reload > rvrMax {
		reload = rvrMax
	}
	systick.RVR.Set(uint32(reload) - 1)
	systick.CVR.Set(0)
	systick.CSR.Set(csrEnable | csrTickInt | csrClkSource)
}

// tickReload rearms the counter for the next period. Any write to CVR
// clears it to zero and the count restarts from RVR, the same one-shot
// write-to-clear behavior other peripherals' "clear" registers document.
func tickReload() {
	systick.CVR.Set(0)
}
