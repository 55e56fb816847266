package kernel

import "fmt"

// KernelError packs a subsystem id and a code into a single comparable
// value, the same way an upbeat-style error packs subsystem+domain+code
// into a uint64. There is no dynamic field here (no current-domain id to
// splice in) since the kernel has only one instance of everything.
type KernelError uint32

const (
	subsystemPlatform = 1
	subsystemTask     = 2
	subsystemISR      = 3
)

const (
	NoError KernelError = 0

	// PlatformUnavailable is returned by Bootstrap and StartScheduler when
	// Init was given a nil Platform, so there is no tick source to arm.
	PlatformUnavailable = KernelError(subsystemPlatform<<16 | 1)

	// CapacityExhausted is returned by CreateTask when the TCB store is full,
	// or when entry is nil (an entry-less task could never seed a valid
	// initial frame, so it is rejected the same way), or when CreateTask is
	// called after the scheduler has already started.
	CapacityExhausted = KernelError(subsystemTask<<16 | 1)

	// UnsupportedReentry marks the dispatcher being reentered from a context
	// where its single-writer invariant does not hold. Structurally prevented
	// by the interrupt-priority scheme; no kernel operation returns or
	// asserts it.
	UnsupportedReentry = KernelError(subsystemISR<<16 | 1)
)

var errorText = map[KernelError]string{
	PlatformUnavailable: "platform not installed: Init was given a nil Platform",
	CapacityExhausted:   "task store exhausted or entry function was nil",
	UnsupportedReentry:  "dispatcher reentered while a switch was already pending",
}

func (e KernelError) Error() string {
	if s, ok := errorText[e]; ok {
		return s
	}
	return fmt.Sprintf("kernel: unknown error %#x", uint32(e))
}

// misuseFromISRMessage documents calling Delay or Suspend from interrupt
// context: undefined behavior, not a returned error, but debug builds
// assert on it via internal/trust rather than corrupting the TCB store
// silently.
const misuseFromISRMessage = "delay/suspend called from interrupt context"
