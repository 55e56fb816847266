package kernel

// Config holds the constants an embedder supplies: task capacity,
// per-task stack size, tick timing, and the heartbeat pass-through. There
// is exactly one Config, installed once by the board's init code before
// StartScheduler runs — the kernel never mutates it afterward.
type Config struct {
	// MaxTasks is the maximum number of user tasks (excludes idle).
	MaxTasks int
	// StackWords is the per-task stack size in machine words (uintptr on
	// the target architecture).
	StackWords int
	// TickPeriodUs is the SysTick period in microseconds.
	TickPeriodUs uint32
	// CPUHz is the CPU core frequency, used to compute the SysTick reload
	// value from TickPeriodUs.
	CPUHz uint32

	// HeartbeatEnabled toggles the is-alive LED feature.
	HeartbeatEnabled bool
	// HeartbeatDivisor is the sub-multiple of the tick at which
	// heartbeat.Tick is invoked when HeartbeatEnabled is set. A divisor of
	// zero is treated as 1 (toggle every tick).
	HeartbeatDivisor uint32

	// IdleBody, if non-nil, replaces the kernel's default idle task, an
	// empty `for {}` busy loop. It must never return, per the nullary/never-returning
	// task body contract.
	IdleBody func()

	// Debug enables the MisuseFromISR assertion via internal/trust.Fatalf.
	Debug bool
}

// quantaDefault is a plausible default tick period in microseconds when
// an embedder doesn't care.
const quantaDefault uint32 = 1000

// DefaultConfig returns a Config usable for simulation and for boards that
// haven't tuned their own numbers yet: 8 user tasks, 256-word stacks, a
// 1ms tick, and the heartbeat turned off.
func DefaultConfig() Config {
	return Config{
		MaxTasks:         8,
		StackWords:       256,
		TickPeriodUs:     quantaDefault,
		CPUHz:            0,
		HeartbeatEnabled: false,
		HeartbeatDivisor: 1,
	}
}
