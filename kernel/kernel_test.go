package kernel

import (
	"testing"

	"corertos/platform/simulated"
)

// noopBody stands in for every task body in these tests. Bodies are never
// actually invoked here: platform/simulated is a bookkeeping double, not
// an emulator, so a scenario "runs" a task by calling Delay/Suspend/
// Activate/TickHandler directly, the same calls that task's real body
// would have made, in the order its priority and the dispatcher's rules
// say they'd happen.
func noopBody() {}

// freshKernel resets the package-global store against a new simulated
// platform and wires PendSVHandler as its deferred-switch delivery, the
// same wiring cmd/tracesim and a real board's vector table both do.
func freshKernel(t *testing.T, cfg Config) *simulated.Platform {
	t.Helper()
	plat := simulated.New()
	plat.OnPendSwitch = PendSVHandler
	Init(cfg, plat, nil)
	return plat
}

// checkInvariants asserts the properties that must hold after every
// externally observable step: exactly one RUNNING task, every saved SP
// still inside its own stack, idle always eligible, and the current task's
// priority matching the best eligible priority in the store.
func checkInvariants(t *testing.T) {
	t.Helper()

	running := 0
	for i := range k.tasks {
		tk := &k.tasks[i]
		if !tk.used {
			continue
		}
		if tk.state == stateRunning {
			running++
		}
		if !k.spWithinStack(TaskHandle(i)) {
			t.Fatalf("task %d: saved sp 0x%x escaped its own stack region", i, tk.sp)
		}
	}
	if running != 1 {
		t.Fatalf("expected exactly one RUNNING task, found %d", running)
	}

	idle := k.task(k.idleHandle())
	if idle.state != stateReady && idle.state != stateRunning {
		t.Fatalf("idle task not READY or RUNNING: %s", idle.state)
	}

	best := -1
	for i := range k.tasks {
		tk := &k.tasks[i]
		if !tk.used || (tk.state != stateReady && tk.state != stateRunning) {
			continue
		}
		if int(tk.priority) > best {
			best = int(tk.priority)
		}
	}
	cur := k.task(k.current)
	if int(cur.priority) != best {
		t.Fatalf("current task (priority %d) is not the best eligible priority (%d)", cur.priority, best)
	}
}
