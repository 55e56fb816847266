package kernel

import "testing"

// Two equal-priority tasks that each delay(1) in a loop must round-robin:
// the one that just woke never reclaims the core from its sibling, which
// is still mid-turn, purely because it has a lower handle index.
func TestRoundRobinByDelay(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxTasks = 4
	cfg.StackWords = 8
	freshKernel(t, cfg)

	a, err := CreateTask(noopBody, 2, AutoStartRun)
	if err != nil {
		t.Fatalf("create A: %v", err)
	}
	b, err := CreateTask(noopBody, 2, AutoStartRun)
	if err != nil {
		t.Fatalf("create B: %v", err)
	}

	if err := Bootstrap(); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if k.current != a {
		t.Fatalf("expected A (lowest index) to win the initial tie, got %v", k.current)
	}
	checkInvariants(t)

	want := []TaskHandle{a, b, a, b, a, b, a, b, a, b}
	var got []TaskHandle
	for i := 0; i < len(want); i++ {
		got = append(got, k.current)
		Delay(1)
		TickHandler()
		checkInvariants(t)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tick %d: expected %v, got %v (full trace %v)", i+1, want[i], got[i], got)
		}
	}
}

// A strictly higher-priority task preempts whoever is running the instant
// it wakes, with no tie involved: H delays for 5 ticks, L runs the whole
// time, and H takes the core back the moment its wait expires.
func TestPriorityPreemptionOnWake(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxTasks = 4
	cfg.StackWords = 8
	freshKernel(t, cfg)

	h, err := CreateTask(noopBody, 3, AutoStartRun)
	if err != nil {
		t.Fatalf("create H: %v", err)
	}
	l, err := CreateTask(noopBody, 1, AutoStartRun)
	if err != nil {
		t.Fatalf("create L: %v", err)
	}

	if err := Bootstrap(); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if k.current != h {
		t.Fatalf("expected H (higher priority) to win the initial dispatch, got %v", k.current)
	}
	checkInvariants(t)

	Delay(5)
	if k.current != l {
		t.Fatalf("expected L to run while H sleeps, got %v", k.current)
	}
	checkInvariants(t)

	for i := 0; i < 4; i++ {
		TickHandler()
		if k.current != l {
			t.Fatalf("tick %d: L should still be running, got %v", i+1, k.current)
		}
		checkInvariants(t)
	}

	TickHandler() // fifth tick: H's wait expires
	if k.current != h {
		t.Fatalf("expected H to preempt L on the fifth tick, got %v", k.current)
	}
	checkInvariants(t)
}

// Suspend/activate: S suspends itself every time it runs; A wakes it back
// up and then delays. Activate can preempt its caller immediately when the
// woken task outranks it, exactly like a tick-driven wake would.
func TestSuspendActivate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxTasks = 4
	cfg.StackWords = 8
	freshKernel(t, cfg)

	s, err := CreateTask(noopBody, 2, AutoStartRun)
	if err != nil {
		t.Fatalf("create S: %v", err)
	}
	a, err := CreateTask(noopBody, 1, AutoStartRun)
	if err != nil {
		t.Fatalf("create A: %v", err)
	}

	if err := Bootstrap(); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if k.current != s {
		t.Fatalf("expected S (higher priority) to win the initial dispatch, got %v", k.current)
	}

	// S's body: loop { suspend() }. This only happens once "from cold" —
	// every later cycle, S is instead woken by A's own Activate call.
	Suspend()
	if k.current != a {
		t.Fatalf("expected A to run once S suspends, got %v", k.current)
	}
	checkInvariants(t)

	for cycle := 0; cycle < 2; cycle++ {
		// A's body: loop { activate(S); delay(3) }. Activating S hands the
		// core straight back to it, since S outranks A.
		Activate(s)
		if k.current != s {
			t.Fatalf("cycle %d: expected Activate(S) to preempt A immediately, got %v", cycle, k.current)
		}
		checkInvariants(t)

		// S immediately suspends itself again, handing control back to A's
		// still-pending Activate call.
		Suspend()
		if k.current != a {
			t.Fatalf("cycle %d: expected A to resume after S re-suspends, got %v", cycle, k.current)
		}

		Delay(3)
		if k.current != k.idleHandle() {
			t.Fatalf("cycle %d: expected idle to run with both tasks blocked, got %v", cycle, k.current)
		}
		checkInvariants(t)

		for i := 0; i < 2; i++ {
			TickHandler()
			if k.current != k.idleHandle() {
				t.Fatalf("cycle %d tick %d: idle should still be running, got %v", cycle, i+1, k.current)
			}
		}
		TickHandler() // third tick: A's wait expires
		if k.current != a {
			t.Fatalf("cycle %d: expected A to resume after its delay, got %v", cycle, k.current)
		}
		checkInvariants(t)
	}
}

// delay(0) is an explicit yield: it resolves on the very next tick rather
// than wrapping or resuming synchronously, so two equal-priority tasks
// that each delay(0) in a loop round-robin exactly like TestRoundRobinByDelay.
func TestDelayZeroYields(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxTasks = 4
	cfg.StackWords = 8
	freshKernel(t, cfg)

	x, err := CreateTask(noopBody, 2, AutoStartRun)
	if err != nil {
		t.Fatalf("create X: %v", err)
	}
	y, err := CreateTask(noopBody, 2, AutoStartRun)
	if err != nil {
		t.Fatalf("create Y: %v", err)
	}

	if err := Bootstrap(); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	want := []TaskHandle{x, y, x, y, x, y}
	var got []TaskHandle
	for i := 0; i < len(want); i++ {
		got = append(got, k.current)
		Delay(0)
		TickHandler()
		checkInvariants(t)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tick %d: expected %v, got %v (full trace %v)", i+1, want[i], got[i], got)
		}
	}
}

// The idle task is the only thing that runs while every user task is
// blocked, and a delayed task takes the core back the instant its wait
// expires, even after a thousand idle ticks.
func TestIdleRunsWhileTaskSleeps(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxTasks = 2
	cfg.StackWords = 8
	freshKernel(t, cfg)

	w, err := CreateTask(noopBody, 5, AutoStartRun)
	if err != nil {
		t.Fatalf("create W: %v", err)
	}

	if err := Bootstrap(); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if k.current != w {
		t.Fatalf("expected W to win the initial dispatch, got %v", k.current)
	}

	Delay(1000)
	if k.current != k.idleHandle() {
		t.Fatalf("expected idle to run once W sleeps, got %v", k.current)
	}
	checkInvariants(t)

	for i := 0; i < 999; i++ {
		TickHandler()
		if k.current != k.idleHandle() {
			t.Fatalf("tick %d: idle should still be running, got %v", i+1, k.current)
		}
	}

	TickHandler() // thousandth tick: W's wait expires
	if k.current != w {
		t.Fatalf("expected W to preempt idle on the thousandth tick, got %v", k.current)
	}
	checkInvariants(t)
	if GetClock() != 1000 {
		t.Fatalf("expected the global clock to read 1000, got %d", GetClock())
	}
}

// CreateTask fails once the store's user-task capacity is exhausted, but
// the mandatory idle task bootstrap always creates still succeeds: idle
// lives in a reserved slot outside the user-task capacity.
func TestCapacityExhaustion(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxTasks = 2
	cfg.StackWords = 8
	freshKernel(t, cfg)

	if _, err := CreateTask(noopBody, 1, AutoStartRun); err != nil {
		t.Fatalf("create task 1: %v", err)
	}
	if _, err := CreateTask(noopBody, 1, AutoStartRun); err != nil {
		t.Fatalf("create task 2: %v", err)
	}

	h, err := CreateTask(noopBody, 1, AutoStartRun)
	if err != CapacityExhausted || h != InvalidTask {
		t.Fatalf("expected (InvalidTask, CapacityExhausted) on the third create, got (%v, %v)", h, err)
	}

	if err := Bootstrap(); err != nil {
		t.Fatalf("idle task creation should still succeed at user-task capacity: %v", err)
	}
	checkInvariants(t)
}

// CreateTask also fails with CapacityExhausted once the scheduler has
// started: dynamic task creation after that point isn't supported.
func TestCreateTaskAfterStartFails(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxTasks = 4
	cfg.StackWords = 8
	freshKernel(t, cfg)

	if err := Bootstrap(); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	if h, err := CreateTask(noopBody, 1, AutoStartRun); err != CapacityExhausted || h != InvalidTask {
		t.Fatalf("expected (InvalidTask, CapacityExhausted) post-start, got (%v, %v)", h, err)
	}
}

// A nil entry is rejected the same way a full store is: there's no valid
// initial frame to seed for it.
func TestCreateTaskRejectsNilEntry(t *testing.T) {
	cfg := DefaultConfig()
	freshKernel(t, cfg)

	if h, err := CreateTask(nil, 1, AutoStartRun); err != CapacityExhausted || h != InvalidTask {
		t.Fatalf("expected (InvalidTask, CapacityExhausted) for a nil entry, got (%v, %v)", h, err)
	}
}

// Bootstrap fails cleanly when no platform was ever installed, rather
// than dereferencing a nil interface somewhere downstream.
func TestBootstrapRequiresPlatform(t *testing.T) {
	cfg := DefaultConfig()
	Init(cfg, nil, nil)

	if err := Bootstrap(); err != PlatformUnavailable {
		t.Fatalf("expected PlatformUnavailable, got %v", err)
	}
}

// A task created with StartSuspended never competes for the core until
// something Activates it.
func TestStartSuspendedTaskNeverRunsUntilActivated(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxTasks = 2
	cfg.StackWords = 8
	freshKernel(t, cfg)

	suspended, err := CreateTask(noopBody, 9, StartSuspended)
	if err != nil {
		t.Fatalf("create suspended task: %v", err)
	}

	if err := Bootstrap(); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if k.current != k.idleHandle() {
		t.Fatalf("expected idle to run since the only user task starts SUSPENDED, got %v", k.current)
	}
	checkInvariants(t)

	Activate(suspended)
	if k.current != suspended {
		t.Fatalf("expected the activated task to preempt idle immediately, got %v", k.current)
	}
	checkInvariants(t)
}
