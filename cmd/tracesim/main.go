// tracesim runs the kernel's headline scheduling scenarios against
// platform/simulated and prints the resulting task trace, the same way a
// board bring-up engineer would watch a UART log before ever touching
// real silicon.
package main

import (
	"corertos/heartbeat"
	"corertos/internal/trust"
	"corertos/kernel"
	"corertos/platform/simulated"
)

func taskBody() {}

func newSimulatedKernel(cfg kernel.Config) *simulated.Platform {
	plat := simulated.New()
	plat.OnPendSwitch = kernel.PendSVHandler
	kernel.Init(cfg, plat, heartbeat.Noop{})
	return plat
}

func label(h, a, b kernel.TaskHandle) string {
	switch h {
	case a:
		return "A"
	case b:
		return "B"
	default:
		return "idle"
	}
}

// roundRobin creates two equal-priority tasks that each delay(1) forever
// and prints ten ticks of the resulting trace.
func roundRobin() {
	cfg := kernel.DefaultConfig()
	cfg.MaxTasks = 4
	newSimulatedKernel(cfg)

	a, err := kernel.CreateTask(taskBody, 2, kernel.AutoStartRun)
	if err != nil {
		trust.Fatalf("create A: %v", err)
	}
	b, err := kernel.CreateTask(taskBody, 2, kernel.AutoStartRun)
	if err != nil {
		trust.Fatalf("create B: %v", err)
	}
	if err := kernel.Bootstrap(); err != nil {
		trust.Fatalf("bootstrap: %v", err)
	}

	trust.Infof("round-robin by delay(1):")
	for i := 0; i < 10; i++ {
		trust.Infof("  tick %2d: %s runs", i+1, label(kernel.Current(), a, b))
		kernel.Delay(1)
		kernel.TickHandler()
	}
}

// priorityPreemption creates a high-priority task that sleeps for five
// ticks and a low-priority task that never blocks, then prints when the
// high-priority task takes the core back.
func priorityPreemption() {
	cfg := kernel.DefaultConfig()
	cfg.MaxTasks = 4
	newSimulatedKernel(cfg)

	h, err := kernel.CreateTask(taskBody, 3, kernel.AutoStartRun)
	if err != nil {
		trust.Fatalf("create H: %v", err)
	}
	l, err := kernel.CreateTask(taskBody, 1, kernel.AutoStartRun)
	if err != nil {
		trust.Fatalf("create L: %v", err)
	}
	if err := kernel.Bootstrap(); err != nil {
		trust.Fatalf("bootstrap: %v", err)
	}

	trust.Infof("priority preemption on wake:")
	trust.Infof("  boot: %s runs", label(kernel.Current(), h, l))
	kernel.Delay(5)
	for i := 0; i < 5; i++ {
		trust.Infof("  tick %d: %s runs", i+1, label(kernel.Current(), h, l))
		kernel.TickHandler()
	}
	trust.Infof("  tick 5 (post): %s runs", label(kernel.Current(), h, l))
}

// idleFallback creates a single task W that sleeps for a thousand ticks
// while the idle task carries the core, then prints the clock and the
// running task after the thousandth tick, when W (printed as "A") has
// taken the core back.
func idleFallback() {
	cfg := kernel.DefaultConfig()
	cfg.MaxTasks = 2
	newSimulatedKernel(cfg)

	w, err := kernel.CreateTask(taskBody, 5, kernel.AutoStartRun)
	if err != nil {
		trust.Fatalf("create W: %v", err)
	}
	if err := kernel.Bootstrap(); err != nil {
		trust.Fatalf("bootstrap: %v", err)
	}

	trust.Infof("idle fallback under a long sleep:")
	kernel.Delay(1000)
	for i := 0; i < 1000; i++ {
		kernel.TickHandler()
	}
	trust.Infof("  clock=%d current=%s", kernel.GetClock(), label(kernel.Current(), w, kernel.InvalidTask))
}

// suspendActivate creates a high-priority task that suspends itself and a
// low-priority task that delays, and prints the handoff each time the
// suspended task is reactivated and immediately preempts the delaying one.
func suspendActivate() {
	cfg := kernel.DefaultConfig()
	cfg.MaxTasks = 4
	newSimulatedKernel(cfg)

	s, err := kernel.CreateTask(taskBody, 2, kernel.AutoStartRun)
	if err != nil {
		trust.Fatalf("create S: %v", err)
	}
	a, err := kernel.CreateTask(taskBody, 1, kernel.AutoStartRun)
	if err != nil {
		trust.Fatalf("create A: %v", err)
	}
	if err := kernel.Bootstrap(); err != nil {
		trust.Fatalf("bootstrap: %v", err)
	}

	trust.Infof("suspend/activate handoff:")
	trust.Infof("  boot: %s runs", label(kernel.Current(), s, a))
	kernel.Suspend()
	trust.Infof("  after suspend: %s runs", label(kernel.Current(), s, a))
	for cycle := 0; cycle < 2; cycle++ {
		kernel.Activate(s)
		trust.Infof("  cycle %d activate: %s runs", cycle, label(kernel.Current(), s, a))
		kernel.Suspend()
		trust.Infof("  cycle %d re-suspend: %s runs", cycle, label(kernel.Current(), s, a))
		kernel.Delay(3)
		for i := 0; i < 2; i++ {
			kernel.TickHandler()
		}
		kernel.TickHandler()
		trust.Infof("  cycle %d wake: %s runs", cycle, label(kernel.Current(), s, a))
	}
}

// delayZeroYield creates two equal-priority tasks that each delay(0) forever
// and prints the resulting one-tick-per-turn alternation.
func delayZeroYield() {
	cfg := kernel.DefaultConfig()
	cfg.MaxTasks = 4
	newSimulatedKernel(cfg)

	x, err := kernel.CreateTask(taskBody, 2, kernel.AutoStartRun)
	if err != nil {
		trust.Fatalf("create X: %v", err)
	}
	y, err := kernel.CreateTask(taskBody, 2, kernel.AutoStartRun)
	if err != nil {
		trust.Fatalf("create Y: %v", err)
	}
	if err := kernel.Bootstrap(); err != nil {
		trust.Fatalf("bootstrap: %v", err)
	}

	trust.Infof("round-robin by delay(0):")
	for i := 0; i < 6; i++ {
		trust.Infof("  tick %d: %s runs", i+1, label(kernel.Current(), x, y))
		kernel.Delay(0)
		kernel.TickHandler()
	}
}

// capacityExhaustion fills a two-slot store and shows the third CreateTask
// call failing, then shows a post-bootstrap CreateTask call failing too.
func capacityExhaustion() {
	cfg := kernel.DefaultConfig()
	cfg.MaxTasks = 2
	newSimulatedKernel(cfg)

	if _, err := kernel.CreateTask(taskBody, 1, kernel.AutoStartRun); err != nil {
		trust.Fatalf("create first: %v", err)
	}
	if _, err := kernel.CreateTask(taskBody, 1, kernel.AutoStartRun); err != nil {
		trust.Fatalf("create second: %v", err)
	}

	trust.Infof("capacity exhaustion:")
	if _, err := kernel.CreateTask(taskBody, 1, kernel.AutoStartRun); err != nil {
		trust.Infof("  third create (store full): %v", err)
	} else {
		trust.Infof("  third create unexpectedly succeeded")
	}

	if err := kernel.Bootstrap(); err != nil {
		trust.Fatalf("bootstrap: %v", err)
	}
	if _, err := kernel.CreateTask(taskBody, 1, kernel.AutoStartRun); err != nil {
		trust.Infof("  post-bootstrap create: %v", err)
	} else {
		trust.Infof("  post-bootstrap create unexpectedly succeeded")
	}
}

func main() {
	roundRobin()
	priorityPreemption()
	idleFallback()
	suspendActivate()
	delayZeroYield()
	capacityExhaustion()
}
