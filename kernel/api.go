package kernel

import (
	"corertos/heartbeat"
	"corertos/internal/trust"
	"corertos/platform"
)

// withTickMasked runs f with the tick interrupt masked, the same
// critical-section discipline schedule.go uses around scheduleInternal
// via DisableIRQAndFIQ/EnableIRQAndFIQ. Every store mutation outside of
// TickHandler and PendSVHandler themselves goes through this.
func withTickMasked(f func()) {
	state := k.plat.DisableInterrupts()
	f()
	k.plat.EnableInterrupts(state)
}

// Init installs cfg, plat and hb as the kernel's singleton collaborators
// and allocates the TCB store. It must be called exactly once, before any
// CreateTask call and before StartScheduler. It does not touch hardware:
// TickInit and the first dispatch happen later, in StartScheduler, so
// CreateTask can run any number of times in between with the tick source
// still disarmed.
func Init(cfg Config, plat platform.Platform, hb heartbeat.Heartbeater) {
	k.reset(cfg, plat, hb)
}

// CreateTask allocates a TCB for entry at priority and returns its handle.
// entry must be a non-capturing, never-returning top-level function. It
// fails with CapacityExhausted if entry is nil, if the store has no free
// slot, or if the scheduler has already started (dynamic task creation
// after StartScheduler is not supported; refusing it here is cheaper than
// leaving the store in a state the invariants don't cover).
func CreateTask(entry entryFunc, priority uint8, autostart AutoStart) (TaskHandle, error) {
	if entry == nil {
		return InvalidTask, CapacityExhausted
	}

	var h TaskHandle
	var err error
	withTickMasked(func() {
		if k.started {
			h, err = InvalidTask, CapacityExhausted
			return
		}
		slot := k.findSlot()
		if slot == InvalidTask {
			h, err = InvalidTask, CapacityExhausted
			return
		}
		k.createAt(slot, entry, priority, autostart)
		k.n++
		h = slot
	})
	return h, err
}

// bootstrap creates the idle task, arms the tick source, and runs the
// very first dispatch. That dispatch's switchTasks call goes through the
// normal PendSwitch path, so whichever platform is installed (real
// hardware or platform/simulated with OnPendSwitch wired to
// PendSVHandler) completes phase 2 the same way it would for any later
// switch. Safe to call only once, before k.started is set.
func bootstrap() error {
	if k.plat == nil {
		return PlatformUnavailable
	}
	idleBody := k.cfg.IdleBody
	if idleBody == nil {
		idleBody = func() {
			for {
			}
		}
	}
	withTickMasked(func() {
		k.createAt(k.idleHandle(), idleBody, idlePriority, AutoStartRun)
		k.plat.TickInit(k.cfg.TickPeriodUs, k.cfg.CPUHz)
		k.dispatch(originNormalExec)
		k.started = true
	})
	return nil
}

// Bootstrap runs the same setup StartScheduler performs before it hands
// control to the first task, without then blocking forever. Tests and
// cmd/tracesim call this directly and drive TickHandler/Delay/Suspend/
// Activate themselves afterward, the same decomposition net/http draws
// between Serve and ListenAndServe.
func Bootstrap() error {
	return bootstrap()
}

// StartScheduler arms the tick source, creates the idle task, and
// performs the first context switch. On a real Cortex-M target the
// deferred-switch handler's exception return transfers control to the
// winning task directly; this Go function's own call stack is abandoned
// and never resumed. Portable builds have no such hardware mechanism, so
// this loops forever as a fallback that should never observably execute
// on target — mirroring the `for(;;);` safety net after
// vTaskStartScheduler() in the kernels this one is descended from.
//
// Must be called exactly once, after Init and after every CreateTask call
// the embedder intends to make.
func StartScheduler() error {
	if err := bootstrap(); err != nil {
		return err
	}
	for {
	}
}

// Delay parks the calling task in WAITING for ticks timer ticks. ticks==0
// still yields: the task becomes READY again on the very next tick rather
// than resuming synchronously, as if it had delayed for one unobserved
// instant. Must be called from task context, never from TickHandler or
// PendSVHandler.
func Delay(ticks uint32) {
	if !k.started {
		trust.Fatalf("Delay called before StartScheduler")
		return
	}
	if k.cfg.Debug && k.inISR {
		trust.Fatalf(misuseFromISRMessage)
		return
	}
	withTickMasked(func() {
		t := k.task(k.current)
		t.state = stateWaiting
		t.localTick = ticks
		k.dispatch(originNormalExec)
	})
}

// Suspend parks the calling task in SUSPENDED until some other task calls
// Activate on its handle. Must be called from task context.
func Suspend() {
	if !k.started {
		trust.Fatalf("Suspend called before StartScheduler")
		return
	}
	if k.cfg.Debug && k.inISR {
		trust.Fatalf(misuseFromISRMessage)
		return
	}
	withTickMasked(func() {
		t := k.task(k.current)
		t.state = stateSuspended
		k.dispatch(originNormalExec)
	})
}

// Activate moves h out of SUSPENDED or WAITING into READY and runs a
// dispatch, possibly preempting the caller immediately if h now
// outranks it. A handle that is invalid, unused, RUNNING or already
// READY is a silent no-op; Activate has no failure return because no
// precondition violation here can corrupt the store.
func Activate(h TaskHandle) {
	withTickMasked(func() {
		if h < 0 || int(h) >= len(k.tasks) {
			return
		}
		t := k.task(h)
		if !t.used {
			return
		}
		if t.state != stateSuspended && t.state != stateWaiting {
			return
		}
		t.state = stateReady
		k.dispatch(originNormalExec)
	})
}
