package kernel

import (
	"reflect"
	"unsafe"

	"corertos/heartbeat"
	"corertos/platform"
)

// TaskHandle is a non-negative index into the TCB store, or InvalidTask.
type TaskHandle int

// InvalidTask is the sentinel returned when a handle cannot be produced,
// e.g. CreateTask under capacity exhaustion.
const InvalidTask TaskHandle = -1

// taskState is one of the four closed states a TCB can occupy.
type taskState uint8

const (
	stateReady taskState = iota
	stateRunning
	stateWaiting
	stateSuspended
)

func (s taskState) String() string {
	switch s {
	case stateReady:
		return "READY"
	case stateRunning:
		return "RUNNING"
	case stateWaiting:
		return "WAITING"
	case stateSuspended:
		return "SUSPENDED"
	default:
		return "UNKNOWN"
	}
}

// AutoStart selects the initial state of a newly created task.
type AutoStart uint8

const (
	AutoStartRun AutoStart = iota
	StartSuspended
)

// idlePriority is the priority the mandatory idle task is always created
// at. Nothing stops a user task from also using it; ties go to the task
// already RUNNING and otherwise to the lowest index, and idle always
// occupies the highest index, so idle loses those ties unless it is the
// one running, rather than being structurally special.
const idlePriority = 0

// entryFunc is a nullary, never-returning task body.
type entryFunc func()

// tcb is the per-task control block: priority, state, saved stack pointer,
// entry, wait counter, and a private stack region. Modeled after an
// upbeat-style family struct, generalized from priority+counter aging to a
// fixed-priority scheme.
type tcb struct {
	priority  uint8
	state     taskState
	sp        uintptr
	entry     entryFunc
	localTick uint32
	stack     []uintptr
	used      bool
}

// store is the process-global, single-instance, statically-sized TCB
// table. There is exactly one; it is never destroyed, and tasks are never
// removed from it once created.
type store struct {
	cfg         Config
	plat        platform.Platform
	hb          heartbeat.Heartbeater
	tasks       []tcb // len == cfg.MaxTasks + 1, slot cfg.MaxTasks is idle
	n           int   // number of created user tasks, excludes idle
	current     TaskHandle
	next        TaskHandle
	tick        uint32
	firstSwitch bool
	started     bool
	inISR       bool
}

var k store

// idleHandle is always the last slot of the table.
func (s *store) idleHandle() TaskHandle {
	return TaskHandle(len(s.tasks) - 1)
}

func (s *store) task(h TaskHandle) *tcb {
	return &s.tasks[h]
}

// spWithinStack reports whether h's saved stack pointer lies strictly
// inside h's own stack region. Must hold after every externally observable
// step.
func (s *store) spWithinStack(h TaskHandle) bool {
	t := s.task(h)
	if len(t.stack) == 0 || t.sp == 0 {
		return false
	}
	lo := uintptr(unsafe.Pointer(&t.stack[0]))
	hi := lo + uintptr(len(t.stack))*unsafe.Sizeof(t.stack[0])
	return t.sp > lo && t.sp < hi
}

// reset reinitializes the store for a fresh Config and Platform. It is
// only ever called once, by Init, before the tick interrupt is enabled.
func (s *store) reset(cfg Config, plat platform.Platform, hb heartbeat.Heartbeater) {
	s.cfg = cfg
	s.plat = plat
	if hb == nil {
		hb = heartbeat.Noop{}
	}
	s.hb = hb
	s.tasks = make([]tcb, cfg.MaxTasks+1)
	s.n = 0
	s.current = InvalidTask
	s.next = InvalidTask
	s.tick = 0
	s.firstSwitch = true
	s.started = false
	s.inISR = false
}

// findSlot returns the index of the next free user-task slot, or
// InvalidTask when the store is at capacity.
func (s *store) findSlot() TaskHandle {
	for i := 0; i < s.cfg.MaxTasks; i++ {
		if !s.tasks[i].used {
			return TaskHandle(i)
		}
	}
	return InvalidTask
}

// createAt allocates and seeds the TCB at h with the given body, priority
// and initial state. Shared by CreateTask (user tasks) and the idle task
// installed by StartScheduler.
func (s *store) createAt(h TaskHandle, entry entryFunc, priority uint8, autostart AutoStart) {
	t := s.task(h)
	t.used = true
	t.priority = priority
	t.localTick = 0
	t.stack = make([]uintptr, s.cfg.StackWords)
	t.entry = entry
	if autostart == StartSuspended {
		t.state = stateSuspended
	} else {
		t.state = stateReady
	}
	// entry must be a non-capturing top-level function, so its reflect.Value
	// pointer is its code entry address, the same address a linker-level
	// FuncPtr conversion would produce.
	entryAddr := reflect.ValueOf(entry).Pointer()
	t.sp = s.plat.SeedInitialFrame(t.stack, entryAddr)
}
