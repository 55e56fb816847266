package kernel

// switchOrigin distinguishes the two call sites that can drive a context
// switch, since the caller-phase register save differs by origin on real
// hardware.
type switchOrigin uint8

const (
	originNormalExec switchOrigin = iota
	originInterrupt
)

// dispatch scans every eligible task (READY or RUNNING) and picks the one
// with the strictly greatest priority. The idle task is always eligible,
// so the scan can never come up empty.
//
// Ties at the winning priority go to whichever of the tied candidates is
// already RUNNING, so a task keeps the core against equal-priority
// competition until it blocks, suspends, or loses outright on priority;
// only when the incumbent isn't itself among the tied candidates (it just
// delayed, suspended, or never ran) does the lowest-indexed tied candidate
// win. Without this, a lower-indexed task would reclaim the core from its
// equal-priority sibling the instant both are next woken by the same tick,
// starving the sibling forever instead of round-robining.
//
// If the winner differs from the current task it becomes next and the
// two-phase switch protocol runs; otherwise dispatch is a no-op.
//
// dispatch is not reentrant. Every call site must already hold the tick
// interrupt masked (see withTickMasked).
func (s *store) dispatch(origin switchOrigin) {
	best := int(-1)
	for i := 0; i < len(s.tasks); i++ {
		t := &s.tasks[i]
		if !t.used {
			continue
		}
		if t.state != stateReady && t.state != stateRunning {
			continue
		}
		if int(t.priority) > best {
			best = int(t.priority)
		}
	}

	winner := s.idleHandle()
	if s.current != InvalidTask && s.task(s.current).state == stateRunning &&
		int(s.task(s.current).priority) == best {
		winner = s.current
	} else {
		for i := 0; i < len(s.tasks); i++ {
			t := &s.tasks[i]
			if !t.used {
				continue
			}
			if t.state != stateReady && t.state != stateRunning {
				continue
			}
			if int(t.priority) == best {
				winner = TaskHandle(i)
				break
			}
		}
	}

	if winner == s.current {
		return
	}
	s.next = winner
	s.switchTasks(origin)
}
