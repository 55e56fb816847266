package kernel

// switchTasks is the caller phase of the two-stage context-switch protocol,
// run inline at the end of dispatch. It never touches the stack pointer
// with a hand-computed bias; it simply asks the platform for the current
// SP and hands the incoming task's previously recorded SP back to the
// platform in phase 2. Any register save/restore beyond the stack pointer
// itself (R4-R11) is the platform's job, done in its switch trampoline.
func (s *store) switchTasks(origin switchOrigin) {
	if !s.firstSwitch {
		outgoing := s.current
		out := s.task(outgoing)
		// The dispatcher only ever preempts a task that was READY or
		// RUNNING; a task that suspended or delayed itself already left
		// RUNNING before calling dispatch. A task still RUNNING here was
		// preempted without volunteering, so it goes back to READY —
		// otherwise two tasks would read RUNNING at once.
		if out.state == stateRunning {
			out.state = stateReady
		}
		out.sp = s.plat.ReadSP()
	}
	s.firstSwitch = false

	incoming := s.next
	s.task(incoming).state = stateRunning
	s.current = incoming
	s.plat.PendSwitch()
}

// PendSVHandler is the deferred-switch handler, phase 2 of the protocol.
// On real hardware it is registered as the PendSV vector, always
// programmed to the lowest exception priority so it only runs once every
// higher-priority handler has drained. It reads no TCB fields besides the
// current task's saved stack pointer and never mutates the TCB store.
func PendSVHandler() {
	k.plat.ClearSwitchPending()
	k.plat.WriteSP(k.task(k.current).sp)
}
