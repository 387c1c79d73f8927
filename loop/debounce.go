package loop

// Debouncer coalesces any number of Trigger calls between two frames into
// a single call of fn on the next frame. It must be used from the loop
// goroutine.
type Debouncer struct {
	sched   Scheduler
	fn      func()
	id      FrameID
	pending bool
}

// NewDebouncer creates a debouncer that runs fn on sched.
func NewDebouncer(sched Scheduler, fn func()) *Debouncer {
	return &Debouncer{sched: sched, fn: fn}
}

// Trigger schedules fn for the next frame unless it is already scheduled.
func (d *Debouncer) Trigger() {
	if d.pending {
		return
	}
	d.pending = true
	d.id = d.sched.RequestFrame(func() {
		d.pending = false
		d.fn()
	})
}

// Cancel drops a scheduled call.
func (d *Debouncer) Cancel() {
	if !d.pending {
		return
	}
	d.pending = false
	d.sched.CancelFrame(d.id)
}

// Pending reports whether a call is scheduled.
func (d *Debouncer) Pending() bool {
	return d.pending
}
