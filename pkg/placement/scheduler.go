package placement

// Scheduler queues continuations to run at the start of the next tick.
type Scheduler struct {
	pending []func()
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// NextTick queues fn for the next RunPending.
func (s *Scheduler) NextTick(fn func()) {
	s.pending = append(s.pending, fn)
}

// RunPending runs everything queued before the call and returns how many ran.
// Continuations queued while running wait for the following call.
func (s *Scheduler) RunPending() int {
	batch := s.pending
	s.pending = nil
	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

// Pending returns the number of queued continuations.
func (s *Scheduler) Pending() int {
	return len(s.pending)
}
