package perf

// Event measures one phase of work as a pair of resource snapshots.
// StartEvent captures the baseline; Stop converts it into deltas, after
// which the getters are valid. An event is immutable once stopped.
//
// Measurement is best-effort: a sampling failure at either boundary leaves
// the event zeroed and surfaces as a non-fatal error.
type Event struct {
	startCPUMicros int64
	startMemKiB    int64

	cpuMicros int64
	memKiB    int64

	stopped bool
	failed  bool
}

// StartEvent captures the baseline resource snapshot. On sampling failure
// the returned event is still usable but permanently zeroed, and the error
// describes what could not be read.
func StartEvent() (*Event, error) {
	e := &Event{}
	s, err := sampleResources()
	if err != nil {
		e.failed = true
		return e, err
	}
	e.startCPUMicros = s.cpuMicros
	e.startMemKiB = s.memKiB
	return e, nil
}

// Stop takes the end snapshot and stores the deltas. The memory delta is
// clamped at zero: a process that superficially shrank between snapshots
// is measurement noise, not negative usage. Stopping an already-stopped
// event does nothing.
func (e *Event) Stop() error {
	if e.stopped {
		return nil
	}
	e.stopped = true
	if e.failed {
		return nil // baseline was never captured, event stays zeroed
	}

	s, err := sampleResources()
	if err != nil {
		e.failed = true
		return err
	}

	e.cpuMicros = s.cpuMicros - e.startCPUMicros
	if mem := s.memKiB - e.startMemKiB; mem > 0 {
		e.memKiB = mem
	}
	return nil
}

// Stopped reports whether Stop has been called.
func (e *Event) Stopped() bool {
	return e.stopped
}

// CPUMicros returns the user+system CPU time consumed during the measured
// phase, in microseconds. Zero until Stop.
func (e *Event) CPUMicros() int64 {
	return e.cpuMicros
}

// MemoryKiB returns the growth in process virtual memory during the
// measured phase, in KiB. Zero until Stop, never negative.
func (e *Event) MemoryKiB() int64 {
	return e.memKiB
}
