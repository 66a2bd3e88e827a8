// Package perf measures CPU time and memory growth per pipeline phase:
// each dataset loading step, each query type's statistics generation, and
// each individual query execution.
//
// Profiling is opt-in. Code paths take a Recorder; callers that want
// measurements pass a *Metrics and everyone else passes Nop(), so the hot
// path never branches on whether instrumentation is present. Measurement
// failures are logged and never interfere with the work being measured.
package perf

import (
	"sort"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Step labels one phase of dataset loading.
type Step int

const (
	StepUsers Step = iota
	StepFlights
	StepPassengers
	StepReservations
	// StepDone is the terminal sentinel: it closes the last open step
	// without opening a new one and records nothing itself.
	StepDone
)

// stepNone marks that no dataset step is currently open.
const stepNone Step = -1

func (s Step) String() string {
	switch s {
	case StepUsers:
		return "users"
	case StepFlights:
		return "flights"
	case StepPassengers:
		return "passengers"
	case StepReservations:
		return "reservations"
	case StepDone:
		return "done"
	}
	return "unknown"
}

// Recorder is the instrumentation capability threaded through the
// pipeline. Implementations must tolerate being called in any order;
// recording never fails from the caller's point of view.
type Recorder interface {
	// MeasureDataset stops whichever dataset step is open and starts
	// step. Passing StepDone only stops.
	MeasureDataset(step Step)
	// StartQueryStatistics and StopQueryStatistics bracket one type's
	// statistics generation. One event is kept per type.
	StartQueryStatistics(typeID int)
	StopQueryStatistics(typeID int)
	// StartQueryExecution and StopQueryExecution bracket one instance's
	// execution, keyed by (type, line).
	StartQueryExecution(typeID, line int)
	StopQueryExecution(typeID, line int)
}

// nopRecorder measures nothing.
type nopRecorder struct{}

func (nopRecorder) MeasureDataset(Step)          {}
func (nopRecorder) StartQueryStatistics(int)     {}
func (nopRecorder) StopQueryStatistics(int)      {}
func (nopRecorder) StartQueryExecution(int, int) {}
func (nopRecorder) StopQueryExecution(int, int)  {}

// Nop returns the Recorder used when profiling is off. Every call on it is
// a no-op.
func Nop() Recorder {
	return nopRecorder{}
}

// Metrics is the collecting Recorder. It keeps one event per dataset step,
// one per query type's statistics generation, and one per (type, line)
// execution. A Metrics value is single-owner and not safe for concurrent
// use; the pipeline it instruments is strictly sequential.
//
// All recording methods are safe on a nil *Metrics and do nothing.
type Metrics struct {
	logger log.Logger

	datasetEvents map[Step]*Event
	currentStep   Step

	statisticsEvents map[int]*Event
	executionEvents  map[int]map[int]*Event
}

var _ Recorder = (*Metrics)(nil)

// NewMetrics creates an empty collector. Measurement diagnostics go to
// logger; nil discards them.
func NewMetrics(logger log.Logger) *Metrics {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Metrics{
		logger:           logger,
		datasetEvents:    make(map[Step]*Event),
		currentStep:      stepNone,
		statisticsEvents: make(map[int]*Event),
		executionEvents:  make(map[int]map[int]*Event),
	}
}

// MeasureDataset stops the open step, if any, then starts measuring step.
// StepDone stops without starting anything, ending the loading phase.
func (m *Metrics) MeasureDataset(step Step) {
	if m == nil {
		return
	}
	if m.currentStep != stepNone {
		if e := m.datasetEvents[m.currentStep]; e != nil {
			if err := e.Stop(); err != nil {
				level.Warn(m.logger).Log("msg", "dataset measurement failed", "step", m.currentStep, "err", err)
			}
		}
		m.currentStep = stepNone
	}
	if step == StepDone {
		return
	}

	e, err := StartEvent()
	if err != nil {
		level.Warn(m.logger).Log("msg", "dataset measurement failed", "step", step, "err", err)
	}
	m.datasetEvents[step] = e
	m.currentStep = step
}

// StartQueryStatistics begins the statistics event for typeID. Starting
// again while the previous event is still open indicates a dispatch bug;
// it is logged and the stale event is replaced rather than kept.
func (m *Metrics) StartQueryStatistics(typeID int) {
	if m == nil {
		return
	}
	if prev, exists := m.statisticsEvents[typeID]; exists && !prev.Stopped() {
		level.Warn(m.logger).Log("msg", "statistics measurement restarted before stop", "type", typeID)
	}
	e, err := StartEvent()
	if err != nil {
		level.Warn(m.logger).Log("msg", "statistics measurement failed", "type", typeID, "err", err)
	}
	m.statisticsEvents[typeID] = e
}

// StopQueryStatistics ends the statistics event for typeID. A stop with no
// matching start is reported and otherwise ignored.
func (m *Metrics) StopQueryStatistics(typeID int) {
	if m == nil {
		return
	}
	e, exists := m.statisticsEvents[typeID]
	if !exists {
		level.Warn(m.logger).Log("msg", "statistics measurement stopped without start", "type", typeID)
		return
	}
	if err := e.Stop(); err != nil {
		level.Warn(m.logger).Log("msg", "statistics measurement failed", "type", typeID, "err", err)
	}
}

// StartQueryExecution begins the execution event for one instance.
func (m *Metrics) StartQueryExecution(typeID, line int) {
	if m == nil {
		return
	}
	e, err := StartEvent()
	if err != nil {
		level.Warn(m.logger).Log("msg", "execution measurement failed", "type", typeID, "line", line, "err", err)
	}
	byLine := m.executionEvents[typeID]
	if byLine == nil {
		byLine = make(map[int]*Event)
		m.executionEvents[typeID] = byLine
	}
	byLine[line] = e
}

// StopQueryExecution ends the execution event for one instance. A stop
// with no matching start is reported and otherwise ignored.
func (m *Metrics) StopQueryExecution(typeID, line int) {
	if m == nil {
		return
	}
	e := m.executionEvents[typeID][line]
	if e == nil {
		level.Warn(m.logger).Log("msg", "execution measurement stopped without start", "type", typeID, "line", line)
		return
	}
	if err := e.Stop(); err != nil {
		level.Warn(m.logger).Log("msg", "execution measurement failed", "type", typeID, "line", line, "err", err)
	}
}

// DatasetEvent returns the event recorded for one loading step.
func (m *Metrics) DatasetEvent(step Step) (*Event, bool) {
	if m == nil {
		return nil, false
	}
	e, exists := m.datasetEvents[step]
	return e, exists
}

// StatisticsEvent returns the statistics-generation event for one type.
func (m *Metrics) StatisticsEvent(typeID int) (*Event, bool) {
	if m == nil {
		return nil, false
	}
	e, exists := m.statisticsEvents[typeID]
	return e, exists
}

// ExecutionTime pairs a query's source line with its measured CPU cost.
type ExecutionTime struct {
	Line      int
	CPUMicros int64
}

// ExecutionTimes returns every execution measured for typeID, ascending by
// line. Line numbers are unique per input file, so the order is total.
func (m *Metrics) ExecutionTimes(typeID int) []ExecutionTime {
	if m == nil {
		return nil
	}
	byLine := m.executionEvents[typeID]
	if len(byLine) == 0 {
		return nil
	}
	times := make([]ExecutionTime, 0, len(byLine))
	for line, e := range byLine {
		times = append(times, ExecutionTime{Line: line, CPUMicros: e.CPUMicros()})
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Line < times[j].Line })
	return times
}

// DatasetSteps returns the steps with recorded events, in loading order.
func (m *Metrics) DatasetSteps() []Step {
	if m == nil {
		return nil
	}
	steps := make([]Step, 0, len(m.datasetEvents))
	for step := range m.datasetEvents {
		steps = append(steps, step)
	}
	sort.Slice(steps, func(i, j int) bool { return steps[i] < steps[j] })
	return steps
}

// StatisticsTypes returns the type ids with statistics events, ascending.
func (m *Metrics) StatisticsTypes() []int {
	if m == nil {
		return nil
	}
	ids := make([]int, 0, len(m.statisticsEvents))
	for id := range m.statisticsEvents {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// ExecutionTypes returns the type ids with execution events, ascending.
func (m *Metrics) ExecutionTypes() []int {
	if m == nil {
		return nil
	}
	ids := make([]int, 0, len(m.executionEvents))
	for id := range m.executionEvents {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
