package query

import (
	"io"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/JosLopes/LI3-sub001/database"
	"github.com/JosLopes/LI3-sub001/perf"
)

// SinkFunc chooses the output destination for one instance. The dispatcher
// calls it exactly once per instance and never shares the returned writer
// between two instances.
type SinkFunc func(inst *Instance) io.Writer

// Dispatcher executes instance lists run by run. For every maximal run of
// same-type instances it resolves the query type once, builds the type's
// shared statistics once (when the type has a generator), executes each
// instance in line order, and then releases the statistics.
type Dispatcher struct {
	reg    *Registry
	rec    perf.Recorder
	logger log.Logger
}

// NewDispatcher creates a dispatcher over reg. rec may be nil to disable
// measurement; logger may be nil to discard diagnostics.
func NewDispatcher(reg *Registry, rec perf.Recorder, logger log.Logger) *Dispatcher {
	if rec == nil {
		rec = perf.Nop()
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Dispatcher{reg: reg, rec: rec, logger: logger}
}

// Dispatch runs every instance of list against db, writing each result to
// the writer sink picks for it. Statistics generation for a type always
// completes before any of that type's executions start, and executions
// ascend by line, so each (type, line) pair is measured at most once per
// pass.
//
// Unknown type ids skip their whole run; execution errors are logged and
// otherwise ignored. Neither stops the batch.
func (d *Dispatcher) Dispatch(db *database.Database, list *List, sink SinkFunc) error {
	return list.EachRun(func(run []Instance) error {
		d.dispatchRun(db, run, sink)
		return nil
	})
}

// DispatchOne executes a single instance, writing its result to out. It
// wraps the instance in a length-1 list and reuses the list path, so
// single-query and batch dispatch cannot drift apart.
func (d *Dispatcher) DispatchOne(db *database.Database, inst Instance, out io.Writer) error {
	list := NewList()
	list.Add(inst)
	return d.Dispatch(db, list, func(*Instance) io.Writer { return out })
}

func (d *Dispatcher) dispatchRun(db *database.Database, run []Instance, sink SinkFunc) {
	id := run[0].Type
	t, ok := d.reg.Lookup(id)
	if !ok {
		level.Debug(d.logger).Log("msg", "skipping run of unregistered query type", "type", id, "instances", len(run))
		return
	}

	var stats interface{}
	if gen, ok := t.(StatisticsGenerator); ok {
		d.rec.StartQueryStatistics(id)
		var err error
		stats, err = gen.GenerateStatistics(db, run)
		d.rec.StopQueryStatistics(id)
		if err != nil {
			level.Warn(d.logger).Log("msg", "statistics generation failed", "type", id, "err", err)
			stats = nil
		}
	}

	for i := range run {
		inst := &run[i]
		d.rec.StartQueryExecution(id, inst.Line)
		if err := t.Execute(db, stats, inst, sink(inst)); err != nil {
			level.Debug(d.logger).Log("msg", "query execution failed", "type", id, "line", inst.Line, "err", err)
		}
		d.rec.StopQueryExecution(id, inst.Line)
	}

	if c, ok := stats.(io.Closer); ok {
		if err := c.Close(); err != nil {
			level.Warn(d.logger).Log("msg", "releasing query statistics failed", "type", id, "err", err)
		}
	}
}
