package query

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"reflect"
	"testing"

	"github.com/JosLopes/LI3-sub001/database"
	"github.com/JosLopes/LI3-sub001/perf"
)

func TestDispatcher_RunsGroupAndOrder(t *testing.T) {
	var events []string

	reg := NewRegistry()
	err := reg.Register(1, &stubType{exec: func(_ *database.Database, stats interface{}, inst *Instance, _ io.Writer) error {
		if stats != nil {
			t.Errorf("type 1 has no generator but got stats %v", stats)
		}
		events = append(events, fmt.Sprintf("exec 1 line %d", inst.Line))
		return nil
	}})
	if err != nil {
		t.Fatal(err)
	}

	gen := &generatingStub{}
	gen.generate = func(_ *database.Database, run []Instance) (interface{}, error) {
		events = append(events, fmt.Sprintf("gen 2 size %d", len(run)))
		return "shared", nil
	}
	gen.exec = func(_ *database.Database, stats interface{}, inst *Instance, _ io.Writer) error {
		if stats != "shared" {
			t.Errorf("type 2 got stats %v, want the generated value", stats)
		}
		events = append(events, fmt.Sprintf("exec 2 line %d", inst.Line))
		return nil
	}
	if err := reg.Register(2, gen); err != nil {
		t.Fatal(err)
	}

	list := NewList()
	for _, k := range []struct{ typeID, line int }{{2, 1}, {1, 2}, {2, 3}, {1, 4}} {
		list.Add(Instance{Type: k.typeID, Line: k.line})
	}

	d := NewDispatcher(reg, nil, nil)
	db := database.NewDatabase()
	if err := d.Dispatch(db, list, func(*Instance) io.Writer { return io.Discard }); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}

	want := []string{
		"exec 1 line 2",
		"exec 1 line 4",
		"gen 2 size 2",
		"exec 2 line 1",
		"exec 2 line 3",
	}
	if !reflect.DeepEqual(events, want) {
		t.Errorf("Dispatch() events = %v, want %v", events, want)
	}
}

func TestDispatcher_SkipsUnregisteredTypes(t *testing.T) {
	executed := 0
	reg := NewRegistry()
	err := reg.Register(1, &stubType{exec: func(*database.Database, interface{}, *Instance, io.Writer) error {
		executed++
		return nil
	}})
	if err != nil {
		t.Fatal(err)
	}

	list := NewList()
	list.Add(Instance{Type: 9, Line: 1})
	list.Add(Instance{Type: 1, Line: 2})
	list.Add(Instance{Type: 9, Line: 3})

	d := NewDispatcher(reg, nil, nil)
	if err := d.Dispatch(database.NewDatabase(), list, func(*Instance) io.Writer { return io.Discard }); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if executed != 1 {
		t.Errorf("Dispatch() executed %d instances, want only the registered one", executed)
	}
}

func TestDispatcher_ExecutionErrorDoesNotStopBatch(t *testing.T) {
	executed := 0
	reg := NewRegistry()
	err := reg.Register(1, &stubType{exec: func(_ *database.Database, _ interface{}, inst *Instance, _ io.Writer) error {
		executed++
		return errors.New("boom")
	}})
	if err != nil {
		t.Fatal(err)
	}

	list := NewList()
	list.Add(Instance{Type: 1, Line: 1})
	list.Add(Instance{Type: 1, Line: 2})

	d := NewDispatcher(reg, nil, nil)
	if err := d.Dispatch(database.NewDatabase(), list, func(*Instance) io.Writer { return io.Discard }); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if executed != 2 {
		t.Errorf("Dispatch() executed %d instances, want 2 despite errors", executed)
	}
}

func TestDispatcher_GeneratorFailureYieldsNilStats(t *testing.T) {
	var got []interface{}
	gen := &generatingStub{}
	gen.generate = func(*database.Database, []Instance) (interface{}, error) {
		return nil, errors.New("no stats today")
	}
	gen.exec = func(_ *database.Database, stats interface{}, _ *Instance, _ io.Writer) error {
		got = append(got, stats)
		return nil
	}

	reg := NewRegistry()
	if err := reg.Register(5, gen); err != nil {
		t.Fatal(err)
	}
	list := NewList()
	list.Add(Instance{Type: 5, Line: 1})

	d := NewDispatcher(reg, nil, nil)
	if err := d.Dispatch(database.NewDatabase(), list, func(*Instance) io.Writer { return io.Discard }); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if len(got) != 1 || got[0] != nil {
		t.Errorf("Dispatch() passed stats %v, want a single nil", got)
	}
}

// closingStats counts Close calls so tests can assert the dispatcher
// releases statistics exactly once per run.
type closingStats struct {
	closed int
}

func (c *closingStats) Close() error {
	c.closed++
	return nil
}

func TestDispatcher_ClosesStatsOncePerRun(t *testing.T) {
	stats := &closingStats{}
	gen := &generatingStub{}
	gen.generate = func(*database.Database, []Instance) (interface{}, error) {
		return stats, nil
	}

	reg := NewRegistry()
	if err := reg.Register(5, gen); err != nil {
		t.Fatal(err)
	}
	list := NewList()
	list.Add(Instance{Type: 5, Line: 1})
	list.Add(Instance{Type: 5, Line: 2})
	list.Add(Instance{Type: 5, Line: 3})

	d := NewDispatcher(reg, nil, nil)
	if err := d.Dispatch(database.NewDatabase(), list, func(*Instance) io.Writer { return io.Discard }); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if stats.closed != 1 {
		t.Errorf("Dispatch() closed stats %d times, want exactly once", stats.closed)
	}
}

func TestDispatcher_RecordsMeasurements(t *testing.T) {
	gen := &generatingStub{}
	gen.generate = func(*database.Database, []Instance) (interface{}, error) {
		return "shared", nil
	}

	reg := NewRegistry()
	if err := reg.Register(1, &stubType{}); err != nil {
		t.Fatal(err)
	}
	if err := reg.Register(2, gen); err != nil {
		t.Fatal(err)
	}

	list := NewList()
	list.Add(Instance{Type: 1, Line: 3})
	list.Add(Instance{Type: 2, Line: 1})
	list.Add(Instance{Type: 1, Line: 2})

	metrics := perf.NewMetrics(nil)
	d := NewDispatcher(reg, metrics, nil)
	if err := d.Dispatch(database.NewDatabase(), list, func(*Instance) io.Writer { return io.Discard }); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}

	if _, exists := metrics.StatisticsEvent(2); !exists {
		t.Error("Dispatch() recorded no statistics event for type 2")
	}
	if _, exists := metrics.StatisticsEvent(1); exists {
		t.Error("Dispatch() recorded a statistics event for a type with no generator")
	}

	times := metrics.ExecutionTimes(1)
	if len(times) != 2 || times[0].Line != 2 || times[1].Line != 3 {
		t.Errorf("ExecutionTimes(1) = %v, want lines 2 and 3 in order", times)
	}
	if got := metrics.ExecutionTimes(2); len(got) != 1 {
		t.Errorf("ExecutionTimes(2) = %v, want one entry", got)
	}
}

func TestDispatcher_SinkPicksPerInstance(t *testing.T) {
	reg := NewRegistry()
	err := reg.Register(1, &stubType{exec: func(_ *database.Database, _ interface{}, inst *Instance, out io.Writer) error {
		fmt.Fprintf(out, "line %d", inst.Line)
		return nil
	}})
	if err != nil {
		t.Fatal(err)
	}

	list := NewList()
	list.Add(Instance{Type: 1, Line: 1})
	list.Add(Instance{Type: 1, Line: 2})

	buffers := map[int]*bytes.Buffer{
		1: new(bytes.Buffer),
		2: new(bytes.Buffer),
	}
	d := NewDispatcher(reg, nil, nil)
	err = d.Dispatch(database.NewDatabase(), list, func(inst *Instance) io.Writer {
		return buffers[inst.Line]
	})
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}

	if got := buffers[1].String(); got != "line 1" {
		t.Errorf("sink for line 1 got %q", got)
	}
	if got := buffers[2].String(); got != "line 2" {
		t.Errorf("sink for line 2 got %q", got)
	}
}

func TestDispatchOne(t *testing.T) {
	generated := 0
	gen := &generatingStub{}
	gen.generate = func(_ *database.Database, run []Instance) (interface{}, error) {
		generated++
		if len(run) != 1 {
			t.Errorf("GenerateStatistics got run of %d, want 1", len(run))
		}
		return "shared", nil
	}
	gen.exec = func(_ *database.Database, stats interface{}, inst *Instance, out io.Writer) error {
		fmt.Fprintf(out, "answer for %d", inst.Line)
		return nil
	}

	reg := NewRegistry()
	if err := reg.Register(6, gen); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	d := NewDispatcher(reg, nil, nil)
	err := d.DispatchOne(database.NewDatabase(), Instance{Type: 6, Line: 11}, &buf)
	if err != nil {
		t.Fatalf("DispatchOne() error = %v", err)
	}
	if generated != 1 {
		t.Errorf("DispatchOne() generated statistics %d times, want 1", generated)
	}
	if got := buf.String(); got != "answer for 11" {
		t.Errorf("DispatchOne() wrote %q", got)
	}
}
