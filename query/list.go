package query

import "sort"

// List is an insertion-ordered collection of query instances. It owns its
// elements: Add copies the instance in, and iteration callbacks receive
// pointers into the list's own storage.
//
// Iteration always happens in (type ascending, line ascending) order. The
// reorder is lazy: it runs at most once between mutations, so repeated
// iteration of an unchanged list costs nothing extra.
type List struct {
	items  []Instance
	sorted bool
}

// NewList returns an empty list.
func NewList() *List {
	return &List{}
}

// Add appends inst, invalidating any previous ordering.
func (l *List) Add(inst Instance) {
	l.items = append(l.items, inst)
	l.sorted = false
}

// Len returns the number of instances held.
func (l *List) Len() int {
	return len(l.items)
}

// ensureSorted orders items by (type, line). Sorting an already-sorted
// list is a no-op. The sort is stable, though (type, line) pairs are
// unique in practice since line numbers are unique per input file.
func (l *List) ensureSorted() {
	if l.sorted {
		return
	}
	sort.SliceStable(l.items, func(i, j int) bool {
		if l.items[i].Type != l.items[j].Type {
			return l.items[i].Type < l.items[j].Type
		}
		return l.items[i].Line < l.items[j].Line
	})
	l.sorted = true
}

// Each visits every instance once, in (type, line) order. A non-nil error
// from visit stops the walk and is returned verbatim.
func (l *List) Each(visit func(inst *Instance) error) error {
	l.ensureSorted()
	for i := range l.items {
		if err := visit(&l.items[i]); err != nil {
			return err
		}
	}
	return nil
}

// EachRun partitions the ordered instances into maximal runs of equal type
// and calls visit once per run. Every run is non-empty and its instances
// ascend by line. A non-nil error from visit stops the walk and is
// returned verbatim.
//
// The run slice aliases the list's storage and is only valid during the
// callback.
func (l *List) EachRun(visit func(run []Instance) error) error {
	l.ensureSorted()
	for start := 0; start < len(l.items); {
		end := start + 1
		for end < len(l.items) && l.items[end].Type == l.items[start].Type {
			end++
		}
		if err := visit(l.items[start:end]); err != nil {
			return err
		}
		start = end
	}
	return nil
}
