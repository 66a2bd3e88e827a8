package query

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/JosLopes/LI3-sub001/database"
)

// Type defines one registered query kind: how its arguments are validated
// and how one instance executes.
type Type interface {
	// ParseArgs validates the raw argument fields of a query line and
	// returns the payload carried on the instance. A non-nil error makes
	// the whole line a parse failure.
	ParseArgs(args []string) (interface{}, error)

	// Execute runs one instance against the database and writes its
	// result to out. stats is the value produced by GenerateStatistics
	// for this run, or nil when the type has no generator (or generation
	// failed). Errors are the type's own concern: the dispatcher never
	// acts on them.
	Execute(db *database.Database, stats interface{}, inst *Instance, out io.Writer) error
}

// StatisticsGenerator is implemented by query types that precompute shared
// state once per run of same-type instances. The run passed in is never
// empty. If the returned value implements io.Closer it is closed once the
// run has finished executing.
type StatisticsGenerator interface {
	GenerateStatistics(db *database.Database, run []Instance) (interface{}, error)
}

// Registry maps numeric ids to query types. Ids are positive and assigned
// at registration time; nothing constrains them to be contiguous.
type Registry struct {
	mu    sync.RWMutex
	types map[int]Type
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[int]Type)}
}

// Register binds id to t. Non-positive and already-taken ids are rejected.
func (r *Registry) Register(id int, t Type) error {
	if id < 1 {
		return fmt.Errorf("query type id must be positive, got %d", id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.types[id]; exists {
		return fmt.Errorf("query type %d already registered", id)
	}
	r.types[id] = t
	return nil
}

// Lookup retrieves the type registered under id.
func (r *Registry) Lookup(id int) (Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, exists := r.types[id]
	return t, exists
}

// IDs returns every registered id in ascending order.
func (r *Registry) IDs() []int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]int, 0, len(r.types))
	for id := range r.types {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
