package query

// Instance is one parsed query occurrence.
//
// Args holds whatever the owning query type's ParseArgs produced; the
// pipeline carries it through to Execute without ever inspecting it.
type Instance struct {
	// Type is the positive id of a registered query type.
	Type int
	// Formatted records the F suffix on the type id: the query asked for
	// structured rather than plain output.
	Formatted bool
	// Line is the 1-based input line the query occurred on. It keys the
	// per-query output file and the execution measurements.
	Line int
	// Args is the type-specific argument payload.
	Args interface{}
}
