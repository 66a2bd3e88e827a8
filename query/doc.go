// Package query implements the query processing pipeline: tokenizing the
// textual query format, parsing lines into typed instances, ordering and
// grouping batches of instances, and dispatching them against a database.
//
// A query occupies one input line:
//
//	<typeId>[F] [arg1] [arg2] ...
//
// The numeric type id selects a registered query type. A trailing F on the
// id requests formatted output. Arguments are separated by single spaces;
// an argument wrapped in double quotes may contain spaces ("Lisbon LIS").
// Escaping of embedded quotes is not supported.
//
// # Basic Usage
//
// Parse a batch of lines and execute them:
//
//	reg := queries.NewRegistry()
//	parser := query.NewParser(reg)
//
//	list := query.NewList()
//	for i, line := range lines {
//	    inst, err := parser.ParseLine(line, i+1)
//	    if err != nil {
//	        continue // malformed lines are dropped, not fatal
//	    }
//	    list.Add(inst)
//	}
//
//	disp := query.NewDispatcher(reg, perf.Nop(), logger)
//	err := disp.Dispatch(db, list, func(inst *query.Instance) io.Writer {
//	    return outputs[inst.Line]
//	})
//
// # Grouped Dispatch
//
// Before iteration the list sorts itself by (type, line), so all instances
// of one type are adjacent. The dispatcher walks these runs and, for types
// implementing StatisticsGenerator, builds the type's statistics exactly
// once per run, shares them across every execution in the run, and releases
// them afterwards. A type that appears N times in a batch therefore pays
// its precomputation cost once, not N times.
//
// # Error Handling
//
// Failures are local by default:
//   - a line that does not parse yields an error and no instance
//   - an unregistered type id at dispatch time skips its run silently
//   - an execution error is the query type's own concern; the dispatcher
//     ignores it so one failing query cannot abort the batch
//
// Only the tokenizer's quote-mismatch and the per-type argument parsers
// decide what "does not parse" means.
package query
