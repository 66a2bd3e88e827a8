// Package output renders query results.
//
// Every query produces a Table: named columns plus rows of string cells.
// Two formatters render it, selected by the query's formatted flag:
//
//   - Plain: one semicolon-joined line per row, no header. The compact
//     form batch outputs use by default.
//   - Pretty: a bordered table with a header row, for queries marked
//     with the F suffix.
//
// # Basic Usage
//
// Pick the formatter from the instance's flag and render:
//
//	f := output.For(inst.Formatted, out)
//	if err := f.Format(&output.Table{
//	    Columns: []string{"id", "name"},
//	    Rows:    rows,
//	}); err != nil {
//	    return err
//	}
//
// A table with no rows renders nothing in either format: a query with an
// empty answer produces an empty output file.
package output
