package output

import "io"

// Table is one query result: named columns and rows of cell values, in
// the order the query produced them.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Formatter defines the interface for result formatters.
//
// Implementers must provide Format to render a table to the configured
// writer and SetOutput to change the destination.
type Formatter interface {
	// Format renders one result table. A table with no rows renders
	// nothing.
	Format(t *Table) error

	// SetOutput changes the output writer
	SetOutput(w io.Writer)
}

// For returns the formatter matching a query's formatted flag, writing to
// w: pretty tables when the flag is set, plain lines otherwise.
func For(formatted bool, w io.Writer) Formatter {
	if formatted {
		return NewPrettyFormatter(w)
	}
	return NewPlainFormatter(w)
}
