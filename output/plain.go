package output

import (
	"fmt"
	"io"
	"strings"
)

// PlainFormatter writes one semicolon-joined line per row, no header.
// This is the default query output format.
type PlainFormatter struct {
	writer io.Writer
}

// NewPlainFormatter creates a new plain-text formatter
func NewPlainFormatter(w io.Writer) *PlainFormatter {
	return &PlainFormatter{writer: w}
}

// SetOutput sets the output writer
func (p *PlainFormatter) SetOutput(w io.Writer) {
	p.writer = w
}

// Format writes every row as a single line of semicolon-separated values.
func (p *PlainFormatter) Format(t *Table) error {
	for _, row := range t.Rows {
		if _, err := fmt.Fprintln(p.writer, strings.Join(row, ";")); err != nil {
			return err
		}
	}
	return nil
}
