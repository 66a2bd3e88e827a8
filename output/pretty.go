package output

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

// PrettyFormatter renders bordered tables with a header row, for queries
// that asked for formatted output.
type PrettyFormatter struct {
	writer io.Writer
}

// NewPrettyFormatter creates a new table formatter
func NewPrettyFormatter(w io.Writer) *PrettyFormatter {
	return &PrettyFormatter{writer: w}
}

// SetOutput sets the output writer
func (p *PrettyFormatter) SetOutput(w io.Writer) {
	p.writer = w
}

// Format renders the table. Column names are kept as written rather than
// uppercased, so they match the plain format's vocabulary.
func (p *PrettyFormatter) Format(t *Table) error {
	if len(t.Rows) == 0 {
		return nil
	}

	table := tablewriter.NewWriter(p.writer)
	table.SetHeader(t.Columns)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, row := range t.Rows {
		table.Append(row)
	}
	table.Render()
	return nil
}
