package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"

	"github.com/JosLopes/LI3-sub001/perf"
)

// printReport renders the measurements collected throughout a -perf run:
// one table for dataset loading, one for statistics generation and one
// for individual query executions. Each report carries a fresh id so runs
// can be told apart when their output is collected.
func printReport(w io.Writer, m *perf.Metrics) {
	fmt.Fprintf(w, "\nPerformance report %s\n", uuid.NewString())

	if steps := m.DatasetSteps(); len(steps) > 0 {
		fmt.Fprintf(w, "\nDataset loading\n")
		table := newReportTable(w, []string{"step", "cpu (µs)", "memory (KiB)"})
		for _, step := range steps {
			e, exists := m.DatasetEvent(step)
			if !exists {
				continue
			}
			table.Append([]string{
				step.String(),
				strconv.FormatInt(e.CPUMicros(), 10),
				strconv.FormatInt(e.MemoryKiB(), 10),
			})
		}
		table.Render()
	}

	if ids := m.StatisticsTypes(); len(ids) > 0 {
		fmt.Fprintf(w, "\nStatistics generation\n")
		table := newReportTable(w, []string{"query type", "cpu (µs)", "memory (KiB)"})
		for _, id := range ids {
			e, exists := m.StatisticsEvent(id)
			if !exists {
				continue
			}
			table.Append([]string{
				strconv.Itoa(id),
				strconv.FormatInt(e.CPUMicros(), 10),
				strconv.FormatInt(e.MemoryKiB(), 10),
			})
		}
		table.Render()
	}

	if ids := m.ExecutionTypes(); len(ids) > 0 {
		fmt.Fprintf(w, "\nQuery execution\n")
		table := newReportTable(w, []string{"query type", "line", "cpu (µs)"})
		for _, id := range ids {
			for _, et := range m.ExecutionTimes(id) {
				table.Append([]string{
					strconv.Itoa(id),
					strconv.Itoa(et.Line),
					strconv.FormatInt(et.CPUMicros, 10),
				})
			}
		}
		table.Render()
	}
}

func newReportTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	return table
}
