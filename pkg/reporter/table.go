package reporter

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/yaklabco/saeval/pkg/aggregate"
)

// RenderTable renders the per-project rows and the summary row as a terminal
// table. Display only; the CSV artifact is the canonical output.
func RenderTable(w io.Writer, rows []aggregate.Row) {
	RenderTableWidth(w, rows, 0)
}

// RenderTableWidth renders like RenderTable, wrapping rows to the given
// terminal width. Zero means unconstrained.
func RenderTableWidth(w io.Writer, rows []aggregate.Row, width int) {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	if width > 0 {
		tbl.SetAllowedRowLength(width)
	}

	tbl.AppendHeader(table.Row{"project", "tp", "fp", "fn", "precision", "recall"})
	for _, row := range rows {
		tbl.AppendRow(tableRow(row))
	}
	tbl.AppendFooter(tableRow(aggregate.Summarize(rows)))

	tbl.Render()
}

func tableRow(row aggregate.Row) table.Row {
	return table.Row{
		row.Project,
		row.TP,
		row.FP,
		row.FN,
		fmt.Sprintf("%.4f", row.Precision),
		fmt.Sprintf("%.4f", row.Recall),
	}
}
