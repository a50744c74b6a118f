package summary

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

// Render writes rows as a two column table
func Render(w io.Writer, rows []Row) {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	table.SetColumnSeparator(" ")
	table.SetCenterSeparator(" ")
	table.SetRowSeparator("-")

	for _, row := range rows {
		if row.Kind == RowDivider {
			table.Append([]string{"", ""})
			continue
		}
		table.Append([]string{row.Label, row.Value})
	}

	table.Render()
}
