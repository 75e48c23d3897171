package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// renderTable draws rows under a rounded header. Columns holding only
// integers are right-aligned.
func renderTable(title string, header table.Row, rows []table.Row) string {
	if len(header) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	if title != "" {
		tw.SetTitle(title)
	}
	tw.AppendHeader(header)
	tw.AppendRows(rows)

	configs := make([]table.ColumnConfig, 0, len(header))
	for col := range header {
		if numericColumn(rows, col) {
			configs = append(configs, table.ColumnConfig{
				Number:      col + 1,
				Align:       text.AlignRight,
				AlignHeader: text.AlignRight,
			})
		}
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

func numericColumn(rows []table.Row, col int) bool {
	if len(rows) == 0 {
		return false
	}
	for _, row := range rows {
		if col >= len(row) {
			return false
		}
		if _, ok := row[col].(int); !ok {
			return false
		}
	}
	return true
}
