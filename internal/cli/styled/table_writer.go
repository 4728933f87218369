package styled

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// NewTableWriter returns a table.Writer with the styles of the shell and the
// benchmark reports.
func NewTableWriter() table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.Style().Format.Header = text.FormatDefault
	tw.Style().Format.Footer = text.FormatDefault
	tw.Style().Color.Header = text.Colors{text.FgCyan, text.Bold}
	tw.Style().Color.Footer = text.Colors{text.FgCyan, text.Bold}

	return tw
}

// NewErrorTableWriter returns a single column table titled "Error".
func NewErrorTableWriter(msg string) table.Writer {
	tw := NewTableWriter()
	tw.Style().Color.Header = text.Colors{text.FgRed, text.Bold}
	tw.AppendHeader(table.Row{"Error"})
	tw.AppendRow(table.Row{msg})

	return tw
}
