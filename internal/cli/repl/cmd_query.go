package repl

import (
	"fmt"
	"strings"

	"github.com/VeldsparCrypto/SWSQLite/internal/cli/styled"
	"github.com/VeldsparCrypto/SWSQLite/internal/engine"
	"github.com/VeldsparCrypto/SWSQLite/internal/util/numutil"
	"github.com/VeldsparCrypto/SWSQLite/internal/value"
	"github.com/jedib0t/go-pretty/v6/table"
)

// readPrefixes are the statement keywords run through Engine.Query. Anything
// else goes through Engine.Execute so rows affected can be reported.
var readPrefixes = []string{"SELECT", "WITH", "PRAGMA", "EXPLAIN", "VALUES"}

func isReadQuery(input string) bool {
	upper := strings.ToUpper(strings.TrimSpace(input))
	for _, prefix := range readPrefixes {
		if strings.HasPrefix(upper, prefix) {
			return true
		}
	}
	return false
}

func cmdQuery(r *Repl, input string, params ...value.Value) {
	if !isReadQuery(input) {
		cmdExecute(r, input, params...)
		return
	}

	res := r.eng.Query(input, params)
	if res.Err != nil {
		printError(r, res.Err)
		return
	}

	printRecords(r, res)
}

func cmdExecute(r *Repl, input string, params ...value.Value) {
	res := r.eng.Execute(input, params, false)
	if res.Err != nil {
		printError(r, res.Err)
		return
	}

	tw := styled.NewTableWriter()
	tw.AppendHeader(table.Row{"-", "Rows Affected", "Last Insert ID"})
	tw.AppendRow(table.Row{"OK", numutil.WithCommas(res.RowsAffected), res.LastInsertID})
	fmt.Fprintln(r.out, tw.Render())
}

func printRecords(r *Repl, res engine.Result) {
	if len(res.Records) == 0 {
		styled.DimmedColor().Fprintf(r.out, "No rows (%s)\n", res.Duration)
		return
	}

	tw := styled.NewTableWriter()

	columns := res.Records[0].Columns()
	header := table.Row{}
	for _, column := range columns {
		header = append(header, column)
	}
	tw.AppendHeader(header)

	for _, record := range res.Records {
		row := table.Row{}
		for _, column := range columns {
			v, _ := record.Get(column)
			row = append(row, renderValue(v))
		}
		tw.AppendRow(row)
	}

	fmt.Fprintln(r.out, tw.Render())
	styled.DimmedColor().Fprintf(
		r.out, "%s rows (%s)\n", numutil.WithCommas(len(res.Records)), res.Duration,
	)
}

func renderValue(v value.Value) string {
	if value.IsNull(v) {
		return "NULL"
	}
	return v.String()
}

func printError(r *Repl, err error) {
	fmt.Fprintln(r.out, styled.NewErrorTableWriter(cleanError(err.Error())).Render())
}

// cleanError removes the unwanted text from the error message. So, the error
// is more readable.
func cleanError(errStr string) string {
	errStr = strings.ReplaceAll(errStr, "failed to prepare statement:", "")
	errStr = strings.ReplaceAll(errStr, "failed to step statement:", "")
	return strings.TrimSpace(errStr)
}
