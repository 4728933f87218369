package repl

import (
	"fmt"
	"sort"
	"strings"

	"github.com/VeldsparCrypto/SWSQLite/internal/cli/styled"
	"github.com/VeldsparCrypto/SWSQLite/internal/engine"
	"github.com/jedib0t/go-pretty/v6/table"
)

type dotCmd struct {
	name         string
	autocomplete string
	help         string
	args         string
}

func cmdHelpCommands() []dotCmd {
	cmds := []dotCmd{
		{name: ".count [table_name]", autocomplete: ".count", help: "Count the number of rows in a table", args: "table_name (required)"},
		{name: ".columns [table_name]", autocomplete: ".columns", help: "List all columns in a table", args: "table_name (required)"},
		{name: ".load [schema_file]", autocomplete: ".load", help: "Apply a YAML schema file", args: "schema_file (required)"},

		{name: ".tables", autocomplete: ".tables", help: "List all tables in the database"},
		{name: ".indexes", autocomplete: ".indexes", help: "List all indexes in the database"},
		{name: ".schema", autocomplete: ".schema", help: "List all schema in the database"},
		{name: ".uuid", autocomplete: ".uuid", help: "Generate a random id, the value bound for " + engine.UUIDToken},
		{name: ".clustertime", autocomplete: ".clustertime", help: "Generate a time ordered id, the value bound for " + engine.ClusterTimeToken},
		{name: ".clear", autocomplete: ".clear", help: "Clear the terminal screen"},
		{name: ".help", autocomplete: ".help", help: "Show the help message"},
		{name: ".quit", autocomplete: ".quit", help: "Exit the application"},
		{name: ".exit", autocomplete: ".exit", help: "Exit the application"},
		{name: "CTRL+c", help: "Exit the application"},
	}

	sort.Slice(cmds, func(i, j int) bool {
		return cmds[i].name < cmds[j].name
	})

	return cmds
}

func cmdHelp(r *Repl) {
	fmt.Fprintln(r.out, "Available commands:")
	cmds := cmdHelpCommands()

	tw := styled.NewTableWriter()
	tw.AppendHeader(table.Row{"Command", "Description", "Arguments"})

	for _, cmd := range cmds {
		tw.AppendRow(table.Row{cmd.name, cmd.help, cmd.args})
	}

	fmt.Fprintln(r.out, tw.Render())
}

func cmdHelpCompleter(line string) []string {
	suggestions := []string{
		"SELECT ",
		"SELECT * FROM ",
		"SELECT COUNT(*) FROM ",
		"INSERT INTO ",
		"UPDATE ",
		"DELETE FROM ",
		"CREATE TABLE ",
		"DROP TABLE ",
		"ALTER TABLE ",
		"PRAGMA ",
	}

	for _, cmd := range cmdHelpCommands() {
		if cmd.autocomplete != "" {
			suggestions = append(suggestions, cmd.autocomplete)
		}
	}

	results := []string{}
	for _, suggestion := range suggestions {
		if strings.HasPrefix(strings.ToLower(suggestion), strings.ToLower(line)) {
			results = append(results, suggestion)
		}
	}

	return results
}
