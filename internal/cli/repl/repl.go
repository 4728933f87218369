// Package repl is the interactive shell of swsqlite.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/VeldsparCrypto/SWSQLite/internal/engine"
	"github.com/VeldsparCrypto/SWSQLite/internal/util/sysutil"
	"github.com/peterh/liner"
)

type Repl struct {
	eng         *engine.Engine
	ctx         context.Context
	stop        context.CancelFunc
	out         io.Writer
	historyPath string
}

func NewRepl(
	ctx context.Context,
	stop context.CancelFunc,
	eng *engine.Engine,
	out io.Writer,
	historyPath string,
) Repl {
	return Repl{
		eng:         eng,
		ctx:         ctx,
		stop:        stop,
		out:         out,
		historyPath: historyPath,
	}
}

// Start reads commands until the user quits or the context is done.
func (r *Repl) Start() error {
	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "Connected to %s\n", r.eng.Path())
	fmt.Fprintln(r.out, `Enter ".help" for usage hints and ".quit" or "CTRL+C" to quit`)
	fmt.Fprintln(r.out)

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(cmdHelpCompleter)
	r.readHistory(line)

	for {
		select {
		case <-r.ctx.Done():
			return nil
		default:
			input := r.prompt(line)
			if quit := r.Dispatch(input); quit {
				r.Shutdown()
				return nil
			}
		}
	}
}

// Dispatch runs one line of input and reports whether the shell must exit.
func (r *Repl) Dispatch(input string) bool {
	input = strings.TrimSpace(input)
	command, arg, _ := strings.Cut(input, " ")
	arg = strings.TrimSpace(arg)

	switch command {
	case "":
	case "exit", ".exit", ".quit":
		return true
	case "clear", ".clear":
		sysutil.ClearTerminal(r.out)
	case "help", ".help":
		cmdHelp(r)
	case ".tables":
		cmdTables(r)
	case ".indexes":
		cmdIndexes(r)
	case ".schema":
		cmdSchema(r)
	case ".columns":
		cmdColumns(r, arg)
	case ".count":
		cmdCount(r, arg)
	case ".load":
		cmdLoad(r, arg)
	case ".uuid":
		cmdIdentifier(r, engine.UUIDToken)
	case ".clustertime":
		cmdIdentifier(r, engine.ClusterTimeToken)
	default:
		if strings.HasPrefix(input, ".") {
			fmt.Fprintln(r.out, "Unknown command, type .help for usage hints")
			return false
		}
		cmdQuery(r, input)
	}

	return false
}

// Shutdown stops the REPL.
func (r *Repl) Shutdown() {
	r.stop()
}

func (r *Repl) readHistory(line *liner.State) {
	file, err := os.Open(r.historyPath)
	if err != nil {
		return
	}
	defer file.Close()
	_, _ = line.ReadHistory(file)
}

// prompt shows the prompt and reads the input from the user.
func (r *Repl) prompt(line *liner.State) string {
	input, err := line.Prompt("SWSQLite> ")
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			fmt.Fprintln(r.out, "Exiting...")
			return ".quit"
		}
		return ""
	}

	line.AppendHistory(input)
	if file, err := os.Create(r.historyPath); err == nil {
		_, _ = line.WriteHistory(file)
		file.Close()
	}

	return strings.TrimSpace(input)
}
