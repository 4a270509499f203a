package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"lox/interpreter-go/pkg/lox"
	"lox/interpreter-go/pkg/runtime"
)

const (
	historyFileName = ".lox_history"
	promptMain      = "> "
	promptCont      = ".. "
	banner          = "Lox interpreter. Ctrl+D to exit, :help for commands."
	helpText        = `REPL commands:
  :help            Show this help
  :quit / :exit    Exit the session
  :load <file>     Run a file in the current session
  :env             List global bindings
`
)

// Interactive mode only; script output stays uncolored.
const (
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
	ansiReset = "\x1b[0m"
)

func (c *cli) runREPL(cfg *config) error {
	logger := buildLogger(cfg.Debug, os.Stderr)
	defer logger.Sync()

	fmt.Fprintln(c.stdout, banner)

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	histPath := historyPath()
	if f, err := os.Open(histPath); err == nil {
		_, _ = line.ReadHistory(f)
		_ = f.Close()
	}

	runner := lox.NewRunner(
		lox.WithOutput(c.stdout),
		lox.WithErrorOutput(c.stderr),
		lox.WithLogger(logger),
	)

	for {
		source, ok := readUnit(line)
		if !ok {
			fmt.Fprintln(c.stdout)
			break
		}
		trimmed := strings.TrimSpace(source)
		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, ":") {
			if done := c.replCommand(runner, trimmed); done {
				break
			}
			line.AppendHistory(trimmed)
			continue
		}

		value, err := runner.RunSource(source)
		if err != nil {
			// The session's globals survive both error families.
			fmt.Fprintln(c.stderr, ansiRed+err.Error()+ansiReset)
			continue
		}
		if _, isNil := value.(runtime.NilValue); !isNil {
			fmt.Fprintln(c.stdout, ansiGreen+runtime.Stringify(value)+ansiReset)
		}
		line.AppendHistory(strings.ReplaceAll(trimmed, "\n", " "))
	}

	if f, err := os.Create(histPath); err == nil {
		_, _ = line.WriteHistory(f)
		_ = f.Close()
	}
	return nil
}

// readUnit accumulates lines until they form a complete unit, prompting
// with the continuation marker while the parser still wants more input.
func readUnit(line *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		text, err := line.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			// Ctrl+C drops the buffered input and starts over.
			return "", true
		}
		b.WriteString(text)
		b.WriteString("\n")
		if !lox.IsIncomplete(b.String()) {
			return b.String(), true
		}
	}
}

func (c *cli) replCommand(runner *lox.Runner, input string) (done bool) {
	fields := strings.Fields(input)
	switch strings.ToLower(fields[0]) {
	case ":help":
		fmt.Fprint(c.stdout, helpText)
	case ":quit", ":exit":
		return true
	case ":load":
		if len(fields) < 2 {
			fmt.Fprintln(c.stdout, "usage: :load <file>")
			return false
		}
		if err := runner.RunFile(fields[1]); err != nil {
			fmt.Fprintln(c.stderr, err)
		}
	case ":env":
		globals := runner.GlobalEnvironment()
		for _, name := range globals.Keys() {
			value, _ := globals.Lookup(name)
			fmt.Fprintf(c.stdout, "%s = %s\n", name, runtime.Stringify(value))
		}
	default:
		fmt.Fprintln(c.stdout, "unknown command, :help lists the available ones")
	}
	return false
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return historyFileName
	}
	return filepath.Join(home, historyFileName)
}
