package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/kolkov/ulox"
)

func newReplCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Long: `Read expressions line by line and print each value.

Input continues on the next line while a parenthesis, string or comment is
still open. Ctrl-C discards the pending input, Ctrl-D exits.`,
		Args: cobra.NoArgs,
		RunE: o.runREPL,
	}
}

func (o *options) runREPL(cmd *cobra.Command, _ []string) error {
	p := o.printer(cmd)
	if f, ok := cmd.InOrStdin().(*os.File); ok && isInteractive(f) {
		return o.interactiveREPL(p)
	}
	return o.bufferedREPL(bufio.NewReader(cmd.InOrStdin()), p)
}

// evalInput evaluates one complete input and prints its value or
// diagnostics. It reports whether evaluation succeeded.
func (o *options) evalInput(p *printer, src string) bool {
	res, err := ulox.Run(src, &ulox.Config{
		PrintAST: o.cfg.PrintAST,
		Logger:   o.log,
	})
	if err != nil {
		p.report("", err)
		return false
	}
	if res.AST != "" {
		p.ast(res.AST)
	}
	p.value(res.Value)
	return true
}

// bufferedREPL reads from a pipe or file. No prompts are printed.
func (o *options) bufferedREPL(reader *bufio.Reader, p *printer) error {
	var buffer strings.Builder
	failed := false

	for {
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read input: %w", err)
		}
		buffer.WriteString(line)

		src := buffer.String()
		atEOF := errors.Is(err, io.EOF)
		switch {
		case strings.TrimSpace(src) == "":
			buffer.Reset()
		case atEOF || !incomplete(src):
			if !o.evalInput(p, src) {
				failed = true
			}
			buffer.Reset()
		}

		if atEOF {
			if failed {
				return errReported
			}
			return nil
		}
	}
}

func (o *options) interactiveREPL(p *printer) error {
	state := liner.NewLiner()
	defer state.Close()
	state.SetCtrlCAborts(true)

	if historyPath := o.cfg.ExpandedHistoryFile(); historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			if _, err := state.ReadHistory(f); err != nil {
				o.log.Warn("read history", "path", historyPath, "err", err)
			}
			f.Close()
		}
		defer func() {
			f, err := os.Create(historyPath)
			if err != nil {
				o.log.Warn("write history", "path", historyPath, "err", err)
				return
			}
			if _, err := state.WriteHistory(f); err != nil {
				o.log.Warn("write history", "path", historyPath, "err", err)
			}
			f.Close()
		}()
	}

	var buffer strings.Builder

	for {
		prompt := o.cfg.Prompt
		if buffer.Len() > 0 {
			prompt = o.cfg.ContinuationPrompt
		}
		input, err := state.Prompt(prompt)
		if err != nil {
			switch {
			case errors.Is(err, liner.ErrPromptAborted):
				buffer.Reset()
				continue
			case errors.Is(err, io.EOF):
				fmt.Fprintln(p.out)
				return nil
			default:
				return fmt.Errorf("read input: %w", err)
			}
		}
		buffer.WriteString(input)
		buffer.WriteString("\n")

		src := buffer.String()
		if strings.TrimSpace(src) == "" {
			buffer.Reset()
			continue
		}
		if incomplete(src) {
			continue
		}

		buffer.Reset()
		state.AppendHistory(strings.TrimSpace(src))
		o.evalInput(p, src)
	}
}

// incomplete reports whether src ends inside an open grouping, string
// or block comment, so more input is needed.
func incomplete(src string) bool {
	toks, err := ulox.Scan(src)
	var se *ulox.ScanError
	if errors.As(err, &se) {
		last := se.Errors[len(se.Errors)-1].Message
		return last == "Unterminated string." || last == "Unterminated comment."
	}

	depth := 0
	for _, t := range toks {
		switch t.Kind {
		case "(":
			depth++
		case ")":
			depth--
		}
	}
	return depth > 0
}

func isInteractive(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
